package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristalhq/acmd"

	"github.com/gerunddev/linkmark/internal/commands"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := acmd.RunnerOf(commands.CLI(), acmd.Config{
		AppName:         "linkmark",
		AppDescription:  "Bookmark web pages into a markdown vault",
		PostDescription: "Settings live in ~/.config/linkmark/config.json and can be overridden with LINKMARK_* variables.",
		Version:         version,
		Context:         ctx,
	})

	if err := r.Run(); err != nil {
		// command failures have already been shown as a notice
		if commands.IsReported(err) {
			stop()
			os.Exit(1)
		}
		r.Exit(err)
	}
}
