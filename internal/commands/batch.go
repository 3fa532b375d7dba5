package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/linkmark/internal/bookmark"
	"github.com/gerunddev/linkmark/internal/notify"
	"github.com/gerunddev/linkmark/internal/styles"
	"github.com/gerunddev/linkmark/internal/tui"
)

// runBatch runs Bookmark All Links with plain notices or the progress display
func runBatch(ctx context.Context, flags *appFlags) error {
	if !flags.tui {
		s := newSession(flags, notify.NewConsole(os.Stdout))
		defer s.cleanup()
		return s.env.NewRegistry().Invoke(ctx, BookmarkAllLinksID)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.InitProgressModel(flags.note))

	s := newSession(flags, notify.Func(func(msg string) {
		// errors are shown by the final view
		if strings.HasPrefix(msg, "error:") {
			return
		}
		p.Send(tui.NoticeMsg(msg))
	}))
	defer s.cleanup()

	s.env.BatchDone = func(result *bookmark.BatchResult, err error) {
		p.Send(tui.BatchDoneMsg{Result: result, Err: err})
	}

	done := make(chan error, 1)
	go func() {
		done <- s.env.NewRegistry().Invoke(ctx, BookmarkAllLinksID)
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
	}

	// leaving the display early stops the batch before its next link
	cancel()
	return <-done
}
