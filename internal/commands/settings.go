package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cristalhq/acmd"

	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/styles"
)

func init() {
	cliCommands = append(cliCommands, acmd.Command{
		Name:        "settings",
		Description: "Show or change settings",
		ExecFunc:    runSettings,
	})
}

func runSettings(_ context.Context, args []string) error {
	var bookmarkPath, vaultDir string

	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.StringVar(&bookmarkPath, "bookmark-path", "", "location to store bookmarks, relative to the vault")
	fs.StringVar(&vaultDir, "vault", "", "vault directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	return Settings(os.Stdout, bookmarkPath, vaultDir)
}

// Settings prints the current settings, saving any non-empty changes first.
// Changes are applied to the file as written, so environment overrides are
// shown but never saved.
func Settings(w io.Writer, bookmarkPath, vaultDir string) error {
	if bookmarkPath != "" || vaultDir != "" {
		if err := saveSettings(bookmarkPath, vaultDir); err != nil {
			return err
		}
		fmt.Fprintln(w, styles.SuccessStyle.Render("✓ Settings saved")) //nolint:errcheck
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	label := styles.LabelStyle
	value := styles.ValueStyle
	rows := [][2]string{
		{"config", config.ConfigPath()},
		{"vault", cfg.VaultDir},
		{"bookmark path", cfg.BookmarkFolder()},
		{"log file", orNone(cfg.LogFile)},
		{"log level", cfg.LogLevel},
		{"fetch timeout", timeoutString(cfg)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", label.Render(fmt.Sprintf("%-14s", row[0])), value.Render(row[1])) //nolint:errcheck
	}
	return nil
}

func saveSettings(bookmarkPath, vaultDir string) error {
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if bookmarkPath != "" {
		cfg.BookmarkPath = bookmarkPath
	}
	if vaultDir != "" {
		dir, err := config.ExpandPath(vaultDir)
		if err != nil {
			return fmt.Errorf("failed to expand vault path: %w", err)
		}
		cfg.VaultDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return cfg.Save()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func timeoutString(cfg *config.Config) string {
	if cfg.FetchTimeout == 0 {
		return "none"
	}
	return cfg.FetchTimeout.String()
}
