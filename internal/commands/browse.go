package commands

import (
	"context"
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristalhq/acmd"

	"github.com/gerunddev/linkmark/internal/bookmark"
	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/styles"
	"github.com/gerunddev/linkmark/internal/tui"
	"github.com/gerunddev/linkmark/internal/vault"
)

func init() {
	cliCommands = append(cliCommands, acmd.Command{
		Name:        "browse",
		Description: "Browse the bookmark folder",
		ExecFunc:    runBrowse,
	})
}

func runBrowse(_ context.Context, _ []string) error {
	m := tui.InitBrowseModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		data, err := LoadBookmarks()
		p.Send(tui.BrowseMsg{Data: data, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		return err
	}
	return nil
}

// LoadBookmarks lists the bookmark folder of the configured vault
func LoadBookmarks() (*tui.BrowseData, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	v, err := vault.Open(cfg.VaultDir)
	if err != nil {
		return nil, err
	}

	return ListBookmarks(v, cfg.BookmarkFolder())
}

// ListBookmarks describes every bookmark file in folder
func ListBookmarks(v *vault.Vault, folder string) (*tui.BrowseData, error) {
	entries, err := v.List(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	data := &tui.BrowseData{Folder: folder}
	for _, e := range entries {
		if !e.IsFile() || path.Ext(e.Path) != ".md" {
			continue
		}

		body, err := v.Read(e.Path)
		if err != nil {
			continue
		}

		domain, title, available := bookmark.ParseFilename(e.Name())
		data.Bookmarks = append(data.Bookmarks, tui.BookmarkInfo{
			Path:      e.Path,
			Domain:    domain,
			Title:     title,
			URL:       strings.TrimSpace(body),
			Available: available,
		})
	}

	return data, nil
}
