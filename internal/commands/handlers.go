package commands

import (
	"context"
	"path"
	"strings"

	"github.com/gerunddev/linkmark/internal/bookmark"
	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/fetch"
	"github.com/gerunddev/linkmark/internal/logger"
	"github.com/gerunddev/linkmark/internal/notify"
	"github.com/gerunddev/linkmark/internal/vault"
)

// Workspace is the editor state commands act on
type Workspace interface {
	ActiveDocument() (*vault.Document, bool)
	Selection(doc *vault.Document) string
}

// Env is what command handlers need from the outside world
type Env struct {
	Workspace Workspace
	Clipboard vault.Clipboard
	Notifier  notify.Notifier
	Logger    *logger.Logger

	// LoadConfig is called on every invocation so settings are never stale
	LoadConfig func() (*config.Config, error)
	// OpenStore opens the vault named by the settings
	OpenStore func(cfg *config.Config) (bookmark.Store, error)
	// NewFetcher builds the page fetcher for one invocation
	NewFetcher func(cfg *config.Config, l *logger.Logger) bookmark.Fetcher

	// BatchDone, when set, receives the outcome of a Bookmark All Links run
	BatchDone func(result *bookmark.BatchResult, err error)
}

// DefaultEnv wires the real vault, clipboard and HTTP fetcher
func DefaultEnv(ws Workspace, n notify.Notifier, l *logger.Logger) *Env {
	return &Env{
		Workspace:  ws,
		Clipboard:  vault.SystemClipboard{},
		Notifier:   n,
		Logger:     l,
		LoadConfig: config.Load,
		OpenStore: func(cfg *config.Config) (bookmark.Store, error) {
			return vault.Open(cfg.VaultDir)
		},
		NewFetcher: func(cfg *config.Config, l *logger.Logger) bookmark.Fetcher {
			return fetch.New(fetch.NewClient(cfg.FetchTimeout, cfg.UserAgent, l.Slog()))
		},
	}
}

// NewRegistry returns a registry holding every linkmark command
func (e *Env) NewRegistry() *Registry {
	r := NewRegistry(e.Notifier, e.Logger)
	for _, cmd := range []Command{
		{ID: ExtractURLID, Name: "Extract", Handler: e.ExtractURL},
		{ID: ImportURLID, Name: "Import From Clipboard", Handler: e.ImportURL},
		{ID: BookmarkAllLinksID, Name: "Bookmark All Links", Handler: e.BookmarkAllLinks},
		{ID: BookmarkFrontmatterLinkID, Name: "Bookmark Frontmatter Link", Handler: e.BookmarkFrontmatterLink},
	} {
		// IDs above are distinct
		_ = r.Register(cmd)
	}
	return r
}

// ExtractURL bookmarks the URL selected in the active document
func (e *Env) ExtractURL(ctx context.Context) error {
	doc, ok := e.Workspace.ActiveDocument()
	if !ok {
		return bookmark.ErrNoActiveDocument
	}

	url := strings.TrimSpace(e.Workspace.Selection(doc))
	if url == "" {
		return bookmark.ErrNoURLSelected
	}

	return e.bookmarkURL(ctx, url)
}

// ImportURL bookmarks the URL on the clipboard
func (e *Env) ImportURL(ctx context.Context) error {
	if _, ok := e.Workspace.ActiveDocument(); !ok {
		return bookmark.ErrNoActiveDocument
	}
	if e.Clipboard == nil {
		return bookmark.ErrNoClipboard
	}

	text, err := e.Clipboard.ReadText()
	if err != nil {
		return bookmark.InputError(bookmark.ErrNoClipboard, err)
	}

	url := strings.TrimSpace(text)
	if url == "" {
		return bookmark.ErrNoClipboardContent
	}

	return e.bookmarkURL(ctx, url)
}

// BookmarkAllLinks bookmarks every link in the active document
func (e *Env) BookmarkAllLinks(ctx context.Context) error {
	cfg, b, err := e.setup()
	if err != nil {
		e.batchDone(nil, err)
		return err
	}

	result, err := b.BookmarkAll(ctx, e.Workspace, cfg)
	e.batchDone(result, err)
	return err
}

// BookmarkFrontmatterLink bookmarks the link key of the active document's frontmatter
func (e *Env) BookmarkFrontmatterLink(ctx context.Context) error {
	cfg, b, err := e.setup()
	if err != nil {
		return err
	}

	file, err := b.BookmarkFrontmatterLink(ctx, e.Workspace, cfg)
	if err != nil {
		return err
	}
	e.reportFile(file)
	return nil
}

func (e *Env) bookmarkURL(ctx context.Context, url string) error {
	cfg, b, err := e.setup()
	if err != nil {
		return err
	}

	file, err := b.BookmarkURL(ctx, url, cfg)
	if err != nil {
		return err
	}
	e.reportFile(file)
	return nil
}

// setup loads fresh settings and builds a bookmarker over the vault
func (e *Env) setup() (*config.Config, *bookmark.Bookmarker, error) {
	cfg, err := e.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	e.log().ConfigLoaded(cfg.VaultDir, cfg.BookmarkFolder())

	store, err := e.OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	b := bookmark.New(e.NewFetcher(cfg, e.log()), store, e.Notifier)
	b.SetLogger(e.log())
	return cfg, b, nil
}

func (e *Env) reportFile(file *bookmark.File) {
	if e.Notifier == nil {
		return
	}
	name := path.Base(file.Path)
	if file.Created {
		e.Notifier.Notice("bookmarked: " + name)
	} else {
		e.Notifier.Notice("already bookmarked: " + name)
	}
}

func (e *Env) batchDone(result *bookmark.BatchResult, err error) {
	if e.BatchDone != nil {
		e.BatchDone(result, err)
	}
}

func (e *Env) log() *logger.Logger {
	if e.Logger == nil {
		return logger.Discard()
	}
	return e.Logger
}
