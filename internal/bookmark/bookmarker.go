package bookmark

import (
	"context"
	"path"
	"time"

	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/fetch"
	"github.com/gerunddev/linkmark/internal/logger"
	"github.com/gerunddev/linkmark/internal/scan"
	"github.com/gerunddev/linkmark/internal/vault"
)

// Fetcher retrieves a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Page, error)
}

// Notifier shows short messages to the user
type Notifier interface {
	Notice(msg string)
}

// Workspace knows which document is open
type Workspace interface {
	ActiveDocument() (*vault.Document, bool)
}

// BatchResult summarizes a BookmarkAll run
type BatchResult struct {
	Links       int
	Created     int
	Reused      int
	Unavailable int
	Files       []File
	Duration    time.Duration
}

// Bookmarker turns URLs into bookmark files in a vault
type Bookmarker struct {
	fetcher  Fetcher
	store    Store
	notifier Notifier
	logger   *logger.Logger
}

// New creates a Bookmarker
func New(fetcher Fetcher, store Store, notifier Notifier) *Bookmarker {
	return &Bookmarker{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		logger:   logger.Discard(),
	}
}

// SetLogger sets the logger for the bookmarker
func (b *Bookmarker) SetLogger(l *logger.Logger) {
	b.logger = l
}

// Record fetches url and builds its record. A failed fetch is logged and
// yields an unavailable record. When ctx ends before the fetch completes the
// context error is returned and no record is built.
func (b *Bookmarker) Record(ctx context.Context, url string) (Record, error) {
	page, err := b.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Record{}, ctxErr
		}
		b.logger.FetchFailed(url, transportError(url, err))
		return Build(url, nil, err), nil
	}
	return Build(url, page.Body, nil), nil
}

// BookmarkURL fetches url and persists it into the configured bookmark folder
func (b *Bookmarker) BookmarkURL(ctx context.Context, url string, settings *config.Config) (*File, error) {
	b.logger.BookmarkStarted(url)

	record, err := b.Record(ctx, url)
	if err != nil {
		return nil, err
	}
	file, err := Persist(b.store, settings.BookmarkFolder(), record)
	if err != nil {
		return nil, err
	}

	b.logFile(file, record)
	return file, nil
}

// BookmarkAll bookmarks every link in the active document, one after the
// other. Unreachable pages still produce a bookmark. The first persistence
// failure stops the batch; bookmarks written before it are kept.
func (b *Bookmarker) BookmarkAll(ctx context.Context, ws Workspace, settings *config.Config) (*BatchResult, error) {
	doc, ok := ws.ActiveDocument()
	if !ok {
		return nil, ErrNoActiveDocument
	}

	content, err := b.store.Read(doc.Path)
	if err != nil {
		return nil, persistError("failed to read "+doc.Path, err)
	}

	start := time.Now()
	folder := settings.BookmarkFolder()
	result := &BatchResult{}

	for url := range scan.Links(content) {
		// an interrupted run must not record the remaining links as unavailable
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Links++
		b.notice("bookmarking: " + url)
		b.logger.BookmarkStarted(url)

		record, err := b.Record(ctx, url)
		if err != nil {
			return result, err
		}
		if !record.Available {
			result.Unavailable++
		}

		file, err := Persist(b.store, folder, record)
		if err != nil {
			return result, err
		}
		b.logFile(file, record)
		result.Files = append(result.Files, *file)

		name := path.Base(file.Path)
		if file.Created {
			result.Created++
			b.notice("bookmarked: " + name)
		} else {
			result.Reused++
			b.notice("already bookmarked: " + name)
		}
	}

	result.Duration = time.Since(start)
	b.logger.BatchCompleted(result.Links, result.Created, result.Reused, result.Unavailable, result.Duration)
	b.notice("bookmarking complete")

	return result, nil
}

// Paths returns the paths of the files a batch touched, in link order
func (r *BatchResult) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

func (b *Bookmarker) logFile(file *File, record Record) {
	if file.Created {
		b.logger.BookmarkCreated(file.Path, record.Available)
	} else {
		b.logger.BookmarkReused(file.Path)
	}
}

func (b *Bookmarker) notice(msg string) {
	if b.notifier != nil {
		b.notifier.Notice(msg)
	}
}
