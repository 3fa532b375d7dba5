package bookmark

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/gerunddev/linkmark/internal/config"
	"github.com/gerunddev/linkmark/internal/fetch"
	"github.com/gerunddev/linkmark/internal/vault"
)

const note = `# Reading list

- [Example](https://example.com)
- https://dead.example
- <https://go.dev>
`

func batchFixture() (*memStore, *stubFetcher, *noticeRecorder) {
	store := newMemStore()
	store.files["notes/reading.md"] = note

	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com": "<title>Example Page</title>",
		"https://go.dev":      "<title>The Go Programming Language</title>",
	}}

	return store, fetcher, &noticeRecorder{}
}

func settings(path string) *config.Config {
	return &config.Config{VaultDir: "/vault", BookmarkPath: path}
}

func TestBookmarkAll(t *testing.T) {
	store, fetcher, notices := batchFixture()
	ws := staticWorkspace{doc: &vault.Document{Path: "notes/reading.md"}}

	b := New(fetcher, store, notices)
	result, err := b.BookmarkAll(context.Background(), ws, settings("bookmarks"))
	if err != nil {
		t.Fatalf("BookmarkAll() error = %v", err)
	}

	wantPaths := []string{
		"bookmarks/example_com.Example Page.md",
		"bookmarks/UNAVAILABLE_dead_example.httpsdeadexample.md",
		"bookmarks/go_dev.The Go Programming Language.md",
	}
	if !slices.Equal(result.Paths(), wantPaths) {
		t.Errorf("Paths() = %q, want %q", result.Paths(), wantPaths)
	}
	if result.Links != 3 || result.Created != 3 || result.Reused != 0 || result.Unavailable != 1 {
		t.Errorf("result = %+v", result)
	}

	wantNotices := []string{
		"bookmarking: https://example.com",
		"bookmarked: example_com.Example Page.md",
		"bookmarking: https://dead.example",
		"bookmarked: UNAVAILABLE_dead_example.httpsdeadexample.md",
		"bookmarking: https://go.dev",
		"bookmarked: go_dev.The Go Programming Language.md",
		"bookmarking complete",
	}
	if !slices.Equal(notices.notices, wantNotices) {
		t.Errorf("notices = %q, want %q", notices.notices, wantNotices)
	}
}

func TestBookmarkAllRerun(t *testing.T) {
	store, fetcher, notices := batchFixture()
	ws := staticWorkspace{doc: &vault.Document{Path: "notes/reading.md"}}
	b := New(fetcher, store, notices)

	if _, err := b.BookmarkAll(context.Background(), ws, settings("bookmarks")); err != nil {
		t.Fatalf("first run: %v", err)
	}
	files := len(store.files)

	result, err := b.BookmarkAll(context.Background(), ws, settings("bookmarks"))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Created != 0 || result.Reused != 3 {
		t.Errorf("result = %+v", result)
	}
	if len(store.files) != files {
		t.Errorf("rerun changed file count from %d to %d", files, len(store.files))
	}
	if !slices.Contains(notices.notices, "already bookmarked: example_com.Example Page.md") {
		t.Errorf("missing reuse notice in %q", notices.notices)
	}
}

func TestBookmarkAllPersistFailureAborts(t *testing.T) {
	store, fetcher, notices := batchFixture()
	store.createErr["bookmarks/UNAVAILABLE_dead_example.httpsdeadexample.md"] = fs.ErrPermission
	ws := staticWorkspace{doc: &vault.Document{Path: "notes/reading.md"}}

	b := New(fetcher, store, notices)
	result, err := b.BookmarkAll(context.Background(), ws, settings("bookmarks"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindPersistence || !errors.Is(err, fs.ErrPermission) {
		t.Errorf("error = %v", err)
	}

	// the first bookmark stays, the third link is never fetched
	if _, ok := store.files["bookmarks/example_com.Example Page.md"]; !ok {
		t.Error("first bookmark should remain")
	}
	if slices.Contains(fetcher.calls, "https://go.dev") {
		t.Error("third link should not be fetched")
	}
	if len(result.Files) != 1 {
		t.Errorf("result files = %d, want 1", len(result.Files))
	}
	if slices.Contains(notices.notices, "bookmarking complete") {
		t.Error("aborted batch must not report completion")
	}
}

func TestBookmarkAllNoActiveDocument(t *testing.T) {
	store, fetcher, notices := batchFixture()

	b := New(fetcher, store, notices)
	_, err := b.BookmarkAll(context.Background(), staticWorkspace{}, settings("bookmarks"))
	if !errors.Is(err, ErrNoActiveDocument) {
		t.Fatalf("error = %v, want ErrNoActiveDocument", err)
	}
	if store.mkdirs != 0 || store.creates != 0 {
		t.Error("no filesystem writes expected")
	}
	if len(fetcher.calls) != 0 {
		t.Error("nothing should be fetched")
	}
}

func TestBookmarkAllNoLinks(t *testing.T) {
	store := newMemStore()
	store.files["empty.md"] = "just words"
	notices := &noticeRecorder{}

	b := New(&stubFetcher{}, store, notices)
	result, err := b.BookmarkAll(context.Background(),
		staticWorkspace{doc: &vault.Document{Path: "empty.md"}}, settings(""))
	if err != nil {
		t.Fatalf("BookmarkAll() error = %v", err)
	}
	if result.Links != 0 {
		t.Errorf("Links = %d", result.Links)
	}
	if !slices.Equal(notices.notices, []string{"bookmarking complete"}) {
		t.Errorf("notices = %q", notices.notices)
	}
}

func TestBookmarkAllCancelled(t *testing.T) {
	store, fetcher, _ := batchFixture()
	ws := staticWorkspace{doc: &vault.Document{Path: "notes/reading.md"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fetcher, store, nil).BookmarkAll(ctx, ws, settings("bookmarks"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if store.creates != 0 {
		t.Error("cancelled batch should not write")
	}
}

// blockingServer holds every request until the client gives up or the
// test ends. started receives once per request.
func blockingServer(t *testing.T) (*httptest.Server, <-chan struct{}) {
	t.Helper()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv, started
}

func TestBookmarkAllCancelledDuringFetch(t *testing.T) {
	srv, started := blockingServer(t)

	store := newMemStore()
	store.files["notes/slow.md"] = "[slow](" + srv.URL + "/page)\n"
	ws := staticWorkspace{doc: &vault.Document{Path: "notes/slow.md"}}
	notices := &noticeRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-started
		cancel()
	}()

	result, err := New(fetch.New(srv.Client()), store, notices).BookmarkAll(ctx, ws, settings("bookmarks"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if store.creates != 0 {
		t.Errorf("cancelled fetch was persisted: %v", store.files)
	}
	if result.Unavailable != 0 {
		t.Errorf("Unavailable = %d, want 0", result.Unavailable)
	}
	if slices.Contains(notices.notices, "bookmarking complete") {
		t.Error("cancelled batch reported completion")
	}
}

func TestBookmarkURLCancelledDuringFetch(t *testing.T) {
	srv, started := blockingServer(t)
	store := newMemStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-started
		cancel()
	}()

	file, err := New(fetch.New(srv.Client()), store, nil).BookmarkURL(ctx, srv.URL+"/page", settings("bookmarks"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if file != nil || store.creates != 0 {
		t.Errorf("cancelled fetch was persisted: %v", store.files)
	}
}

func TestBookmarkURLDefaultFolder(t *testing.T) {
	store, fetcher, _ := batchFixture()

	file, err := New(fetcher, store, nil).BookmarkURL(context.Background(), "https://example.com", settings(""))
	if err != nil {
		t.Fatalf("BookmarkURL() error = %v", err)
	}
	if file.Path != "bookmarks/example_com.Example Page.md" {
		t.Errorf("Path = %q", file.Path)
	}
}
