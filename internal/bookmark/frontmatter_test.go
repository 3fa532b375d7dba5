package bookmark

import (
	"context"
	"errors"
	"testing"

	"github.com/gerunddev/linkmark/internal/vault"
)

func TestFrontmatterLink(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "link key",
			content: "---\nlink: https://example.com\ntags: [web]\n---\n# Note\n",
			want:    "https://example.com",
		},
		{
			name:    "no frontmatter",
			content: "# Note\n\nbody",
			wantErr: ErrNoFrontmatter,
		},
		{
			name:    "missing link",
			content: "---\ntitle: Note\n---\n",
			wantErr: ErrNoLink,
		},
		{
			name:    "link not a string",
			content: "---\nlink: 42\n---\n",
			wantErr: ErrLinkNotString,
		},
		{
			name:    "link is a list",
			content: "---\nlink:\n  - https://a.example\n---\n",
			wantErr: ErrLinkNotString,
		},
		{
			name:    "frontmatter is a list",
			content: "---\n- a\n- b\n---\n",
			wantErr: ErrFrontmatterNotMap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrontmatterLink(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FrontmatterLink() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FrontmatterLink() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FrontmatterLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookmarkFrontmatterLink(t *testing.T) {
	store := newMemStore()
	store.files["clips/article.md"] = "---\nlink: https://example.com\n---\nnotes"
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com": "<title>Example Page</title>",
	}}

	b := New(fetcher, store, nil)
	ws := staticWorkspace{doc: &vault.Document{Path: "clips/article.md"}}

	file, err := b.BookmarkFrontmatterLink(context.Background(), ws, settings("refs"))
	if err != nil {
		t.Fatalf("BookmarkFrontmatterLink() error = %v", err)
	}
	if file.Path != "refs/example_com.Example Page.md" {
		t.Errorf("Path = %q", file.Path)
	}

	if _, err := b.BookmarkFrontmatterLink(context.Background(), staticWorkspace{}, settings("refs")); !errors.Is(err, ErrNoActiveDocument) {
		t.Errorf("error = %v, want ErrNoActiveDocument", err)
	}
}
