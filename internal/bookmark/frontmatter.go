package bookmark

import (
	"context"
	"errors"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/linkmark/internal/config"
)

const linkKey = "link"

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// FrontmatterLink returns the link key of a note's YAML frontmatter
func FrontmatterLink(content string) (string, error) {
	var meta any
	if _, err := frontmatter.MustParse(strings.NewReader(content), &meta, yamlFormat); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return "", ErrNoFrontmatter
		}
		return "", &Error{Kind: KindParse, Detail: "invalid frontmatter", Err: err}
	}

	if meta == nil {
		return "", ErrNoLink
	}

	fields, ok := meta.(map[string]any)
	if !ok {
		return "", ErrFrontmatterNotMap
	}

	value, ok := fields[linkKey]
	if !ok || value == nil {
		return "", ErrNoLink
	}

	link, ok := value.(string)
	if !ok {
		return "", ErrLinkNotString
	}
	return strings.TrimSpace(link), nil
}

// BookmarkFrontmatterLink bookmarks the link named in the active document's
// frontmatter
func (b *Bookmarker) BookmarkFrontmatterLink(ctx context.Context, ws Workspace, settings *config.Config) (*File, error) {
	doc, ok := ws.ActiveDocument()
	if !ok {
		return nil, ErrNoActiveDocument
	}

	content, err := b.store.Read(doc.Path)
	if err != nil {
		return nil, persistError("failed to read "+doc.Path, err)
	}

	link, err := FrontmatterLink(content)
	if err != nil {
		return nil, err
	}
	if link == "" {
		return nil, ErrNoLink
	}

	return b.BookmarkURL(ctx, link, settings)
}
