package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// bookmarkMarkdown describes a bookmark as a small markdown document
func bookmarkMarkdown(bm *BookmarkInfo) string {
	var b strings.Builder

	title := bm.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "<%s>\n\n", bm.URL)

	domain := bm.Domain
	if domain == "" {
		domain = "none"
	}
	fmt.Fprintf(&b, "- **Domain:** %s\n", domain)
	if bm.Available {
		b.WriteString("- **Status:** available when bookmarked\n")
	} else {
		b.WriteString("- **Status:** unreachable when bookmarked\n")
	}
	fmt.Fprintf(&b, "- **File:** `%s`\n", bm.Path)

	return b.String()
}

// RenderBookmark renders a bookmark for the terminal, falling back to the
// plain markdown when rendering fails
func RenderBookmark(bm *BookmarkInfo, width int) string {
	md := bookmarkMarkdown(bm)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	return rendered
}
