package bookmark

import "github.com/gerunddev/linkmark/internal/extract"

// Record is the canonical form of one bookmarked page
type Record struct {
	// Title is the page title, or the URL when the page has none or was unreachable
	Title string
	// Content is the URL; it is also the body of the persisted file
	Content string
	// Available is true when the page was fetched
	Available bool
}

// Build turns a URL and the outcome of fetching it into a Record.
// It never fails: an unreachable page yields an unavailable record whose
// title and content are both the URL.
func Build(url string, page []byte, fetchErr error) Record {
	if fetchErr != nil {
		return Record{Title: url, Content: url, Available: false}
	}

	title, ok := extract.Title(page)
	if !ok {
		title = url
	}

	return Record{Title: title, Content: url, Available: true}
}
