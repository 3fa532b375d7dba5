// Package extract pulls human-readable metadata out of fetched pages.
package extract

import (
	"bytes"
	"strings"

	"github.com/antchfx/htmlquery"
)

// Title returns the text of the first <title> element in page.
//
// The text is trimmed but otherwise kept as written. An empty title element
// still counts as a title. It reports false when the page has no title
// element or cannot be parsed at all.
func Title(page []byte) (string, bool) {
	if len(page) == 0 {
		return "", false
	}

	doc, err := htmlquery.Parse(bytes.NewReader(page))
	if err != nil {
		return "", false
	}

	node := htmlquery.FindOne(doc, "//title")
	if node == nil {
		return "", false
	}

	return strings.TrimSpace(htmlquery.InnerText(node)), true
}
