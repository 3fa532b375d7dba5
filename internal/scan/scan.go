// Package scan finds the links in a note.
package scan

import (
	"iter"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"mvdan.cc/xurls/v2"
)

var schemeURL = xurls.Strict()

// Links yields every absolute link in source, first to last.
//
// Inline links and images, autolinks and bare URLs are recognised, as are
// URLs written inside link text, code and raw HTML. Bare URLs need a scheme
// but not a dotted host, so localhost and intranet addresses are found.
// Relative destinations and e-mail addresses are skipped. Repeated links
// are yielded each time they occur. The sequence can be ranged over any
// number of times.
func Links(source string) iter.Seq[string] {
	return func(yield func(string) bool) {
		src := []byte(source)
		md := goldmark.New(goldmark.WithExtensions(extension.Linkify))
		doc := md.Parser().Parse(text.NewReader(src))

		emit := func(u string) bool {
			if !IsAbsolute(u) {
				return true
			}
			return yield(u)
		}
		emitText := func(b []byte) bool {
			for _, m := range schemeURL.FindAll(b, -1) {
				if !emit(string(m)) {
					return false
				}
			}
			return true
		}
		emitLines := func(lines *text.Segments) bool {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if !emitText(seg.Value(src)) {
					return false
				}
			}
			return true
		}

		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			ok := true

			switch node := n.(type) {
			case *ast.Link:
				// destination follows the link text in the note
				if !entering {
					ok = emit(string(node.Destination))
				}
			case *ast.Image:
				if !entering {
					ok = emit(string(node.Destination))
				}
			case *ast.AutoLink:
				if entering && node.AutoLinkType == ast.AutoLinkURL {
					ok = emit(string(node.URL(src)))
				}
			case *ast.Text:
				if entering {
					ok = emitText(node.Segment.Value(src))
				}
			case *ast.RawHTML:
				if entering {
					ok = emitLines(node.Segments)
				}
			case *ast.HTMLBlock:
				if entering {
					ok = emitLines(node.Lines())
					if ok && node.HasClosure() {
						ok = emitText(node.ClosureLine.Value(src))
					}
				}
			case *ast.CodeBlock, *ast.FencedCodeBlock:
				if entering {
					ok = emitLines(n.Lines())
				}
			}

			if !ok {
				return ast.WalkStop, nil
			}
			return ast.WalkContinue, nil
		})
	}
}

// IsAbsolute reports whether raw parses as a URL with both scheme and host
func IsAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
