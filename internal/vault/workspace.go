package vault

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// Document is an open note
type Document struct {
	Path string
}

// Workspace tracks the active note and its selected text
type Workspace struct {
	active    string
	selection string
}

// NewWorkspace returns a workspace with the given active note path
// (empty for none) and selected text
func NewWorkspace(active, selection string) *Workspace {
	return &Workspace{active: active, selection: selection}
}

// ActiveDocument returns the active note, if any
func (w *Workspace) ActiveDocument() (*Document, bool) {
	if w == nil || w.active == "" {
		return nil, false
	}
	return &Document{Path: w.active}, true
}

// Selection returns the text selected in doc
func (w *Workspace) Selection(doc *Document) string {
	if doc == nil || doc.Path != w.active {
		return ""
	}
	return w.selection
}

// Clipboard gives read access to clipboard text
type Clipboard interface {
	ReadText() (string, error)
}

// SystemClipboard reads the OS clipboard
type SystemClipboard struct{}

// ReadText returns the current clipboard text
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}
