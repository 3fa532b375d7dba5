// Package notify delivers the short status messages shown while bookmarking.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gerunddev/linkmark/internal/styles"
)

// Notifier shows a message to the user. Delivery is fire-and-forget.
type Notifier interface {
	Notice(msg string)
}

// Console prints notices as styled lines
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notice implements Notifier
func (c *Console) Notice(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, Render(msg)) //nolint:errcheck
}

// Render styles a notice according to what it reports
func Render(msg string) string {
	switch {
	case strings.HasPrefix(msg, "error:"):
		return styles.ErrorStyle.Render("✗ " + msg)
	case strings.HasPrefix(msg, "bookmarked:"), msg == "bookmarking complete":
		return styles.SuccessStyle.Render("✓ " + msg)
	case strings.HasPrefix(msg, "already bookmarked:"):
		return styles.DimStyle.Render("• " + msg)
	case strings.HasPrefix(msg, "bookmarking:"):
		return styles.DimStyle.Render("→ " + msg)
	default:
		return msg
	}
}

// Recorder keeps every notice it receives
type Recorder struct {
	mu      sync.Mutex
	notices []string
}

// Notice implements Notifier
func (r *Recorder) Notice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

// Notices returns a copy of the recorded notices in arrival order
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}

// Func adapts a function to Notifier
type Func func(msg string)

// Notice implements Notifier
func (f Func) Notice(msg string) {
	f(msg)
}
