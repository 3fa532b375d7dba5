package bookmark

import (
	"errors"
	"fmt"
)

// Kind classifies a bookmarking failure
type Kind int

const (
	KindUnknown Kind = iota
	// KindInput is a user-correctable problem: nothing open, nothing selected
	KindInput
	// KindTransport is a fetch failure; it is downgraded to an unavailable record
	KindTransport
	// KindParse is a URL or document that could not be parsed
	KindParse
	// KindPersistence is a vault failure; it aborts the current operation
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a bookmarking failure tagged with its Kind.
// Detail is a human description; Err keeps the underlying platform error,
// which is carried verbatim and never inspected.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return e.Detail + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input errors
var (
	ErrNoActiveDocument   = &Error{Kind: KindInput, Detail: "expected to have a file open but none were active"}
	ErrNoURLSelected      = &Error{Kind: KindInput, Detail: "select a url to bookmark"}
	ErrNoClipboard        = &Error{Kind: KindInput, Detail: "no clipboard available"}
	ErrNoClipboardContent = &Error{Kind: KindInput, Detail: "no url in clipboard"}
	ErrNoFrontmatter      = &Error{Kind: KindInput, Detail: "no frontmatter found in document"}
	ErrFrontmatterNotMap  = &Error{Kind: KindInput, Detail: "frontmatter is not a mapping"}
	ErrNoLink             = &Error{Kind: KindInput, Detail: "key link not available"}
	ErrLinkNotString      = &Error{Kind: KindInput, Detail: "link expected to be string type"}
)

// KindOf returns the Kind of the first *Error found in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// InputError attaches a cause to one of the input sentinels while keeping
// errors.Is(err, sentinel) true.
func InputError(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

func persistError(detail string, err error) error {
	return &Error{Kind: KindPersistence, Detail: detail, Err: err}
}

func transportError(url string, err error) error {
	return &Error{Kind: KindTransport, Detail: "fetch error " + url, Err: err}
}
