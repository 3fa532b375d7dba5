package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodySize caps how much of a response body is read
const DefaultMaxBodySize = 5 << 20

// ErrNotText is returned for responses that are not text documents
var ErrNotText = errors.New("response is not a text document")

// Page is a successfully fetched document
type Page struct {
	URL         string
	ContentType string
	// Body is the document decoded to UTF-8
	Body []byte
}

// Error is a failed fetch
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError is an HTTP error status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher performs one GET per page
type Fetcher struct {
	client      *http.Client
	MaxBodySize int64
}

// New returns a Fetcher using client, or a default client when nil
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = NewClient(0, "", nil)
	}
	return &Fetcher{client: client, MaxBodySize: DefaultMaxBodySize}
}

// Fetch retrieves url. Every failure is returned as an *Error: a request
// that could not be built or sent, an error status, or a body that isn't text.
// There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, &Error{URL: url, Err: err}
	}

	rsp, err := f.client.Do(req)
	if err != nil {
		return Page{}, &Error{URL: url, Err: err}
	}
	defer rsp.Body.Close() //nolint:errcheck

	if rsp.StatusCode >= http.StatusBadRequest {
		return Page{}, &Error{URL: url, Err: &StatusError{StatusCode: rsp.StatusCode}}
	}

	limit := f.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	raw, err := io.ReadAll(io.LimitReader(rsp.Body, limit))
	if err != nil {
		return Page{}, &Error{URL: url, Err: err}
	}

	contentType := rsp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(raw).String()
	}
	if !isText(contentType) {
		return Page{}, &Error{URL: url, Err: fmt.Errorf("%w: %s", ErrNotText, contentType)}
	}

	body, err := decode(raw, contentType)
	if err != nil {
		return Page{}, &Error{URL: url, Err: err}
	}

	return Page{URL: url, ContentType: contentType, Body: body}, nil
}

func isText(contentType string) bool {
	// malformed parameters don't change what the media type is
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil && mediaType == "" {
		bare, _, _ := strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(bare))
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml", mediaType == "application/xml":
		return true
	}
	return false
}

// decode converts raw to UTF-8 using the declared charset, or one
// sniffed from the document when none is declared
func decode(raw []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	return io.ReadAll(r)
}
