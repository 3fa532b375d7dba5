// Package fetch retrieves the pages being bookmarked.
//
// The client sends browser-like default headers, keeps cookies for the
// duration of a run and logs every request at debug level.
package fetch

import (
	"context"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent is sent unless the configuration provides another one
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.3"

var defaultDialer = net.Dialer{
	Timeout:   15 * time.Second,
	KeepAlive: 30 * time.Second,
}

var defaultTransport = &http.Transport{
	DialContext:           defaultDialer.DialContext,
	Proxy:                 http.ProxyFromEnvironment,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          10,
	MaxIdleConnsPerHost:   2,
	IdleConnTimeout:       30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// defaultHeaders are added to every request that doesn't set them itself
var defaultHeaders = http.Header{
	"User-Agent":                []string{DefaultUserAgent},
	"Accept":                    []string{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
	"Accept-Language":           []string{"en-US,en;q=0.8"},
	"Upgrade-Insecure-Requests": []string{"1"},
}

// Transport wraps an [http.RoundTripper], adding default headers and
// logging each request.
type Transport struct {
	http.RoundTripper
	header http.Header
	logger *slog.Logger
}

// RoundTrip implements [http.RoundTripper]
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	// Work on a shallow copy; a RoundTripper must not modify the request.
	req := new(http.Request)
	*req = *r
	req.Header = req.Header.Clone()

	for k, values := range t.header {
		if _, ok := r.Header[textproto.CanonicalMIMEHeaderKey(k)]; !ok {
			req.Header[k] = values
		}
	}

	now := time.Now()
	rsp, err := t.RoundTripper.RoundTrip(req)

	attrs := []slog.Attr{
		slog.String("url", req.URL.String()),
		slog.String("method", req.Method),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	} else {
		attrs = append(attrs,
			slog.Int("status", rsp.StatusCode),
			slog.String("content_type", rsp.Header.Get("Content-Type")),
		)
	}
	attrs = append(attrs, slog.Duration("time", time.Since(now)))
	t.Log().LogAttrs(context.Background(), slog.LevelDebug, "request", attrs...)

	return rsp, err
}

// Log returns the transport's logger
func (t *Transport) Log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

// SetLogger sets the transport's logger
func (t *Transport) SetLogger(l *slog.Logger) {
	t.logger = l
}

// SetHeader receives a function that can manipulate the transport's
// default headers
func (t *Transport) SetHeader(fn func(h http.Header)) {
	fn(t.header)
}

// Header returns a copy of the transport's default headers
func (t *Transport) Header() http.Header {
	return t.header.Clone()
}

// NewClient returns a client with an empty cookie jar and a [Transport].
// A zero timeout leaves requests unbounded; userAgent replaces the
// default User-Agent when not empty.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *http.Client {
	cookies, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	tr := &Transport{
		RoundTripper: defaultTransport.Clone(),
		header:       maps.Clone(defaultHeaders),
		logger:       logger,
	}
	if userAgent != "" {
		tr.SetHeader(func(h http.Header) {
			h.Set("User-Agent", userAgent)
		})
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
		Jar:       cookies,
	}
}
