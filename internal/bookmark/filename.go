package bookmark

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

const (
	unavailablePrefix = "UNAVAILABLE_"
	markdownExt       = ".md"
)

var (
	titleRx  = regexp.MustCompile(`[^a-zA-Z0-9\-\s]`)
	domainRx = regexp.MustCompile(`^[\p{L}\p{N}\-_.]+$`)
)

// SanitizeTitle keeps ASCII letters, digits, hyphens and whitespace, then drops newlines
func SanitizeTitle(title string) string {
	return strings.ReplaceAll(titleRx.ReplaceAllString(title, ""), "\n", "")
}

// Filename derives the bookmark file name for r.
//
// The name is "<domain>.<title>.md" where the domain has its dots replaced
// by underscores, or "<title>.md" when r.Content has no domain. Unavailable
// records are prefixed with "UNAVAILABLE_". A title that sanitizes to
// nothing is kept empty.
func Filename(r Record) string {
	title := SanitizeTitle(r.Title)

	name := title
	if domain := domainOf(r.Content); domain != "" {
		name = strings.ReplaceAll(domain, ".", "_") + "." + title
	}
	name += markdownExt

	if !r.Available {
		name = unavailablePrefix + name
	}
	return name
}

// domainOf returns the lowercased host name of raw, or "" when raw does not
// parse, has no host, or its host is an IP address.
func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	// percent-decoded hosts may carry separators
	if !domainRx.MatchString(host) {
		return ""
	}
	return host
}

// ParseFilename splits a bookmark file name back into its parts.
// domain keeps its underscores since the original dots cannot be recovered.
func ParseFilename(name string) (domain, title string, available bool) {
	available = true
	if strings.HasPrefix(name, unavailablePrefix) {
		available = false
		name = strings.TrimPrefix(name, unavailablePrefix)
	}
	name = strings.TrimSuffix(name, markdownExt)

	// sanitized titles never contain a dot, so the first one ends the domain
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:], available
	}
	return "", name, available
}
