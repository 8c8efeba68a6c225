package docmirror

import (
	"net/url"
	"regexp"
	"strings"
)

// NormalizeURL converts a raw URL into its canonical crawl-target form:
// absolute, fragment and query stripped, trailing slashes trimmed. Two URLs
// that normalize to the same string identify the same target.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q is not absolute", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q", u.Scheme)
	}

	path := strings.TrimRight(u.Path, "/")
	return u.Scheme + "://" + u.Host + path, nil
}

// defaultSkipPattern matches URL paths that are never documentation pages:
// framework internals, API endpoints, static assets.
var defaultSkipPattern = regexp.MustCompile(
	`(/_next/|/static/|\.(js|css|png|jpg|jpeg|gif|svg|ico|woff2?|ttf|eot|pdf|zip)$)`)

// Scope defines the crawl boundary: same host, path at or below the base
// path, not matching any exclusion pattern. Scope filtering happens before a
// target is enqueued, never inside the frontier.
type Scope struct {
	Scheme     string
	Host       string
	PathPrefix string
	Filter     *URLFilter
}

// NewScope derives a Scope from a base URL. The exclude patterns are applied
// on top of the built-in skip patterns for non-documentation paths.
func NewScope(baseURL string, exclude []*regexp.Regexp) (*Scope, error) {
	normalized, err := NormalizeURL(baseURL)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	return &Scope{
		Scheme:     u.Scheme,
		Host:       u.Host,
		PathPrefix: u.Path,
		Filter:     &URLFilter{Exclude: exclude},
	}, nil
}

// Allows reports whether a URL falls within the crawl boundary.
// Out-of-scope URLs are silently dropped; they are not errors.
func (s *Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != s.Host {
		return false
	}
	// Prefix containment respects segment boundaries: /guide admits
	// /guide/intro but not the sibling /guidebook.
	if u.Path != s.PathPrefix && !strings.HasPrefix(u.Path, s.PathPrefix+"/") {
		return false
	}
	if defaultSkipPattern.MatchString(u.Path) {
		return false
	}
	return s.Filter.Match(rawURL)
}

// BaseURL reconstructs the normalized base URL the scope was derived from.
func (s *Scope) BaseURL() string {
	return s.Scheme + "://" + s.Host + s.PathPrefix
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check exclude patterns
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
