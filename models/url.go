package models

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

// Url is the crawler's normalized URL entity. Two Urls that compare equal
// after Normalize are treated as the same frontier entry.
type Url struct {
	Scheme string
	Host   string
	Path   string
	Query  string
}

// ParseURL parses and normalizes a raw URL the way the frontier expects it:
// lowercase scheme/host, punycode host, stripped fragment, sorted query
// params, trailing slash collapsed on bare paths.
func ParseURL(raw string) (Url, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Url{}, fmt.Errorf("models: empty url")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Url{}, fmt.Errorf("models: parse url %q: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return Url{}, fmt.Errorf("models: url %q missing scheme or host", raw)
	}

	host, err := idna.Lookup.ToASCII(strings.ToLower(parsed.Hostname()))
	if err != nil {
		// Not all hosts round-trip through idna (IPs, already-ASCII names
		// with odd labels); fall back to the lowercased hostname.
		host = strings.ToLower(parsed.Hostname())
	}
	if parsed.Port() != "" {
		host = host + ":" + parsed.Port()
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	return Url{
		Scheme: strings.ToLower(parsed.Scheme),
		Host:   host,
		Path:   path,
		Query:  sortedQuery(parsed.RawQuery),
	}, nil
}

func sortedQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		vs := values[k]
		sort.Strings(vs)
		for _, v := range vs {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(parts, "&")
}

// String renders the canonical form used as a frontier/dedupe key.
func (u Url) String() string {
	s := u.Scheme + "://" + u.Host + u.Path
	if u.Query != "" {
		s += "?" + u.Query
	}
	return s
}

// SameHost reports whether u and other share a registrable host, treating
// "www." prefixes as equivalent (matches the teacher's allowedDomains
// www/non-www pairing in main.go).
func (u Url) SameHost(other Url) bool {
	return stripWWW(u.Host) == stripWWW(other.Host)
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// Resolve turns a possibly-relative href found on a page into an absolute
// Url relative to the page it was found on.
func (u Url) Resolve(href string) (Url, error) {
	base, err := url.Parse(u.String())
	if err != nil {
		return Url{}, err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return Url{}, err
	}
	return ParseURL(base.ResolveReference(ref).String())
}
