package crawl

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/seoaudit/pipeline/models"
)

var commonSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
}

// SitemapLoader discovers and parses sitemaps (C4), adapted from the
// teacher's services/sitemap.go (DiscoverSitemapsWithFallback,
// ParseSitemap, recursive sitemap-index handling). klauspost/compress/gzip
// replaces the stdlib compress/gzip the teacher uses — klauspost is
// already a transitive dependency via colly and is the faster drop-in the
// rest of the ecosystem reaches for.
type SitemapLoader struct {
	client *http.Client
}

// NewSitemapLoader builds a loader with the given request timeout.
func NewSitemapLoader(timeout time.Duration) *SitemapLoader {
	return &SitemapLoader{client: &http.Client{Timeout: timeout}}
}

// Discover tries robots-declared sitemaps first, then falls back to the
// common well-known paths, matching DiscoverSitemapsWithFallback.
func (l *SitemapLoader) Discover(base models.Url, fromRobots []string) []string {
	if len(fromRobots) > 0 {
		return fromRobots
	}
	found := make([]string, 0, len(commonSitemapPaths))
	for _, p := range commonSitemapPaths {
		candidate := base.Scheme + "://" + base.Host + p
		if l.exists(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

func (l *SitemapLoader) exists(sitemapURL string) bool {
	resp, err := l.client.Head(sitemapURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Load fetches and recursively parses sitemapURL, returning every page URL
// found across it and any nested sitemaps it indexes.
func (l *SitemapLoader) Load(sitemapURL string) ([]string, error) {
	resp, err := l.client.Get(sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("crawl: fetch sitemap %s: %w", sitemapURL, err)
	}
	defer resp.Body.Close()

	body, err := l.decompress(resp)
	if err != nil {
		return nil, fmt.Errorf("crawl: decompress sitemap %s: %w", sitemapURL, err)
	}

	var index models.SitemapIndex
	if xml.Unmarshal(body, &index) == nil && len(index.Sitemaps) > 0 {
		var urls []string
		for _, ref := range index.Sitemaps {
			nested, err := l.Load(ref.Loc)
			if err != nil {
				continue // one bad nested sitemap shouldn't sink the rest
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	var set models.SitemapSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("crawl: parse sitemap %s: %w", sitemapURL, err)
	}
	urls := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		urls = append(urls, u.Loc)
	}
	return urls, nil
}

func (l *SitemapLoader) decompress(resp *http.Response) ([]byte, error) {
	if strings.HasSuffix(resp.Request.URL.Path, ".gz") || resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
