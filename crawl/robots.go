package crawl

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seoaudit/pipeline/models"
	"github.com/temoto/robotstxt"
)

// RobotsFetcher fetches and parses a site's robots.txt (C3). The teacher's
// services/robots.go hand-parses lines looking for a "sitemap:" prefix;
// this replaces that parser with github.com/temoto/robotstxt (already a
// transitive teacher dependency via colly, and a direct dependency in
// ncecere-raito) so disallow/allow rule matching is spec-correct instead
// of sitemap-discovery-only.
type RobotsFetcher struct {
	client *http.Client
}

// NewRobotsFetcher builds a fetcher with the given request timeout,
// matching the teacher's plain http.Client robots fetch in services/robots.go.
func NewRobotsFetcher(timeout time.Duration) *RobotsFetcher {
	return &RobotsFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves and parses u's robots.txt. A 404 or network failure is
// treated as "no restrictions" per spec §4.3 (absence of robots.txt means
// everything is allowed), matching the Python original's fail-open policy;
// the returned found flag tells check 1 (and the orchestrator's
// check-2 asset probe) whether that fallback kicked in.
func (f *RobotsFetcher) Fetch(u models.Url, userAgent string) (data *robotstxt.RobotsData, policy models.RobotsPolicy, found bool, err error) {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	policy = models.RobotsPolicy{Host: u.Host, FetchedAt: time.Now()}

	resp, err := f.client.Get(robotsURL)
	if err != nil {
		// Fail open: transient network errors don't block the crawl.
		return robotstxt.FromStatusAndBytes(http.StatusOK, nil), policy, false, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, policy, false, fmt.Errorf("crawl: read robots.txt for %s: %w", u.Host, err)
	}

	if resp.StatusCode != http.StatusOK {
		return robotstxt.FromStatusAndBytes(http.StatusOK, nil), policy, false, nil
	}

	parsed, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return robotstxt.FromStatusAndBytes(http.StatusOK, nil), policy, false, nil
	}

	group := parsed.FindGroup(userAgent)
	if group != nil && group.CrawlDelay > 0 {
		policy.CrawlDelay = group.CrawlDelay
	}
	policy.SitemapURLs = parsed.Sitemaps

	return parsed, policy, true, nil
}

// Allowed reports whether path is fetchable under the given robots data
// for userAgent, per spec §4.3's invariant that disallowed paths are
// never enqueued.
func Allowed(data *robotstxt.RobotsData, userAgent, path string) bool {
	if data == nil {
		return true
	}
	return data.TestAgent(path, userAgent)
}
