package audit

import (
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/providers"
)

// Context is everything a check needs to evaluate the whole crawled site
// at once, mirroring the single CrawlData object
// audit_engine.py's SEOAuditEngine is constructed with.
type Context struct {
	Pages       []models.PageRecord
	Edges       []models.LinkEdge
	Robots      models.RobotsPolicy
	RobotsFound bool
	Config      models.CrawlConfig
	PageSpeed   map[string]providers.PageSpeedReport // keyed by page URL; absent = no data

	// BlocksCriticalAssets is set by the orchestrator by testing robots
	// rules against common CSS/JS asset paths (check 2).
	BlocksCriticalAssets bool
	// SitemapFound/SitemapValid are set by the orchestrator from the C4
	// sitemap loader's discovery result (checks 3, 4).
	SitemapFound bool
	SitemapValid bool
	// HasCustomErrorPage is set when a deliberately-nonexistent path
	// returns a distinct branded 404 rather than a generic one (check 96).
	HasCustomErrorPage bool
}

// pageByURL looks up a page's record by its URL.
func (c *Context) pageByURL(url string) (models.PageRecord, bool) {
	for _, p := range c.Pages {
		if p.URL == url {
			return p, true
		}
	}
	return models.PageRecord{}, false
}

func urlsOf(pages []models.PageRecord) []string {
	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, p.URL)
	}
	return urls
}

// cap50 trims an affected-url list to the stored sample size
// CheckResult.affected_urls is specified to, independent of
// AffectedCount which always holds the true total.
func cap50(urls []string) []string {
	if len(urls) <= 50 {
		return urls
	}
	return urls[:50]
}
