package models

import "time"

// CrawlConfig controls a single crawl run. Generalized from the teacher's
// CrawlSettings/CrawlRequest into the spec's frontier-facing config.
type CrawlConfig struct {
	SeedURL          string        `json:"seed_url" bson:"seed_url"`
	MaxDepth         int           `json:"max_depth" bson:"max_depth"`
	MaxPages         int           `json:"max_pages" bson:"max_pages"`
	Workers          int           `json:"workers" bson:"workers"`
	RequestTimeout   time.Duration `json:"request_timeout" bson:"request_timeout"`
	RespectRobots    bool          `json:"respect_robots" bson:"respect_robots"`
	RenderJS         string        `json:"render_js" bson:"render_js"` // "off", "auto", "always"
	AllowedHosts     []string      `json:"allowed_hosts" bson:"allowed_hosts"`
	UserAgent        string        `json:"user_agent" bson:"user_agent"`
	MinDelay         time.Duration `json:"min_delay" bson:"min_delay"`
	MaxDelay         time.Duration `json:"max_delay" bson:"max_delay"`
	BackoffMultiplier float64      `json:"backoff_multiplier" bson:"backoff_multiplier"`
}

// DefaultCrawlConfig mirrors the teacher's flag defaults (workers=10,
// delay=200ms, timeout=30s) generalized to the spec's field set, with a
// max depth of 3 and a 500-page budget,
// plus the adaptive-pacer defaults lifted from
// original_source/backend/app/services/crawler.py's CrawlerConfig
// (request_delay_ms=500, min_delay_ms=200, max_delay_ms=2000,
// backoff_multiplier=1.5).
func DefaultCrawlConfig(seed string) CrawlConfig {
	return CrawlConfig{
		SeedURL:           seed,
		MaxDepth:          3,
		MaxPages:          500,
		Workers:           10,
		RequestTimeout:    30 * time.Second,
		RespectRobots:     true,
		RenderJS:          "auto",
		UserAgent:         "SEOAuditBot/1.0 (+https://example.com/bot)",
		MinDelay:          200 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// RobotsPolicy is the parsed, queryable form of a site's robots.txt.
type RobotsPolicy struct {
	Host        string        `json:"host" bson:"host"`
	CrawlDelay  time.Duration `json:"crawl_delay,omitempty" bson:"crawl_delay,omitempty"`
	SitemapURLs []string      `json:"sitemap_urls,omitempty" bson:"sitemap_urls,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at" bson:"fetched_at"`
}

// CrawlArtifact is the terminal output of a crawl run: every page visited
// plus the link graph edges between them, replacing the teacher's flat
// CrawlResult/URLs-only shape.
type CrawlArtifact struct {
	RunID      string       `json:"run_id" bson:"run_id"`
	SeedURL    string       `json:"seed_url" bson:"seed_url"`
	StartedAt  time.Time    `json:"started_at" bson:"started_at"`
	FinishedAt time.Time    `json:"finished_at" bson:"finished_at"`
	Pages      []PageRecord `json:"pages" bson:"pages"`
	Edges      []LinkEdge   `json:"edges" bson:"edges"`
	Stats      CrawlStats   `json:"stats" bson:"stats"`
}

// LinkEdge is one directed edge in the link graph (from -> to).
type LinkEdge struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Anchor string `json:"anchor,omitempty" bson:"anchor,omitempty"`
}

// CrawlStats summarizes a finished crawl for quick reporting, generalized
// from the teacher's CrawlTierStats (sitemap/html/headless counters).
type CrawlStats struct {
	PagesVisited    int `json:"pages_visited" bson:"pages_visited"`
	PagesSkipped    int `json:"pages_skipped" bson:"pages_skipped"`
	SitemapURLs     int `json:"sitemap_urls" bson:"sitemap_urls"`
	RenderedPages   int `json:"rendered_pages" bson:"rendered_pages"`
	RendererCrashes int `json:"renderer_crashes" bson:"renderer_crashes"`
	Errors          int `json:"errors" bson:"errors"`
}
