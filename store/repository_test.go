package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportKey_MatchesStorageLayout(t *testing.T) {
	key := ReportKey("tenant-a", "site-1", "run-1", "executive-summary.md")
	assert.Equal(t, "tenants/tenant-a/sites/site-1/reports/run-1/executive-summary.md", key)
}

func TestCrawlPageKey_MatchesStorageLayout(t *testing.T) {
	key := CrawlPageKey("tenant-a", "site-1", "crawl-1", "abc123def456")
	assert.Equal(t, "tenants/tenant-a/sites/site-1/crawls/crawl-1/pages/abc123def456.html", key)
}
