package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// noindexExclusionPatterns are path fragments excluded from "important
// page" classification (check 5): paginated archives, tag/author
// taxonomy pages, query-string variants, and search results are
// routinely noindexed on purpose, so flagging them would be noise.
var noindexExclusionPatterns = []string{"/tag/", "/author/", "/page/", "?", "/search"}

func isExcludedFromNoindexCheck(url string) bool {
	for _, p := range noindexExclusionPatterns {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// Checks 1-10: crawlability. Grounded on audit_engine.py's
// _run_crawlability_checks, which works off the robots.txt policy, the
// sitemap discovery result, and per-page indexing signals rather than
// rendered content.
func init() {
	register(1, checkRobotsPresence)
	register(2, checkRobotsBlockingCritical)
	register(3, checkSitemapPresence)
	register(4, checkSitemapValidity)
	register(5, checkNoindexImportantPages)
	register(6, checkCanonicalPresence)
	register(7, checkCanonicalSelfReferencing)
	register(8, checkXRobotsTag)
	register(9, checkOrphanPagesCrawlability)
	register(10, checkCrawlDepthOver4)
}

func checkRobotsPresence(ctx *Context) models.CheckResult {
	return boolResult(ctx.RobotsFound, "robots.txt was found at /robots.txt")
}

func checkRobotsBlockingCritical(ctx *Context) models.CheckResult {
	return boolResult(!ctx.BlocksCriticalAssets, "robots.txt does not block CSS/JS asset paths needed to render the page")
}

func checkSitemapPresence(ctx *Context) models.CheckResult {
	return boolResult(ctx.SitemapFound, "a sitemap.xml was discovered")
}

func checkSitemapValidity(ctx *Context) models.CheckResult {
	// A missing sitemap has nothing to be invalid, so it can't fail this
	// check independently of check 3.
	return boolResult(!ctx.SitemapFound || ctx.SitemapValid, "sitemap.xml parses as well-formed XML with valid <loc> entries")
}

func checkNoindexImportantPages(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.StatusCode != 200 || !p.RobotsNoIndex {
			continue
		}
		if isExcludedFromNoindexCheck(p.URL) {
			continue
		}
		urls = append(urls, p.URL)
	}
	return affected(urls, countMsg("carry a noindex directive despite not being a tag/author/pagination/search page", len(urls)))
}

func checkCanonicalPresence(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.CanonicalURL == "" {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("are missing a canonical tag", len(urls)))
}

func checkCanonicalSelfReferencing(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.CanonicalURL == "" || p.URL == "" || p.CanonicalURL == p.URL {
			continue
		}
		canonical := strings.TrimSuffix(p.CanonicalURL, "/")
		url := strings.TrimSuffix(p.URL, "/")
		finalURL := strings.TrimSuffix(p.FinalURL, "/")
		if canonical != url && canonical != finalURL {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("point their canonical tag at a different URL", len(urls)))
}

func checkXRobotsTag(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if header, ok := p.ResponseHeaders["X-Robots-Tag"]; ok && containsFold(header, "noindex") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("send an X-Robots-Tag: noindex response header", len(urls)))
}

func checkOrphanPagesCrawlability(ctx *Context) models.CheckResult {
	return orphanPages(ctx)
}

func checkCrawlDepthOver4(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth > 4 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("sit more than 4 links deep from the homepage", len(urls)))
}

// orphanPages is shared by checks 9 and 41 (the Python original defines the
// same "Orphan Pages" check in both the crawlability and internal_linking
// categories).
func orphanPages(ctx *Context) models.CheckResult {
	in := inDegree(ctx.Edges)
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth == 0 {
			continue
		}
		if p.StatusCode < 200 || p.StatusCode >= 300 {
			continue
		}
		if in[p.URL] == 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no discovered internal links pointing to them", len(urls)))
}
