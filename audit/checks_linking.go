package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 41-50: internal linking, grounded on audit_engine.py's
// _run_internal_linking_checks — mostly driven off the link graph
// (ctx.Edges) rather than any single page's own fields.
func init() {
	register(41, checkOrphanPagesLinking)
	register(42, checkBrokenInternalLinks)
	register(43, checkRedirectChainsInternal)
	register(44, checkNofollowInternalLinks)
	register(45, checkGenericAnchorText)
	register(46, checkLowInternalLinkCount)
	register(47, checkHighInternalLinkCount)
	register(48, checkMissingBreadcrumbs)
	register(49, checkDeepPages)
	register(50, checkPaginationIssues)
}

var genericAnchorPhrases = map[string]bool{
	"click here": true, "here": true, "read more": true, "more": true,
	"link": true, "this link": true, "learn more": true, "more info": true,
}

func checkOrphanPagesLinking(ctx *Context) models.CheckResult {
	return orphanPages(ctx)
}

func checkBrokenInternalLinks(ctx *Context) models.CheckResult {
	status := map[string]int{}
	for _, p := range ctx.Pages {
		status[p.URL] = p.StatusCode
	}
	var urls []string
	for _, e := range ctx.Edges {
		if status[e.To] == 404 {
			urls = append(urls, e.From)
		}
	}
	return affected(urls, countMsg("link internally to a page that returns 404", len(urls)))
}

func checkRedirectChainsInternal(ctx *Context) models.CheckResult {
	redirected := map[string]bool{}
	for _, p := range ctx.Pages {
		if p.RedirectStatus != 0 {
			redirected[p.URL] = true
		}
	}
	var urls []string
	for _, e := range ctx.Edges {
		if redirected[e.To] {
			urls = append(urls, e.From)
		}
	}
	return affected(urls, countMsg("link internally to a URL that redirects instead of the final destination", len(urls)))
}

func checkNofollowInternalLinks(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.InternalNofollowLinks > 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("mark internal links as rel=nofollow", len(urls)))
}

func checkGenericAnchorText(ctx *Context) models.CheckResult {
	seen := map[string]bool{}
	var urls []string
	for _, e := range ctx.Edges {
		if genericAnchorPhrases[strings.ToLower(strings.TrimSpace(e.Anchor))] && !seen[e.From] {
			seen[e.From] = true
			urls = append(urls, e.From)
		}
	}
	return affected(urls, countMsg("use generic anchor text like \"click here\" for an internal link", len(urls)))
}

func checkLowInternalLinkCount(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth == 0 {
			continue
		}
		if p.InternalLinks < 2 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have fewer than 2 outgoing internal links", len(urls)))
}

func checkHighInternalLinkCount(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.InternalLinks > 100 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have more than 100 outgoing internal links", len(urls)))
}

func checkMissingBreadcrumbs(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth == 0 {
			continue
		}
		if !hasStructuredType(p, "BreadcrumbList") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no breadcrumb markup below the homepage", len(urls)))
}

func checkDeepPages(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth > 4 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("are more than 4 clicks from the homepage", len(urls)))
}

func checkPaginationIssues(ctx *Context) models.CheckResult {
	return unavailable("rel=prev/next link inspection isn't extracted by this crawler")
}

func hasStructuredType(p models.PageRecord, want string) bool {
	for _, t := range p.StructuredTypes {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
