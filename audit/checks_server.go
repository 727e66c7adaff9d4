package audit

import "github.com/seoaudit/pipeline/models"

// Checks 91-100: server, grounded on audit_engine.py's
// _run_server_checks. Checks 93 (redirects) and 95 (302 instead of 301)
// are answered from PageRecord.RedirectStatus, the first 3xx hop captured
// by a RoundTripper in crawl/fetch.go, so they don't need the
// unavailable() fallback. Check 94 (redirect loops) still
// needs multi-hop chain tracking this crawler doesn't do and degrades to
// unavailable(); check 100 (IP canonicalization) would need a second
// fetch by bare IP and also degrades.
func init() {
	register(91, check4xxErrors)
	register(92, check5xxErrors)
	register(93, checkRedirectChains)
	register(94, checkRedirectLoops)
	register(95, check302InsteadOf301)
	register(96, checkMissingCustom404)
	register(97, checkNoBrowserCaching)
	register(98, checkNoCDNDetected)
	register(99, checkSlowServerResponse)
	register(100, checkIPCanonicalization)
}

func check4xxErrors(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.StatusCode >= 400 && p.StatusCode < 500 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("return a 4xx client error", len(urls)))
}

func check5xxErrors(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.StatusCode >= 500 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("return a 5xx server error", len(urls)))
}

func checkRedirectChains(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.RedirectStatus != 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("were reached through at least one redirect", len(urls)))
}

func checkRedirectLoops(ctx *Context) models.CheckResult {
	return unavailable("multi-hop redirect chain tracking isn't performed by this crawler")
}

func check302InsteadOf301(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.RedirectStatus == 302 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("redirect with a 302 where a permanent 301 would be correct", len(urls)))
}

func checkMissingCustom404(ctx *Context) models.CheckResult {
	return boolResult(ctx.HasCustomErrorPage, "a nonexistent path returns a distinct, branded 404 page rather than a generic server default")
}

func checkNoBrowserCaching(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if _, ok := p.ResponseHeaders["Cache-Control"]; !ok {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("send no Cache-Control header", len(urls)))
}

var cdnServerMarkers = []string{"cloudflare", "cloudfront", "akamai", "fastly", "varnish"}

func checkNoCDNDetected(ctx *Context) models.CheckResult {
	for _, p := range ctx.Pages {
		server := p.ResponseHeaders["Server"]
		for _, marker := range cdnServerMarkers {
			if containsFold(server, marker) {
				return boolResult(true, "a CDN was detected via the Server response header")
			}
		}
	}
	return boolResult(false, "no CDN signature was detected via the Server response header")
}

func checkSlowServerResponse(ctx *Context) models.CheckResult {
	return unavailable("per-request server timing isn't captured by this crawler's fetcher")
}

func checkIPCanonicalization(ctx *Context) models.CheckResult {
	return unavailable("a secondary fetch-by-bare-IP comparison isn't performed by this crawler")
}
