package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 21-30: performance, grounded on audit_engine.py's
// _run_performance_checks. Most of these Core Web Vitals only exist in a
// prior PageSpeed API report, so checks 21-26 and 29-30 consult
// ctx.PageSpeed: with no reports at all they degrade to unavailable(),
// and otherwise they evaluate only the pages that have a report, skipping
// the rest rather than treating missing data as a pass or a fail. Checks 27 (image dimensions) and 28 (text compression)
// are static-HTML/response-header signals the crawler captures itself,
// so they run independently of PageSpeed.
func init() {
	register(21, checkLCP)
	register(22, checkINP)
	register(23, checkCLS)
	register(24, checkTTFB)
	register(25, checkRenderBlocking)
	register(26, checkUncompressedImages)
	register(27, checkMissingImageDimensions)
	register(28, checkNoTextCompression)
	register(29, checkUnminifiedAssets)
	register(30, checkThirdPartyScriptImpact)
}

func pageSpeedReports(ctx *Context) ([]string, bool) {
	if len(ctx.PageSpeed) == 0 {
		return nil, false
	}
	urls := make([]string, 0, len(ctx.Pages))
	for _, p := range ctx.Pages {
		if _, ok := ctx.PageSpeed[p.URL]; ok {
			urls = append(urls, p.URL)
		}
	}
	return urls, true
}

func checkLCP(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].LCPSeconds > 2.5 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("have a Largest Contentful Paint over 2.5s", len(flagged)))
}

func checkINP(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].INPMilliseconds > 200 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("have an Interaction to Next Paint over 200ms", len(flagged)))
}

func checkCLS(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].CLS > 0.1 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("have a Cumulative Layout Shift over 0.1", len(flagged)))
}

func checkTTFB(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].TTFBMilliseconds > 800 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("have a Time to First Byte over 800ms", len(flagged)))
}

func checkRenderBlocking(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].RenderBlockingScripts > 0 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("load render-blocking scripts or stylesheets", len(flagged)))
}

func checkUncompressedImages(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].UnoptimizedImages > 0 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("serve uncompressed or unoptimized images", len(flagged)))
}

func checkMissingImageDimensions(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		for _, img := range p.Images {
			if img.Width == 0 || img.Height == 0 {
				urls = append(urls, p.URL)
				break
			}
		}
	}
	return affected(urls, countMsg("have at least one image missing a width or height attribute", len(urls)))
}

// textCompressionEncodings are the Content-Encoding values that count as
// compression; anything else (including no header at all) fails check 28.
var textCompressionEncodings = map[string]bool{"gzip": true, "br": true, "deflate": true}

func checkNoTextCompression(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		encoding := strings.ToLower(p.ResponseHeaders["Content-Encoding"])
		if !textCompressionEncodings[encoding] {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("are served without gzip/br/deflate text compression", len(urls)))
}

func checkUnminifiedAssets(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if !ctx.PageSpeed[u].UsesMinifiedAssets {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("load unminified CSS or JS", len(flagged)))
}

func checkThirdPartyScriptImpact(ctx *Context) models.CheckResult {
	urls, ok := pageSpeedReports(ctx)
	if !ok {
		return unavailable("no PageSpeed provider configured")
	}
	var flagged []string
	for _, u := range urls {
		if ctx.PageSpeed[u].ThirdPartyBlockingMS > 500 {
			flagged = append(flagged, u)
		}
	}
	return affected(flagged, countMsg("lose more than 500ms to third-party scripts", len(flagged)))
}
