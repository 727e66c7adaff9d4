package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 81-90: mobile, grounded on audit_engine.py's
// _run_mobile_checks. Most of this category needs rendered-layout
// measurement (tap targets, font size, viewport overflow) this crawler's
// static/DOM extraction can't produce and degrades to unavailable().
func init() {
	register(81, checkMissingViewportMeta)
	register(82, checkViewportNotResponsive)
	register(83, checkTapTargetsTooSmall)
	register(84, checkFontSizeTooSmall)
	register(85, checkContentWiderThanScreen)
	register(86, checkIntrusiveInterstitials)
	register(87, checkMobileOnly404s)
	register(88, checkFlashContent)
	register(89, checkPluginsRequired)
	register(90, checkTouchElementsTooClose)
}

func checkMissingViewportMeta(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if !p.ViewportMeta {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no viewport meta tag", len(urls)))
}

func checkViewportNotResponsive(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if !p.ViewportMeta {
			continue
		}
		if !strings.Contains(strings.ToLower(p.ViewportContent), "width=device-width") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a viewport tag that doesn't set width=device-width", len(urls)))
}

func checkTapTargetsTooSmall(ctx *Context) models.CheckResult {
	return unavailable("rendered tap-target size measurement isn't performed by this crawler")
}

func checkFontSizeTooSmall(ctx *Context) models.CheckResult {
	return unavailable("rendered font-size measurement isn't performed by this crawler")
}

func checkContentWiderThanScreen(ctx *Context) models.CheckResult {
	return unavailable("rendered layout width measurement isn't performed by this crawler")
}

func checkIntrusiveInterstitials(ctx *Context) models.CheckResult {
	return unavailable("interstitial/overlay detection isn't performed by this crawler")
}

func checkMobileOnly404s(ctx *Context) models.CheckResult {
	return unavailable("this crawler fetches with a single user agent, not separate desktop/mobile passes")
}

func checkFlashContent(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.HasPluginContent {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("embed Flash content", len(urls)))
}

func checkPluginsRequired(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.HasPluginContent {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("require a browser plugin to render embedded content", len(urls)))
}

func checkTouchElementsTooClose(ctx *Context) models.CheckResult {
	return unavailable("rendered element spacing measurement isn't performed by this crawler")
}
