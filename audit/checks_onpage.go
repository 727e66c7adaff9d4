package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 11-20: on-page, grounded on audit_engine.py's
// _run_onpage_checks — title/meta/heading signals read directly off each
// PageRecord, no external data needed.
func init() {
	register(11, checkMissingTitle)
	register(12, checkTitleTooShort)
	register(13, checkTitleTooLong)
	register(14, checkDuplicateTitles)
	register(15, checkMissingMetaDescription)
	register(16, checkMetaDescriptionLength)
	register(17, checkMissingH1)
	register(18, checkMultipleH1)
	register(19, checkHeadingHierarchyBroken)
	register(20, checkMissingImageAlt)
}

func checkMissingTitle(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Title == "" {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no <title> tag", len(urls)))
}

func checkTitleTooShort(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Title != "" && p.TitleLength < 30 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a title under 30 characters", len(urls)))
}

func checkTitleTooLong(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.TitleLength > 60 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a title over 60 characters", len(urls)))
}

func checkDuplicateTitles(ctx *Context) models.CheckResult {
	counts := map[string]int{}
	for _, p := range ctx.Pages {
		if p.Title != "" {
			counts[normalizeForDuplicateGrouping(p.Title)]++
		}
	}
	var urls []string
	for _, p := range ctx.Pages {
		if p.Title != "" && counts[normalizeForDuplicateGrouping(p.Title)] > 1 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("share a title tag with at least one other page", len(urls)))
}

// normalizeForDuplicateGrouping lowercases and trims text before it's used
// as a duplicate-detection key, so "Home" and "home " group together
// instead of counting as distinct titles/descriptions/content.
func normalizeForDuplicateGrouping(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func checkMissingMetaDescription(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.MetaDescription == "" {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no meta description", len(urls)))
}

func checkMetaDescriptionLength(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.MetaDescription == "" {
			continue
		}
		if p.MetaDescLength < 50 || p.MetaDescLength > 160 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a meta description outside the 50-160 character range", len(urls)))
}

func checkMissingH1(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.H1Count == 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no H1 heading", len(urls)))
}

func checkMultipleH1(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.H1Count > 1 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have more than one H1 heading", len(urls)))
}

func checkHeadingHierarchyBroken(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if headingHierarchyBroken(p.HeadingOrder) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("skip a heading level (e.g. H1 straight to H3)", len(urls)))
}

func checkMissingImageAlt(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.ImagesWithoutAlt > 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have at least one image missing alt text", len(urls)))
}
