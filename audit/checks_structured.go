package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 61-70: structured data, grounded on audit_engine.py's
// _run_structured_data_checks. Schema-type presence is read off
// PageRecord.StructuredTypes (a cheap "@type" scan, not a schema.org
// validator); checks needing product/local-business/review page detection
// (66, 67, 69) or required-property validation per schema type (70) fall
// back to unavailable(), since extract.go does neither.
func init() {
	register(61, checkNoStructuredData)
	register(62, checkSchemaSyntaxErrors)
	register(63, checkMissingOrganizationSchema)
	register(64, checkMissingBreadcrumbSchema)
	register(65, checkMissingArticleSchema)
	register(66, checkMissingProductSchema)
	register(67, checkMissingLocalBusinessSchema)
	register(68, checkMissingFAQSchema)
	register(69, checkMissingReviewSchema)
	register(70, checkIncompleteSchemaFields)
}

func checkNoStructuredData(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if !p.HasStructuredData {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no structured data at all", len(urls)))
}

func checkSchemaSyntaxErrors(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.StructuredDataErrors > 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have malformed JSON-LD that fails to parse", len(urls)))
}

func checkMissingOrganizationSchema(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth != 0 {
			continue
		}
		if !hasStructuredType(p, "Organization") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("homepage(s) lack Organization schema", len(urls)))
}

func checkMissingBreadcrumbSchema(ctx *Context) models.CheckResult {
	return checkMissingBreadcrumbs(ctx)
}

func checkMissingArticleSchema(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.Depth == 0 || p.WordCount < 300 {
			continue
		}
		if !hasStructuredType(p, "Article") && !hasStructuredType(p, "BlogPosting") && !hasStructuredType(p, "NewsArticle") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("look like long-form content but have no Article schema", len(urls)))
}

func checkMissingProductSchema(ctx *Context) models.CheckResult {
	return unavailable("product-page detection isn't modeled by this crawler")
}

func checkMissingLocalBusinessSchema(ctx *Context) models.CheckResult {
	return unavailable("local-business-page detection isn't modeled by this crawler")
}

func checkMissingFAQSchema(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		looksLikeFAQ := strings.Contains(strings.ToLower(p.Title), "faq") || strings.Contains(strings.ToLower(p.URL), "faq")
		if looksLikeFAQ && !hasStructuredType(p, "FAQPage") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("look like an FAQ page but have no FAQPage schema", len(urls)))
}

func checkMissingReviewSchema(ctx *Context) models.CheckResult {
	return unavailable("review-content detection isn't modeled by this crawler")
}

func checkIncompleteSchemaFields(ctx *Context) models.CheckResult {
	return unavailable("required-property validation per schema type isn't performed by this crawler")
}
