package render

import "strings"

// frameworkMarkers are DOM/text signatures that indicate a client-side
// rendering framework, ported from
// original_source/backend/app/services/js_crawler.py's
// detect_spa_from_html.
var frameworkMarkers = map[string][]string{
	"react":   {"data-reactroot", "data-reactid", "__next", "_next/static"},
	"vue":     {"data-v-", "__nuxt", "v-cloak"},
	"angular": {"ng-version", "ng-app", "_nghost"},
	"nextjs":  {"__next", "_next/static", "__NEXT_DATA__"},
	"nuxt":    {"__nuxt", "_nuxt/"},
	"gatsby":  {"___gatsby", "gatsby-"},
	"svelte":  {"svelte-"},
	"ember":   {"ember-application", "data-ember-"},
}

// minWordCountForStaticContent is the threshold below which a page is
// considered too thin to have been server-rendered, matching
// should_use_js_rendering's word_count<50 check.
const minWordCountForStaticContent = 50

// DetectFrameworks scans raw HTML for known client-rendering framework
// markers and returns every framework whose signature matched.
func DetectFrameworks(html string) []string {
	lower := strings.ToLower(html)
	var found []string
	for framework, markers := range frameworkMarkers {
		for _, marker := range markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				found = append(found, framework)
				break
			}
		}
	}
	return found
}

// ShouldRender implements C6: the pure predicate deciding whether a page
// needs a JS-rendering pass, ported from should_use_js_rendering.
// staticWordCount is the word count extracted from the page's raw
// (un-rendered) HTML.
func ShouldRender(html string, staticWordCount int) bool {
	if staticWordCount < minWordCountForStaticContent {
		return true
	}
	return len(DetectFrameworks(html)) > 0
}
