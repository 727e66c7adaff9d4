package audit

import (
	"fmt"
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// implementations is populated by each checks_*.go file's init().
var implementations = map[int]CheckFunc{}

func register(id int, fn CheckFunc) {
	implementations[id] = fn
}

// affected builds a CheckResult from the list of URLs a check flagged:
// passed iff nothing was flagged, matching the Python original's
// `passed=len(X) == 0` idiom used by the large majority of checks.
func affected(urls []string, message string) models.CheckResult {
	return models.CheckResult{
		Passed:        len(urls) == 0,
		AffectedCount: len(urls),
		AffectedURLs:  cap50(urls),
		Message:       message,
	}
}

// boolResult builds a CheckResult from a single site-wide boolean,
// matching checks like has_sitemap/has_ssl/has_custom_404 where passed
// isn't a count of affected pages.
func boolResult(passed bool, message string) models.CheckResult {
	r := models.CheckResult{Passed: passed, Message: message}
	if !passed {
		r.AffectedCount = 1
	}
	return r
}

func countMsg(label string, n int) string {
	if n == 0 {
		return fmt.Sprintf("no pages %s", label)
	}
	return fmt.Sprintf("%d page(s) %s", n, label)
}

func isHTTPS(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(rawURL), "https://")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// unavailable reports a check as passed-but-unevaluated when the signal
// it needs isn't modeled by this crawler (real TLS certificate
// inspection, rendered-layout metrics like tap-target size). This is the
// same graceful-degradation pattern SPEC_FULL.md's Open Question D
// applies to check 53 (near-duplicate content): never let an unmodeled
// signal silently fail or silently pass as a false positive — say so.
func unavailable(reason string) models.CheckResult {
	return models.CheckResult{
		Passed:  true,
		Message: "not evaluated: " + reason,
		Details: map[string]interface{}{"unavailable": true, "reason": reason},
	}
}

// inDegree counts incoming internal-link edges per destination URL, used
// by the orphan-page checks (9, 41).
func inDegree(edges []models.LinkEdge) map[string]int {
	in := map[string]int{}
	for _, e := range edges {
		in[e.To]++
	}
	return in
}

// headingRank maps a heading tag to its numeric level.
func headingRank(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	default:
		return 0
	}
}

// headingHierarchyBroken reports whether a page's heading sequence skips a
// level going deeper (e.g. h1 straight to h3, never visiting h2).
func headingHierarchyBroken(order []string) bool {
	prev := 0
	for _, tag := range order {
		rank := headingRank(tag)
		if rank == 0 {
			continue
		}
		if prev != 0 && rank > prev+1 {
			return true
		}
		prev = rank
	}
	return false
}

func pathDepth(rawURL string) int {
	u, err := models.ParseURL(rawURL)
	if err != nil {
		return 0
	}
	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "/"))
}
