package audit

import (
	"regexp"
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 31-40: URL structure, grounded on audit_engine.py's
// _run_url_structure_checks — pure string/path inspection of each page's
// own URL, no crawl-time context needed beyond the page list itself.
func init() {
	register(31, checkURLTooLong)
	register(32, checkURLNonASCII)
	register(33, checkURLUnderscores)
	register(34, checkURLUppercase)
	register(35, checkTrailingSlashInconsistency)
	register(36, checkURLDepthOver4)
	register(37, checkURLDynamicParams)
	register(38, checkURLSessionIDs)
	register(39, checkDuplicateContentURLs)
	register(40, checkURLMissingKeywords)
}

var nonASCIIRe = regexp.MustCompile(`[^\x00-\x7F]`)
var numericSegmentRe = regexp.MustCompile(`^[0-9]+$`)
var sessionIDRe = regexp.MustCompile(`(?i)(sessionid|jsessionid|phpsessid|sid=|session_id)`)

func checkURLTooLong(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if len(p.URL) > 100 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a URL longer than 100 characters", len(urls)))
}

func checkURLNonASCII(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if nonASCIIRe.MatchString(p.URL) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("contain non-ASCII characters in the URL", len(urls)))
}

func checkURLUnderscores(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		u, err := models.ParseURL(p.URL)
		if err != nil {
			continue
		}
		if strings.Contains(u.Path, "_") {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("use underscores instead of hyphens in the URL path", len(urls)))
}

func checkURLUppercase(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		u, err := models.ParseURL(p.URL)
		if err != nil {
			continue
		}
		if u.Path != strings.ToLower(u.Path) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("use uppercase characters in the URL path", len(urls)))
}

func checkTrailingSlashInconsistency(ctx *Context) models.CheckResult {
	withSlash := map[string]bool{}
	withoutSlash := map[string]bool{}
	for _, p := range ctx.Pages {
		u, err := models.ParseURL(p.URL)
		if err != nil || u.Path == "/" {
			continue
		}
		// ParseURL already strips trailing slashes, so inconsistency is
		// reconstructed from the raw URL string instead of the parsed form.
		if strings.HasSuffix(p.URL, "/") {
			withSlash[strings.TrimSuffix(p.URL, "/")] = true
		} else {
			withoutSlash[p.URL] = true
		}
	}
	var urls []string
	for base := range withSlash {
		if withoutSlash[base] {
			urls = append(urls, base, base+"/")
		}
	}
	return affected(urls, countMsg("are reachable both with and without a trailing slash", len(urls)))
}

func checkURLDepthOver4(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if pathDepth(p.URL) > 4 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have a URL path more than 4 levels deep", len(urls)))
}

func checkURLDynamicParams(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		u, err := models.ParseURL(p.URL)
		if err != nil {
			continue
		}
		if u.Query != "" {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("carry dynamic query parameters", len(urls)))
}

func checkURLSessionIDs(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if sessionIDRe.MatchString(p.URL) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("embed a session identifier in the URL", len(urls)))
}

func checkDuplicateContentURLs(ctx *Context) models.CheckResult {
	byHash := map[string][]string{}
	for _, p := range ctx.Pages {
		if p.TextContentHash == "" {
			continue
		}
		byHash[p.TextContentHash] = append(byHash[p.TextContentHash], p.URL)
	}
	var urls []string
	for _, group := range byHash {
		if len(group) > 1 {
			urls = append(urls, group...)
		}
	}
	return affected(urls, countMsg("serve identical content under more than one URL", len(urls)))
}

func checkURLMissingKeywords(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		u, err := models.ParseURL(p.URL)
		if err != nil {
			continue
		}
		trimmed := strings.Trim(u.Path, "/")
		if trimmed == "" {
			continue
		}
		segments := strings.Split(trimmed, "/")
		last := segments[len(segments)-1]
		if numericSegmentRe.MatchString(last) || looksLikeUUID(last) {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("end in a numeric or opaque ID rather than a descriptive slug", len(urls)))
}

func looksLikeUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}
