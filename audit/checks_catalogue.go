package audit

import "github.com/seoaudit/pipeline/models"

// checkDef is one row of the fixed 100-check catalogue: id, display name,
// category, and severity. Verbatim from
// original_source/backend/app/services/audit_engine.py's ten
// _run_*_checks methods (spec §4.12, C. Supplemented Features #1 in
// SPEC_FULL.md) — ids, names, categories, and severities are not
// invented, they're the same ones the Python original assigns.
type checkDef struct {
	id       int
	name     string
	category models.Category
	severity models.Severity
}

const (
	c  = models.SeverityCritical
	h  = models.SeverityHigh
	m  = models.SeverityMedium
	lo = models.SeverityLow
)

var catalogue = []checkDef{
	{1, "Robots.txt Presence", models.CategoryCrawlability, h},
	{2, "Robots.txt Blocking Critical Resources", models.CategoryCrawlability, c},
	{3, "Sitemap.xml Presence", models.CategoryCrawlability, h},
	{4, "Sitemap Validity", models.CategoryCrawlability, m},
	{5, "Noindex Tags on Important Pages", models.CategoryCrawlability, c},
	{6, "Canonical Tag Presence", models.CategoryCrawlability, m},
	{7, "Canonical Self-Referencing", models.CategoryCrawlability, m},
	{8, "X-Robots-Tag in Headers", models.CategoryCrawlability, h},
	{9, "Orphan Pages", models.CategoryCrawlability, h},
	{10, "Crawl Depth > 4", models.CategoryCrawlability, m},

	{11, "Missing Title Tag", models.CategoryOnPage, h},
	{12, "Title Too Short (<30 chars)", models.CategoryOnPage, m},
	{13, "Title Too Long (>60 chars)", models.CategoryOnPage, lo},
	{14, "Duplicate Title Tags", models.CategoryOnPage, h},
	{15, "Missing Meta Description", models.CategoryOnPage, h},
	{16, "Meta Description Length", models.CategoryOnPage, lo},
	{17, "Missing H1", models.CategoryOnPage, h},
	{18, "Multiple H1s", models.CategoryOnPage, m},
	{19, "Heading Hierarchy Broken", models.CategoryOnPage, lo},
	{20, "Missing Image Alt Text", models.CategoryOnPage, m},

	{21, "LCP > 2.5s", models.CategoryPerformance, h},
	{22, "INP > 200ms", models.CategoryPerformance, m},
	{23, "CLS > 0.1", models.CategoryPerformance, h},
	{24, "TTFB > 800ms", models.CategoryPerformance, m},
	{25, "Render-Blocking Resources", models.CategoryPerformance, h},
	{26, "Uncompressed Images", models.CategoryPerformance, m},
	{27, "Missing Image Dimensions", models.CategoryPerformance, m},
	{28, "No Text Compression", models.CategoryPerformance, m},
	{29, "Unminified CSS/JS", models.CategoryPerformance, lo},
	{30, "Third-Party Script Impact", models.CategoryPerformance, m},

	{31, "URL Length > 100 chars", models.CategoryURLStructure, lo},
	{32, "Non-ASCII Characters", models.CategoryURLStructure, m},
	{33, "Underscores in URLs", models.CategoryURLStructure, lo},
	{34, "Uppercase in URLs", models.CategoryURLStructure, lo},
	{35, "Trailing Slash Inconsistency", models.CategoryURLStructure, m},
	{36, "URL Depth > 4 levels", models.CategoryURLStructure, m},
	{37, "Dynamic Parameters", models.CategoryURLStructure, m},
	{38, "Session IDs in URLs", models.CategoryURLStructure, h},
	{39, "Duplicate Content URLs", models.CategoryURLStructure, h},
	{40, "Missing Keywords in URL", models.CategoryURLStructure, lo},

	{41, "Orphan Pages", models.CategoryInternalLinking, h},
	{42, "Broken Internal Links (404)", models.CategoryInternalLinking, h},
	{43, "Redirect Chains (Internal)", models.CategoryInternalLinking, m},
	{44, "Nofollow on Internal Links", models.CategoryInternalLinking, m},
	{45, "Generic Anchor Text", models.CategoryInternalLinking, m},
	{46, "Low Internal Link Count", models.CategoryInternalLinking, m},
	{47, "High Internal Link Count", models.CategoryInternalLinking, lo},
	{48, "Missing Breadcrumbs", models.CategoryInternalLinking, lo},
	{49, "Deep Pages (> 4 clicks)", models.CategoryInternalLinking, m},
	{50, "Pagination Issues", models.CategoryInternalLinking, m},

	{51, "Thin Content (< 300 words)", models.CategoryContent, h},
	{52, "Duplicate Content (Internal)", models.CategoryContent, h},
	{53, "Near-Duplicate Content", models.CategoryContent, m},
	{54, "Missing Content", models.CategoryContent, h},
	{55, "Keyword Stuffing", models.CategoryContent, m},
	{56, "Outdated Content", models.CategoryContent, lo},
	{57, "Broken Images", models.CategoryContent, m},
	{58, "Missing OpenGraph Tags", models.CategoryContent, lo},
	{59, "Missing Twitter Cards", models.CategoryContent, lo},
	{60, "Low Readability Score", models.CategoryContent, lo},

	{61, "No Structured Data", models.CategoryStructuredData, m},
	{62, "Schema Syntax Errors", models.CategoryStructuredData, h},
	{63, "Missing Organization Schema", models.CategoryStructuredData, m},
	{64, "Missing Breadcrumb Schema", models.CategoryStructuredData, lo},
	{65, "Missing Article Schema", models.CategoryStructuredData, m},
	{66, "Missing Product Schema", models.CategoryStructuredData, h},
	{67, "Missing LocalBusiness Schema", models.CategoryStructuredData, h},
	{68, "Missing FAQ Schema", models.CategoryStructuredData, lo},
	{69, "Missing Review Schema", models.CategoryStructuredData, m},
	{70, "Incomplete Schema Fields", models.CategoryStructuredData, m},

	{71, "Not HTTPS", models.CategorySecurity, c},
	{72, "Mixed Content", models.CategorySecurity, h},
	{73, "Missing SSL Certificate", models.CategorySecurity, c},
	{74, "Expired SSL Certificate", models.CategorySecurity, c},
	{75, "Missing HSTS Header", models.CategorySecurity, m},
	{76, "Missing Language Declaration", models.CategorySecurity, m},
	{77, "Missing/Invalid Hreflang", models.CategorySecurity, h},
	{78, "Low Color Contrast", models.CategorySecurity, lo},
	{79, "Missing Form Labels", models.CategorySecurity, m},
	{80, "Missing Skip Links", models.CategorySecurity, lo},

	{81, "Missing Viewport Meta", models.CategoryMobile, h},
	{82, "Viewport Not Responsive", models.CategoryMobile, h},
	{83, "Tap Targets Too Small", models.CategoryMobile, m},
	{84, "Font Size Too Small", models.CategoryMobile, m},
	{85, "Content Wider Than Screen", models.CategoryMobile, h},
	{86, "Intrusive Interstitials", models.CategoryMobile, m},
	{87, "Mobile-Only 404s", models.CategoryMobile, h},
	{88, "Flash Content", models.CategoryMobile, h},
	{89, "Plugins Required", models.CategoryMobile, h},
	{90, "Touch Elements Too Close", models.CategoryMobile, m},

	{91, "4xx Errors", models.CategoryServer, h},
	{92, "5xx Errors", models.CategoryServer, c},
	{93, "Redirect Chains", models.CategoryServer, m},
	{94, "Redirect Loops", models.CategoryServer, h},
	{95, "302 Instead of 301", models.CategoryServer, m},
	{96, "Missing Custom 404 Page", models.CategoryServer, lo},
	{97, "No Browser Caching", models.CategoryServer, lo},
	{98, "No CDN Detected", models.CategoryServer, lo},
	{99, "Slow Server Response", models.CategoryServer, m},
	{100, "IP Canonicalization", models.CategoryServer, m},
}
