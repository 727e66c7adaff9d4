package extract

import (
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/seoaudit/pipeline/models"
	"lukechampine.com/blake3"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Extractor builds a models.PageRecord from raw HTML (C2). The teacher
// only ever walks the DOM to produce markdown (services/content_helpers.go);
// this is newly built against the field contract
// original_source/backend/app/services/audit_engine.py's CrawlData
// dataclass expects, using the teacher's goquery idiom throughout.
type Extractor struct{}

// NewExtractor builds an Extractor. Stateless today; kept as a type so
// future extraction options (e.g. a max body size) have somewhere to live
// without changing every call site.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract parses html fetched from pageURL and populates every field of a
// PageRecord that doesn't require crawl-time context (status code, depth,
// timing are set by the caller). The second return value is the deduped
// set of same-host links discovered on the page, for the caller to push
// onto its Frontier — link discovery belongs to extraction (it's read
// straight off the DOM) but link *graph storage* is the caller's concern.
func (x *Extractor) Extract(pageURL string, html string) (models.PageRecord, []models.Url, error) {
	rec, links, _, err := x.ExtractWithAnchors(pageURL, html)
	return rec, links, err
}

// ExtractWithAnchors is Extract plus the anchor text of each discovered
// link (keyed by the link's resolved URL string), which checks_linking.go's
// generic-anchor-text check (45) needs and Extract's narrower signature
// has no room for.
func (x *Extractor) ExtractWithAnchors(pageURL string, html string) (models.PageRecord, []models.Url, map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.PageRecord{}, nil, nil, err
	}

	rec := models.PageRecord{URL: pageURL, FinalURL: pageURL}

	rec.Title = strings.TrimSpace(doc.Find("title").First().Text())
	rec.TitleLength = len([]rune(rec.Title))

	rec.MetaDescription, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	rec.MetaDescription = strings.TrimSpace(rec.MetaDescription)
	rec.MetaDescLength = len([]rune(rec.MetaDescription))

	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		rec.H1 = append(rec.H1, strings.TrimSpace(s.Text()))
	})
	rec.H1Count = len(rec.H1)

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		rec.HeadingOrder = append(rec.HeadingOrder, tag)
	})

	rec.CanonicalURL, _ = doc.Find(`link[rel="canonical"]`).First().Attr("href")

	if viewport, ok := doc.Find(`meta[name="viewport"]`).First().Attr("content"); ok && viewport != "" {
		rec.ViewportMeta = true
		rec.ViewportContent = viewport
	}
	rec.CharsetDeclared = doc.Find("meta[charset]").Length() > 0 ||
		doc.Find(`meta[http-equiv="Content-Type"]`).Length() > 0

	rec.Lang, _ = doc.Find("html").First().Attr("lang")

	rec.StructuredTypes = extractJSONLDTypes(doc)
	rec.HasStructuredData = len(rec.StructuredTypes) > 0
	rec.StructuredDataErrors = countInvalidJSONLD(doc)

	rec.HasPluginContent = doc.Find(`object[type="application/x-shockwave-flash"], embed[type="application/x-shockwave-flash"], embed[src$=".swf"]`).Length() > 0

	rec.OpenGraph = extractMetaProperties(doc, "property", "og:")
	rec.TwitterCard = extractMetaProperties(doc, "name", "twitter:")
	rec.Hreflang = extractHreflang(doc)

	robotsContent, _ := doc.Find(`meta[name="robots"]`).First().Attr("content")
	robotsContent = strings.ToLower(robotsContent)
	rec.RobotsNoIndex = strings.Contains(robotsContent, "noindex")
	rec.RobotsNoFollow = strings.Contains(robotsContent, "nofollow")

	base, _ := models.ParseURL(pageURL)
	internal, external := 0, 0
	seenLinks := map[string]bool{}
	var discovered []models.Url
	anchors := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}
		resolved, err := base.Resolve(href)
		if err != nil {
			return
		}
		if resolved.SameHost(base) {
			internal++
			if rel, _ := s.Attr("rel"); strings.Contains(strings.ToLower(rel), "nofollow") {
				rec.InternalNofollowLinks++
			}
			key := resolved.String()
			if !seenLinks[key] {
				seenLinks[key] = true
				discovered = append(discovered, resolved)
				anchors[key] = strings.TrimSpace(s.Text())
			}
		} else {
			external++
		}
	})
	rec.InternalLinks = internal
	rec.ExternalLinks = external
	rec.TotalLinks = internal + external

	images := doc.Find("img")
	rec.ImagesTotal = images.Length()
	images.Each(func(_ int, s *goquery.Selection) {
		alt, _ := s.Attr("alt")
		if strings.TrimSpace(alt) == "" {
			rec.ImagesWithoutAlt++
		}
		src, _ := s.Attr("src")
		width, _ := s.Attr("width")
		height, _ := s.Attr("height")
		rec.Images = append(rec.Images, models.ImageRecord{
			URL:    src,
			Alt:    alt,
			Width:  parseIntAttr(width),
			Height: parseIntAttr(height),
		})
	})

	text := cleanText(doc.Find("body").Text())
	rec.TextContent = text
	rec.WordCount = len(strings.Fields(text))
	rec.TextContentHash = contentHash(strings.ToLower(strings.TrimSpace(text)))

	return rec, discovered, anchors, nil
}

// parseIntAttr parses an <img> width/height attribute, returning 0 for
// anything not a bare integer (e.g. "100%" or "auto") since those don't
// carry a pixel dimension the layout-shift checks can use.
func parseIntAttr(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// cleanText collapses whitespace runs, matching the teacher's
// content_helpers.go cleanText boilerplate-stripping behavior.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// contentHash produces the 128-bit content-addressable digest spec §4.2
// requires, using blake3 truncated to 16 bytes (128 bits) per the
// PageRecord.text_content_hash contract.
func contentHash(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

func extractJSONLDTypes(doc *goquery.Document) []string {
	var types []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		if t := jsonLDTypeHint(body); t != "" {
			types = append(types, t)
		}
	})
	return types
}

// jsonLDTypeHint does a cheap scan for "@type":"X" rather than a full
// JSON unmarshal, since malformed JSON-LD (common in the wild) shouldn't
// abort extraction of the rest of the page.
func jsonLDTypeHint(body string) string {
	idx := strings.Index(body, `"@type"`)
	if idx < 0 {
		return ""
	}
	rest := body[idx+len(`"@type"`):]
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return ""
	}
	rest = strings.TrimSpace(rest[colon+1:])
	if !strings.HasPrefix(rest, `"`) {
		return ""
	}
	rest = rest[1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// countInvalidJSONLD counts ld+json script blocks that aren't valid JSON
// (check 62: schema syntax errors), using json.Valid rather than a full
// Unmarshal since a malformed script shouldn't need a schema to reject.
func countInvalidJSONLD(doc *goquery.Document) int {
	errs := 0
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		if !json.Valid([]byte(body)) {
			errs++
		}
	})
	return errs
}

func extractMetaProperties(doc *goquery.Document, attr, prefix string) map[string]string {
	out := map[string]string{}
	doc.Find("meta[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(attr)
		if !strings.HasPrefix(key, prefix) {
			return
		}
		content, _ := s.Attr("content")
		out[strings.TrimPrefix(key, prefix)] = content
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func extractHreflang(doc *goquery.Document) map[string]string {
	out := map[string]string{}
	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		out[lang] = href
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
