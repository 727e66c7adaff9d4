package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/providers"
)

// sectionWords group URL path segments into the same template_classifier.py
// keyword buckets (blog, product, category, info, faq, legal).
var sectionWords = map[string][]string{
	"blog_post":        {"blog", "news", "article", "articles", "posts", "noticias"},
	"product_page":     {"product", "products", "item", "shop", "store", "producto", "productos"},
	"category_page":    {"category", "categories", "cat", "collection", "categoria"},
	"info_page":        {"contact", "contacto", "about", "sobre", "about-us", "sobre-nosotros"},
	"faq_page":         {"faq", "faqs", "help", "ayuda", "preguntas"},
	"legal_page":       {"privacy", "terms", "legal", "policy", "privacidad", "cookies"},
}

// ClassifyTemplates groups pages by structural similarity the way
// template_classifier.py's _group_pages_by_structure does: a signature
// derived from URL path shape plus coarse content-size buckets, any
// signature with fewer than two members folded into "_other_". Each
// template's name is its title-cased signature; a configured
// providers.LLM writes its description, and with DisabledLLM (or nil) a
// fixed description is used, so classification still runs end-to-end
// with no LLM wired.
func ClassifyTemplates(ctx context.Context, siteURL string, pages []models.PageRecord, llm providers.LLM) (models.TemplateClassification, error) {
	groups := map[string][]models.PageRecord{}
	for _, p := range pages {
		sig := pageSignature(p)
		groups[sig] = append(groups[sig], p)
	}

	merged := map[string][]models.PageRecord{}
	var other []models.PageRecord
	for sig, members := range groups {
		if len(members) >= 2 {
			merged[sig] = members
		} else {
			other = append(other, members...)
		}
	}
	if len(other) > 0 {
		merged["_other_"] = other
	}

	var sigs []string
	for sig := range merged {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)

	classified := map[string]bool{}
	var templates []models.PageTemplate
	for _, sig := range sigs {
		if sig == "_other_" {
			continue
		}
		members := merged[sig]
		name, desc := nameTemplate(ctx, siteURL, sig, members, llm)
		examples := make([]string, 0, 5)
		for i, p := range members {
			classified[p.URL] = true
			if i < 5 {
				examples = append(examples, p.URL)
			}
		}
		templates = append(templates, models.PageTemplate{
			ID:          sig,
			Name:        name,
			Description: desc,
			PageCount:   len(members),
			ExampleURLs: examples,
		})
	}

	var unclassified []string
	for _, p := range pages {
		if !classified[p.URL] {
			unclassified = append(unclassified, p.URL)
		}
	}
	if len(unclassified) > 20 {
		unclassified = unclassified[:20]
	}

	return models.TemplateClassification{
		SiteURL:           siteURL,
		TotalPages:        len(pages),
		Templates:         templates,
		UnclassifiedPages: unclassified,
	}, nil
}

// pageSignature is the Go port of _get_page_signature: URL-path-shape
// first, content-size bucket second.
func pageSignature(p models.PageRecord) string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return "unknown"
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "homepage"
	}
	parts := strings.Split(path, "/")

	langPrefix := ""
	if len(parts[0]) == 2 && isAlpha(parts[0]) {
		langPrefix = parts[0]
		parts = parts[1:]
	}
	if len(parts) == 0 {
		if langPrefix != "" {
			return "homepage_" + langPrefix
		}
		return "homepage"
	}

	for bucket, words := range sectionWords {
		if anyPartMatches(parts, words) {
			return withLang(bucket, langPrefix)
		}
	}

	urlPattern := urlPattern(parts)
	contentType := contentBucket(p)

	sigParts := []string{urlPattern}
	if langPrefix != "" {
		sigParts = append(sigParts, langPrefix)
	}
	if contentType != "standard" {
		sigParts = append(sigParts, contentType)
	}
	return strings.Join(sigParts, "_")
}

func withLang(bucket, lang string) string {
	if lang == "" {
		return bucket
	}
	return bucket + "_" + lang
}

func anyPartMatches(parts, words []string) bool {
	for _, p := range parts {
		for _, w := range words {
			if p == w {
				return true
			}
		}
	}
	return false
}

func urlPattern(parts []string) string {
	last := parts[len(parts)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 {
		ext := strings.ToLower(last[dot+1:])
		name := last[:dot]
		if ext == "html" && (strings.Contains(name, "-") || len(name) > 10) {
			if len(parts) > 1 {
				return "content_" + truncate(parts[0], 20)
			}
			return "content_page"
		}
		return "file_" + ext
	}
	switch len(parts) {
	case 1:
		return "section_" + truncate(parts[0], 20)
	case 2:
		return "subsection_" + truncate(parts[0], 15)
	default:
		return fmt.Sprintf("deep_content_d%d", len(parts))
	}
}

func contentBucket(p models.PageRecord) string {
	switch {
	case p.WordCount > 1000 && len(p.H1) >= 1 && headingCount(p.HeadingOrder, "h2") >= 3:
		return "long_form"
	case p.ImagesTotal > 5 && p.WordCount < 300:
		return "gallery"
	case p.WordCount < 100:
		return "minimal"
	default:
		return "standard"
	}
}

func headingCount(order []string, tag string) int {
	n := 0
	for _, t := range order {
		if t == tag {
			n++
		}
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// nameTemplate returns a template's name (its title-cased signature) and
// a description written by the LLM collaborator. providers.DisabledLLM
// would just echo the prompt, so with it (or nil) the fallback
// description below is used instead.
func nameTemplate(ctx context.Context, siteURL, sig string, members []models.PageRecord, llm providers.LLM) (string, string) {
	fallbackName := titleCaseSignature(sig)
	fallbackDesc := fmt.Sprintf("%d pages on %s sharing the %q URL/content shape", len(members), siteURL, sig)
	if _, disabled := llm.(providers.DisabledLLM); llm == nil || disabled {
		return fallbackName, fallbackDesc
	}

	prompt := fmt.Sprintf(
		"Name and describe this group of %d pages from %s in one short sentence each. Signature: %s. Example URL: %s",
		len(members), siteURL, sig, firstURL(members),
	)
	summary, err := llm.Summarize(ctx, prompt)
	if err != nil || summary == "" {
		return fallbackName, fallbackDesc
	}
	return fallbackName, summary
}

func firstURL(pages []models.PageRecord) string {
	if len(pages) == 0 {
		return ""
	}
	return pages[0].URL
}

func titleCaseSignature(sig string) string {
	words := strings.Split(sig, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
