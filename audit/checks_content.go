package audit

import (
	"strings"

	"github.com/seoaudit/pipeline/models"
)

// Checks 51-60: content, grounded on audit_engine.py's
// _run_content_checks. Check 53 (near-duplicate content) is deliberately
// left always-passing with an "unimplemented" detail marker per
// SPEC_FULL.md's Open Question D decision — real near-duplicate detection
// needs a similarity metric (shingling/minhash) this crawler doesn't run,
// and a silent pass would misreport coverage.
func init() {
	register(51, checkThinContent)
	register(52, checkDuplicateContentInternal)
	register(53, checkNearDuplicateContent)
	register(54, checkMissingContent)
	register(55, checkKeywordStuffing)
	register(56, checkOutdatedContent)
	register(57, checkBrokenImages)
	register(58, checkMissingOpenGraph)
	register(59, checkMissingTwitterCard)
	register(60, checkLowReadability)
}

func checkThinContent(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.WordCount > 0 && p.WordCount < 300 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have fewer than 300 words of body content", len(urls)))
}

func checkDuplicateContentInternal(ctx *Context) models.CheckResult {
	byHash := map[string][]string{}
	for _, p := range ctx.Pages {
		if p.TextContentHash == "" || p.WordCount == 0 {
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
	return affected(urls, countMsg("have body text identical (ignoring case and whitespace) to another page on the site", len(urls)))
}

func checkNearDuplicateContent(ctx *Context) models.CheckResult {
	return models.CheckResult{
		Passed:  true,
		Message: "near-duplicate detection requires a similarity metric this pipeline doesn't compute",
		Details: map[string]interface{}{"unavailable": true, "similarity_metric": "unimplemented"},
	}
}

func checkMissingContent(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.WordCount == 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no extractable body text", len(urls)))
}

func checkKeywordStuffing(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.WordCount < 50 || p.TextContent == "" {
			continue
		}
		if dominantWordRatio(p.TextContent) > 0.06 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("repeat a single word often enough to suggest keyword stuffing", len(urls)))
}

// dominantWordRatio is a cheap keyword-density proxy: the share of all
// words taken up by the single most frequent non-trivial word.
func dominantWordRatio(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}
	counts := map[string]int{}
	total := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) < 4 || stopwords[w] {
			continue
		}
		counts[w]++
		total++
	}
	if total == 0 {
		return 0
	}
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return float64(max) / float64(total)
}

var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "your": true,
	"have": true, "will": true, "about": true, "they": true, "their": true,
	"which": true, "there": true, "these": true, "where": true,
}

func checkOutdatedContent(ctx *Context) models.CheckResult {
	return unavailable("publish/last-modified dates aren't extracted by this crawler")
}

func checkBrokenImages(ctx *Context) models.CheckResult {
	return unavailable("per-image fetch verification isn't performed by this crawler")
}

func checkMissingOpenGraph(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if len(p.OpenGraph) == 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no OpenGraph meta tags", len(urls)))
}

func checkMissingTwitterCard(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if len(p.TwitterCard) == 0 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("have no Twitter Card meta tags", len(urls)))
}

func checkLowReadability(ctx *Context) models.CheckResult {
	var urls []string
	for _, p := range ctx.Pages {
		if p.WordCount < 30 || p.TextContent == "" {
			continue
		}
		if fleschApprox(p.TextContent) < 30 {
			urls = append(urls, p.URL)
		}
	}
	return affected(urls, countMsg("score below 30 on an approximate readability scale", len(urls)))
}

// fleschApprox is a lightweight Flesch Reading Ease approximation using
// average sentence length and average word length as syllable proxies
// (no dictionary-based syllable counting is available here).
func fleschApprox(text string) float64 {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 100
	}
	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	totalChars := 0
	for _, w := range words {
		totalChars += len([]rune(w))
	}
	avgWordLen := float64(totalChars) / float64(len(words))
	score := 206.835 - 1.015*avgSentenceLen - 84.6*(avgWordLen/4.7)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
