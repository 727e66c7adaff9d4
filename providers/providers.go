// Package providers models the pipeline's optional, failure-tolerant
// external collaborators (spec's Provider<T> pattern, Design Notes):
// keyword research, page-speed metrics, and LLM-assisted synthesis. Each
// is an interface with a Disabled implementation so the pipeline runs
// end-to-end with none of them configured, matching
// original_source/backend/app/integrations/{dataforseo,pagespeed,llm}.py
// all being optional collaborators the Python original treats the same
// way (catch, log, continue).
package providers

import "context"

// KeywordMetrics is what a keyword provider returns for one term.
type KeywordMetrics struct {
	Keyword       string
	SearchVolume  int
	Difficulty    float64
	RelatedTerms  []string
}

// Keyword is the optional keyword-research collaborator (C provider,
// spec §5 external interfaces), grounded on
// original_source/backend/app/integrations/dataforseo.py.
type Keyword interface {
	Research(ctx context.Context, seedTerms []string) ([]KeywordMetrics, error)
}

// DisabledKeyword always returns an empty result, letting the pipeline
// skip keyword research non-fatally when no provider is configured.
type DisabledKeyword struct{}

func (DisabledKeyword) Research(ctx context.Context, seedTerms []string) ([]KeywordMetrics, error) {
	return nil, nil
}

// PageSpeedReport is the subset of Core Web Vitals the performance
// checks (21-30) consume.
type PageSpeedReport struct {
	URL                   string
	LCPSeconds            float64
	INPMilliseconds       float64
	CLS                   float64
	TTFBMilliseconds      float64
	RenderBlockingScripts int
	UnoptimizedImages     int
	UsesTextCompression   bool
	UsesMinifiedAssets    bool
	ThirdPartyBlockingMS  float64
}

// PageSpeed is the optional Core Web Vitals collaborator, grounded on
// original_source/backend/app/integrations/pagespeed.py.
type PageSpeed interface {
	Analyze(ctx context.Context, url string) (PageSpeedReport, error)
}

// DisabledPageSpeed reports no data for every URL; performance checks
// degrade to "skipped, no provider configured" rather than failing.
type DisabledPageSpeed struct{}

func (DisabledPageSpeed) Analyze(ctx context.Context, url string) (PageSpeedReport, error) {
	return PageSpeedReport{}, errNoProvider
}

var errNoProvider = providerError("providers: no provider configured")

type providerError string

func (e providerError) Error() string { return string(e) }

// LLM is the optional content-synthesis collaborator used to refine
// template classification and write human-readable summaries, grounded
// on original_source/backend/app/integrations/llm.py.
type LLM interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// DisabledLLM returns the prompt unchanged, so downstream formatting
// code always has *something* to render even with no LLM configured.
type DisabledLLM struct{}

func (DisabledLLM) Summarize(ctx context.Context, prompt string) (string, error) {
	return prompt, nil
}
