package audit

import (
	"fmt"
	"sort"

	"github.com/seoaudit/pipeline/models"
)

// CheckFunc is one of the 100 rule implementations. Each runs once over
// the whole crawled site and reports which pages (if any) it flagged.
type CheckFunc func(ctx *Context) models.CheckResult

// entry pairs a catalogue definition with its implementation.
type entry struct {
	def checkDef
	fn  CheckFunc
}

// Runtime is the ordered check registry (C11), grounded on
// ugolbck-seofordev's Checker.RunAllChecks() dispatch pattern: checks run
// in a fixed order and a panicking check is recovered and recorded as a
// pass with a warning, not allowed to abort the run or distort the report
// (spec §4.11 edge case — "a single failing check MUST NOT abort the
// other checks").
type Runtime struct {
	entries []entry
}

// NewRuntime builds the runtime from the fixed 100-check catalogue.
func NewRuntime() *Runtime {
	r := &Runtime{}
	for _, def := range catalogue {
		fn, ok := implementations[def.id]
		if !ok {
			panic(fmt.Sprintf("audit: no implementation registered for check %d (%s)", def.id, def.name))
		}
		r.entries = append(r.entries, entry{def: def, fn: fn})
	}
	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].def.id < r.entries[j].def.id })
	return r
}

// Run executes every registered check against ctx in catalogue order.
func (r *Runtime) Run(ctx *Context) []models.CheckResult {
	results := make([]models.CheckResult, 0, len(r.entries))
	for _, e := range r.entries {
		results = append(results, r.runOne(e, ctx))
	}
	return results
}

func (r *Runtime) runOne(e entry, ctx *Context) (result models.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			// A rule bug must never read as a site-side failure in the
			// report, so a recovered panic passes with a warning rather
			// than failing (spec §4.11, §7 error table).
			result = models.CheckResult{
				CheckID:        e.def.id,
				Name:           e.def.name,
				Category:       e.def.category,
				Severity:       e.def.severity,
				Passed:         true,
				Message:        fmt.Sprintf("check panicked: %v", rec),
				PanicRecovered: true,
			}
		}
	}()
	result = e.fn(ctx)
	// Checks are trusted to set id/category/severity from the catalogue,
	// but pin them here too so a sloppy implementation can't desync the
	// report from the fixed catalogue.
	result.CheckID = e.def.id
	result.Name = e.def.name
	result.Category = e.def.category
	result.Severity = e.def.severity
	return result
}
