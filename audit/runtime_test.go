package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoaudit/pipeline/models"
)

func TestNewRuntime_RegistersEveryCatalogueCheck(t *testing.T) {
	rt := NewRuntime()
	assert.Equal(t, len(catalogue), len(rt.entries), "every catalogue entry must have a registered implementation")
}

func TestRuntime_RunProducesOneResultPerCheckInOrder(t *testing.T) {
	rt := NewRuntime()
	ctx := &Context{Config: models.CrawlConfig{SeedURL: "https://example.com"}}

	results := rt.Run(ctx)

	require.Len(t, results, len(catalogue))
	for i, r := range results {
		assert.Equal(t, catalogue[i].id, r.CheckID)
		assert.Equal(t, catalogue[i].name, r.Name)
		assert.Equal(t, catalogue[i].category, r.Category)
		assert.Equal(t, catalogue[i].severity, r.Severity)
	}
}

func TestRuntime_RunOneRecoversPanic(t *testing.T) {
	rt := &Runtime{entries: []entry{
		{
			def: checkDef{id: 999, name: "exploding check", category: models.CategoryOnPage, severity: models.SeverityMedium},
			fn:  func(ctx *Context) models.CheckResult { panic("boom") },
		},
	}}

	results := rt.Run(&Context{})

	require.Len(t, results, 1)
	assert.True(t, results[0].Passed, "a panicking rule must not read as a site-side failure")
	assert.True(t, results[0].PanicRecovered)
	assert.Equal(t, 999, results[0].CheckID)
	assert.Contains(t, results[0].Message, "boom")
}

func TestRuntime_RunOnePinsCatalogueFieldsOverImplementation(t *testing.T) {
	rt := &Runtime{entries: []entry{
		{
			def: checkDef{id: 42, name: "canonical check", category: models.CategoryOnPage, severity: models.SeverityHigh},
			fn: func(ctx *Context) models.CheckResult {
				// A sloppy implementation that sets the wrong id/category;
				// runOne must override it from the catalogue definition.
				return models.CheckResult{CheckID: 1, Name: "wrong", Category: models.CategorySecurity, Severity: models.SeverityLow, Passed: true}
			},
		},
	}}

	results := rt.Run(&Context{})

	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].CheckID)
	assert.Equal(t, "canonical check", results[0].Name)
	assert.Equal(t, models.CategoryOnPage, results[0].Category)
	assert.Equal(t, models.SeverityHigh, results[0].Severity)
	assert.True(t, results[0].Passed)
}

func TestNewRuntime_PanicsWhenCheckUnimplemented(t *testing.T) {
	defer func() {
		r := recover()
		assert.NotNil(t, r, "NewRuntime must panic when a catalogue entry has no implementation")
	}()

	orig := catalogue
	catalogue = append(append([]checkDef(nil), catalogue...), checkDef{id: 9999, name: "missing", category: models.CategoryOnPage, severity: models.SeverityLow})
	defer func() { catalogue = orig }()

	NewRuntime()
}
