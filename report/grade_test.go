package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seoaudit/pipeline/models"
)

func TestGrade_Ladder(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A+"}, {95, "A+"}, {94, "A"}, {90, "A"},
		{89, "B+"}, {85, "B+"}, {84, "B"}, {80, "B"},
		{79, "C+"}, {75, "C+"}, {74, "C"}, {70, "C"},
		{69, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Grade(c.score), "score %d", c.score)
	}
}

func TestEstimateTrafficImpact_CapsPotentialScoreAndTraffic(t *testing.T) {
	results := make([]models.CheckResult, 0)
	for i := 0; i < 10; i++ {
		results = append(results, models.CheckResult{Severity: models.SeverityCritical, Passed: false})
	}

	impact := EstimateTrafficImpact(50, results)

	assert.Equal(t, 95, impact.PotentialScore, "potential score must cap at 95")
	assert.Equal(t, "50%", impact.PotentialTrafficIncrease, "traffic increase must cap at 50%")
	assert.Equal(t, "medium", impact.Confidence)
}

func TestEstimateTrafficImpact_LowConfidenceWithoutCriticalIssues(t *testing.T) {
	results := []models.CheckResult{
		{Severity: models.SeverityMedium, Passed: false},
	}

	impact := EstimateTrafficImpact(80, results)

	assert.Equal(t, "low", impact.Confidence)
	assert.Equal(t, 80, impact.CurrentScore)
}

func TestEstimateTrafficImpact_IgnoresPassedChecks(t *testing.T) {
	results := []models.CheckResult{
		{Severity: models.SeverityCritical, Passed: true},
	}

	impact := EstimateTrafficImpact(70, results)

	assert.Equal(t, 70, impact.PotentialScore)
	assert.Equal(t, "0%", impact.PotentialTrafficIncrease)
}
