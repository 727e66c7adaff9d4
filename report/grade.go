// Package report turns a score.Summarize result into human-facing
// documents (C15): a letter grade, a bounded traffic-impact estimate, and
// the four markdown reports stakeholders/developers/implementers/content
// writers each read. Grounded on
// original_source/backend/app/services/report_generator.py.
package report

import (
	"fmt"

	"github.com/seoaudit/pipeline/models"
)

// Grade converts a 0-100 score to the letter-grade ladder
// report_generator.py's _score_to_grade uses verbatim.
func Grade(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "B+"
	case score >= 80:
		return "B"
	case score >= 75:
		return "C+"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// TrafficImpact is the bounded, deliberately rough estimate
// _estimate_traffic_impact produces — never meant to be precise, only to
// give stakeholders a directional sense of payoff.
type TrafficImpact struct {
	CurrentScore             int
	PotentialScore           int
	PotentialTrafficIncrease string // e.g. "12%"
	Confidence               string // "medium" or "low"
}

// EstimateTrafficImpact mirrors _estimate_traffic_impact's weighting
// (critical issues worth 5 points each, high worth 2, medium worth 0.5),
// capped at a potential score of 95 and a traffic increase of 50% so the
// estimate never reads as an unrealistic guarantee.
func EstimateTrafficImpact(currentScore int, results []models.CheckResult) TrafficImpact {
	var critical, high, medium int
	for _, r := range results {
		if r.Passed {
			continue
		}
		switch r.Severity {
		case models.SeverityCritical:
			critical++
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		}
	}

	totalPotential := float64(critical)*5 + float64(high)*2 + float64(medium)*0.5

	potentialScore := currentScore + int(totalPotential)
	if potentialScore > 95 {
		potentialScore = 95
	}

	trafficIncrease := int(totalPotential * 2)
	if trafficIncrease > 50 {
		trafficIncrease = 50
	}

	confidence := "low"
	if critical > 0 {
		confidence = "medium"
	}

	return TrafficImpact{
		CurrentScore:             currentScore,
		PotentialScore:           potentialScore,
		PotentialTrafficIncrease: fmt.Sprintf("%d%%", trafficIncrease),
		Confidence:               confidence,
	}
}
