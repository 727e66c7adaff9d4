package models

import "time"

// ReportBundle is the final set of rendered documents for a run (spec
// §4.15), grounded on report_generator.py's GeneratedReport family.
type ReportBundle struct {
	RunID        string    `json:"run_id" bson:"run_id"`
	Grade        string    `json:"grade" bson:"grade"`
	Score        int       `json:"score" bson:"score"`
	TrafficImpact float64  `json:"traffic_impact_estimate" bson:"traffic_impact_estimate"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`

	ExecutiveSummaryMD string `json:"executive_summary_md" bson:"executive_summary_md"`
	TechnicalReportMD  string `json:"technical_report_md" bson:"technical_report_md"`
	ActionPlanMD       string `json:"action_plan_md" bson:"action_plan_md"`
	ContentBriefMD     string `json:"content_brief_md" bson:"content_brief_md"`

	Warnings []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
}
