package entity

import "time"

type ReportType string

const (
	ReportTypePerformance  ReportType = "performance"
	ReportTypeArchitecture ReportType = "architecture"
	ReportTypeOptimization ReportType = "optimization"
	ReportTypeComparison   ReportType = "comparison"
)

type RecommendationPriority string

const (
	PriorityCritical RecommendationPriority = "critical"
	PriorityHigh     RecommendationPriority = "high"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityLow      RecommendationPriority = "low"
)

type Recommendation struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    RecommendationPriority `json:"priority"`
	Impact      string                 `json:"impact"`
	Effort      string                 `json:"effort"`
	Category    string                 `json:"category"`
}

// AnalysisReport is an immutable snapshot of one computation. Global reports
// (architecture comparisons) carry no project id.
type AnalysisReport struct {
	ID                      ID               `json:"id"`
	ProjectID               *ID              `json:"project_id,omitempty"`
	Type                    ReportType       `json:"type"`
	Metrics                 map[string]any   `json:"metrics"`
	ComparisonData          map[string]any   `json:"comparison_data,omitempty"`
	Recommendations         []Recommendation `json:"recommendations"`
	RecommendedArchitecture string           `json:"recommended_architecture,omitempty"`
	PotentialImprovementPct *float64         `json:"potential_improvement_percentage,omitempty"`
	AnalysisPeriodStart     time.Time        `json:"analysis_period_start"`
	AnalysisPeriodEnd       time.Time        `json:"analysis_period_end"`
	CreatedAt               time.Time        `json:"created_at"`
}
