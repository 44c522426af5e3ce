package models

// Severity of an alert. Display order is high, medium, low.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Alert is a derived, stateless warning with its evidence and a suggested
// next step. Alerts live only inside the snapshot that produced them.
type Alert struct {
	Severity          Severity `json:"severity"`
	Title             string   `json:"title"`
	Message           string   `json:"message"`
	Evidence          string   `json:"evidence"`
	RecommendedAction string   `json:"recommended_action"`
}

// ActionItem is one entry of the action plan.
type ActionItem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ActionPlan buckets recommended actions into three fixed time horizons.
// Each bucket is capped so the plan stays actionable rather than exhaustive.
type ActionPlan struct {
	Immediate  []ActionItem `json:"immediate"`   // next 7 days
	ShortTerm  []ActionItem `json:"short_term"`  // next 30 days
	MediumTerm []ActionItem `json:"medium_term"` // next 90 days
}
