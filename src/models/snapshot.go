package models

import "time"

// AnalysisInputs echoes the parameters a snapshot was computed from, so a
// stored analysis can be interpreted (and re-run) without external context.
type AnalysisInputs struct {
	StartingBalance   float64     `json:"starting_balance"`
	HorizonMonths     int         `json:"horizon_months"`
	Granularity       Granularity `json:"granularity"`
	SafetyThreshold   float64     `json:"safety_threshold"`
	FixedCostsMonthly float64     `json:"fixed_costs_monthly"`
	ConservativeMode  bool        `json:"conservative_mode"`
	CreditLine        CreditLine  `json:"credit_line"`
}

// ExecutiveSummary is the decision-focused digest of one analysis.
type ExecutiveSummary struct {
	Status              RiskLevel `json:"status"`
	RunwayPeriods       int       `json:"runway_periods"`
	RunwayUnit          string    `json:"runway_unit"`
	ActionToday         string    `json:"action_today"`
	ActionWeek          string    `json:"action_week"`
	MissingData         []string  `json:"missing_data"`
	StatusExplanation   string    `json:"status_explanation"`
	ConfidenceNote      string    `json:"confidence_note"`
	ScenarioExplanation string    `json:"scenario_explanation"`
	MinBalance          float64   `json:"min_balance"`
	MinBalanceDate      string    `json:"min_balance_date"`
	CapitalNeeded       float64   `json:"capital_needed"`
	CreditGap           float64   `json:"credit_gap"`
}

// Snapshot is the full persisted record of one analysis run: inputs, every
// derived structure, and the optional narrative report attached later by the
// reporting layer. Every numeric claim surfaced downstream traces back to a
// field in this payload.
type Snapshot struct {
	SnapshotID  string    `json:"snapshot_id"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
	Revision    int       `json:"revision"`

	Inputs     AnalysisInputs          `json:"inputs"`
	Events     []CashEvent             `json:"events"`
	Cashflow   []CashflowPeriod        `json:"cashflow"`
	KPIs       KPISet                  `json:"kpis"`
	Survival   SurvivalAnalysis        `json:"survival"`
	Scenarios  []Scenario              `json:"scenarios"`
	Comparison []ScenarioComparisonRow `json:"comparison"`
	Quality    QualityReport           `json:"quality"`
	Alerts     []Alert                 `json:"alerts"`
	Plan       ActionPlan              `json:"action_plan"`
	Credit     CreditUsage             `json:"credit_usage"`
	Summary    ExecutiveSummary        `json:"executive_summary"`

	// Report is the narrative text attached by the out-of-scope reporting
	// layer on a later refine pass. Empty on first save.
	Report string `json:"report,omitempty"`
}

// SnapshotSummary is the index entry used by recency-sorted listings.
type SnapshotSummary struct {
	SnapshotID      string     `json:"snapshot_id"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUpdated     time.Time  `json:"last_updated"`
	Revision        int        `json:"revision"`
	ConfidenceLevel Confidence `json:"confidence_level"`
	CoverageMonths  float64    `json:"coverage_months"`
	RiskLevel       RiskLevel  `json:"risk_level"`
	MinBalance      float64    `json:"min_balance"`
	CapitalNeeded   float64    `json:"capital_needed"`
	CreditGap       float64    `json:"credit_gap"`
}
