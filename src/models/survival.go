package models

// CreditLine describes the company's available credit facility.
type CreditLine struct {
	Total              float64 `json:"total"`
	Used               float64 `json:"used"`
	AnnualInterestRate float64 `json:"annual_interest_rate,omitempty"` // percent, for the usage simulation
}

// Available returns the undrawn portion of the line, never negative.
func (c CreditLine) Available() float64 {
	if c.Total <= c.Used {
		return 0
	}
	return c.Total - c.Used
}

// SurvivalAnalysis is the capital-needs breakdown derived from one KPI set.
// Invariants: CapitalTotalNeeded == Deficit + StructuralBuffer and
// CreditGap == max(0, FinanciacionPuente - CreditAvailable).
type SurvivalAnalysis struct {
	Deficit            float64 `json:"deficit"`
	StructuralBuffer   float64 `json:"structural_buffer"`
	CapitalTotalNeeded float64 `json:"capital_total_needed"`
	CapitalPropio      float64 `json:"capital_propio_recommended"`  // structural share, recommended as equity
	FinanciacionPuente float64 `json:"financiacion_puente_needed"`  // temporary bridge financing need
	CreditLineTotal    float64 `json:"credit_line_total"`
	CreditLineUsed     float64 `json:"credit_line_used"`
	CreditAvailable    float64 `json:"credit_available"`
	CreditSufficient   bool    `json:"credit_sufficient"`
	CreditGap          float64 `json:"credit_gap"`
	SafetyThreshold    float64 `json:"safety_threshold"`
}

// CreditUsagePoint is one period of the simulated credit-line draw-down.
type CreditUsagePoint struct {
	Period          string  `json:"period"` // period start, YYYY-MM-DD
	CreditUsed      float64 `json:"credit_used"`
	CreditAvailable float64 `json:"credit_available"`
}

// CreditUsage summarizes how the credit line would be drawn over the
// projection if every negative balance were covered from it.
type CreditUsage struct {
	UsageTimeline         []CreditUsagePoint `json:"usage_timeline"` // truncated for display
	MaxUsage              float64            `json:"max_usage"`
	MaxUsageDate          string             `json:"max_usage_date"`
	MaxUsagePct           float64            `json:"max_usage_pct"`
	UsagePeriods          int                `json:"usage_periods"`
	EstimatedInterestCost float64            `json:"estimated_interest_cost"`
	CreditLineTotal       float64            `json:"credit_line_total"`
	CreditLineUsedInitial float64            `json:"credit_line_used_initially"`
}
