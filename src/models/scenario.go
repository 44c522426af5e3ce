package models

// Scenario is one complete projection run under a specific timing assumption
// for uncertain future collections. Scenarios are never mutated after
// creation; the comparison table reads them as-is.
type Scenario struct {
	Key         string           `json:"key"` // base, conservative, optimistic
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Cashflow    []CashflowPeriod `json:"cashflow"`
	KPIs        KPISet           `json:"kpis"`
	Survival    SurvivalAnalysis `json:"survival"`
	// Limited is true when the base event list had no invoice-sourced events,
	// so the perturbation could not change anything meaningful.
	Limited bool `json:"limited"`
}

// ScenarioComparisonRow is one line of the side-by-side scenario table.
// Row order is always base, conservative, optimistic.
type ScenarioComparisonRow struct {
	Scenario        string    `json:"scenario"`
	MinBalance      float64   `json:"min_balance"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RunwayPeriods   int       `json:"runway_periods"`
	CapitalNeeded   float64   `json:"capital_needed"`
	BridgeFinancing float64   `json:"bridge_financing"`
	CreditGap       float64   `json:"credit_gap"`
}
