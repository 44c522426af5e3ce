package models

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the fixed period width used by the cashflow projector.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity validates a user-supplied granularity value.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want daily, weekly or monthly)", s)
	}
}

// PeriodUnit returns the calendar word for one period of this granularity,
// for use in human-facing text. Runway and buffer figures are period counts,
// so the unit depends on the active granularity.
func (g Granularity) PeriodUnit() string {
	switch g {
	case GranularityDaily:
		return "days"
	case GranularityMonthly:
		return "months"
	default:
		return "weeks"
	}
}

// RiskLevel is the three-way projection risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// CashflowPeriod is one bucket of the projection. Periods are contiguous,
// non-overlapping and half-open: an event falls in the period when
// PeriodStart <= date < PeriodEnd.
type CashflowPeriod struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Inflows     float64   `json:"inflows"`
	Outflows    float64   `json:"outflows"` // absolute value
	Net         float64   `json:"net"`
	Balance     float64   `json:"balance"` // running balance at period end
	BelowSafety bool      `json:"below_safety"`
}

// KPISet is a read-only snapshot of scalar metrics derived from one
// projection run.
type KPISet struct {
	MinBalance       float64   `json:"min_balance"`
	MinBalanceDate   string    `json:"min_balance_date"` // start of the minimum-balance period, "" when empty
	RiskLevel        RiskLevel `json:"risk_level"`
	RunwayPeriods    int       `json:"runway_periods"` // periods until the balance first goes negative
	SafetyBreaches   int       `json:"safety_breaches_count"`
	AvgPeriodOutflow float64   `json:"avg_period_outflow"` // burn rate per period
	TotalInflows     float64   `json:"total_inflows"`
	TotalOutflows    float64   `json:"total_outflows"`
	NetPosition      float64   `json:"net_position"`
	StartingBalance  float64   `json:"starting_balance"`
	EndingBalance    float64   `json:"ending_balance"`
	PeriodCount      int       `json:"period_count"`
}
