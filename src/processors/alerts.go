package processors

import (
	"fmt"
	"sort"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

// Alert rule thresholds. Runway limits are period counts and so inherit the
// active granularity (calibrated for weekly periods).
const (
	minCoverageMonths     = 3.0
	runwayCriticalPeriods = 12
	runwayLimitedPeriods  = 24
	creditUsageHighPct    = 80.0
	creditUsageMediumPct  = 50.0
	outflowSpikeFactor    = 2.0
)

// GenerateAlerts evaluates every rule independently over the KPI snapshot,
// survival analysis, base cashflow periods and quality metrics, then sorts
// the result by severity (high, medium, low; ties keep generation order).
// With an empty projection only the data-quality rules can fire.
func GenerateAlerts(
	kpis models.KPISet,
	survival models.SurvivalAnalysis,
	periods []models.CashflowPeriod,
	quality models.QualityMetrics,
	granularity models.Granularity,
) []models.Alert {
	var alerts []models.Alert
	unit := granularity.PeriodUnit()

	if quality.CoverageMonths < minCoverageMonths {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityMedium,
			Title:    "Limited data coverage",
			Message: fmt.Sprintf("Only %.1f months of bank history. Not enough data to infer seasonality or reliable patterns.",
				quality.CoverageMonths),
			Evidence:          fmt.Sprintf("coverage: %.1f months (recommended: 6+)", quality.CoverageMonths),
			RecommendedAction: "Upload bank statements covering more months to improve accuracy",
		})
	}

	if !quality.HasFutureCollections && !quality.HasFuturePayments {
		alerts = append(alerts, models.Alert{
			Severity:          models.SeverityLow,
			Title:             "No pending invoices",
			Message:           "Conservative/optimistic scenarios are limited: no known future collections or payments.",
			Evidence:          "no pending sales or purchase invoices detected",
			RecommendedAction: "Upload issued and received invoice files to improve future scenarios",
		})
	}

	if len(periods) > 0 {
		alerts = append(alerts, balanceAlerts(kpis, survival, unit)...)
		alerts = append(alerts, creditAlerts(survival)...)
		if spike, ok := outflowSpike(periods); ok {
			alerts = append(alerts, spike)
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})

	logger.L.Info("Alerts generated", "total", len(alerts), "high", countSeverity(alerts, models.SeverityHigh))
	return alerts
}

func balanceAlerts(kpis models.KPISet, survival models.SurvivalAnalysis, unit string) []models.Alert {
	var alerts []models.Alert

	if kpis.MinBalance < 0 {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityHigh,
			Title:    "Negative balance risk",
			Message: fmt.Sprintf("The balance is projected to drop below zero, reaching %.2f around %s.",
				kpis.MinBalance, kpis.MinBalanceDate),
			Evidence:          fmt.Sprintf("min_balance = %.2f on %s", kpis.MinBalance, kpis.MinBalanceDate),
			RecommendedAction: "Secure immediate financing or postpone large payments",
		})
	} else if kpis.MinBalance < survival.SafetyThreshold {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityMedium,
			Title:    "Safety threshold breach",
			Message: fmt.Sprintf("The balance falls below the safety threshold (%.2f), reaching %.2f.",
				survival.SafetyThreshold, kpis.MinBalance),
			Evidence:          fmt.Sprintf("min_balance = %.2f, threshold = %.2f", kpis.MinBalance, survival.SafetyThreshold),
			RecommendedAction: "Review non-critical spending and prioritize collections",
		})
	}

	if kpis.RunwayPeriods < runwayCriticalPeriods {
		alerts = append(alerts, models.Alert{
			Severity:          models.SeverityHigh,
			Title:             "Short runway",
			Message:           fmt.Sprintf("Only %d %s before a projected deficit.", kpis.RunwayPeriods, unit),
			Evidence:          fmt.Sprintf("runway = %d periods", kpis.RunwayPeriods),
			RecommendedAction: "Accelerate pending collections and cut non-essential spending urgently",
		})
	} else if kpis.RunwayPeriods < runwayLimitedPeriods {
		alerts = append(alerts, models.Alert{
			Severity:          models.SeverityMedium,
			Title:             "Limited runway",
			Message:           fmt.Sprintf("Roughly %d %s of margin before trouble.", kpis.RunwayPeriods, unit),
			Evidence:          fmt.Sprintf("runway = %d periods", kpis.RunwayPeriods),
			RecommendedAction: "Start lining up financing options and optimize collections",
		})
	}

	return alerts
}

func creditAlerts(survival models.SurvivalAnalysis) []models.Alert {
	var alerts []models.Alert

	if survival.CreditLineTotal > 0 {
		usagePct := survival.FinanciacionPuente / survival.CreditLineTotal * 100
		if usagePct > creditUsageHighPct {
			alerts = append(alerts, models.Alert{
				Severity: models.SeverityHigh,
				Title:    "Critical credit dependency",
				Message:  fmt.Sprintf("%.1f%% of the credit line would be needed.", usagePct),
				Evidence: fmt.Sprintf("bridge financing needed: %.2f, credit available: %.2f",
					survival.FinanciacionPuente, survival.CreditAvailable),
				RecommendedAction: "Diversify financing sources to reduce dependency on the credit line",
			})
		} else if usagePct > creditUsageMediumPct {
			alerts = append(alerts, models.Alert{
				Severity:          models.SeverityMedium,
				Title:             "Significant credit usage",
				Message:           fmt.Sprintf("Roughly %.1f%% of the credit line would be used.", usagePct),
				Evidence:          fmt.Sprintf("bridge financing needed: %.2f", survival.FinanciacionPuente),
				RecommendedAction: "Monitor usage and prepare a fallback if the line is not enough",
			})
		}
	}

	if survival.CreditGap > 0 {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityHigh,
			Title:    "Financing gap",
			Message:  fmt.Sprintf("An additional %.2f is needed even with the credit line fully drawn.", survival.CreditGap),
			Evidence: fmt.Sprintf("gap %.2f = need (%.2f) - credit available (%.2f)",
				survival.CreditGap, survival.FinanciacionPuente, survival.CreditAvailable),
			RecommendedAction: "URGENT: seek additional capital (investors, loan, payment deferrals)",
		})
	}

	return alerts
}

// outflowSpike flags a single period whose outflow is more than twice the
// mean, a payment concentration worth smoothing.
func outflowSpike(periods []models.CashflowPeriod) (models.Alert, bool) {
	var total, max float64
	maxIdx := 0
	for i, p := range periods {
		total += p.Outflows
		if p.Outflows > max {
			max = p.Outflows
			maxIdx = i
		}
	}
	mean := total / float64(len(periods))
	if mean <= 0 || max <= mean*outflowSpikeFactor {
		return models.Alert{}, false
	}
	peak := periods[maxIdx].PeriodStart.Format(dateFormat)
	return models.Alert{
		Severity: models.SeverityMedium,
		Title:    "Payment concentration",
		Message: fmt.Sprintf("Outflow peak of %.2f in the period starting %s (more than double the %.2f average).",
			max, peak, mean),
		Evidence:          fmt.Sprintf("max_outflow = %.2f at %s, mean = %.2f", max, peak, mean),
		RecommendedAction: "Negotiate staggering of large payments or secure temporary liquidity",
	}, true
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityHigh:
		return 0
	case models.SeverityMedium:
		return 1
	default:
		return 2
	}
}

func countSeverity(alerts []models.Alert, severity models.Severity) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == severity {
			n++
		}
	}
	return n
}
