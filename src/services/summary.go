package services

import (
	"fmt"

	"github.com/username/caudal/backend/src/models"
)

const recommendedCoverageMonths = 6.0

// buildExecutiveSummary condenses one analysis into the handful of facts an
// owner acts on: status, runway, the one thing to do today, the one thing to
// do this week, and what data would sharpen the next run.
func buildExecutiveSummary(
	inputs models.AnalysisInputs,
	kpis models.KPISet,
	survival models.SurvivalAnalysis,
	alerts []models.Alert,
	quality models.QualityReport,
	scenarios []models.Scenario,
) models.ExecutiveSummary {
	var highAlerts, mediumAlerts []models.Alert
	for _, a := range alerts {
		switch a.Severity {
		case models.SeverityHigh:
			highAlerts = append(highAlerts, a)
		case models.SeverityMedium:
			mediumAlerts = append(mediumAlerts, a)
		}
	}

	var actionToday string
	switch {
	case len(highAlerts) > 0:
		actionToday = highAlerts[0].RecommendedAction
	case kpis.MinBalance < 0:
		actionToday = "Contact your bank and suppliers to renegotiate terms: the projected balance goes negative"
	case survival.FinanciacionPuente > 0:
		actionToday = fmt.Sprintf("Request bridge financing of %.0f to cover the projected deficit", survival.FinanciacionPuente)
	case len(mediumAlerts) > 0:
		actionToday = "Review pending collections and chase overdue invoices"
	default:
		actionToday = "Situation stable: review the cashflow weekly"
	}

	var actionWeek string
	switch kpis.RiskLevel {
	case models.RiskHigh:
		actionWeek = "Build a contingency plan: reducible expenses, negotiable suppliers, customers to chase"
	case models.RiskMedium:
		actionWeek = "Review every invoice pending collection and set payment reminders"
	default:
		actionWeek = "Plan investments or a reserve for surplus cash"
	}

	var missingData []string
	if quality.CoverageMonths < recommendedCoverageMonths {
		missingData = append(missingData, fmt.Sprintf(
			"Bank statements covering more months (you have %.1f, recommended %.0f+)",
			quality.CoverageMonths, recommendedCoverageMonths))
	}
	if !quality.Metrics.HasFutureCollections {
		missingData = append(missingData, "Issued invoices pending collection (to project future income)")
	}
	if !quality.Metrics.HasFuturePayments {
		missingData = append(missingData, "Received invoices pending payment (to project future expenses)")
	}
	if inputs.FixedCostsMonthly == 0 {
		missingData = append(missingData, "Monthly fixed costs (rent, payroll, subscriptions)")
	}
	if inputs.CreditLine.Total == 0 {
		missingData = append(missingData, "Available credit line (to size your financing capacity)")
	}

	var statusExplanation string
	switch kpis.RiskLevel {
	case models.RiskHigh:
		statusExplanation = "Critical situation: immediate action required"
	case models.RiskMedium:
		statusExplanation = "Attention needed: monitor closely"
	default:
		statusExplanation = "Healthy situation: keep up the routine review"
	}

	var confidenceNote string
	switch quality.ConfidenceLevel {
	case models.ConfidenceHigh:
		confidenceNote = "High confidence: data is complete and consistent"
	case models.ConfidenceMedium:
		confidenceNote = "Medium confidence: some data is missing or limited"
	default:
		confidenceNote = "Low confidence: insufficient data, projections are very uncertain"
	}

	limited := len(scenarios) > 0 && scenarios[0].Limited
	var scenarioExplanation string
	if limited {
		scenarioExplanation = "Scenarios barely differ because no pending sales or purchase invoices were provided; the projection rests on bank history and fixed costs alone"
	} else {
		scenarioExplanation = "Scenarios differ in the timing of future collections: delayed in the conservative case, advanced in the optimistic one"
	}

	return models.ExecutiveSummary{
		Status:              kpis.RiskLevel,
		RunwayPeriods:       kpis.RunwayPeriods,
		RunwayUnit:          inputs.Granularity.PeriodUnit(),
		ActionToday:         actionToday,
		ActionWeek:          actionWeek,
		MissingData:         missingData,
		StatusExplanation:   statusExplanation,
		ConfidenceNote:      confidenceNote,
		ScenarioExplanation: scenarioExplanation,
		MinBalance:          kpis.MinBalance,
		MinBalanceDate:      kpis.MinBalanceDate,
		CapitalNeeded:       survival.CapitalTotalNeeded,
		CreditGap:           survival.CreditGap,
	}
}
