package processors

import "github.com/username/caudal/backend/src/models"

// Each plan bucket is capped so the plan stays actionable.
const maxItemsPerBucket = 3

// BuildActionPlan buckets the sorted alerts into three fixed time horizons
// by severity (high → immediate, medium → short term, low → medium term) and
// layers a few structural recommendations on top.
func BuildActionPlan(alerts []models.Alert, kpis models.KPISet, survival models.SurvivalAnalysis) models.ActionPlan {
	var plan models.ActionPlan

	for _, alert := range alerts {
		item := models.ActionItem{Title: alert.Title, Detail: alert.RecommendedAction}
		switch alert.Severity {
		case models.SeverityHigh:
			plan.Immediate = appendCapped(plan.Immediate, item)
		case models.SeverityMedium:
			plan.ShortTerm = appendCapped(plan.ShortTerm, item)
		default:
			plan.MediumTerm = appendCapped(plan.MediumTerm, item)
		}
	}

	// Structural recommendations, independent of specific alerts.
	if kpis.RiskLevel != models.RiskLow {
		plan.ShortTerm = appendCapped(plan.ShortTerm, models.ActionItem{
			Title:  "Cost review",
			Detail: "Go through recurring costs and rank them by how easily they can be reduced or paused",
		})
		plan.MediumTerm = appendCapped(plan.MediumTerm, models.ActionItem{
			Title:  "Renegotiate payment terms",
			Detail: "Approach main suppliers and customers to stretch payables and shorten receivables",
		})
	}
	if survival.CapitalTotalNeeded > 0 {
		plan.MediumTerm = appendCapped(plan.MediumTerm, models.ActionItem{
			Title:  "Capital raise",
			Detail: "Prepare an equity or loan round sized to the total capital need",
		})
	}

	return plan
}

func appendCapped(items []models.ActionItem, item models.ActionItem) []models.ActionItem {
	if len(items) >= maxItemsPerBucket {
		return items
	}
	return append(items, item)
}
