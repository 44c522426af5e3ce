package processors

import (
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

const (
	// Scenario timing perturbations, applied only to projected sales
	// collections. Bank history, purchase invoices and fixed costs are
	// never shifted.
	conservativeDelayDays = 15
	optimisticAdvanceDays = -7
)

// ScenarioEngine re-runs the projector and survival calculator under timing
// perturbations of uncertain future collections.
type ScenarioEngine struct {
	projector *CashflowProjector
}

func NewScenarioEngine(projector *CashflowProjector) *ScenarioEngine {
	return &ScenarioEngine{projector: projector}
}

// Generate produces the three scenarios in fixed order: base, conservative
// (collections +15 days), optimistic (collections -7 days). Perturbed runs
// work on copies; the base event list is never mutated. When the event list
// has no invoice-sourced events all scenarios are marked limited and the
// perturbed ones say so, instead of presenting identical numbers as
// meaningful alternatives.
func (e *ScenarioEngine) Generate(
	events []models.CashEvent,
	startingBalance float64,
	horizonMonths int,
	granularity models.Granularity,
	safetyThreshold float64,
	credit models.CreditLine,
	now time.Time,
) []models.Scenario {
	hasInvoiceData := false
	for _, ev := range events {
		if ev.Source == models.SourceInvoiceSales || ev.Source == models.SourceInvoicePurchase {
			hasInvoiceData = true
			break
		}
	}

	limitedNote := "based on bank history only (no pending invoices to adjust)"

	run := func(key, name, desc string, evs []models.CashEvent, limited bool) models.Scenario {
		cashflow, kpis := e.projector.Project(evs, startingBalance, horizonMonths, granularity, safetyThreshold, now)
		return models.Scenario{
			Key:         key,
			Name:        name,
			Description: desc,
			Cashflow:    cashflow,
			KPIs:        kpis,
			Survival:    CalculateSurvival(kpis, safetyThreshold, credit),
			Limited:     limited,
		}
	}

	consDesc := "collections delayed +15 days"
	optDesc := "collections accelerated -7 days"
	if !hasInvoiceData {
		consDesc = limitedNote
		optDesc = limitedNote
	}

	scenarios := []models.Scenario{
		run("base", "Base scenario", "projection with data as provided", events, !hasInvoiceData),
		run("conservative", "Conservative scenario", consDesc,
			shiftSalesCollections(events, conservativeDelayDays), !hasInvoiceData),
		run("optimistic", "Optimistic scenario", optDesc,
			shiftSalesCollections(events, optimisticAdvanceDays), !hasInvoiceData),
	}

	logger.L.Info("Scenarios generated", "limited", !hasInvoiceData)
	return scenarios
}

// Compare builds the side-by-side table, one row per scenario in generation
// order.
func (e *ScenarioEngine) Compare(scenarios []models.Scenario) []models.ScenarioComparisonRow {
	rows := make([]models.ScenarioComparisonRow, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, models.ScenarioComparisonRow{
			Scenario:        s.Name,
			MinBalance:      s.KPIs.MinBalance,
			RiskLevel:       s.KPIs.RiskLevel,
			RunwayPeriods:   s.KPIs.RunwayPeriods,
			CapitalNeeded:   s.Survival.CapitalTotalNeeded,
			BridgeFinancing: s.Survival.FinanciacionPuente,
			CreditGap:       s.Survival.CreditGap,
		})
	}
	return rows
}

// shiftSalesCollections returns a copy of the event list with every
// projected sales collection moved by the given number of days.
func shiftSalesCollections(events []models.CashEvent, days int) []models.CashEvent {
	shifted := make([]models.CashEvent, len(events))
	copy(shifted, events)
	for i := range shifted {
		if shifted[i].Source == models.SourceInvoiceSales {
			shifted[i].Date = shifted[i].Date.AddDate(0, 0, days)
		}
	}
	return shifted
}
