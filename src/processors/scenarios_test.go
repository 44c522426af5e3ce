package processors

import (
	"testing"

	"github.com/username/caudal/backend/src/models"
)

func scenarioFixtureEvents() []models.CashEvent {
	return []models.CashEvent{
		{Date: date(2025, 6, 3), Amount: 500, Source: models.SourceBank},
		{Date: date(2025, 6, 20), Amount: -3000, Source: models.SourceBank},
		{Date: date(2025, 7, 1), Amount: 2000, Source: models.SourceInvoiceSales},
		{Date: date(2025, 7, 10), Amount: -800, Source: models.SourceInvoicePurchase},
	}
}

func TestGenerateScenarioOrderAndKeys(t *testing.T) {
	engine := NewScenarioEngine(NewCashflowProjector())
	scenarios := engine.Generate(scenarioFixtureEvents(), 1000, 2, models.GranularityWeekly, 0, models.CreditLine{}, date(2025, 6, 2))

	if len(scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(scenarios))
	}
	wantKeys := []string{"base", "conservative", "optimistic"}
	for i, key := range wantKeys {
		if scenarios[i].Key != key {
			t.Errorf("scenario[%d].Key = %q, want %q", i, scenarios[i].Key, key)
		}
		if scenarios[i].Limited {
			t.Errorf("scenario %q marked limited with invoice data present", key)
		}
	}
}

func TestGenerateScenarioOrderingProperty(t *testing.T) {
	engine := NewScenarioEngine(NewCashflowProjector())
	scenarios := engine.Generate(scenarioFixtureEvents(), 1000, 2, models.GranularityWeekly, 0, models.CreditLine{}, date(2025, 6, 2))

	base := scenarios[0].KPIs.MinBalance
	conservative := scenarios[1].KPIs.MinBalance
	optimistic := scenarios[2].KPIs.MinBalance

	// Delaying collections can only hurt; advancing them can only help.
	if conservative > base {
		t.Errorf("conservative min balance %v exceeds base %v", conservative, base)
	}
	if optimistic < base {
		t.Errorf("optimistic min balance %v below base %v", optimistic, base)
	}
}

func TestGenerateDoesNotMutateBaseEvents(t *testing.T) {
	events := scenarioFixtureEvents()
	originalDates := make([]string, len(events))
	for i, ev := range events {
		originalDates[i] = ev.Date.String()
	}

	engine := NewScenarioEngine(NewCashflowProjector())
	engine.Generate(events, 1000, 2, models.GranularityWeekly, 0, models.CreditLine{}, date(2025, 6, 2))

	for i, ev := range events {
		if ev.Date.String() != originalDates[i] {
			t.Fatalf("event %d date mutated: %v", i, ev.Date)
		}
	}
}

func TestGenerateLimitedWithoutInvoices(t *testing.T) {
	events := []models.CashEvent{
		{Date: date(2025, 6, 3), Amount: 500, Source: models.SourceBank},
		{Date: date(2025, 6, 10), Amount: -200, Source: models.SourceFixedCosts},
	}

	engine := NewScenarioEngine(NewCashflowProjector())
	scenarios := engine.Generate(events, 1000, 1, models.GranularityWeekly, 0, models.CreditLine{}, date(2025, 6, 2))

	for _, s := range scenarios {
		if !s.Limited {
			t.Errorf("scenario %q not marked limited without invoice events", s.Key)
		}
	}
	// With nothing to shift, the three projections are identical.
	if scenarios[0].KPIs != scenarios[1].KPIs || scenarios[1].KPIs != scenarios[2].KPIs {
		t.Error("limited scenarios should have identical KPIs")
	}
}

func TestCompare(t *testing.T) {
	engine := NewScenarioEngine(NewCashflowProjector())
	scenarios := engine.Generate(scenarioFixtureEvents(), 1000, 2, models.GranularityWeekly, 0, models.CreditLine{Total: 5000}, date(2025, 6, 2))

	rows := engine.Compare(scenarios)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.Scenario != scenarios[i].Name {
			t.Errorf("row[%d].Scenario = %q, want %q", i, row.Scenario, scenarios[i].Name)
		}
		if row.MinBalance != scenarios[i].KPIs.MinBalance {
			t.Errorf("row[%d].MinBalance = %v, want %v", i, row.MinBalance, scenarios[i].KPIs.MinBalance)
		}
		if row.CreditGap != scenarios[i].Survival.CreditGap {
			t.Errorf("row[%d].CreditGap = %v, want %v", i, row.CreditGap, scenarios[i].Survival.CreditGap)
		}
	}
}
