package processors

import (
	"math"
	"testing"
	"time"

	"github.com/username/caudal/backend/src/models"
)

func TestProjectBalancesAreCumulative(t *testing.T) {
	now := date(2025, 6, 2) // a Monday
	events := []models.CashEvent{
		{Date: date(2025, 6, 3), Amount: 1000},
		{Date: date(2025, 6, 12), Amount: -400},
	}

	periods, kpis := NewCashflowProjector().Project(events, 500, 1, models.GranularityWeekly, 0, now)
	if len(periods) == 0 {
		t.Fatal("no periods produced")
	}

	// The running balance must equal starting balance plus the nets so far.
	running := 500.0
	for i, p := range periods {
		running += p.Net
		if math.Abs(p.Balance-running) > 1e-9 {
			t.Fatalf("period %d balance = %v, want %v", i, p.Balance, running)
		}
		if math.Abs(p.Net-(p.Inflows-p.Outflows)) > 1e-9 {
			t.Fatalf("period %d net = %v, want inflows-outflows", i, p.Net)
		}
	}

	if kpis.TotalInflows != 1000 || kpis.TotalOutflows != 400 {
		t.Errorf("totals = %v/%v, want 1000/400", kpis.TotalInflows, kpis.TotalOutflows)
	}
	if want := 500 + 1000 - 400; kpis.EndingBalance != float64(want) {
		t.Errorf("ending balance = %v, want %v", kpis.EndingBalance, want)
	}
	if kpis.StartingBalance != 500 {
		t.Errorf("starting balance = %v, want 500", kpis.StartingBalance)
	}
}

func TestProjectSingleLargeOutflow(t *testing.T) {
	now := date(2025, 6, 2)
	events := []models.CashEvent{{Date: date(2025, 6, 4), Amount: -6000}}

	_, kpis := NewCashflowProjector().Project(events, 5000, 1, models.GranularityWeekly, 0, now)
	if kpis.MinBalance != -1000 {
		t.Errorf("min balance = %v, want -1000", kpis.MinBalance)
	}
	if kpis.RiskLevel != models.RiskHigh {
		t.Errorf("risk = %v, want high", kpis.RiskLevel)
	}
	if kpis.RunwayPeriods != 0 {
		t.Errorf("runway = %d, want 0 (deficit in the first period)", kpis.RunwayPeriods)
	}
}

func TestProjectEmptyEvents(t *testing.T) {
	periods, kpis := NewCashflowProjector().Project(nil, 2500, 6, models.GranularityWeekly, 1000, date(2025, 6, 2))
	if len(periods) != 0 {
		t.Fatalf("got %d periods, want 0", len(periods))
	}
	if kpis.MinBalance != 2500 || kpis.EndingBalance != 2500 {
		t.Errorf("empty projection must carry the starting balance, got %+v", kpis)
	}
	if kpis.PeriodCount != 0 {
		t.Errorf("period count = %d, want 0", kpis.PeriodCount)
	}
	if kpis.RiskLevel != models.RiskLow {
		t.Errorf("risk = %v, want low (2500 above threshold)", kpis.RiskLevel)
	}
}

func TestProjectWeeklyPeriodsStartOnMonday(t *testing.T) {
	// 2025-06-04 is a Wednesday; its week starts Monday 2025-06-02.
	events := []models.CashEvent{{Date: date(2025, 6, 4), Amount: 100}}

	periods, _ := NewCashflowProjector().Project(events, 0, 1, models.GranularityWeekly, 0, date(2025, 6, 4))
	first := periods[0]
	if want := date(2025, 6, 2); !first.PeriodStart.Equal(want) {
		t.Errorf("first period starts %v, want %v", first.PeriodStart, want)
	}
	if first.Inflows != 100 {
		t.Errorf("event not bucketed into its floored period, inflows = %v", first.Inflows)
	}
	for i, p := range periods {
		if p.PeriodStart.Weekday() != time.Monday {
			t.Errorf("period %d starts on %v, want Monday", i, p.PeriodStart.Weekday())
		}
		if want := p.PeriodStart.AddDate(0, 0, 7); !p.PeriodEnd.Equal(want) {
			t.Errorf("period %d end = %v, want %v", i, p.PeriodEnd, want)
		}
	}
}

func TestProjectGranularities(t *testing.T) {
	events := []models.CashEvent{{Date: date(2025, 6, 15), Amount: 100}}
	now := date(2025, 6, 15)

	tests := []struct {
		granularity models.Granularity
		wantStart   time.Time
		wantEnd     time.Time
	}{
		{models.GranularityDaily, date(2025, 6, 15), date(2025, 6, 16)},
		{models.GranularityWeekly, date(2025, 6, 9), date(2025, 6, 16)},
		{models.GranularityMonthly, date(2025, 6, 1), date(2025, 7, 1)},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			periods, _ := NewCashflowProjector().Project(events, 0, 1, tt.granularity, 0, now)
			if !periods[0].PeriodStart.Equal(tt.wantStart) || !periods[0].PeriodEnd.Equal(tt.wantEnd) {
				t.Errorf("first period [%v, %v), want [%v, %v)",
					periods[0].PeriodStart, periods[0].PeriodEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestProjectHorizonCoversQuietTail(t *testing.T) {
	// One event today, six-month horizon: the window must extend past the
	// last event, producing empty trailing periods.
	now := date(2025, 6, 2)
	events := []models.CashEvent{{Date: now, Amount: 100}}

	periods, _ := NewCashflowProjector().Project(events, 0, 6, models.GranularityWeekly, 0, now)
	if len(periods) < 25 {
		t.Fatalf("got %d weekly periods for a 6-month horizon, want at least 25", len(periods))
	}
	last := periods[len(periods)-1]
	if last.Inflows != 0 || last.Outflows != 0 {
		t.Errorf("trailing period should be empty, got %+v", last)
	}
	if last.Balance != 100 {
		t.Errorf("trailing balance = %v, want 100 carried forward", last.Balance)
	}
}

func TestProjectSafetyBreaches(t *testing.T) {
	now := date(2025, 6, 2)
	events := []models.CashEvent{
		{Date: date(2025, 6, 3), Amount: -500},  // balance 500, below 1000
		{Date: date(2025, 6, 10), Amount: 600},  // balance 1100, fine
		{Date: date(2025, 6, 17), Amount: -200}, // balance 900, below again
	}

	// Weeks 1 and 3 dip below the threshold and the quiet trailing weeks of
	// the window inherit the 900 balance, so they count as breaches too.
	periods, kpis := NewCashflowProjector().Project(events, 1000, 1, models.GranularityWeekly, 1000, now)
	if kpis.SafetyBreaches != 4 {
		t.Errorf("safety breaches = %d, want 4", kpis.SafetyBreaches)
	}
	if !periods[0].BelowSafety {
		t.Error("first period should be flagged below safety")
	}
	if kpis.RiskLevel != models.RiskMedium {
		t.Errorf("risk = %v, want medium (positive but below threshold)", kpis.RiskLevel)
	}
	if kpis.MinBalanceDate != "2025-06-02" {
		t.Errorf("min balance date = %q, want 2025-06-02", kpis.MinBalanceDate)
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		minBalance float64
		threshold  float64
		want       models.RiskLevel
	}{
		{-1, 0, models.RiskHigh},
		{0, 0, models.RiskLow},
		{500, 1000, models.RiskMedium},
		{1000, 1000, models.RiskLow},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.minBalance, tt.threshold); got != tt.want {
			t.Errorf("RiskLevelFor(%v, %v) = %v, want %v", tt.minBalance, tt.threshold, got, tt.want)
		}
	}
}
