package processors

import (
	"sort"
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

const dateFormat = "2006-01-02"

// CashflowProjector buckets cash events into fixed-width periods, runs the
// balance forward and derives the KPI snapshot.
type CashflowProjector struct{}

func NewCashflowProjector() *CashflowProjector { return &CashflowProjector{} }

// Project builds the period sequence and KPIs for one event list. The window
// runs from the earliest event to max(latest event, now + horizon), so the
// requested horizon is always fully covered. An empty event list yields an
// empty projection with the starting balance preserved, not an error.
func (p *CashflowProjector) Project(
	events []models.CashEvent,
	startingBalance float64,
	horizonMonths int,
	granularity models.Granularity,
	safetyThreshold float64,
	now time.Time,
) ([]models.CashflowPeriod, models.KPISet) {
	if len(events) == 0 {
		logger.L.Warn("No events provided for cashflow projection")
		return nil, emptyKPIs(startingBalance, safetyThreshold)
	}

	sorted := make([]models.CashEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	windowEnd := now.AddDate(0, 0, horizonMonths*30)
	if last := sorted[len(sorted)-1].Date; last.After(windowEnd) {
		windowEnd = last
	}

	var periods []models.CashflowPeriod
	balance := startingBalance
	next := 0 // index of the first event not yet bucketed
	for start := alignPeriod(sorted[0].Date, granularity); !start.After(windowEnd); {
		end := nextPeriod(start, granularity)

		var inflows, outflows float64
		for next < len(sorted) && sorted[next].Date.Before(end) {
			if amt := sorted[next].Amount; amt > 0 {
				inflows += amt
			} else {
				outflows += -amt
			}
			next++
		}

		net := inflows - outflows
		balance += net
		periods = append(periods, models.CashflowPeriod{
			PeriodStart: start,
			PeriodEnd:   end,
			Inflows:     inflows,
			Outflows:    outflows,
			Net:         net,
			Balance:     balance,
			BelowSafety: balance < safetyThreshold,
		})
		start = end
	}

	kpis := deriveKPIs(periods, startingBalance, safetyThreshold)
	logger.L.Info("Cashflow projected",
		"periods", len(periods), "minBalance", kpis.MinBalance, "risk", kpis.RiskLevel)
	return periods, kpis
}

// alignPeriod floors a date onto its period boundary so every event falls
// inside some period: midnight for daily, Monday for weekly, the first of
// the month for monthly.
func alignPeriod(t time.Time, g models.Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch g {
	case models.GranularityDaily:
		return day
	case models.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		back := (int(day.Weekday()) + 6) % 7 // days since Monday
		return day.AddDate(0, 0, -back)
	}
}

func nextPeriod(t time.Time, g models.Granularity) time.Time {
	switch g {
	case models.GranularityDaily:
		return t.AddDate(0, 0, 1)
	case models.GranularityMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

func deriveKPIs(periods []models.CashflowPeriod, startingBalance, safetyThreshold float64) models.KPISet {
	if len(periods) == 0 {
		return emptyKPIs(startingBalance, safetyThreshold)
	}

	minBalance := periods[0].Balance
	minIdx := 0
	runway := len(periods)
	breaches := 0
	var totalIn, totalOut float64

	for i, period := range periods {
		if period.Balance < minBalance {
			minBalance = period.Balance
			minIdx = i
		}
		if period.Balance < 0 && runway == len(periods) {
			runway = i
		}
		if period.BelowSafety {
			breaches++
		}
		totalIn += period.Inflows
		totalOut += period.Outflows
	}

	return models.KPISet{
		MinBalance:       minBalance,
		MinBalanceDate:   periods[minIdx].PeriodStart.Format(dateFormat),
		RiskLevel:        RiskLevelFor(minBalance, safetyThreshold),
		RunwayPeriods:    runway,
		SafetyBreaches:   breaches,
		AvgPeriodOutflow: totalOut / float64(len(periods)),
		TotalInflows:     totalIn,
		TotalOutflows:    totalOut,
		NetPosition:      totalIn - totalOut,
		StartingBalance:  startingBalance,
		EndingBalance:    periods[len(periods)-1].Balance,
		PeriodCount:      len(periods),
	}
}

// RiskLevelFor is the three-way classification of a projected minimum
// balance against the safety threshold.
func RiskLevelFor(minBalance, safetyThreshold float64) models.RiskLevel {
	switch {
	case minBalance < 0:
		return models.RiskHigh
	case minBalance < safetyThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// emptyKPIs is the well-defined zero projection: no periods, no totals, the
// starting balance carried through unchanged.
func emptyKPIs(startingBalance, safetyThreshold float64) models.KPISet {
	return models.KPISet{
		MinBalance:      startingBalance,
		RiskLevel:       RiskLevelFor(startingBalance, safetyThreshold),
		StartingBalance: startingBalance,
		EndingBalance:   startingBalance,
	}
}
