package processors

import (
	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

const (
	// Timeline entries kept for display.
	usageTimelineLimit = 10
	// Interest estimate assumes weekly periods.
	periodsPerYear = 52
)

// SimulateCreditUsage walks the projected periods drawing on the credit line
// whenever the balance goes negative, and reports peak usage, duration and a
// rough interest cost. A zero credit line yields the empty result.
func SimulateCreditUsage(periods []models.CashflowPeriod, credit models.CreditLine) models.CreditUsage {
	if credit.Total == 0 {
		return models.CreditUsage{}
	}

	currentUsed := credit.Used
	maxUsage := credit.Used
	maxUsageDate := ""
	periodsUsingCredit := 0
	var usageAccum float64

	timeline := make([]models.CreditUsagePoint, 0, len(periods))
	for _, period := range periods {
		if period.Balance < 0 {
			needed := -period.Balance
			if currentUsed+needed <= credit.Total {
				currentUsed += needed
			} else {
				currentUsed = credit.Total
			}
		}

		if currentUsed > maxUsage {
			maxUsage = currentUsed
			maxUsageDate = period.PeriodStart.Format(dateFormat)
		}
		if currentUsed > credit.Used {
			periodsUsingCredit++
			usageAccum += currentUsed
		}

		timeline = append(timeline, models.CreditUsagePoint{
			Period:          period.PeriodStart.Format(dateFormat),
			CreditUsed:      currentUsed,
			CreditAvailable: credit.Total - currentUsed,
		})
	}

	var estimatedInterest float64
	if periodsUsingCredit > 0 {
		avgUsage := usageAccum / float64(periodsUsingCredit)
		durationYears := float64(periodsUsingCredit) / periodsPerYear
		estimatedInterest = avgUsage * (credit.AnnualInterestRate / 100) * durationYears
	}

	if len(timeline) > usageTimelineLimit {
		timeline = timeline[:usageTimelineLimit]
	}

	usage := models.CreditUsage{
		UsageTimeline:         timeline,
		MaxUsage:              maxUsage,
		MaxUsageDate:          maxUsageDate,
		MaxUsagePct:           maxUsage / credit.Total * 100,
		UsagePeriods:          periodsUsingCredit,
		EstimatedInterestCost: estimatedInterest,
		CreditLineTotal:       credit.Total,
		CreditLineUsedInitial: credit.Used,
	}
	logger.L.Info("Credit usage simulated",
		"maxUsage", usage.MaxUsage, "maxUsagePct", usage.MaxUsagePct, "periods", usage.UsagePeriods)
	return usage
}
