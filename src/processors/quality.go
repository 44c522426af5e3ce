package processors

import (
	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

// FileOutcomes counts the optional invoice files the caller tried to ingest
// and how many actually parsed. The mandatory bank file is counted as one
// required success on top of these, so a failed optional upload lowers the
// parse success rate instead of disappearing from it.
type FileOutcomes struct {
	OptionalAttempted int
	OptionalParsed    int
}

// AssessQuality scores ingestion completeness and coverage, gating how much
// the projection should be trusted.
func AssessQuality(
	bank []models.BankTransaction,
	sales []models.Invoice,
	purchases []models.Invoice,
	outcomes FileOutcomes,
	warnings []string,
) models.QualityReport {
	coverageDays := 0
	if len(bank) > 0 {
		minDate, maxDate := bank[0].Date, bank[0].Date
		for _, tx := range bank[1:] {
			if tx.Date.Before(minDate) {
				minDate = tx.Date
			}
			if tx.Date.After(maxDate) {
				maxDate = tx.Date
			}
		}
		coverageDays = int(maxDate.Sub(minDate).Hours() / 24)
	}
	coverageMonths := float64(coverageDays) / 30.0

	parseRate := float64(1+outcomes.OptionalParsed) / float64(1+outcomes.OptionalAttempted)

	hasSales := len(sales) > 0
	hasPurchases := len(purchases) > 0

	metrics := models.QualityMetrics{
		BankTransactions:     len(bank),
		SalesInvoices:        len(sales),
		PurchaseInvoices:     len(purchases),
		CoverageDays:         coverageDays,
		CoverageMonths:       coverageMonths,
		ParseSuccessRate:     parseRate,
		HasFutureCollections: hasSales,
		HasFuturePayments:    hasPurchases,
		WarningsCount:        len(warnings),
	}

	level := confidenceLevel(coverageMonths, parseRate, hasSales, hasPurchases, len(warnings))
	logger.L.Info("Data quality assessed", "coverageMonths", coverageMonths, "confidence", level)

	return models.QualityReport{
		CoverageMonths:  coverageMonths,
		ConfidenceLevel: level,
		Metrics:         metrics,
		Warnings:        warnings,
	}
}

// confidenceLevel applies the additive scoring rule: up to 3 points for
// coverage, 2 for invoice completeness, 2 for parse quality, minus 1 when
// warnings pile up. high >= 6, medium >= 3, low otherwise.
func confidenceLevel(coverageMonths, parseRate float64, hasSales, hasPurchases bool, warningsCount int) models.Confidence {
	score := 0

	switch {
	case coverageMonths >= 6:
		score += 3
	case coverageMonths >= 3:
		score += 2
	case coverageMonths >= 1:
		score++
	}

	switch {
	case hasSales && hasPurchases:
		score += 2
	case hasSales || hasPurchases:
		score++
	}

	switch {
	case parseRate >= 0.9:
		score += 2
	case parseRate >= 0.7:
		score++
	}

	if warningsCount > 5 {
		score--
	}

	switch {
	case score >= 6:
		return models.ConfidenceHigh
	case score >= 3:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
