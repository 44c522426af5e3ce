package processors

import "github.com/username/caudal/backend/src/models"

// Periods treated as one month when sizing the structural buffer. Calibrated
// for weekly granularity.
const bufferPeriodsPerMonth = 4

// CalculateSurvival converts a KPI snapshot plus credit-line inputs into the
// capital-needs breakdown. Pure function, no iteration: deficit covers the
// projected hole (below zero, or below the safety threshold), the structural
// buffer is one month of average outflow, and the fixed allocation policy
// assigns the buffer to equity and the deficit to bridge financing.
func CalculateSurvival(kpis models.KPISet, safetyThreshold float64, credit models.CreditLine) models.SurvivalAnalysis {
	var deficit float64
	switch {
	case kpis.MinBalance < 0:
		deficit = -kpis.MinBalance
	case kpis.MinBalance < safetyThreshold:
		deficit = safetyThreshold - kpis.MinBalance
	}

	structuralBuffer := kpis.AvgPeriodOutflow * bufferPeriodsPerMonth

	bridge := deficit
	available := credit.Available()
	gap := bridge - available
	if gap < 0 {
		gap = 0
	}

	return models.SurvivalAnalysis{
		Deficit:            deficit,
		StructuralBuffer:   structuralBuffer,
		CapitalTotalNeeded: deficit + structuralBuffer,
		CapitalPropio:      structuralBuffer,
		FinanciacionPuente: bridge,
		CreditLineTotal:    credit.Total,
		CreditLineUsed:     credit.Used,
		CreditAvailable:    available,
		CreditSufficient:   available >= bridge,
		CreditGap:          gap,
		SafetyThreshold:    safetyThreshold,
	}
}
