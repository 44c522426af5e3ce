package services

import (
	"fmt"
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
	"github.com/username/caudal/backend/src/parsers"
	"github.com/username/caudal/backend/src/processors"
	"github.com/username/caudal/backend/src/storage"
)

const (
	defaultHorizonMonths = 6
	defaultGranularity   = models.GranularityWeekly
)

type analysisServiceImpl struct {
	statementParser *parsers.StatementParser
	salesParser     *parsers.InvoiceParser
	purchaseParser  *parsers.InvoiceParser
	unifier         *processors.EventUnifier
	projector       *processors.CashflowProjector
	scenarioEngine  *processors.ScenarioEngine
	store           storage.SnapshotStore
	now             func() time.Time
}

// NewAnalysisService wires the full pipeline against the given snapshot store.
func NewAnalysisService(store storage.SnapshotStore) AnalysisService {
	return newAnalysisService(store, time.Now)
}

// NewAnalysisServiceWithClock injects the clock, for deterministic tests.
func NewAnalysisServiceWithClock(store storage.SnapshotStore, now func() time.Time) AnalysisService {
	return newAnalysisService(store, now)
}

func newAnalysisService(store storage.SnapshotStore, now func() time.Time) *analysisServiceImpl {
	projector := processors.NewCashflowProjector()
	return &analysisServiceImpl{
		statementParser: parsers.NewStatementParser(),
		salesParser:     parsers.NewInvoiceParser(models.InvoiceKindSales),
		purchaseParser:  parsers.NewInvoiceParser(models.InvoiceKindPurchase),
		unifier:         processors.NewEventUnifier(),
		projector:       projector,
		scenarioEngine:  processors.NewScenarioEngine(projector),
		store:           store,
		now:             now,
	}
}

// ProcessAnalysis runs one complete analysis: parse the inputs, unify the
// events, project the cashflow under the three scenarios, derive survival
// metrics, quality, alerts and the action plan, and persist the snapshot.
// A failing bank file aborts with a specific reason; failing invoice files
// degrade to warnings and lower the confidence level instead.
func (s *analysisServiceImpl) ProcessAnalysis(input AnalysisInput) (*models.Snapshot, error) {
	startTime := s.now()
	if input.BankFile == nil {
		return nil, ErrBankFileRequired
	}
	if input.HorizonMonths <= 0 {
		input.HorizonMonths = defaultHorizonMonths
	}
	if input.Granularity == "" {
		input.Granularity = defaultGranularity
	}

	logger.L.Info("ProcessAnalysis START", "userID", input.UserID,
		"horizonMonths", input.HorizonMonths, "granularity", input.Granularity)

	bank, warnings, err := s.statementParser.Parse(input.BankFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBankParsingFailed, err)
	}

	var (
		sales, purchases []models.Invoice
		outcomes         processors.FileOutcomes
	)
	if input.SalesFile != nil {
		outcomes.OptionalAttempted++
		parsed, invWarnings, err := s.salesParser.Parse(input.SalesFile)
		warnings = append(warnings, invWarnings...)
		if err != nil {
			logger.L.Warn("Sales invoices discarded", "error", err)
			warnings = append(warnings, fmt.Sprintf("sales invoices file could not be used: %v", err))
		} else {
			sales = parsed
			outcomes.OptionalParsed++
		}
	}
	if input.PurchaseFile != nil {
		outcomes.OptionalAttempted++
		parsed, invWarnings, err := s.purchaseParser.Parse(input.PurchaseFile)
		warnings = append(warnings, invWarnings...)
		if err != nil {
			logger.L.Warn("Purchase invoices discarded", "error", err)
			warnings = append(warnings, fmt.Sprintf("purchase invoices file could not be used: %v", err))
		} else {
			purchases = parsed
			outcomes.OptionalParsed++
		}
	}

	now := s.now()
	events := s.unifier.Build(bank, sales, purchases, input.FixedCostsMonthly, input.ConservativeMode, now)

	scenarios := s.scenarioEngine.Generate(events, input.StartingBalance, input.HorizonMonths,
		input.Granularity, input.SafetyThreshold, input.CreditLine, now)
	comparison := s.scenarioEngine.Compare(scenarios)

	// The base scenario doubles as the headline projection.
	base := scenarios[0]

	quality := processors.AssessQuality(bank, sales, purchases, outcomes, warnings)
	alerts := processors.GenerateAlerts(base.KPIs, base.Survival, base.Cashflow, quality.Metrics, input.Granularity)
	plan := processors.BuildActionPlan(alerts, base.KPIs, base.Survival)
	creditUsage := processors.SimulateCreditUsage(base.Cashflow, input.CreditLine)

	inputs := models.AnalysisInputs{
		StartingBalance:   input.StartingBalance,
		HorizonMonths:     input.HorizonMonths,
		Granularity:       input.Granularity,
		SafetyThreshold:   input.SafetyThreshold,
		FixedCostsMonthly: input.FixedCostsMonthly,
		ConservativeMode:  input.ConservativeMode,
		CreditLine:        input.CreditLine,
	}
	summary := buildExecutiveSummary(inputs, base.KPIs, base.Survival, alerts, quality, scenarios)

	snap := &models.Snapshot{
		UserID:     input.UserID,
		Inputs:     inputs,
		Events:     events,
		Cashflow:   base.Cashflow,
		KPIs:       base.KPIs,
		Survival:   base.Survival,
		Scenarios:  scenarios,
		Comparison: comparison,
		Quality:    quality,
		Alerts:     alerts,
		Plan:       plan,
		Credit:     creditUsage,
		Summary:    summary,
	}
	if err := s.store.Save(snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	logger.L.Info("ProcessAnalysis DONE", "snapshotID", snap.SnapshotID,
		"risk", snap.KPIs.RiskLevel, "alerts", len(alerts), "took", time.Since(startTime))
	return snap, nil
}

func (s *analysisServiceImpl) RefineSnapshot(snapshotID, userID, report string) (*models.Snapshot, error) {
	snap, err := s.store.Get(snapshotID, userID)
	if err != nil {
		return nil, err
	}
	snap.Report = report
	if err := s.store.Update(snap); err != nil {
		return nil, err
	}
	logger.L.Info("Snapshot refined", "snapshotID", snapshotID, "revision", snap.Revision)
	return snap, nil
}

func (s *analysisServiceImpl) GetSnapshot(snapshotID, userID string) (*models.Snapshot, error) {
	return s.store.Get(snapshotID, userID)
}

func (s *analysisServiceImpl) ListSnapshots(userID string) ([]models.SnapshotSummary, error) {
	return s.store.List(userID)
}
