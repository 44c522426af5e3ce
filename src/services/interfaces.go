package services

import (
	"errors"
	"io"

	"github.com/username/caudal/backend/src/models"
)

// Common service errors. The bank statement is the only required input, so
// only its failures block an analysis; optional inputs degrade to warnings.
var (
	ErrBankFileRequired  = errors.New("bank statement file is required")
	ErrBankParsingFailed = errors.New("bank statement parsing failed")
)

// AnalysisInput carries one analysis request through the pipeline.
// BankFile is required; everything else is optional or has a default.
type AnalysisInput struct {
	BankFile     io.Reader
	SalesFile    io.Reader // issued invoices (receivables)
	PurchaseFile io.Reader // received invoices (payables)

	StartingBalance   float64
	HorizonMonths     int // default 6
	Granularity       models.Granularity // default weekly
	SafetyThreshold   float64
	FixedCostsMonthly float64
	ConservativeMode  bool
	CreditLine        models.CreditLine
	UserID            string
}

// AnalysisService runs the full ingest → project → analyze → alert pipeline
// for one request and manages the resulting snapshots. Each call builds its
// own state from scratch; nothing is shared across invocations.
type AnalysisService interface {
	ProcessAnalysis(input AnalysisInput) (*models.Snapshot, error)

	// RefineSnapshot attaches a narrative report produced by the external
	// reporting layer, bumping the snapshot revision.
	RefineSnapshot(snapshotID, userID, report string) (*models.Snapshot, error)

	GetSnapshot(snapshotID, userID string) (*models.Snapshot, error)
	ListSnapshots(userID string) ([]models.SnapshotSummary, error)
}
