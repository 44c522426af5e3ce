// Package storage persists analysis snapshots. The store is injected into
// the analysis service so the core and its tests never depend on a concrete
// filesystem location: SQLite for real deployments, in-memory for tests.
package storage

import (
	"errors"

	"github.com/username/caudal/backend/src/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is the persistence contract for analysis snapshots.
// Implementations assign the snapshot id, timestamps and revision on Save,
// and bump revision/last-updated on Update (the "refine" pass that attaches
// a narrative report). Listings are sorted most recent first and scoped to
// the given user id; an empty user id addresses the unscoped namespace.
type SnapshotStore interface {
	Save(snap *models.Snapshot) error
	Get(snapshotID, userID string) (*models.Snapshot, error)
	Update(snap *models.Snapshot) error
	List(userID string) ([]models.SnapshotSummary, error)
}

func summaryOf(snap *models.Snapshot) models.SnapshotSummary {
	return models.SnapshotSummary{
		SnapshotID:      snap.SnapshotID,
		CreatedAt:       snap.CreatedAt,
		LastUpdated:     snap.LastUpdated,
		Revision:        snap.Revision,
		ConfidenceLevel: snap.Quality.ConfidenceLevel,
		CoverageMonths:  snap.Quality.CoverageMonths,
		RiskLevel:       snap.KPIs.RiskLevel,
		MinBalance:      snap.KPIs.MinBalance,
		CapitalNeeded:   snap.Survival.CapitalTotalNeeded,
		CreditGap:       snap.Survival.CreditGap,
	}
}
