package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

const (
	ckSnapshotList         = "snapshot_list_user_%s"
	defaultCacheExpiration = 15 * time.Minute
	cacheCleanupInterval   = 30 * time.Minute
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore persists snapshots in a single SQLite file. The full snapshot
// is stored as a JSON payload; the listing columns are denormalized so the
// index query never has to unmarshal payloads.
type SQLiteStore struct {
	db        *sql.DB
	listCache *cache.Cache
}

// NewSQLiteStore opens (or creates) the database at databasePath and applies
// pending migrations.
func NewSQLiteStore(databasePath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", databasePath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", databasePath, err)
	}
	// Single connection avoids SQLite locking issues.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.L.Info("Snapshot store ready", "path", databasePath)
	return &SQLiteStore{
		db:        db,
		listCache: cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migration driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Save(snap *models.Snapshot) error {
	now := time.Now().UTC()
	snap.SnapshotID = uuid.NewString()
	snap.CreatedAt = now
	snap.LastUpdated = now
	snap.Revision = 1

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	summary := summaryOf(snap)
	_, err = s.db.Exec(`INSERT INTO snapshots
		(snapshot_id, user_id, created_at, last_updated, revision,
		 confidence_level, coverage_months, risk_level, min_balance, capital_needed, credit_gap, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SnapshotID, snap.UserID,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano), snap.Revision,
		string(summary.ConfidenceLevel), summary.CoverageMonths, string(summary.RiskLevel),
		summary.MinBalance, summary.CapitalNeeded, summary.CreditGap, string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	s.listCache.Delete(fmt.Sprintf(ckSnapshotList, snap.UserID))
	logger.L.Info("Snapshot saved", "snapshotID", snap.SnapshotID, "userID", snap.UserID)
	return nil
}

func (s *SQLiteStore) Get(snapshotID, userID string) (*models.Snapshot, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM snapshots WHERE snapshot_id = ? AND user_id = ?`,
		snapshotID, userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", snapshotID, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot %s: %w", snapshotID, err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Update(snap *models.Snapshot) error {
	existing, err := s.Get(snap.SnapshotID, snap.UserID)
	if err != nil {
		return err
	}
	snap.CreatedAt = existing.CreatedAt
	snap.Revision = existing.Revision + 1
	snap.LastUpdated = time.Now().UTC()

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	summary := summaryOf(snap)
	res, err := s.db.Exec(`UPDATE snapshots SET
		last_updated = ?, revision = ?,
		confidence_level = ?, coverage_months = ?, risk_level = ?,
		min_balance = ?, capital_needed = ?, credit_gap = ?, payload = ?
		WHERE snapshot_id = ? AND user_id = ?`,
		snap.LastUpdated.Format(time.RFC3339Nano), snap.Revision,
		string(summary.ConfidenceLevel), summary.CoverageMonths, string(summary.RiskLevel),
		summary.MinBalance, summary.CapitalNeeded, summary.CreditGap, string(payload),
		snap.SnapshotID, snap.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating snapshot %s: %w", snap.SnapshotID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSnapshotNotFound
	}

	s.listCache.Delete(fmt.Sprintf(ckSnapshotList, snap.UserID))
	logger.L.Info("Snapshot updated", "snapshotID", snap.SnapshotID, "revision", snap.Revision)
	return nil
}

func (s *SQLiteStore) List(userID string) ([]models.SnapshotSummary, error) {
	cacheKey := fmt.Sprintf(ckSnapshotList, userID)
	if cached, found := s.listCache.Get(cacheKey); found {
		return cached.([]models.SnapshotSummary), nil
	}

	rows, err := s.db.Query(`SELECT
		snapshot_id, created_at, last_updated, revision,
		confidence_level, coverage_months, risk_level, min_balance, capital_needed, credit_gap
		FROM snapshots WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var summaries []models.SnapshotSummary
	for rows.Next() {
		var (
			summary              models.SnapshotSummary
			createdAt, updatedAt string
			confidence, risk     string
		)
		if err := rows.Scan(&summary.SnapshotID, &createdAt, &updatedAt, &summary.Revision,
			&confidence, &summary.CoverageMonths, &risk,
			&summary.MinBalance, &summary.CapitalNeeded, &summary.CreditGap); err != nil {
			return nil, fmt.Errorf("scanning snapshot summary: %w", err)
		}
		summary.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		summary.LastUpdated, _ = time.Parse(time.RFC3339Nano, updatedAt)
		summary.ConfidenceLevel = models.Confidence(confidence)
		summary.RiskLevel = models.RiskLevel(risk)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot summaries: %w", err)
	}

	s.listCache.Set(cacheKey, summaries, defaultCacheExpiration)
	return summaries, nil
}
