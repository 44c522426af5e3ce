package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/username/caudal/backend/src/models"
)

// MemoryStore is an in-memory SnapshotStore for unit tests and ephemeral
// runs. Snapshots are stored by value so callers cannot mutate stored state
// through retained pointers.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]models.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]models.Snapshot)}
}

func (s *MemoryStore) Save(snap *models.Snapshot) error {
	now := time.Now().UTC()
	snap.SnapshotID = uuid.NewString()
	snap.CreatedAt = now
	snap.LastUpdated = now
	snap.Revision = 1

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.SnapshotID] = *snap
	return nil
}

func (s *MemoryStore) Get(snapshotID, userID string) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[snapshotID]
	if !ok || snap.UserID != userID {
		return nil, ErrSnapshotNotFound
	}
	out := snap
	return &out, nil
}

func (s *MemoryStore) Update(snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.snapshots[snap.SnapshotID]
	if !ok || existing.UserID != snap.UserID {
		return ErrSnapshotNotFound
	}
	snap.CreatedAt = existing.CreatedAt
	snap.Revision = existing.Revision + 1
	snap.LastUpdated = time.Now().UTC()
	s.snapshots[snap.SnapshotID] = *snap
	return nil
}

func (s *MemoryStore) List(userID string) ([]models.SnapshotSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var summaries []models.SnapshotSummary
	for id := range s.snapshots {
		snap := s.snapshots[id]
		if snap.UserID != userID {
			continue
		}
		summaries = append(summaries, summaryOf(&snap))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}
