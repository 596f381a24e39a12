package server

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/google/uuid"
)

// Store keeps uploaded datasets in memory for the life of the process.
type Store struct {
	datasets map[string]*storedDataset
	now      func() time.Time
	mu       sync.RWMutex
}

type storedDataset struct {
	uploaded time.Time
	analysis *model.Analysis
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		datasets: make(map[string]*storedDataset),
		now:      time.Now,
	}
}

// Add stores an analysis and returns its new ID.
func (s *Store) Add(analysis *model.Analysis) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[id] = &storedDataset{analysis: analysis, uploaded: s.now()}
	return id
}

// Get returns the analysis stored under id.
func (s *Store) Get(id string) (*model.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s: %w", id, common.ErrNotFound)
	}
	return d.analysis, nil
}

// Delete removes the dataset stored under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		return fmt.Errorf("dataset %s: %w", id, common.ErrNotFound)
	}
	delete(s.datasets, id)
	return nil
}

// DatasetInfo describes a stored dataset.
type DatasetInfo struct {
	Uploaded time.Time `json:"uploaded"`
	ID       string    `json:"id"`
	Tenants  int       `json:"tenants"`
}

// List describes every stored dataset, oldest first.
func (s *Store) List() []DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]DatasetInfo, 0, len(s.datasets))
	for id, d := range s.datasets {
		infos = append(infos, DatasetInfo{ID: id, Tenants: len(d.analysis.Tenants), Uploaded: d.uploaded})
	}
	slices.SortFunc(infos, func(a, b DatasetInfo) int {
		if c := a.Uploaded.Compare(b.Uploaded); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return infos
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
