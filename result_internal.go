package tossup

import (
	"fmt"
	"sort"
	"sync"
)

// internalResultStore keeps records in memory, sorted by ID.
type internalResultStore struct {
	mu      sync.RWMutex
	lastID  uint64
	records []*SimulationRecord
}

func newInternalResultStore() *internalResultStore {
	return &internalResultStore{}
}

// NewMemoryResultStore returns a ResultStore that forgets everything on exit.
func NewMemoryResultStore() ResultStore {
	return newInternalResultStore()
}

func (s *internalResultStore) Put(record *SimulationRecord) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	record.ID = s.lastID
	stored := *record
	s.records = append(s.records, &stored)
	return stored.ID, nil
}

func (s *internalResultStore) Get(id uint64) (*SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := sort.Search(len(s.records), func(i int) bool { return s.records[i].ID >= id })
	if i == len(s.records) || s.records[i].ID != id {
		return nil, fmt.Errorf("%w: %d", ErrSimulationNotFound, id)
	}
	record := *s.records[i]
	return &record, nil
}

func (s *internalResultStore) List() ([]*SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*SimulationRecord, 0, len(s.records))
	for _, r := range s.records {
		record := *r
		records = append(records, &record)
	}
	return records, nil
}

func (s *internalResultStore) Close() error {
	return nil
}
