package snapshot

import (
	"sort"
	"sync"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

// Store holds the latest MetricsRecord per symbol.
//
// It is the only state shared between refresh goroutines and HTTP readers.
// Writers replace whole records per key; readers receive copies, so no
// caller ever observes a half-written record.
type Store struct {
	mu      sync.RWMutex
	records map[string]models.MetricsRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{records: make(map[string]models.MetricsRecord)}
}

// Put replaces the record stored for rec.Symbol.
func (s *Store) Put(rec models.MetricsRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Symbol] = rec
}

// Get returns the record for symbol and whether it exists.
func (s *Store) Get(symbol string) (models.MetricsRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[symbol]
	return rec, ok
}

// Select returns the records present for the given symbols.
// Symbols never fetched successfully are left out rather than invented.
func (s *Store) Select(symbols []string) map[string]models.MetricsRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.MetricsRecord, len(symbols))
	for _, sym := range symbols {
		if rec, ok := s.records[sym]; ok {
			out[sym] = rec
		}
	}
	return out
}

// All returns a copy of every record, sorted by symbol.
func (s *Store) All() []models.MetricsRecord {
	s.mu.RLock()
	out := make([]models.MetricsRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len reports how many symbols have a record.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
