package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/sectors"
	"github.com/guttosm/cycleradar/internal/storage"
)

var (
	// ErrUnknownCategory is returned for a category that is not a catalog sector.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptySymbol is returned when a symbol is blank after trimming.
	ErrEmptySymbol = errors.New("symbol is empty")
)

// Service keeps the watchlist in memory and writes every change through to
// the repository.
type Service struct {
	repo    storage.WatchlistRepository
	catalog *sectors.Catalog

	mu    sync.RWMutex
	lists map[string][]string
}

// New creates a Service. Until Init runs, the catalog defaults are served.
func New(repo storage.WatchlistRepository, catalog *sectors.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		lists:   catalog.Defaults(),
	}
}

// Init loads the stored watchlist.
//
// Behavior:
//   - When the stored version differs from the catalog version, the stored
//     lists are replaced by the catalog defaults and the version is updated.
//   - Stored categories unknown to the catalog are ignored; missing ones are empty.
//   - On repository failure the defaults stay in memory and the error is returned.
func (s *Service) Init(ctx context.Context) error {
	log := logger.Component("watchlist")

	version, err := s.repo.Version(ctx)
	if err != nil {
		return fmt.Errorf("read watchlist version: %w", err)
	}

	if version != s.catalog.Version {
		defaults := s.catalog.Defaults()
		if err := s.repo.ReplaceAll(ctx, s.catalog.Version, defaults); err != nil {
			return fmt.Errorf("seed watchlist: %w", err)
		}
		s.mu.Lock()
		s.lists = defaults
		s.mu.Unlock()
		log.Info().Str("from", version).Str("to", s.catalog.Version).Msg("watchlist seeded with defaults")
		return nil
	}

	stored, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}

	lists := make(map[string][]string, len(s.catalog.Sectors))
	for _, id := range s.catalog.IDs() {
		lists[id] = models.NormalizeSymbols(stored[id])
	}
	for id := range stored {
		if !s.catalog.Has(id) {
			log.Warn().Str("category", id).Msg("ignoring unknown stored category")
		}
	}

	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()
	log.Info().Int("symbols", len(s.All())).Msg("watchlist loaded")
	return nil
}

// Add appends symbol to category. Adding a symbol already present is a no-op
// and reports added=false.
func (s *Service) Add(ctx context.Context, category, symbol string) (bool, error) {
	if !s.catalog.Has(category) {
		return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	sym := models.NormalizeSymbol(symbol)
	if sym == "" {
		return false, ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[category]
	for _, existing := range current {
		if existing == sym {
			return false, nil
		}
	}

	next := make([]string, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, sym)
	if err := s.repo.Save(ctx, category, next); err != nil {
		return false, fmt.Errorf("save watchlist %s: %w", category, err)
	}
	s.lists[category] = next
	return true, nil
}

// Remove deletes symbol from category; removed=false when it was not listed.
func (s *Service) Remove(ctx context.Context, category, symbol string) (bool, error) {
	if !s.catalog.Has(category) {
		return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	sym := models.NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[category]
	next := make([]string, 0, len(current))
	for _, existing := range current {
		if existing != sym {
			next = append(next, existing)
		}
	}
	if len(next) == len(current) {
		return false, nil
	}
	if err := s.repo.Save(ctx, category, next); err != nil {
		return false, fmt.Errorf("save watchlist %s: %w", category, err)
	}
	s.lists[category] = next
	return true, nil
}

// ForCategory returns a copy of the symbols listed under category.
func (s *Service) ForCategory(category string) ([]string, error) {
	if !s.catalog.Has(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.lists[category]...), nil
}

// All returns every listed symbol once, in catalog order.
func (s *Service) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []string
	for _, id := range s.catalog.IDs() {
		all = append(all, s.lists[id]...)
	}
	return models.NormalizeSymbols(all)
}

// Lists returns a copy of every category.
func (s *Service) Lists() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.lists))
	for id, syms := range s.lists {
		out[id] = append([]string{}, syms...)
	}
	return out
}
