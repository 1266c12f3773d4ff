package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/metrics"
	"github.com/guttosm/cycleradar/internal/snapshot"
)

const (
	// DefaultParallel is the number of concurrent fetches when none is configured.
	DefaultParallel = 8
	maxParallel     = 32
)

// Failure kinds reported per symbol.
const (
	KindTransport  = "transport"
	KindInputShape = "input_shape"
	KindOther      = "other"
)

// SeriesFetcher retrieves the raw close series for one symbol.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol string) (*models.RawSeries, error)
}

// Failure describes why a symbol was skipped in a refresh cycle.
type Failure struct {
	Symbol string `json:"symbol" example:"XME"`
	Kind   string `json:"kind" example:"transport"`
	Error  string `json:"error" example:"chart XME: transport error: status 429"`
}

// Report summarizes one refresh cycle.
type Report struct {
	Requested  int           `json:"requested" example:"12"`
	Updated    []string      `json:"updated"`
	Failed     []Failure     `json:"failed"`
	StartedAt  time.Time     `json:"startedAt"`
	DurationMs int64         `json:"durationMs" example:"850"`
	mu         sync.Mutex
}

// Orchestrator fans out per-symbol fetches, computes metrics and merges the
// successful records into the snapshot store.
type Orchestrator struct {
	fetcher  SeriesFetcher
	store    *snapshot.Store
	parallel int
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithParallel bounds the number of in-flight fetches (clamped to 1..32).
func WithParallel(n int) Option {
	return func(o *Orchestrator) {
		if n < 1 {
			n = 1
		}
		if n > maxParallel {
			n = maxParallel
		}
		o.parallel = n
	}
}

// WithClock overrides the time source stamped into records.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Orchestrator writing into store.
func New(fetcher SeriesFetcher, store *snapshot.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:  fetcher,
		store:    store,
		parallel: DefaultParallel,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchOne fetches and computes a single symbol without touching the store.
func (o *Orchestrator) FetchOne(ctx context.Context, symbol string) (models.MetricsRecord, error) {
	symbol = models.NormalizeSymbol(symbol)
	raw, err := o.fetcher.FetchSeries(ctx, symbol)
	if err != nil {
		return models.MetricsRecord{}, err
	}
	return metrics.Compute(symbol, raw, o.now())
}

// Refresh runs one fetch cycle over symbols.
//
// Behavior:
//   - Symbols are trimmed, uppercased and deduplicated.
//   - At most `parallel` fetches run at once.
//   - A symbol that fails keeps its previous record; the failure is logged and
//     listed in the report. Failures never cancel sibling fetches.
//   - Successful records are written to the store as they complete.
//
// Returns:
//   - *Report: updated and failed symbols, both sorted.
func (o *Orchestrator) Refresh(ctx context.Context, symbols []string) *Report {
	log := logger.Component("orchestrator")
	syms := models.NormalizeSymbols(symbols)
	rep := &Report{
		Requested: len(syms),
		Updated:   []string{},
		Failed:    []Failure{},
		StartedAt: o.now(),
	}
	if len(syms) == 0 {
		return rep
	}

	start := time.Now()
	log.Info().Int("symbols", len(syms)).Int("max_parallel", o.parallel).Msg("refresh start")

	// Plain group: a failed symbol must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(o.parallel)

	for _, sym := range syms {
		g.Go(func() error {
			rec, err := o.FetchOne(ctx, sym)
			if err != nil {
				log.Warn().Str("symbol", sym).Str("kind", kindOf(err)).Err(err).Msg("symbol skipped")
				rep.fail(sym, err)
				return nil
			}
			o.store.Put(rec)
			rep.ok(sym)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(rep.Updated)
	sort.Slice(rep.Failed, func(i, j int) bool { return rep.Failed[i].Symbol < rep.Failed[j].Symbol })
	elapsed := time.Since(start)
	rep.DurationMs = elapsed.Milliseconds()

	log.Info().
		Int("updated", len(rep.Updated)).
		Int("failed", len(rep.Failed)).
		Dur("elapsed", elapsed).
		Msg("refresh done")
	return rep
}

func (r *Report) ok(sym string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, sym)
}

func (r *Report) fail(sym string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed = append(r.Failed, Failure{Symbol: sym, Kind: kindOf(err), Error: err.Error()})
}

// Err summarizes failures as a single error, or nil when every symbol updated.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d symbols failed", len(r.Failed), r.Requested)
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, models.ErrTransport):
		return KindTransport
	case errors.Is(err, models.ErrInputShape):
		return KindInputShape
	default:
		return KindOther
	}
}
