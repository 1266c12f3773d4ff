package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/guregu/null/v6"

	"github.com/guttosm/cycleradar/internal/domain/dto"
	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/orchestrator"
	"github.com/guttosm/cycleradar/internal/sectors"
	"github.com/guttosm/cycleradar/internal/snapshot"
)

var (
	// ErrSectorNotFound is returned for an id that is not in the catalog.
	ErrSectorNotFound = errors.New("sector not found")
	// ErrInvalidSymbol is returned when a symbol is blank after trimming.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// DashboardService defines the operations behind the HTTP API.
type DashboardService interface {
	Overview(ctx context.Context) dto.OverviewResponse
	SectorDetail(ctx context.Context, id string, q dto.StockQuery) (*dto.SectorDetailResponse, error)
	Quotes(ctx context.Context, symbols []string) dto.QuotesResponse
	LiveQuote(ctx context.Context, symbol string) (models.MetricsRecord, error)
	Detail(ctx context.Context, symbol string) *models.QuoteProfile
	Refresh(ctx context.Context) *orchestrator.Report
	Watchlist(ctx context.Context) dto.WatchlistResponse
	AddToWatchlist(ctx context.Context, category, symbol string) (*dto.WatchlistChangeResponse, error)
	RemoveFromWatchlist(ctx context.Context, category, symbol string) (*dto.WatchlistChangeResponse, error)
}

// Refresher runs refresh cycles and one-shot fetches.
type Refresher interface {
	Refresh(ctx context.Context, symbols []string) *orchestrator.Report
	FetchOne(ctx context.Context, symbol string) (models.MetricsRecord, error)
}

// ProfileFetcher retrieves descriptive detail for a symbol.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, symbol string) (*models.QuoteProfile, error)
}

// Watchlist is the subset of watchlist.Service used here.
type Watchlist interface {
	Add(ctx context.Context, category, symbol string) (bool, error)
	Remove(ctx context.Context, category, symbol string) (bool, error)
	ForCategory(category string) ([]string, error)
	All() []string
	Lists() map[string][]string
}

type dashboardService struct {
	catalog   *sectors.Catalog
	store     *snapshot.Store
	refresher Refresher
	profiles  ProfileFetcher
	watchlist Watchlist
}

func NewDashboardService(catalog *sectors.Catalog, store *snapshot.Store, refresher Refresher, profiles ProfileFetcher, watchlist Watchlist) DashboardService {
	return &dashboardService{
		catalog:   catalog,
		store:     store,
		refresher: refresher,
		profiles:  profiles,
		watchlist: watchlist,
	}
}

// RefreshSymbols returns the symbols a refresh cycle covers: every sector
// ETF followed by every watchlist symbol, deduplicated.
func RefreshSymbols(catalog *sectors.Catalog, wl Watchlist) []string {
	syms := catalog.AllETFSymbols()
	syms = append(syms, wl.All()...)
	return models.NormalizeSymbols(syms)
}

func (s *dashboardService) Overview(_ context.Context) dto.OverviewResponse {
	out := dto.OverviewResponse{
		Sectors: make([]dto.SectorSummary, 0, len(s.catalog.Sectors)),
		Cached:  s.store.Len(),
	}
	for _, sec := range s.catalog.Sectors {
		out.Sectors = append(out.Sectors, s.summary(sec))
	}
	return out
}

func (s *dashboardService) SectorDetail(_ context.Context, id string, q dto.StockQuery) (*dto.SectorDetailResponse, error) {
	sec, ok := s.catalog.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSectorNotFound, id)
	}
	syms, err := s.watchlist.ForCategory(id)
	if err != nil {
		return nil, err
	}
	return &dto.SectorDetailResponse{
		SectorSummary: s.summary(sec),
		Stocks:        arrangeStocks(s.quotes(syms, nil), q),
	}, nil
}

func (s *dashboardService) Quotes(_ context.Context, symbols []string) dto.QuotesResponse {
	syms := models.NormalizeSymbols(symbols)
	found := s.store.Select(syms)
	missing := []string{}
	for _, sym := range syms {
		if _, ok := found[sym]; !ok {
			missing = append(missing, sym)
		}
	}
	return dto.QuotesResponse{Quotes: found, Missing: missing}
}

func (s *dashboardService) LiveQuote(ctx context.Context, symbol string) (models.MetricsRecord, error) {
	sym := models.NormalizeSymbol(symbol)
	if sym == "" {
		return models.MetricsRecord{}, ErrInvalidSymbol
	}
	return s.refresher.FetchOne(ctx, sym)
}

// Detail never fails: when the provider is unreachable an unavailable
// placeholder profile is returned.
func (s *dashboardService) Detail(ctx context.Context, symbol string) *models.QuoteProfile {
	sym := models.NormalizeSymbol(symbol)
	p, err := s.profiles.FetchProfile(ctx, sym)
	if err != nil {
		logger.L().Warn().Str("symbol", sym).Err(err).Msg("profile unavailable")
		return models.UnavailableProfile(sym)
	}
	return p
}

func (s *dashboardService) Refresh(ctx context.Context) *orchestrator.Report {
	return s.refresher.Refresh(ctx, RefreshSymbols(s.catalog, s.watchlist))
}

func (s *dashboardService) Watchlist(_ context.Context) dto.WatchlistResponse {
	return dto.WatchlistResponse{
		Version:    s.catalog.Version,
		Categories: s.watchlist.Lists(),
	}
}

func (s *dashboardService) AddToWatchlist(ctx context.Context, category, symbol string) (*dto.WatchlistChangeResponse, error) {
	changed, err := s.watchlist.Add(ctx, category, symbol)
	if err != nil {
		return nil, err
	}
	return s.change(category, symbol, changed)
}

func (s *dashboardService) RemoveFromWatchlist(ctx context.Context, category, symbol string) (*dto.WatchlistChangeResponse, error) {
	changed, err := s.watchlist.Remove(ctx, category, symbol)
	if err != nil {
		return nil, err
	}
	return s.change(category, symbol, changed)
}

func (s *dashboardService) change(category, symbol string, changed bool) (*dto.WatchlistChangeResponse, error) {
	syms, err := s.watchlist.ForCategory(category)
	if err != nil {
		return nil, err
	}
	return &dto.WatchlistChangeResponse{
		Category: category,
		Symbol:   models.NormalizeSymbol(symbol),
		Changed:  changed,
		Symbols:  syms,
	}, nil
}

// summary builds a sector card; temperature follows the lead ETF's drawdown.
func (s *dashboardService) summary(sec sectors.Sector) dto.SectorSummary {
	etfSyms := make([]string, len(sec.ETFs))
	names := make(map[string]string, len(sec.ETFs))
	for i, e := range sec.ETFs {
		etfSyms[i] = e.Symbol
		names[e.Symbol] = e.Name
	}

	temp := sectors.Unknown
	if rec, ok := s.store.Get(sec.LeadETF()); ok && rec.HasPrice() {
		temp = sectors.Temperature(rec.Drawdown)
	}

	count := 0
	if syms, err := s.watchlist.ForCategory(sec.ID); err == nil {
		count = len(syms)
	}

	return dto.SectorSummary{
		Sector:      sec,
		Temperature: temp,
		Quotes:      s.quotes(etfSyms, names),
		StockCount:  count,
	}
}

// quotes resolves cached records in the given order. names overrides labels.
func (s *dashboardService) quotes(symbols []string, names map[string]string) []dto.Quote {
	found := s.store.Select(symbols)
	out := make([]dto.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q := dto.Quote{Symbol: sym}
		var providerName string
		if rec, ok := found[sym]; ok {
			q.Metrics = &rec
			providerName = rec.DisplayName.String
		}
		if n, ok := names[sym]; ok && n != "" {
			q.Label = n
		} else {
			q.Label = s.catalog.Label(sym, providerName)
		}
		out = append(out, q)
	}
	return out
}

// arrangeStocks applies the drawdown filter and then sorts stably.
// Stocks without a value for the sort key always go last, whatever the order.
func arrangeStocks(stocks []dto.Quote, q dto.StockQuery) []dto.Quote {
	out := make([]dto.Quote, 0, len(stocks))
	for _, st := range stocks {
		if q.MinDrawdown > 0 {
			dd := sortValue(st, dto.SortDrawdown)
			if !dd.Valid || dd.Float64 < q.MinDrawdown {
				continue
			}
		}
		out = append(out, st)
	}
	if q.Sort == "" {
		return out
	}

	desc := q.Order == dto.OrderDesc
	slices.SortStableFunc(out, func(a, b dto.Quote) int {
		var c int
		if q.Sort == dto.SortSymbol {
			c = strings.Compare(a.Symbol, b.Symbol)
		} else {
			va, vb := sortValue(a, q.Sort), sortValue(b, q.Sort)
			switch {
			case !va.Valid && !vb.Valid:
				return 0
			case !va.Valid:
				return 1
			case !vb.Valid:
				return -1
			}
			c = cmp.Compare(va.Float64, vb.Float64)
		}
		if desc {
			return -c
		}
		return c
	})
	return out
}

// sortValue returns the metric a stock is ordered by. Drawdown sorts by magnitude.
func sortValue(q dto.Quote, key string) null.Float {
	if q.Metrics == nil {
		return null.Float{}
	}
	switch key {
	case dto.SortDayChange:
		return q.Metrics.DayChangePercent
	case dto.SortMonthChange:
		return q.Metrics.MonthChangePercent
	case dto.SortDrawdown:
		if d := q.Metrics.Drawdown; d.Valid {
			return null.FloatFrom(math.Abs(d.Float64))
		}
	}
	return null.Float{}
}
