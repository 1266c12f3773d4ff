package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v6"

	"github.com/guttosm/cycleradar/internal/domain/dto"
	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/orchestrator"
	"github.com/guttosm/cycleradar/internal/sectors"
	"github.com/guttosm/cycleradar/internal/service"
	"github.com/guttosm/cycleradar/internal/watchlist"
)

type mockDashboard struct {
	overview dto.OverviewResponse
	detail   *dto.SectorDetailResponse
	quotes   dto.QuotesResponse
	rec      models.MetricsRecord
	profile  *models.QuoteProfile
	report   *orchestrator.Report
	change   *dto.WatchlistChangeResponse
	err      error

	gotSymbols  []string
	gotQuery    dto.StockQuery
	gotDeadline time.Time
}

func (m *mockDashboard) Overview(ctx context.Context) dto.OverviewResponse {
	m.gotDeadline, _ = ctx.Deadline()
	return m.overview
}
func (m *mockDashboard) SectorDetail(_ context.Context, _ string, q dto.StockQuery) (*dto.SectorDetailResponse, error) {
	m.gotQuery = q
	return m.detail, m.err
}
func (m *mockDashboard) Quotes(_ context.Context, syms []string) dto.QuotesResponse {
	m.gotSymbols = syms
	return m.quotes
}
func (m *mockDashboard) LiveQuote(context.Context, string) (models.MetricsRecord, error) {
	return m.rec, m.err
}
func (m *mockDashboard) Detail(context.Context, string) *models.QuoteProfile { return m.profile }
func (m *mockDashboard) Refresh(ctx context.Context) *orchestrator.Report {
	m.gotDeadline, _ = ctx.Deadline()
	return m.report
}
func (m *mockDashboard) Watchlist(context.Context) dto.WatchlistResponse {
	return dto.WatchlistResponse{Version: "v3_full_list", Categories: map[string][]string{"energy": {"XLE"}}}
}
func (m *mockDashboard) AddToWatchlist(context.Context, string, string) (*dto.WatchlistChangeResponse, error) {
	return m.change, m.err
}
func (m *mockDashboard) RemoveFromWatchlist(context.Context, string, string) (*dto.WatchlistChangeResponse, error) {
	return m.change, m.err
}

var _ service.DashboardService = (*mockDashboard)(nil)

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/sectors", h.GetSectors)
	v1.GET("/sectors/:id", h.GetSector)
	v1.GET("/quotes", h.GetQuotes)
	v1.GET("/stock", h.GetStock)
	v1.GET("/detail", h.GetDetail)
	v1.POST("/refresh", h.PostRefresh)
	v1.GET("/watchlist", h.GetWatchlist)
	v1.POST("/watchlist/:category", h.AddToWatchlist)
	v1.DELETE("/watchlist/:category/:symbol", h.RemoveFromWatchlist)
	return r
}

func TestHandlers_TableDriven(t *testing.T) {
	priced := models.MetricsRecord{Symbol: "XLE", Price: null.FloatFrom(91.2)}

	cases := []struct {
		name   string
		svc    *mockDashboard
		method string
		path   string
		body   string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name: "overview",
			svc: &mockDashboard{overview: dto.OverviewResponse{
				Sectors: []dto.SectorSummary{{Sector: sectors.Sector{ID: "energy"}, Temperature: sectors.Warm}},
			}},
			method: http.MethodGet, path: "/api/v1/sectors", status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"id":"energy"`) || !strings.Contains(string(body), `"temperature":"warm"`) {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name:   "sector not found",
			svc:    &mockDashboard{err: fmt.Errorf("%w: x", service.ErrSectorNotFound)},
			method: http.MethodGet, path: "/api/v1/sectors/x", status: http.StatusNotFound,
		},
		{
			name:   "sector internal error",
			svc:    &mockDashboard{err: errors.New("boom")},
			method: http.MethodGet, path: "/api/v1/sectors/energy", status: http.StatusInternalServerError,
		},
		{
			name:   "sector ok",
			svc:    &mockDashboard{detail: &dto.SectorDetailResponse{Stocks: []dto.Quote{{Symbol: "XOM"}}}},
			method: http.MethodGet, path: "/api/v1/sectors/energy", status: http.StatusOK,
		},
		{
			name:   "quotes missing param",
			svc:    &mockDashboard{},
			method: http.MethodGet, path: "/api/v1/quotes?symbols=,,", status: http.StatusBadRequest,
		},
		{
			name:   "quotes ok",
			svc:    &mockDashboard{quotes: dto.QuotesResponse{Quotes: map[string]models.MetricsRecord{"XLE": priced}, Missing: []string{"ZZZ"}}},
			method: http.MethodGet, path: "/api/v1/quotes?symbols=xle,zzz", status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.QuotesResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Quotes["XLE"].Price.Float64 != 91.2 || len(out.Missing) != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "stock missing symbol",
			svc:    &mockDashboard{},
			method: http.MethodGet, path: "/api/v1/stock", status: http.StatusBadRequest,
		},
		{
			name:   "stock transport failure",
			svc:    &mockDashboard{err: fmt.Errorf("chart XLE: %w", models.ErrTransport)},
			method: http.MethodGet, path: "/api/v1/stock?symbol=XLE", status: http.StatusBadGateway,
		},
		{
			name:   "stock shape failure",
			svc:    &mockDashboard{err: fmt.Errorf("chart XLE: %w", models.ErrInputShape)},
			method: http.MethodGet, path: "/api/v1/stock?symbol=XLE", status: http.StatusBadGateway,
		},
		{
			name:   "stock unexpected failure",
			svc:    &mockDashboard{err: errors.New("boom")},
			method: http.MethodGet, path: "/api/v1/stock?symbol=XLE", status: http.StatusInternalServerError,
		},
		{
			name:   "stock ok keeps null fields",
			svc:    &mockDashboard{rec: priced},
			method: http.MethodGet, path: "/api/v1/stock?symbol=xle", status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				s := string(body)
				if !strings.Contains(s, `"price":91.2`) || !strings.Contains(s, `"drawdown":null`) {
					t.Fatalf("unexpected body: %s", s)
				}
			},
		},
		{
			name:   "detail missing symbol",
			svc:    &mockDashboard{},
			method: http.MethodGet, path: "/api/v1/detail?symbol=%20", status: http.StatusBadRequest,
		},
		{
			name:   "detail placeholder",
			svc:    &mockDashboard{profile: models.UnavailableProfile("XOM")},
			method: http.MethodGet, path: "/api/v1/detail?symbol=XOM", status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"error":true`) {
					t.Fatalf("expected placeholder flag: %s", body)
				}
			},
		},
		{
			name:   "refresh",
			svc:    &mockDashboard{report: &orchestrator.Report{Requested: 2, Updated: []string{"A"}, Failed: []orchestrator.Failure{{Symbol: "B", Kind: orchestrator.KindTransport}}}},
			method: http.MethodPost, path: "/api/v1/refresh", status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"requested":2`) || !strings.Contains(string(body), `"kind":"transport"`) {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name:   "watchlist",
			svc:    &mockDashboard{},
			method: http.MethodGet, path: "/api/v1/watchlist", status: http.StatusOK,
		},
		{
			name:   "watchlist add invalid body",
			svc:    &mockDashboard{},
			method: http.MethodPost, path: "/api/v1/watchlist/energy", body: `{}`, status: http.StatusBadRequest,
		},
		{
			name:   "watchlist add created",
			svc:    &mockDashboard{change: &dto.WatchlistChangeResponse{Category: "energy", Symbol: "CVX", Changed: true}},
			method: http.MethodPost, path: "/api/v1/watchlist/energy", body: `{"symbol":"cvx"}`, status: http.StatusCreated,
		},
		{
			name:   "watchlist add duplicate",
			svc:    &mockDashboard{change: &dto.WatchlistChangeResponse{Category: "energy", Symbol: "CVX"}},
			method: http.MethodPost, path: "/api/v1/watchlist/energy", body: `{"symbol":"CVX"}`, status: http.StatusOK,
		},
		{
			name:   "watchlist add unknown category",
			svc:    &mockDashboard{err: fmt.Errorf("%w: %q", watchlist.ErrUnknownCategory, "crypto")},
			method: http.MethodPost, path: "/api/v1/watchlist/crypto", body: `{"symbol":"BTC"}`, status: http.StatusNotFound,
		},
		{
			name:   "watchlist add blank symbol",
			svc:    &mockDashboard{err: watchlist.ErrEmptySymbol},
			method: http.MethodPost, path: "/api/v1/watchlist/energy", body: `{"symbol":"  "}`, status: http.StatusBadRequest,
		},
		{
			name:   "watchlist remove ok",
			svc:    &mockDashboard{change: &dto.WatchlistChangeResponse{Category: "energy", Symbol: "CVX", Changed: true}},
			method: http.MethodDelete, path: "/api/v1/watchlist/energy/CVX", status: http.StatusOK,
		},
		{
			name:   "watchlist remove storage failure",
			svc:    &mockDashboard{err: errors.New("db down")},
			method: http.MethodDelete, path: "/api/v1/watchlist/energy/CVX", status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestGetQuotes_NormalizesSymbols(t *testing.T) {
	svc := &mockDashboard{}
	r := setupRouterWithMock(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes?symbols=gld,%20xle%20,GLD", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
	if strings.Join(svc.gotSymbols, ",") != "GLD,XLE" {
		t.Fatalf("symbols=%v", svc.gotSymbols)
	}
}

func TestGetQuotes_TooMany(t *testing.T) {
	var syms []string
	for i := 0; i <= maxQuoteSymbols; i++ {
		syms = append(syms, fmt.Sprintf("S%d", i))
	}
	r := setupRouterWithMock(&mockDashboard{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes?symbols="+strings.Join(syms, ","), nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestGetSector_SortAndFilterParams(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		status int
		want   dto.StockQuery
	}{
		{name: "no params", query: "", status: http.StatusOK},
		{name: "all params", query: "?sort=drawdown&order=desc&minDrawdown=20", status: http.StatusOK,
			want: dto.StockQuery{Sort: dto.SortDrawdown, Order: dto.OrderDesc, MinDrawdown: 20}},
		{name: "month change asc", query: "?sort=monthChange&order=asc", status: http.StatusOK,
			want: dto.StockQuery{Sort: dto.SortMonthChange, Order: dto.OrderAsc}},
		{name: "unknown sort key", query: "?sort=price", status: http.StatusBadRequest},
		{name: "unknown order", query: "?sort=symbol&order=up", status: http.StatusBadRequest},
		{name: "negative drawdown", query: "?minDrawdown=-5", status: http.StatusBadRequest},
		{name: "non-numeric drawdown", query: "?minDrawdown=abc", status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockDashboard{detail: &dto.SectorDetailResponse{}}
			r := setupRouterWithMock(svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sectors/energy"+tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status == http.StatusOK && svc.gotQuery != tc.want {
				t.Fatalf("query=%+v want %+v", svc.gotQuery, tc.want)
			}
		})
	}
}
