package dto

import (
	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/sectors"
)

// Quote pairs a symbol with its latest cached metrics.
// Metrics is null until the symbol has been fetched successfully once.
type Quote struct {
	Symbol  string                `json:"symbol" example:"GLD"`
	Label   string                `json:"label" example:"黄金ETF"`
	Metrics *models.MetricsRecord `json:"metrics"`
}

// SectorSummary is one card of the sector overview.
type SectorSummary struct {
	sectors.Sector
	Temperature string  `json:"temperature" example:"warm" enums:"hot,warm,cold,unknown"`
	Quotes      []Quote `json:"quotes"`
	StockCount  int     `json:"stockCount" example:"14"`
}

// OverviewResponse is returned by GET /api/v1/sectors.
type OverviewResponse struct {
	Sectors []SectorSummary `json:"sectors"`
	Cached  int             `json:"cached" example:"62"`
}

// SectorDetailResponse is returned by GET /api/v1/sectors/{id}.
type SectorDetailResponse struct {
	SectorSummary
	Stocks []Quote `json:"stocks"`
}

// Sort keys and orders accepted by GET /api/v1/sectors/{id}.
const (
	SortSymbol      = "symbol"
	SortDayChange   = "dayChange"
	SortMonthChange = "monthChange"
	SortDrawdown    = "drawdown"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// StockQuery orders and filters the stocks of a sector detail.
// An empty Sort keeps watchlist order. MinDrawdown keeps only stocks whose
// |drawdown| is at least that many percent; zero disables the filter.
type StockQuery struct {
	Sort        string  `form:"sort" binding:"omitempty,oneof=symbol dayChange monthChange drawdown"`
	Order       string  `form:"order" binding:"omitempty,oneof=asc desc"`
	MinDrawdown float64 `form:"minDrawdown" binding:"gte=0"`
}

// QuotesResponse is returned by GET /api/v1/quotes.
// Missing lists requested symbols with no cached record.
type QuotesResponse struct {
	Quotes  map[string]models.MetricsRecord `json:"quotes"`
	Missing []string                        `json:"missing"`
}

// WatchlistResponse is returned by GET /api/v1/watchlist.
type WatchlistResponse struct {
	Version    string              `json:"version" example:"v3_full_list"`
	Categories map[string][]string `json:"categories"`
}

// WatchlistRequest is the body of POST /api/v1/watchlist/{category}.
type WatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required" example:"CVX"`
}

// WatchlistChangeResponse reports the outcome of an add or remove.
type WatchlistChangeResponse struct {
	Category string   `json:"category" example:"energy"`
	Symbol   string   `json:"symbol" example:"CVX"`
	Changed  bool     `json:"changed" example:"true"`
	Symbols  []string `json:"symbols"`
}
