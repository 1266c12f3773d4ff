package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cycleradar/internal/domain/dto"
	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/middleware"
	"github.com/guttosm/cycleradar/internal/service"
	"github.com/guttosm/cycleradar/internal/watchlist"
)

const maxQuoteSymbols = 100

// Handler provides HTTP handlers for the sector dashboard endpoints.
//
// Responsibilities:
//   - Validate incoming path, query and body parameters
//   - Delegate to the dashboard service
//   - Map service errors to HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	svc service.DashboardService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.DashboardService): business operations behind every route.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc}
}

// GetSectors godoc
// @Summary      Sector overview
// @Description  Every sector of the transmission chain with its ETF metrics, temperature and watchlist size
// @Tags         sectors
// @Produce      json
// @Success      200  {object}  dto.OverviewResponse
// @Router       /api/v1/sectors [get]
func (h *Handler) GetSectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overview(c.Request.Context()))
}

// GetSector godoc
// @Summary      Sector detail
// @Description  One sector with ETF metrics and the metrics of every watchlist symbol
// @Tags         sectors
// @Produce      json
// @Param        id           path      string  true   "Sector id" example(energy)
// @Param        sort         query     string  false  "Sort key" Enums(symbol, dayChange, monthChange, drawdown)
// @Param        order        query     string  false  "Sort order" Enums(asc, desc)
// @Param        minDrawdown  query     number  false  "Minimum |drawdown| in percent" example(10)
// @Success      200          {object}  dto.SectorDetailResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/v1/sectors/{id} [get]
func (h *Handler) GetSector(c *gin.Context) {
	var q dto.StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid sort or filter", err))
		return
	}

	out, err := h.svc.SectorDetail(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		if errors.Is(err, service.ErrSectorNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("sector not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to build sector detail", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetQuotes godoc
// @Summary      Cached quotes
// @Description  Latest cached metrics for the requested symbols. Symbols never fetched are listed under "missing".
// @Tags         quotes
// @Produce      json
// @Param        symbols  query     string  true  "Comma-separated symbols" example(GLD,XLE)
// @Success      200      {object}  dto.QuotesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/quotes [get]
func (h *Handler) GetQuotes(c *gin.Context) {
	syms := models.NormalizeSymbols(strings.Split(c.Query("symbols"), ","))
	if len(syms) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbols is required", nil))
		return
	}
	if len(syms) > maxQuoteSymbols {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("too many symbols", nil))
		return
	}
	c.JSON(http.StatusOK, h.svc.Quotes(c.Request.Context(), syms))
}

// GetStock godoc
// @Summary      Live quote
// @Description  Fetches the series for one symbol from the provider and computes its metrics
// @Tags         quotes
// @Produce      json
// @Param        symbol  query     string  true  "Ticker" example(XLE)
// @Success      200     {object}  models.MetricsRecord
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/stock [get]
func (h *Handler) GetStock(c *gin.Context) {
	// ─── Validate "symbol" param ──────────────────────────────
	symbol := models.NormalizeSymbol(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	rec, err := h.svc.LiveQuote(c.Request.Context(), symbol)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, rec)
	case errors.Is(err, models.ErrTransport), errors.Is(err, models.ErrInputShape):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("market data provider unavailable", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute metrics", err))
	}
}

// GetDetail godoc
// @Summary      Symbol profile
// @Description  Descriptive detail for one symbol. When the provider fails a placeholder with "error": true is returned.
// @Tags         quotes
// @Produce      json
// @Param        symbol  query     string  true  "Ticker" example(XOM)
// @Success      200     {object}  models.QuoteProfile
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/v1/detail [get]
func (h *Handler) GetDetail(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}
	c.JSON(http.StatusOK, h.svc.Detail(c.Request.Context(), symbol))
}

// PostRefresh godoc
// @Summary      Refresh now
// @Description  Runs one refresh cycle over every sector ETF and watchlist symbol
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  orchestrator.Report
// @Router       /api/v1/refresh [post]
func (h *Handler) PostRefresh(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Refresh(c.Request.Context()))
}

// GetWatchlist godoc
// @Summary      Watchlist
// @Tags         watchlist
// @Produce      json
// @Success      200  {object}  dto.WatchlistResponse
// @Router       /api/v1/watchlist [get]
func (h *Handler) GetWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Watchlist(c.Request.Context()))
}

// AddToWatchlist godoc
// @Summary      Add a symbol
// @Description  Adds a symbol to a sector's watchlist. Adding an existing symbol returns 200 with changed=false.
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        category  path      string                true  "Sector id" example(energy)
// @Param        body      body      dto.WatchlistRequest  true  "Symbol to add"
// @Success      201       {object}  dto.WatchlistChangeResponse
// @Success      200       {object}  dto.WatchlistChangeResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist/{category} [post]
func (h *Handler) AddToWatchlist(c *gin.Context) {
	var req dto.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	out, err := h.svc.AddToWatchlist(c.Request.Context(), c.Param("category"), req.Symbol)
	if err != nil {
		writeWatchlistError(c, err)
		return
	}
	status := http.StatusOK
	if out.Changed {
		status = http.StatusCreated
	}
	c.JSON(status, out)
}

// RemoveFromWatchlist godoc
// @Summary      Remove a symbol
// @Tags         watchlist
// @Produce      json
// @Param        category  path      string  true  "Sector id" example(energy)
// @Param        symbol    path      string  true  "Ticker" example(CVX)
// @Success      200       {object}  dto.WatchlistChangeResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist/{category}/{symbol} [delete]
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	out, err := h.svc.RemoveFromWatchlist(c.Request.Context(), c.Param("category"), c.Param("symbol"))
	if err != nil {
		writeWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func writeWatchlistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, watchlist.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("unknown category", err))
	case errors.Is(err, watchlist.ErrEmptySymbol):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update watchlist", err))
	}
}
