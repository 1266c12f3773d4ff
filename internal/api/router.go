package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/cycleradar/internal/middleware"
)

var (
	// RequestTimeout bounds every API request except manual refresh cycles.
	RequestTimeout = 15 * time.Second
	// RateLimit is the per-IP request budget per minute. The dashboard polls
	// every 30s across a handful of endpoints, well under this.
	RateLimit = 120
)

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, CORS, RateLimiter).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1). Each route gets RequestTimeout,
//     except POST /refresh which gets refreshTimeout like scheduled cycles.
//
// Health and readiness endpoints are registered by app.InitializeApp().
func NewRouter(handler *Handler, refreshTimeout time.Duration) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(),
		middleware.NewRateLimiter(RateLimit, time.Minute).Handler(),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	if refreshTimeout <= 0 {
		refreshTimeout = RequestTimeout
	}
	registerV1(router.Group("/api/v1"), handler, refreshTimeout)

	return router
}

func registerV1(v1 *gin.RouterGroup, h *Handler, refreshTimeout time.Duration) {
	v1.POST("/refresh", middleware.Timeout(refreshTimeout), h.PostRefresh)

	api := v1.Group("", middleware.Timeout(RequestTimeout))

	sectors := api.Group("/sectors")
	sectors.GET("", h.GetSectors)
	sectors.GET("/:id", h.GetSector)

	api.GET("/quotes", h.GetQuotes)
	api.GET("/stock", h.GetStock)
	api.GET("/detail", h.GetDetail)

	wl := api.Group("/watchlist")
	wl.GET("", h.GetWatchlist)
	wl.POST("/:category", h.AddToWatchlist)
	wl.DELETE("/:category/:symbol", h.RemoveFromWatchlist)
}
