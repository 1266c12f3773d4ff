package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cycleradar/config"
	"github.com/guttosm/cycleradar/internal/api"
	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/orchestrator"
	"github.com/guttosm/cycleradar/internal/provider/yahoo"
	"github.com/guttosm/cycleradar/internal/scheduler"
	"github.com/guttosm/cycleradar/internal/sectors"
	"github.com/guttosm/cycleradar/internal/service"
	"github.com/guttosm/cycleradar/internal/snapshot"
	"github.com/guttosm/cycleradar/internal/storage"
	"github.com/guttosm/cycleradar/internal/watchlist"
)

const (
	initTimeout  = 10 * time.Second
	shutdownWait = 5 * time.Second
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL and applies migrations when POSTGRES_AUTO_MIGRATE is set.
//   - Loads the sector catalog and the persisted watchlist.
//   - Wires provider client, orchestrator and snapshot store into the dashboard service.
//   - Configures the Gin router with all API routes and health probes.
//   - Starts the periodic refresh scheduler (plus a warm-up cycle when REFRESH_ON_START is set).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig
	log := logger.Component("app")

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	catalog := sectors.Default()

	wl := watchlist.New(storage.NewWatchlistRepository(db), catalog)
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	if err := wl.Init(ctx); err != nil {
		log.Warn().Err(err).Msg("watchlist unavailable, serving catalog defaults")
	}
	cancel()

	client := NewProviderClient(cfg.Provider)
	store := snapshot.New()
	orch := orchestrator.New(client, store, orchestrator.WithParallel(cfg.Refresh.Parallel))
	svc := service.NewDashboardService(catalog, store, orch, client, wl)

	router := api.NewRouter(api.NewHandler(svc), cfg.Refresh.Timeout)
	api.NewHealthHandler(map[string]api.Check{"postgres": db.PingContext}).Register(router)

	sched, err := scheduler.New(svc, cfg.Refresh.Interval, cfg.Refresh.Timeout)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := sched.Start(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if cfg.Refresh.OnStart {
		go func() {
			rep := sched.RunNow()
			log.Info().Int("updated", len(rep.Updated)).Int("failed", len(rep.Failed)).Msg("warm-up refresh finished")
		}()
	}

	cleanup := func() {
		sched.Stop(shutdownWait)
		_ = db.Close()
	}

	return router, cleanup, nil
}

// NewProviderClient builds the quote provider client from configuration.
func NewProviderClient(cfg config.ProviderConfig) *yahoo.Client {
	return yahoo.NewClient(
		yahoo.WithBaseURL(cfg.BaseURL),
		yahoo.WithRange(cfg.Range),
		yahoo.WithInterval(cfg.Interval),
		yahoo.WithTimeout(cfg.Timeout),
		yahoo.WithUserAgent(cfg.UserAgent),
	)
}
