package main

//
//  @title           cycleradar API
//  @version         1.0
//  @description     Sector rotation dashboard: cached market metrics, sector temperature and watchlists.
//  @termsOfService  https://github.com/guttosm/cycleradar
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/cycleradar
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        sectors
//  @tag.description Sector rotation overview and detail
//
//  @tag.name        quotes
//  @tag.description Cached and live quote metrics
//
//  @tag.name        watchlist
//  @tag.description Per-sector watchlists
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/cycleradar/config"
	_ "github.com/guttosm/cycleradar/docs" // swagger docs
	"github.com/guttosm/cycleradar/internal/app"
	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/logger"
	"github.com/guttosm/cycleradar/internal/orchestrator"
	"github.com/guttosm/cycleradar/internal/sectors"
	"github.com/guttosm/cycleradar/internal/snapshot"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout (time.Duration): Upper bound for writing a response.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// writeTimeoutFor leaves room for a manual refresh to finish and respond.
func writeTimeoutFor(refresh time.Duration) time.Duration {
	const floor, margin = 30 * time.Second, 10 * time.Second
	if refresh+margin < floor {
		return floor
	}
	return refresh + margin
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback (scheduler stop, DB close).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// fetchResult is the JSON document printed by fetch mode.
type fetchResult struct {
	Report  *orchestrator.Report   `json:"report"`
	Records []models.MetricsRecord `json:"records"`
}

// fetchSymbols parses the --symbols flag. An empty flag means every sector
// ETF plus the catalog's default watchlist.
func fetchSymbols(raw string, catalog *sectors.Catalog) []string {
	if strings.TrimSpace(raw) != "" {
		return models.NormalizeSymbols(strings.Split(raw, ","))
	}
	syms := catalog.AllETFSymbols()
	for _, id := range catalog.IDs() {
		syms = append(syms, catalog.DefaultWatchlist[id]...)
	}
	return models.NormalizeSymbols(syms)
}

// runFetch performs one refresh cycle without a database and writes the
// report and computed records to out. It fails only when nothing updated.
func runFetch(ctx context.Context, cfg config.Config, symbols []string, out io.Writer) error {
	store := snapshot.New()
	orch := orchestrator.New(app.NewProviderClient(cfg.Provider), store, orchestrator.WithParallel(cfg.Refresh.Parallel))

	rep := orch.Refresh(ctx, symbols)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fetchResult{Report: rep, Records: store.All()}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if rep.Requested > 0 && len(rep.Updated) == 0 {
		return rep.Err()
	}
	return nil
}

// runMigrate applies the embedded migrations and closes the connection.
func runMigrate(cfg config.Config) error {
	db, err := app.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return app.Migrate(db)
}

// main is the entry point of the cycleradar application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API and the background refresh scheduler.
//   - fetch:   Runs one refresh cycle against the provider and prints the result as JSON.
//   - migrate: Applies database migrations and exits.
//
// Flags:
//   - --mode:    Execution mode ("api", "fetch" or "migrate"). Default: "api".
//   - --symbols: Comma-separated symbols for fetch mode. Default: sector ETFs plus default watchlist.
//   - --port:    Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	config.LoadConfig()

	mode := flag.String("mode", "api", "Mode: api, fetch or migrate")
	symbols := flag.String("symbols", "", "Comma-separated symbols for fetch mode")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	// fetch mode prints its report on stdout
	if *mode == "fetch" {
		logger.InitWith(os.Stderr)
	} else {
		logger.Init()
	}

	switch *mode {
	case "fetch":
		logger.L().Info().Msg("running one-shot fetch")
		fetchCtx, cancel := context.WithTimeout(ctx, config.AppConfig.Refresh.Timeout)
		defer cancel()
		if err := runFetch(fetchCtx, config.AppConfig, fetchSymbols(*symbols, sectors.Default()), os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Msg("fetch failed")
		}

	case "migrate":
		logger.L().Info().Msg("applying migrations")
		if err := runMigrate(config.AppConfig); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, writeTimeoutFor(config.AppConfig.Refresh.Timeout))
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
