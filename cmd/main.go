package main

//
//  @title           salespulse API
//  @version         1.0
//  @description     Natural-language sales Q&A service.
//  @termsOfService  https://github.com/fundsight/salespulse
//  @contact.name    API Support
//  @contact.url     https://github.com/fundsight/salespulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        ask
//  @tag.description Endpoint for routing sales questions
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundsight/salespulse/config"
	_ "github.com/fundsight/salespulse/docs" // swagger docs
	"github.com/fundsight/salespulse/internal/app"
	"github.com/fundsight/salespulse/internal/ingestion"
	"github.com/fundsight/salespulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
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

// gracefulShutdown gracefully terminates the HTTP server and cleans up
// resources when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
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

// main is the entry point of the salespulse application.
//
// Modes (selected via --mode flag):
//   - api:  Loads the sales snapshot (CSV or warehouse) and starts the REST API.
//   - seed: Loads .csv files from a directory into the Postgres warehouse.
//
// Flags:
//   - --mode:     Execution mode ("api" or "seed"). Default: "api".
//   - --dir:      Directory containing .csv input files (seed mode). Default: "./data".
//   - --parallel: How many files to process concurrently (0=auto up to CPU).
//   - --truncate: Empty sales_snapshot before seeding.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or seed")
	dir := flag.String("dir", "./data", "Directory with .csv files (seed mode)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU)")
	truncate := flag.Bool("truncate", false, "Empty sales_snapshot before seeding")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "seed":
		// Seed mode: load .csv files into the warehouse
		logger.L().Info().Msg("running seed")
		config.RequirePostgres()

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.SeedDirectory(ctx, *dir, db, *parallel, *truncate); err != nil {
			logger.L().Fatal().Err(err).Msg("seed failed")
		}
		logger.L().Info().Msg("seed completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
