package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fundsight/salespulse/config"
	"github.com/fundsight/salespulse/internal/api"
	"github.com/fundsight/salespulse/internal/logger"
	"github.com/fundsight/salespulse/internal/provider"
	"github.com/fundsight/salespulse/internal/service"
	"github.com/fundsight/salespulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, a cleanup function for graceful shutdown, and any
// error encountered during initialization.
//
// Responsibilities:
//   - Selects the table provider from configuration (csv or postgres).
//   - Loads the row snapshot exactly once; a load failure is fatal here and
//     never surfaces as a per-request error.
//   - Creates the ask service over the immutable snapshot.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	var (
		src     provider.TableProvider
		ready   func() error
		cleanup = func() {}
	)

	switch cfg.Data.Driver {
	case config.DriverPostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		src = provider.NewWarehouseProvider(storage.NewSalesRepository(db))
		ready = db.Ping
		cleanup = func() { _ = db.Close() }
	default:
		src = provider.NewCSVProvider(cfg.Data.CSVPath)
	}

	// One-time snapshot load; immutable for the process lifetime.
	rows, err := src.LoadRows(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load sales rows: %w", err)
	}
	logger.L().Info().Int("rows", len(rows)).Str("driver", cfg.Data.Driver).Msg("snapshot loaded")

	// Initialize service layer (question routing pipeline)
	svc := service.NewAskService(rows)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(ready)
	healthHandler.Register(router)

	return router, cleanup, nil
}
