// Package ingestion implements seed mode: loading sales CSV files into the
// Postgres warehouse that backs the "postgres" table provider.
package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundsight/salespulse/internal/domain/models"
	"github.com/fundsight/salespulse/internal/logger"
	"github.com/fundsight/salespulse/internal/provider"
	"github.com/fundsight/salespulse/internal/storage"
)

const (
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.SalesRepository {
	return storage.NewSalesRepository(db)
}

// SeedDirectory loads every *.csv file under dir into sales_snapshot.
//
// Behavior:
//   - Files are validated against the strict sales CSV header and parsed by
//     the provider package, then inserted in batches via COPY.
//   - Files load concurrently, bounded by min(maxParallelFiles, NumCPU) or
//     the explicit parallel argument (clamped to 1..maxParallelFiles).
//   - When truncate is set, sales_snapshot is emptied once up front.
//   - The first failing file cancels the remaining ones and its error is
//     returned.
func SeedDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, truncate bool) error {
	repo := repoCtor(db)

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list csv files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .csv files found in %s", dir)
	}

	if truncate {
		if err := repo.TruncateSnapshot(); err != nil {
			return fmt.Errorf("truncate snapshot: %w", err)
		}
		logger.L().Info().Msg("snapshot truncated")
	}

	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel > maxParallelFiles {
			parallel = maxParallelFiles
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", maxParallel).Msg("seed start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, file := range files {
		idx := i
		f := file
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)
			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			rows, err := provider.ReadFile(gctx, f)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}

			if err := insertBatched(repo, rows, defaultBatchSize); err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("insert failed")
				return fmt.Errorf("file %s: insert: %w", f, err)
			}

			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).
				Int("rows", len(rows)).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// insertBatched flushes rows to the repository in chunks of batch.
func insertBatched(repo storage.SalesRepository, rows []models.SalesRow, batch int) error {
	for len(rows) > 0 {
		n := batch
		if len(rows) < n {
			n = len(rows)
		}
		if err := repo.InsertRowsBatch(rows[:n]); err != nil {
			return err
		}
		rows = rows[n:]
	}
	return nil
}
