// Package provider supplies the sales row snapshot from a pluggable backing
// store. Two variants exist: a local CSV file and a Postgres warehouse.
// Which one runs is decided once at startup by configuration; the query
// layer only ever sees the uniform row set.
package provider

import (
	"context"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// TableProvider loads the full row set the service answers questions from.
//
// LoadRows is called exactly once at startup; a load failure is a fatal
// startup condition, never a per-request error. The returned slice is
// treated as immutable for the process lifetime.
type TableProvider interface {
	LoadRows(ctx context.Context) ([]models.SalesRow, error)
}
