package provider

import (
	"context"
	"time"

	"github.com/fundsight/salespulse/internal/domain/models"
	"github.com/fundsight/salespulse/internal/storage"
)

// snapshotLookback bounds how far back the warehouse snapshot reaches.
const snapshotLookback = 2 // years

// WarehouseProvider is the Postgres-backed TableProvider used when
// DATA_SOURCE=postgres. It reads the trailing two years of sales_snapshot
// through the repository layer.
type WarehouseProvider struct {
	repo storage.SalesRepository
	now  func() time.Time
}

// NewWarehouseProvider returns a provider backed by the given repository.
func NewWarehouseProvider(repo storage.SalesRepository) *WarehouseProvider {
	return &WarehouseProvider{repo: repo, now: time.Now}
}

// LoadRows loads the snapshot window from the warehouse.
func (p *WarehouseProvider) LoadRows(ctx context.Context) ([]models.SalesRow, error) {
	since := p.now().UTC().AddDate(-snapshotLookback, 0, 0)
	return p.repo.LoadSnapshot(ctx, since)
}
