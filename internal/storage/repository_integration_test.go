//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "salespulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=salespulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	dsn = fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=salespulse sslmode=disable", host, port.Port())
	terminate = func() { _ = container.Terminate(ctx) }
	return dsn, terminate
}

func migrate(t *testing.T, db *sql.DB) {
	t.Helper()
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("goose up: %v", err)
	}
}

func TestSalesRepository_RoundTrip(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	migrate(t, db)
	repo := NewSalesRepository(db)

	rows := []models.SalesRow{
		{
			Date:        time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			Purchases:   decimal.RequireFromString("125000.50"),
			Redemptions: decimal.RequireFromString("30000.00"),
			Assets:      decimal.RequireFromString("1550000.00"),
			Wholesaler:  "Acme",
			Advisor:     "J. Morgan",
			MandateName: "Growth",
			FundType:    "Equity",
			RVP:         "Alice",
		},
		{
			Date:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), // outside lookback
			Purchases:   decimal.RequireFromString("1.00"),
			Redemptions: decimal.Zero,
			Assets:      decimal.Zero,
			RVP:         "Bob",
		},
	}

	if err := repo.InsertRowsBatch(rows); err != nil {
		t.Fatalf("insert: %v", err)
	}

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.LoadSnapshot(context.Background(), since)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1 (lookback filter)", len(got))
	}
	if !got[0].Purchases.Equal(decimal.RequireFromString("125000.50")) || got[0].RVP != "Alice" {
		t.Fatalf("unexpected row: %+v", got[0])
	}

	if err := repo.TruncateSnapshot(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	got, err = repo.LoadSnapshot(context.Background(), since)
	if err != nil {
		t.Fatalf("load after truncate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rows = %d after truncate, want 0", len(got))
	}
}
