package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// SalesRepository defines the contract for warehouse operations on the
// sales_snapshot table.
type SalesRepository interface {
	InsertRowsBatch(rows []models.SalesRow) error
	LoadSnapshot(ctx context.Context, since time.Time) ([]models.SalesRow, error)
	TruncateSnapshot() error
}

type salesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepository {
	return &salesRepository{db: db}
}

// InsertRowsBatch inserts multiple rows in a single transaction via COPY.
func (r *salesRepository) InsertRowsBatch(rows []models.SalesRow) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"sales_snapshot",
		"date",
		"purchases",
		"redemptions",
		"assets",
		"wholesaler",
		"advisor",
		"mandate_name",
		"fund_type",
		"rvp",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range rows {
		if _, err := stmt.Exec(
			rec.Date,
			rec.Purchases,
			rec.Redemptions,
			rec.Assets,
			rec.Wholesaler,
			rec.Advisor,
			rec.MandateName,
			rec.FundType,
			rec.RVP,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// TruncateSnapshot removes all rows from sales_snapshot. Used by seed mode
// before a full reload.
func (r *salesRepository) TruncateSnapshot() error {
	_, err := r.db.Exec(`TRUNCATE sales_snapshot`)
	return err
}

// LoadSnapshot returns all rows with date >= since, oldest first.
// Amount columns are coalesced to zero and dimension columns to the empty
// string, so NULLs never surface past this layer.
func (r *salesRepository) LoadSnapshot(ctx context.Context, since time.Time) ([]models.SalesRow, error) {
	const query = `
		SELECT date,
		       COALESCE(purchases, 0),
		       COALESCE(redemptions, 0),
		       COALESCE(assets, 0),
		       COALESCE(wholesaler, ''),
		       COALESCE(advisor, ''),
		       COALESCE(mandate_name, ''),
		       COALESCE(fund_type, ''),
		       COALESCE(rvp, '')
		FROM sales_snapshot
		WHERE date >= $1
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.SalesRow
	for rows.Next() {
		var rec models.SalesRow
		if err := rows.Scan(
			&rec.Date,
			&rec.Purchases,
			&rec.Redemptions,
			&rec.Assets,
			&rec.Wholesaler,
			&rec.Advisor,
			&rec.MandateName,
			&rec.FundType,
			&rec.RVP,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}

	return out, nil
}
