package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/fundsight/salespulse/internal/domain/models"
)

func newMockRepo(t *testing.T) (*salesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &salesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestLoadSnapshot_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	since := time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rows *sqlmock.Rows
		want int
	}{
		{
			name: "two rows",
			rows: sqlmock.NewRows([]string{"date", "purchases", "redemptions", "assets", "wholesaler", "advisor", "mandate_name", "fund_type", "rvp"}).
				AddRow(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), "125000.50", "30000", "1550000", "Acme", "J. Morgan", "Growth", "Equity", "Alice").
				AddRow(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), "0", "45000", "1710000", "Northline", "K. Patel", "Income", "", "Bob"),
			want: 2,
		},
		{
			name: "empty snapshot",
			rows: sqlmock.NewRows([]string{"date", "purchases", "redemptions", "assets", "wholesaler", "advisor", "mandate_name", "fund_type", "rvp"}),
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock.ExpectQuery(`SELECT date,`).WithArgs(since).WillReturnRows(tc.rows)

			out, err := repo.LoadSnapshot(context.Background(), since)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != tc.want {
				t.Fatalf("rows = %d, want %d", len(out), tc.want)
			}
			if tc.want > 0 {
				if !out[0].Purchases.Equal(decimal.RequireFromString("125000.50")) {
					t.Fatalf("purchases = %s", out[0].Purchases)
				}
				if out[1].FundType != "" {
					t.Fatalf("expected empty fund_type passthrough, got %q", out[1].FundType)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestInsertRowsBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := []models.SalesRow{
		{
			Date:        time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			Purchases:   decimal.NewFromInt(100),
			Redemptions: decimal.NewFromInt(10),
			Assets:      decimal.NewFromInt(1000),
			Wholesaler:  "Acme",
			Advisor:     "J. Morgan",
			MandateName: "Growth",
			FundType:    "Equity",
			RVP:         "Alice",
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL synchronous_commit = OFF`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(`COPY "sales_snapshot"`)
	mock.ExpectExec(`COPY "sales_snapshot"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`COPY "sales_snapshot"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.InsertRowsBatch(rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTruncateSnapshot_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`TRUNCATE sales_snapshot`).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.TruncateSnapshot(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
