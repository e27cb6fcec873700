package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// expectedHeaders enforces strict column ordering for sales snapshot CSV
// files. If the header doesn't match EXACTLY (order + count), loading must
// fail.
var expectedHeaders = []string{
	"date",
	"purchases",
	"redemptions",
	"assets",
	"wholesaler",
	"advisor",
	"mandate_name",
	"fund_type",
	"rvp",
}

// CSVProvider is the flat-file TableProvider used when no warehouse is
// configured.
type CSVProvider struct {
	path string
}

// NewCSVProvider returns a provider that loads rows from the given CSV file.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path}
}

// LoadRows reads the whole CSV file into memory.
func (p *CSVProvider) LoadRows(ctx context.Context) ([]models.SalesRow, error) {
	return ReadFile(ctx, p.path)
}

// ReadFile opens, validates, and parses one sales CSV file.
//
// It fails on:
//   - header not matching expected order/length
//   - malformed dates or amounts
//
// It tolerates:
//   - empty amount cells (they become zero)
//   - empty dimension cells (bucketed as "Unknown" at aggregation time)
func ReadFile(ctx context.Context, path string) ([]models.SalesRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable but we check explicitly

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var rows []models.SalesRow
	lineNumber := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		row, err := recordToRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// recordToRow converts a single CSV record (already validated length==9)
// into a models.SalesRow. It is STRICT about types/format but TOLERATES
// empty amount cells, mapping them to zero.
//
// Column order:
//
//	0 date          → Date (DATE, "2006-01-02")
//	1 purchases     → Purchases (decimal, empty→0)
//	2 redemptions   → Redemptions (decimal, empty→0)
//	3 assets        → Assets (decimal, empty→0)
//	4 wholesaler    → Wholesaler (string)
//	5 advisor       → Advisor (string)
//	6 mandate_name  → MandateName (string)
//	7 fund_type     → FundType (string)
//	8 rvp           → RVP (string)
func recordToRow(rec []string) (models.SalesRow, error) {
	var row models.SalesRow

	d, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
	if err != nil {
		return row, fmt.Errorf("invalid date: %v", err)
	}
	row.Date = d

	amounts := []struct {
		name string
		dst  *decimal.Decimal
		raw  string
	}{
		{"purchases", &row.Purchases, rec[1]},
		{"redemptions", &row.Redemptions, rec[2]},
		{"assets", &row.Assets, rec[3]},
	}
	for _, a := range amounts {
		s := strings.TrimSpace(a.raw)
		if s == "" {
			continue // zero value
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return row, fmt.Errorf("invalid %s: %v", a.name, err)
		}
		*a.dst = v
	}

	row.Wholesaler = strings.TrimSpace(rec[4])
	row.Advisor = strings.TrimSpace(rec[5])
	row.MandateName = strings.TrimSpace(rec[6])
	row.FundType = strings.TrimSpace(rec[7])
	row.RVP = strings.TrimSpace(rec[8])

	return row, nil
}
