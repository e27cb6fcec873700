package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fundsight/salespulse/config"
)

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "date,purchases,redemptions,assets,wholesaler,advisor,mandate_name,fund_type,rvp\n" +
		"2026-04-03,100,10,1000,Acme,J. Morgan,Growth,Equity,Alice\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

// TestInitializeApp_CSV boots the full app against a temp CSV file and
// exercises the ask endpoint end to end.
func TestInitializeApp_CSV(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Data:   config.DataConfig{Driver: config.DriverCSV, CSVPath: writeSampleCSV(t)},
	}

	router, cleanup, err := InitializeApp(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"total purchases"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body=%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Purchases = 100") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// CSV mode has no backing store, so readiness always succeeds.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz = %d", w.Code)
	}
}

// TestInitializeApp_CSVLoadFailure ensures a missing file is fatal at init.
func TestInitializeApp_CSVLoadFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Data:   config.DataConfig{Driver: config.DriverCSV, CSVPath: filepath.Join(t.TempDir(), "missing.csv")},
	}

	if _, _, err := InitializeApp(context.Background()); err == nil {
		t.Fatalf("expected error for missing CSV file")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when the
// warehouse cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Data:   config.DataConfig{Driver: config.DriverPostgres},
	}

	oldOpener := postgresOpener
	t.Cleanup(func() { postgresOpener = oldOpener })
	postgresOpener = func(config.Config) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	if _, _, err := InitializeApp(context.Background()); err == nil {
		t.Fatalf("expected error when DB cannot connect")
	}
}
