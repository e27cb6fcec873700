package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Data source drivers selectable via DATA_SOURCE.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: server settings, data-source selection, and Postgres connection
// details.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	DATA_SOURCE=csv
//	CSV_PATH=./data/sample_sales.csv
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=salespulse
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Data     DataConfig     // Table provider selection
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// DataConfig selects which TableProvider backs the service.
//
// Fields:
//   - Driver: "csv" (local flat file) or "postgres" (warehouse snapshot).
//   - CSVPath: path to the sales CSV file; only used by the csv driver.
type DataConfig struct {
	Driver  string
	CSVPath string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing or DATA_SOURCE is unrecognized,
//     validateConfig() terminates the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATA_SOURCE", DriverCSV)
	viper.SetDefault("CSV_PATH", "./data/sample_sales.csv")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "salespulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Data: DataConfig{
			Driver:  viper.GetString("DATA_SOURCE"),
			CSVPath: viper.GetString("CSV_PATH"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing.
//
// Postgres settings are only required when the postgres driver is selected;
// seed mode validates them separately since it always needs the warehouse.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	switch AppConfig.Data.Driver {
	case DriverCSV:
		if AppConfig.Data.CSVPath == "" {
			missing = append(missing, "CSV_PATH")
		}
	case DriverPostgres:
		missing = append(missing, missingPostgres()...)
	default:
		log.Fatalf("Unrecognized DATA_SOURCE %q (expected %q or %q)\n",
			AppConfig.Data.Driver, DriverCSV, DriverPostgres)
	}

	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}

// RequirePostgres terminates the application if the Postgres settings are
// incomplete. Seed mode calls this regardless of DATA_SOURCE.
func RequirePostgres() {
	if missing := missingPostgres(); len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}

func missingPostgres() []string {
	var missing []string
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}
