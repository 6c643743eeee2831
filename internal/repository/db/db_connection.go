package db

import (
	"fmt"
	"time"

	"therm_hub/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config describes how to reach the durable store.
type Config struct {
	Driver          string
	DSN             string
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Open connects with retries, then applies the schema. The caller owns the returned handle.
func Open(cfg Config, log *logger.Logger) (*sqlx.DB, error) {
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := InitDB(cfg.Driver, cfg.DSN)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warnw("database connection failed", "driver", cfg.Driver, "attempt", attempt, "of", attempts, "err", err)
		if attempt < attempts {
			time.Sleep(cfg.ConnectDelay)
		}
	}
	return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, attempts, lastErr)
}

// InitDB opens the database, tunes the driver and ensures the tables exist.
func InitDB(driver, dsn string) (*sqlx.DB, error) {
	schema, err := schemaFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		if err := applySQLitePragmas(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := ensureSchema(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func applySQLitePragmas(db *sqlx.DB) error {
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("set %s: %w", pragma, err)
		}
	}
	return nil
}

func schemaFor(driver string) ([]string, error) {
	switch driver {
	case DriverSQLite:
		return []string{sqliteToken, sqliteThermostats, thermostatsTimeIndex}, nil
	case DriverPostgres:
		return []string{postgresToken, postgresThermostats, thermostatsTimeIndex}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func ensureSchema(db *sqlx.DB, statements []string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
