// Package db provides the SQLite-backed record store for boxes.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const pingTimeout = 5 * time.Second

// Config contains store connection settings.
type Config struct {
	// Path is the filesystem path to the SQLite database file.
	Path string

	// ConnectAttempts bounds how many times startup pings the store
	// before giving up. Zero or negative means a single attempt.
	ConnectAttempts int

	// ConnectBackoff is the fixed delay between connection attempts.
	ConnectBackoff time.Duration
}

// Open connects to the SQLite database, retrying with fixed backoff
// until the store answers a ping or the attempts are exhausted, then
// creates the schema. The returned handle is ready for use.
func Open(cfg Config, logger *slog.Logger) (*sql.DB, error) {
	connStr := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", cfg.Path)

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids lock churn.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 1; ; i++ {
		err = ping(sqlDB)
		if err == nil {
			break
		}
		if i == attempts {
			sqlDB.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
		}
		logger.Warn("waiting for database",
			"attempt", i,
			"max_attempts", attempts,
			"error", err,
		)
		time.Sleep(cfg.ConnectBackoff)
	}

	if err := createSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

// createSchema creates the boxes table and its indexes. Idempotent.
// The UNIQUE index on mac_address is the actual race-safety mechanism
// for duplicate creates; application-level pre-checks alone would be racy.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS boxes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mac_address TEXT NOT NULL UNIQUE,
		ip_address TEXT,
		main_equipment TEXT,
		location TEXT,
		process TEXT NOT NULL,
		manager TEXT,
		note TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_boxes_process ON boxes(process);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating boxes schema: %w", err)
	}
	return nil
}
