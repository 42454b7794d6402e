// Package postgres implements the directory interfaces over PostgreSQL.
// All reads and writes go through stored procedures owned by the
// database; this package only binds parameters and maps rows.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds PostgreSQL connection settings.
type Config struct {
	URL            string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectTimeout time.Duration
}

// DefaultConfig returns connection settings suitable for development.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:   25,
		MaxIdleConns:   5,
		ConnectTimeout: 10 * time.Second,
	}
}

// Open connects to PostgreSQL, configures the shared pool and verifies
// the connection. The returned handle is safe for concurrent use.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}
