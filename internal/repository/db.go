package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case MySQL, SQLite:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// ignoreDuplicate returns the clause appended to an INSERT so that a row
// colliding on conflictCols is left untouched instead of failing.
func (d Dialect) ignoreDuplicate(conflictCols, pk string) string {
	if d == SQLite {
		return "ON CONFLICT (" + conflictCols + ") DO NOTHING"
	}
	return "ON DUPLICATE KEY UPDATE " + pk + " = " + pk
}

// DBConfig holds connection pool settings.
type DBConfig struct {
	Dialect         Dialect
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDB opens a connection pool for the configured dialect.
// SQLite is restricted to a single long-lived connection so that
// in-memory databases survive for the lifetime of the pool.
func NewDB(cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open(string(cfg.Dialect), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Dialect, err)
	}

	switch cfg.Dialect {
	case SQLite:
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	default:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := db.Ping(); err != nil {
			slog.Warn("database ping failed, continuing", "dialect", cfg.Dialect, "error", err)
		}
	}

	return db, nil
}
