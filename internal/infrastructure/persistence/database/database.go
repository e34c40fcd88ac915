// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	Driver string
}

// Options selects and tunes the backing store.
type Options struct {
	DatabaseType    string // "sqlite3" or "turso"
	SQLitePath      string
	TursoURL        string
	TursoToken      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConnection establishes a new database connection for the specified driver.
func NewConnection(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, Driver: driverName}, nil
}

// Open resolves Options to a driver and DSN, connects, and applies pool settings.
func Open(opts Options, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	driver, dsn, err := resolveDSN(opts)
	if err != nil {
		return nil, err
	}
	logger.Database().Debug("Creating new database connection", "driverName", driver)

	db, err := NewConnection(driver, dsn)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driver)
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	logger.Database().Info("Database connection established", "driverName", driver, "duration", time.Since(start))
	return db, nil
}

func resolveDSN(opts Options) (string, string, error) {
	switch opts.DatabaseType {
	case "turso", "libsql":
		if opts.TursoURL == "" {
			return "", "", fmt.Errorf("turso database selected but no database URL configured")
		}
		dsn := opts.TursoURL
		if opts.TursoToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", opts.TursoURL, opts.TursoToken)
		}
		return "libsql", dsn, nil
	case "", "sqlite3", "sqlite":
		path := opts.SQLitePath
		if path == "" {
			path = "data/site.db"
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return "", "", fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return "sqlite3", path + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", opts.DatabaseType)
	}
}
