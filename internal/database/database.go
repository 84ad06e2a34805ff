// Package database handles connection management for the PostgreSQL and
// SQLite backends and migration execution using goose. It provides a
// Connect function that returns a ready-to-use *sql.DB pool and a Migrate
// function for schema management.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"rango/internal/config"
)

//go:embed migrations
var embedMigrations embed.FS

// Connect opens a connection pool for the given driver ("postgres" or
// "sqlite") and verifies it with a ping before returning.
//
// SQLite pools are pinned to a single connection: the database allows one
// writer, and an in-memory database lives only as long as its connection.
func Connect(driver, dsn string) (*sql.DB, error) {
	var driverName string
	switch driver {
	case config.DriverPostgres:
		driverName = "pgx"
	case config.DriverSQLite:
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("database open: unsupported driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("database pragma: %w", err)
		}
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// Migrate runs all pending goose migrations for the driver's dialect from
// the embedded SQL files. Migrations are embedded at compile time so no
// external files are needed at runtime.
func Migrate(db *sql.DB, driver string) error {
	var dialect string
	switch driver {
	case config.DriverPostgres:
		dialect = "postgres"
	case config.DriverSQLite:
		dialect = "sqlite3"
	default:
		return fmt.Errorf("goose set dialect: unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, path.Join("migrations", driver)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "driver", driver)
	return nil
}
