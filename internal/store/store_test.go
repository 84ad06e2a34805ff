// store_test.go provides a shared test database helper for all store
// tests. Each test gets its own migrated in-memory SQLite database, so the
// suite needs no external services.
package store

import (
	"database/sql"
	"testing"

	"rango/internal/config"
	"rango/internal/database"
)

// testDB opens a fresh in-memory SQLite database and runs migrations.
// A cleanup function is registered to close the connection when the test
// finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db, config.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
