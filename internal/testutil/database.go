package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Saved calculation table
		CREATE TABLE IF NOT EXISTS calculation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			mode VARCHAR(25) NOT NULL,
			initial_investment FLOAT NOT NULL DEFAULT 0,
			outcome FLOAT NOT NULL DEFAULT 0,
			rate FLOAT NOT NULL DEFAULT 0,
			years FLOAT NOT NULL DEFAULT 0,
			unit_price FLOAT NOT NULL DEFAULT 0,
			success_rate FLOAT NOT NULL DEFAULT 0,
			outcome_per_unit FLOAT NOT NULL DEFAULT 0,
			investor_share FLOAT NOT NULL DEFAULT 0,
			fee_percentage FLOAT NOT NULL DEFAULT 0,
			initial_date DATE NOT NULL,
			calculated_result FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Follow-on investment table
		CREATE TABLE IF NOT EXISTS follow_on_investment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			calculation_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			valuation_mode VARCHAR(10) NOT NULL,
			valuation_type VARCHAR(10),
			rate FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(calculation_id) REFERENCES calculation(id) ON DELETE CASCADE
		);

		-- Unit batch table
		CREATE TABLE IF NOT EXISTS unit_batch (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			calculation_id VARCHAR(36) NOT NULL,
			investment_amount FLOAT NOT NULL,
			unit_price FLOAT NOT NULL,
			date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(calculation_id) REFERENCES calculation(id) ON DELETE CASCADE
		);
	`

	_, err := db.Exec(schema)
	return err
}
