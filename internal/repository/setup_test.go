package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with hand-written DDL,
// since the postgres column defaults in the model tags do not translate
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT,
		name TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`)

	db.Exec(`CREATE TABLE issues (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT,
		labels TEXT
	)`)

	db.Exec(`CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		issue_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		body TEXT NOT NULL
	)`)

	return db
}
