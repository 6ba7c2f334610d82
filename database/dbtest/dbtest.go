// Package dbtest provides throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/XTHN9RF/Foodify-API/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a private in-memory sqlite database with every table migrated.
// The pool is pinned to one connection so that all queries, including those
// inside transactions, see the same in-memory database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite://:memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}
