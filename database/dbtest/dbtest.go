// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"rplsite/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh migrated sqlite database that lives as long as the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every statement on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "migrate")
	return db
}

// Use installs db as the global database for the duration of the test.
func Use(t testing.TB, db *gorm.DB) {
	t.Helper()
	prev := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { database.Database = prev })
}
