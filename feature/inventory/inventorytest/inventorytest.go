// Package inventorytest provides an in-memory catalog database for tests.
package inventorytest

import (
	"testing"

	"par-manager/core/database"
	"par-manager/feature/inventory"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, private in-memory sqlite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, inventory.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a store over a fresh database.
func NewStore(t testing.TB) *inventory.Store {
	t.Helper()
	return inventory.NewStore(NewDB(t))
}
