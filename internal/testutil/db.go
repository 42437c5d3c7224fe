// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/noble-it/hub/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated, isolated in-memory SQLite database with foreign
// keys enforced. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	cfg := db.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	gdb, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// writers the way a real transactional store would.
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gdb))

	return gdb
}

// FailOnCreate makes every INSERT into table fail inside the given database
// handle, simulating a constraint violation or a dropped connection.
func FailOnCreate(t *testing.T, gdb *gorm.DB, table string, err error) {
	t.Helper()

	name := "testutil:fail_" + table
	require.NoError(t, gdb.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}))

	t.Cleanup(func() {
		_ = gdb.Callback().Create().Remove(name)
	})
}

// Count returns the number of rows of model.
func Count(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}
