// Package testdb opens throwaway SQLite databases for service and handler tests.
package testdb

import (
	"fmt"
	"testing"

	"LF-ADMIN/internal"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a migrated in-memory database, installs it as internal.DB and
// restores the previous handle when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := internal.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := internal.DB
	internal.DB = db
	t.Cleanup(func() {
		internal.DB = prev
		sqlDB.Close()
	})
	return db
}
