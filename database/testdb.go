package database

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTest opens a migrated database in a temporary directory that is
// removed when the test finishes.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := open(filepath.Join(t.TempDir(), "test.db"), gormlogger.Default.LogMode(gormlogger.Silent))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}
