// Package testdb opens migrated in-memory databases for tests.
package testdb

import (
	"sync/atomic"
	"testing"

	"github.com/5pponent/diary-server/api/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh migrated database private to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// QueryCounter counts the statements a database runs.
type QueryCounter struct {
	n atomic.Int64
}

// CountQueries starts counting every query and row scan issued through db.
// Register it once per database.
func CountQueries(db *gorm.DB) *QueryCounter {
	counter := &QueryCounter{}
	inc := func(*gorm.DB) { counter.n.Add(1) }
	_ = db.Callback().Query().After("gorm:query").Register("testdb:count_query", inc)
	_ = db.Callback().Row().After("gorm:row").Register("testdb:count_row", inc)
	return counter
}

func (c *QueryCounter) Reset() { c.n.Store(0) }

func (c *QueryCounter) Count() int64 { return c.n.Load() }
