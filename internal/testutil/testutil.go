// internal/testutil/testutil.go
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/your-org/restaurant-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// OpenDB opens an isolated in-memory database and migrates the given models.
// Each call gets its own database; the shared cache only ties together the
// pooled connections of one test.
func OpenDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test models: %v", err)
	}

	return db
}

// NewConfig returns a configuration with the defaults the services expect
func NewConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Restaurant Backend",
			Environment: "test",
		},
		Costing: config.CostingConfig{
			Markup: 1.33,
		},
	}
}
