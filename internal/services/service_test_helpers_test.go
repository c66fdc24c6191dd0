package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens an isolated in-memory database with the full schema.
// Each call gets its own named shared-cache database so gorm's connection
// pool sees one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestConfig() *config.Config {
	cfg := config.New()
	cfg.VisionAPIKey = "test-key"
	cfg.VisionBaseURL = "http://vision.test"
	cfg.IdentifyWorkers = 1
	cfg.IdentifyQueueSize = 4
	cfg.FailedLoginDelay = 0
	cfg.BcryptCost = 4
	return cfg
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }
