package tester

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emrgen/wiki/internal/model"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	redisAddrEnv = "WIKI_TEST_REDIS_ADDR"
)

// TestDB opens a migrated sqlite database that lives as long as the test.
func TestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wiki.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := model.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// Redis returns a client for the redis server named by WIKI_TEST_REDIS_ADDR
// and skips the test when it is not set.
func Redis(t testing.TB) *redis.Client {
	t.Helper()

	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		t.Skipf("%s not set", redisAddrEnv)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Protocol: 2,
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
