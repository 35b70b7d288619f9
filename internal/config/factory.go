package config

import (
	"fmt"

	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDb opens the gorm database named by the config.
func GetDb(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DbDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DbDsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DbDsn)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.DbDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", cfg.DbDriver, err)
	}

	return db, nil
}

// OpenBlobStore opens the configured blob backend. The gorm backend is
// migrated before it is returned.
func OpenBlobStore(cfg *Config) (blob.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.BlobBackend {
	case BackendMemory:
		logrus.Warn("using the in-memory blob store, nothing will be persisted")
		return blob.NewMemoryStore(), nil
	case BackendBadger:
		return blob.NewBadgerStore(blob.BadgerConfig{
			Path:   cfg.BadgerPath,
			Logger: logrus.StandardLogger(),
		})
	default:
		db, err := GetDb(cfg)
		if err != nil {
			return nil, err
		}

		if err := model.Migrate(db); err != nil {
			return nil, err
		}

		return blob.NewGormStore(db), nil
	}
}

func NewCompressor(cfg *Config) (compress.Compress, error) {
	return compress.New(cfg.Compression)
}

// NewPageCache returns a redis page cache, or a nop cache when no redis
// address is configured.
func NewPageCache(cfg *Config, encoder compress.Compress) cache.PageCache {
	if cfg.RedisAddr == "" {
		return cache.NewNopPageCache()
	}

	client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDb)
	return cache.NewRedisPageCache(client, encoder, cfg.CacheTTL)
}
