package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

const (
	BackendGorm   = "gorm"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type Config struct {
	BlobBackend    string
	DbDriver       string
	DbDsn          string
	BadgerPath     string
	RedisAddr      string
	RedisPassword  string
	RedisDb        int
	CacheTTL       time.Duration
	Compression    string
	SiteSecret     string
	LogLevel       string
	ReportSchedule string
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first.
func LoadConfig() *Config {
	return &Config{
		BlobBackend:    getEnv("WIKI_BLOB_BACKEND", BackendGorm),
		DbDriver:       getEnv("WIKI_DB_DRIVER", "sqlite"),
		DbDsn:          getEnv("WIKI_DB_DSN", "wiki.db"),
		BadgerPath:     getEnv("WIKI_BADGER_PATH", "./.data/badger"),
		RedisAddr:      getEnv("WIKI_REDIS_ADDR", ""),
		RedisPassword:  getEnv("WIKI_REDIS_PASSWORD", ""),
		RedisDb:        getEnvInt("WIKI_REDIS_DB", 0),
		CacheTTL:       getEnvDuration("WIKI_CACHE_TTL", time.Hour),
		Compression:    getEnv("WIKI_COMPRESSION", "nop"),
		SiteSecret:     getEnv("WIKI_SITE_SECRET", "siam"),
		LogLevel:       getEnv("WIKI_LOG_LEVEL", "info"),
		ReportSchedule: getEnv("WIKI_REPORT_SCHEDULE", "@every 1h"),
	}
}

func (c *Config) Validate() error {
	switch c.BlobBackend {
	case BackendGorm, BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("unknown blob backend: %s", c.BlobBackend)
	}

	if c.BlobBackend == BackendGorm && c.DbDriver != "sqlite" && c.DbDriver != "postgres" {
		return fmt.Errorf("unknown database driver: %s", c.DbDriver)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
