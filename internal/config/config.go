// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/mmynk/ratecraft/internal/export"
	"github.com/mmynk/ratecraft/internal/persist"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Addr string

	Store     string
	DBPath    string
	RedisAddr string
	RedisPW   string
	RedisDB   int
	KeyPrefix string

	DownloadTTL time.Duration
	Locale      language.Tag
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration. Unparseable values are errors; missing
// ones take their defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:      getEnv("ADDR", ":8080"),
		Store:     getEnv("STORE", StoreSQLite),
		DBPath:    getEnv("DB_PATH", "./data/ratecraft.db"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPW:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix: getEnv("KEY_PREFIX", persist.DefaultPrefix),
	}

	switch cfg.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return cfg, fmt.Errorf("STORE must be sqlite, redis or memory, got %q", cfg.Store)
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return cfg, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = db

	ttl, err := time.ParseDuration(getEnv("DOWNLOAD_TTL", export.DefaultTTL.String()))
	if err != nil || ttl <= 0 {
		return cfg, fmt.Errorf("invalid DOWNLOAD_TTL %q", os.Getenv("DOWNLOAD_TTL"))
	}
	cfg.DownloadTTL = ttl

	locale, err := language.Parse(getEnv("LOCALE", "en"))
	if err != nil {
		return cfg, fmt.Errorf("invalid LOCALE: %w", err)
	}
	cfg.Locale = locale

	return cfg, nil
}
