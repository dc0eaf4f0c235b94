// Package config loads hauldeck settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds everything the dashboard needs to reach its backends and
// place its local state.
type Config struct {
	// APIBaseURL is the trip-planning backend, e.g. http://127.0.0.1:8000/api.
	APIBaseURL string
	// GeocodeURL is the Nominatim-compatible search endpoint.
	GeocodeURL string
	// APITimeout applies to trip API calls only; geocode searches rely on
	// context cancellation.
	APITimeout time.Duration
	// CacheDir holds the local SQLite cache and the log file.
	CacheDir string
	// Theme is "light", "dark" or "" for auto-detection.
	Theme string
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
	// SuccessBanner is how long success banners stay up before
	// auto-dismissing.
	SuccessBanner time.Duration
}

// Load reads configuration from the environment. A missing .env is fine.
func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}
	cfg.APIBaseURL = cast.ToString(getOrReturnDefault("HAULDECK_API_URL", "http://127.0.0.1:8000/api"))
	cfg.GeocodeURL = cast.ToString(getOrReturnDefault("HAULDECK_GEOCODE_URL", "https://nominatim.openstreetmap.org/search"))
	cfg.APITimeout = time.Duration(cast.ToInt(getOrReturnDefault("HAULDECK_TIMEOUT_SECONDS", 10))) * time.Second
	cfg.CacheDir = cast.ToString(getOrReturnDefault("HAULDECK_CACHE_DIR", defaultCacheDir()))
	cfg.Theme = cast.ToString(getOrReturnDefault("HAULDECK_THEME", ""))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("HAULDECK_LOG_LEVEL", "info"))
	cfg.SuccessBanner = time.Duration(cast.ToInt(getOrReturnDefault("HAULDECK_BANNER_SECONDS", 6))) * time.Second

	return cfg
}

// CachePath returns the SQLite file inside the cache dir.
func (c Config) CachePath() string {
	return filepath.Join(c.CacheDir, "hauldeck.db")
}

// LogPath returns the log file inside the cache dir. The TUI owns the
// terminal, so logs never go to stdout in interactive mode.
func (c Config) LogPath() string {
	return filepath.Join(c.CacheDir, "hauldeck.log")
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".hauldeck"
	}
	return filepath.Join(base, "hauldeck")
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
