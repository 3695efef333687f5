package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/adlerOmonte1/AItime/internal/log"
	"github.com/adlerOmonte1/AItime/internal/weather/providers"
)

type AppConfig struct {
	Port string

	// ModelFile is the interpolation dataset: a JSON or MessagePack file,
	// optionally zstd-compressed, or a Badger directory.
	ModelFile string

	// Trend window and fallback threshold.
	HistoryStartYear int
	HistoryEndYear   int
	MinTrendSamples  int
	ForecastWorkers  int

	HTTPTimeout time.Duration
	// LookupTimeout bounds all outbound calls of one lookup, retries included.
	LookupTimeout time.Duration

	// Forecast memo cache.
	CacheMaxEntries    int           // 0 disables the cache
	CacheMaxAge        time.Duration // 0 = unlimited
	CacheSweepInterval time.Duration

	NominatimURL       string
	NominatimUserAgent string
	GoogleAPIKey       string
	ArchiveURL         string

	StaticDir string
	Debug     bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8000")
	cfg.ModelFile = getenvDefault("MODEL_FILE", "datos_interpolacion.json")

	cfg.HistoryStartYear = getenvInt("HISTORY_START_YEAR", 2015)
	cfg.HistoryEndYear = getenvInt("HISTORY_END_YEAR", 2024)
	cfg.MinTrendSamples = getenvInt("MIN_TREND_SAMPLES", 4)
	cfg.ForecastWorkers = getenvInt("FORECAST_WORKERS", 4)

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = getenvDuration("LOOKUP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}

	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 1024)
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", "1h"); err != nil {
		return nil, err
	}
	if cfg.CacheSweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, err
	}

	cfg.NominatimURL = getenvDefault("NOMINATIM_URL", providers.DefaultNominatimURL)
	cfg.NominatimUserAgent = getenvDefault("NOMINATIM_USER_AGENT", providers.DefaultUserAgent)
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.ArchiveURL = getenvDefault("ARCHIVE_URL", providers.DefaultArchiveURL)

	cfg.StaticDir = os.Getenv("STATIC_DIR")
	cfg.Debug = getenvBool("DEBUG", false)

	return cfg, nil
}

// Validate checks value ranges.
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.ModelFile == "" {
		return fmt.Errorf("model file is required")
	}
	if c.HistoryEndYear < c.HistoryStartYear {
		return fmt.Errorf("history end year %d is before start year %d", c.HistoryEndYear, c.HistoryStartYear)
	}
	if c.MinTrendSamples < 2 {
		return fmt.Errorf("min trend samples must be at least 2")
	}
	if c.ForecastWorkers < 1 {
		return fmt.Errorf("forecast workers must be at least 1")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive")
	}
	if c.CacheMaxEntries < 0 || c.CacheMaxAge < 0 {
		return fmt.Errorf("cache limits must not be negative")
	}
	if c.CacheMaxEntries > 0 && c.CacheSweepInterval < time.Minute {
		return fmt.Errorf("cache sweep interval must be at least 1m")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
