// Package config holds the application configuration: data directories,
// fetch behavior, and the evaluation policy knobs (trailing window, verdict
// band cut points) that the observed checklist drafts disagreed on.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir   string `json:"project_dir"`
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`
	ResultsDir   string `json:"results_dir"`

	// Fetch behavior.
	FetchTimeout time.Duration `json:"fetch_timeout"`
	CacheEnabled bool          `json:"cache_enabled"`
	CacheTTL     time.Duration `json:"cache_ttl"`
	PricePeriod  string        `json:"price_period"` // 1y, 3y, 5y, 10y or max

	// Evaluation policy.
	WindowYears  int     `json:"window_years"`  // trailing fiscal years per check
	StrongCut    float64 `json:"strong_cut"`    // pass fraction for "Strong Candidate"
	WatchlistCut float64 `json:"watchlist_cut"` // pass fraction for "Watchlist"

	Debug bool `json:"debug"`
}

// ValidPricePeriods are the selectable trailing price-history windows.
var ValidPricePeriods = []string{"1y", "3y", "5y", "10y", "max"}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	return &Config{
		ProjectDir:   currentDir,
		DataDir:      filepath.Join(currentDir, "data"),
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),
		ResultsDir:   filepath.Join(currentDir, "results"),

		FetchTimeout: 30 * time.Second,
		CacheEnabled: true,
		CacheTTL:     24 * time.Hour,
		PricePeriod:  "10y",

		WindowYears:  10,
		StrongCut:    0.80,
		WatchlistCut: 0.50,

		Debug: false,
	}
}

// Load builds the configuration from defaults overlaid with environment
// variables. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone may carry overrides.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("VIC_DATA_DIR"); v != "" {
		cfg.DataDir = v
		cfg.DataCacheDir = filepath.Join(v, "cache")
	}
	if v := os.Getenv("VIC_RESULTS_DIR"); v != "" {
		cfg.ResultsDir = v
	}
	if v := os.Getenv("VIC_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VIC_FETCH_TIMEOUT %q: %w", v, err)
		}
		cfg.FetchTimeout = d
	}
	if v := os.Getenv("VIC_CACHE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VIC_CACHE_ENABLED %q: %w", v, err)
		}
		cfg.CacheEnabled = b
	}
	if v := os.Getenv("VIC_PRICE_PERIOD"); v != "" {
		cfg.PricePeriod = v
	}
	if v := os.Getenv("VIC_WINDOW_YEARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VIC_WINDOW_YEARS %q: %w", v, err)
		}
		cfg.WindowYears = n
	}
	if v := os.Getenv("VIC_STRONG_CUT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid VIC_STRONG_CUT %q: %w", v, err)
		}
		cfg.StrongCut = f
	}
	if v := os.Getenv("VIC_WATCHLIST_CUT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid VIC_WATCHLIST_CUT %q: %w", v, err)
		}
		cfg.WatchlistCut = f
	}
	if v := os.Getenv("VIC_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the evaluation policy up front so a bad window or band
// never surfaces mid-evaluation.
func (c *Config) Validate() error {
	if c.WindowYears < 1 || c.WindowYears > 20 {
		return fmt.Errorf("window years must be between 1 and 20, got %d", c.WindowYears)
	}
	if c.StrongCut < 0 || c.StrongCut > 1 {
		return fmt.Errorf("strong cut must be within [0, 1], got %v", c.StrongCut)
	}
	if c.WatchlistCut < 0 || c.WatchlistCut > 1 {
		return fmt.Errorf("watchlist cut must be within [0, 1], got %v", c.WatchlistCut)
	}
	if c.WatchlistCut > c.StrongCut {
		return fmt.Errorf("watchlist cut %v must not exceed strong cut %v", c.WatchlistCut, c.StrongCut)
	}
	valid := false
	for _, p := range ValidPricePeriods {
		if c.PricePeriod == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid price period %q (valid: %v)", c.PricePeriod, ValidPricePeriods)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.FetchTimeout)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, c.DataCacheDir, c.ResultsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
