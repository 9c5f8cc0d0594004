package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MarketplaceConfig describes the marketplace whose listings are accepted.
type MarketplaceConfig struct {
	Domain              string   `yaml:"domain"`
	ListingPathMarker   string   `yaml:"listing_path_marker"`
	TitleSuffix         string   `yaml:"title_suffix"`
	BoilerplatePrefixes []string `yaml:"boilerplate_prefixes"`
	PlaceholderImageURL string   `yaml:"placeholder_image_url"`
}

// FetchSettings controls the fetch layer.
type FetchSettings struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Browser   bool          `yaml:"browser"`
	CacheDir  string        `yaml:"cache_dir"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// ResearchSettings controls market research. A zero seed means a fresh
// random seed per process.
type ResearchSettings struct {
	Seed uint64 `yaml:"seed"`
}

// OutputSettings controls where the CLI writes artifacts.
type OutputSettings struct {
	Dir    string `yaml:"dir"`
	DBPath string `yaml:"db_path"`
}

// LogSettings controls the CLI logger.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds runtime configuration. Values come from an optional YAML
// file, then .env / LISTING_* environment variables, then CLI flags.
type Config struct {
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	Fetch       FetchSettings     `yaml:"fetch"`
	Research    ResearchSettings  `yaml:"research"`
	Output      OutputSettings    `yaml:"output"`
	Log         LogSettings       `yaml:"log"`
}

// DefaultMarketplace returns the built-in eBay marketplace settings.
func DefaultMarketplace() MarketplaceConfig {
	return MarketplaceConfig{
		Domain:              "ebay.com",
		ListingPathMarker:   "/itm/",
		TitleSuffix:         "| eBay",
		BoilerplatePrefixes: []string{"Details about", "Details About", "New Listing", "NEW LISTING"},
		PlaceholderImageURL: "https://via.placeholder.com/500x500.png?text=No+Image+Available",
	}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Marketplace: DefaultMarketplace(),
		Fetch: FetchSettings{
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			CacheTTL:  time.Hour,
		},
		Output: OutputSettings{
			Dir:    "output",
			DBPath: "listing-optimizer.db",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. A missing
// file is not an error. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// A missing .env file just means system env vars are used.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTING_MARKETPLACE_DOMAIN"); v != "" {
		c.Marketplace.Domain = v
	}
	if v := os.Getenv("LISTING_PATH_MARKER"); v != "" {
		c.Marketplace.ListingPathMarker = v
	}
	if v := os.Getenv("LISTING_USER_AGENT"); v != "" {
		c.Fetch.UserAgent = v
	}
	if v := os.Getenv("LISTING_CACHE_DIR"); v != "" {
		c.Fetch.CacheDir = v
	}
	if v := os.Getenv("LISTING_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("LISTING_DB_PATH"); v != "" {
		c.Output.DBPath = v
	}
	if v := os.Getenv("LISTING_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LISTING_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LISTING_FETCH_TIMEOUT: %w", err)
		}
		c.Fetch.Timeout = d
	}
	if v := os.Getenv("LISTING_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LISTING_BROWSER: %w", err)
		}
		c.Fetch.Browser = b
	}
	if v := os.Getenv("LISTING_RESEARCH_SEED"); v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LISTING_RESEARCH_SEED: %w", err)
		}
		c.Research.Seed = seed
	}
	return nil
}

// fillDefaults restores required values a partial YAML file left empty.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Marketplace.Domain == "" {
		c.Marketplace.Domain = def.Marketplace.Domain
	}
	if c.Marketplace.ListingPathMarker == "" {
		c.Marketplace.ListingPathMarker = def.Marketplace.ListingPathMarker
	}
	if len(c.Marketplace.BoilerplatePrefixes) == 0 {
		c.Marketplace.BoilerplatePrefixes = def.Marketplace.BoilerplatePrefixes
	}
	if c.Marketplace.PlaceholderImageURL == "" {
		c.Marketplace.PlaceholderImageURL = def.Marketplace.PlaceholderImageURL
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = def.Fetch.Timeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = def.Fetch.UserAgent
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
