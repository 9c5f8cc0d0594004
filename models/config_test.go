package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Marketplace.Domain != "ebay.com" {
		t.Errorf("Domain = %q, want ebay.com", cfg.Marketplace.Domain)
	}
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Fetch.Timeout)
	}
}

func TestLoadConfig_YAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
marketplace:
  domain: ebay.co.uk
fetch:
  timeout: 5s
research:
  seed: 42
log:
  format: json
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LISTING_OUTPUT_DIR", "/tmp/listings")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Marketplace.Domain != "ebay.co.uk" {
		t.Errorf("Domain = %q, want ebay.co.uk", cfg.Marketplace.Domain)
	}
	if cfg.Marketplace.ListingPathMarker != "/itm/" {
		t.Errorf("ListingPathMarker = %q, want default /itm/", cfg.Marketplace.ListingPathMarker)
	}
	if cfg.Fetch.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Fetch.Timeout)
	}
	if cfg.Research.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Research.Seed)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Log.Format)
	}
	if cfg.Output.Dir != "/tmp/listings" {
		t.Errorf("Output.Dir = %q, want env override", cfg.Output.Dir)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("LISTING_FETCH_TIMEOUT", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for invalid LISTING_FETCH_TIMEOUT")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("marketplace: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
