package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Analysis.VolatilityThreshold != 1.5 {
		t.Errorf("expected threshold 1.5, got %v", cfg.Analysis.VolatilityThreshold)
	}
	if cfg.Cache.TTL["movement"] != time.Hour {
		t.Errorf("expected 1h movement TTL, got %v", cfg.Cache.TTL["movement"])
	}
	if cfg.Cache.TTL["holdings"] != 4*time.Hour {
		t.Errorf("expected 4h holdings TTL, got %v", cfg.Cache.TTL["holdings"])
	}
	if cfg.Cache.Retention != 7*24*time.Hour {
		t.Errorf("expected 7d retention, got %v", cfg.Cache.Retention)
	}
	if cfg.Pricing.InputPerMillion != 0.55 || cfg.Pricing.OutputPerMillion != 2.19 {
		t.Errorf("unexpected pricing: %+v", cfg.Pricing)
	}
	if cfg.Budget.Enabled {
		t.Error("budget must be off by default")
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
db_path: /tmp/test.db
provider:
  api_key: ${DEEPSEEK_API_KEY}
  timeout: 30s
cache:
  ttl:
    movement: 2h
analysis:
  volatility_threshold: 2.0
budget:
  enabled: true
  daily_cost_limit: 0.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Provider.APIKey != "sk-from-env" {
		t.Errorf("expected env expansion, got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Provider.Timeout)
	}
	if cfg.Cache.TTL["movement"] != 2*time.Hour {
		t.Errorf("unexpected movement TTL: %v", cfg.Cache.TTL["movement"])
	}
	if cfg.Analysis.VolatilityThreshold != 2.0 {
		t.Errorf("unexpected threshold: %v", cfg.Analysis.VolatilityThreshold)
	}
	if !cfg.Budget.Enabled || cfg.Budget.DailyCostLimit != 0.5 {
		t.Errorf("unexpected budget: %+v", cfg.Budget)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Provider.Model != "deepseek-reasoner" {
		t.Errorf("expected default model, got %s", cfg.Provider.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
