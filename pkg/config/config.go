package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all DeepInsight configuration.
type Config struct {
	DBPath   string         `yaml:"db_path"`
	Provider ProviderConfig `yaml:"provider"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Cache    CacheConfig    `yaml:"cache"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Budget   BudgetConfig   `yaml:"budget"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProviderConfig defines the external inference provider.
type ProviderConfig struct {
	URL             string        `yaml:"url"`
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

// PricingConfig holds per-direction token rates in currency per million tokens.
type PricingConfig struct {
	InputPerMillion  float64 `yaml:"input_per_million"`
	OutputPerMillion float64 `yaml:"output_per_million"`
}

// CacheConfig controls analysis caching and the periodic sweep.
type CacheConfig struct {
	TTL           map[string]time.Duration `yaml:"ttl"`
	DefaultTTL    time.Duration            `yaml:"default_ttl"`
	Retention     time.Duration            `yaml:"retention"`
	SweepInterval time.Duration            `yaml:"sweep_interval"`
}

// AnalysisConfig controls orchestration routing and prompt assembly.
type AnalysisConfig struct {
	VolatilityThreshold float64 `yaml:"volatility_threshold"`
	NewsCharBudget      int     `yaml:"news_char_budget"`
	MaxHoldings         int     `yaml:"max_holdings"`
	MaxNews             int     `yaml:"max_news"`
	CacheHitRate        float64 `yaml:"cache_hit_rate"`
	MockMode            bool    `yaml:"mock_mode"`
}

// BudgetConfig caps daily external-inference spend.
type BudgetConfig struct {
	Enabled        bool    `yaml:"enabled"`
	DailyCostLimit float64 `yaml:"daily_cost_limit"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults. Pricing matches the
// DeepSeek published rates (currency per million tokens).
func Default() *Config {
	return &Config{
		DBPath: "deepinsight.db",
		Provider: ProviderConfig{
			URL:             "https://api.deepseek.com",
			APIKey:          os.Getenv("DEEPSEEK_API_KEY"),
			Model:           "deepseek-reasoner",
			MaxOutputTokens: 8000,
			Timeout:         90 * time.Second,
		},
		Pricing: PricingConfig{
			InputPerMillion:  0.55,
			OutputPerMillion: 2.19,
		},
		Cache: CacheConfig{
			TTL: map[string]time.Duration{
				"movement":     time.Hour,
				"holdings":     4 * time.Hour,
				"news_summary": 2 * time.Hour,
			},
			DefaultTTL:    time.Hour,
			Retention:     7 * 24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Analysis: AnalysisConfig{
			VolatilityThreshold: 1.5,
			NewsCharBudget:      300,
			MaxHoldings:         5,
			MaxNews:             3,
			CacheHitRate:        0.7,
		},
		Budget: BudgetConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
