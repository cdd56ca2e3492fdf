// Package config provides configuration management for the analysis workspace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Risk  RiskConfig  `mapstructure:"risk"`
	Chart ChartConfig `mapstructure:"chart"`
	UI    UIConfig    `mapstructure:"ui"`
}

// APIConfig holds dashboard API connection configuration.
type APIConfig struct {
	// BaseURL is the copilot server address. In development the frontend
	// proxies /api/* to port 8001; the CLI talks to it directly.
	BaseURL        string        `mapstructure:"base_url"`
	MarketTimeout  time.Duration `mapstructure:"market_timeout"`
	AnalyzeTimeout time.Duration `mapstructure:"analyze_timeout"`
	RetryAttempts  int           `mapstructure:"retry_attempts"`
}

// RiskConfig holds risk display configuration.
type RiskConfig struct {
	// MinRiskReward is the minimum ratio an executable BUY must carry.
	MinRiskReward float64 `mapstructure:"min_risk_reward"`
}

// ChartConfig holds chart rendering configuration.
type ChartConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	OutputDir string `mapstructure:"output_dir"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Theme        string `mapstructure:"theme"` // "dark", "light"
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-copilot"
	}
	return filepath.Join(home, ".config", "trade-copilot")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("api.base_url", "http://localhost:8001")
	v.SetDefault("api.market_timeout", 30*time.Second)
	v.SetDefault("api.analyze_timeout", 5*time.Minute)
	v.SetDefault("api.retry_attempts", 1)
	v.SetDefault("risk.min_risk_reward", 1.5)
	v.SetDefault("chart.width", 960)
	v.SetDefault("chart.height", 520)
	v.SetDefault("chart.output_dir", ".")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.date_format", "02-Jan-2006")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Config file not found, create template and continue on defaults
		if err := createTemplateConfig(configDir); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COPILOT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("COPILOT_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.AnalyzeTimeout <= 0 {
		return fmt.Errorf("api.analyze_timeout must be positive")
	}
	if c.Risk.MinRiskReward < 0 {
		return fmt.Errorf("risk.min_risk_reward must be non-negative")
	}
	if c.Chart.Width < 120 || c.Chart.Height < 120 {
		return fmt.Errorf("chart dimensions too small: %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("invalid theme: %s (must be 'dark' or 'light')", c.UI.Theme)
	}
	return nil
}
