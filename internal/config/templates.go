package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Copilot Configuration

[api]
# Copilot server address. The dev frontend proxies /api/* here (port 8001).
base_url = "http://localhost:8001"
# Chart data fetch timeout
market_timeout = "30s"
# Full pipeline run deadline. Exceeding it surfaces a timeout banner.
analyze_timeout = "5m"
# Transient-failure retry attempts for GET endpoints
retry_attempts = 1

[risk]
# Minimum risk-reward ratio an executable BUY must carry
min_risk_reward = 1.5

[chart]
# SVG chart dimensions in pixels
width = 960
height = 520
# Directory where chart SVGs are written
output_dir = "."

[ui]
# Enable colored output
color_enabled = true
# Theme: "dark" or "light"
theme = "dark"
# Date format
date_format = "02-Jan-2006"
`

// createTemplateConfig writes a starter config.toml so the user has
// something to edit on first run.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
