package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the top-level bibliodash configuration.
type Config struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	UI  UIConfig  `mapstructure:"ui" yaml:"ui"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig holds REST API connection settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 disables
}

// UIConfig holds dashboard presentation settings.
type UIConfig struct {
	ToastDuration  time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
	LoanPeriodDays int           `mapstructure:"loan_period_days" yaml:"loan_period_days"`
	DateLayout     string        `mapstructure:"date_layout" yaml:"date_layout"` // Go reference layout
}

// LogConfig controls the file logger.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Validate rejects values the dashboard cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q: must be an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive")
	}
	if c.UI.LoanPeriodDays <= 0 {
		return fmt.Errorf("ui.loan_period_days must be positive")
	}
	if c.UI.DateLayout == "" {
		return fmt.Errorf("ui.date_layout must not be empty")
	}
	return nil
}
