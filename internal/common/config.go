// Package common provides shared utilities for Hodlwatch
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Hodlwatch
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Clients     ClientsConfig   `toml:"clients"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PortfolioConfig holds the location of the persisted holdings record.
type PortfolioConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	CoinMarketCap CoinMarketCapConfig `toml:"coinmarketcap"`
	Telegram      TelegramConfig      `toml:"telegram"`
}

// CoinMarketCapConfig holds CoinMarketCap API configuration
type CoinMarketCapConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *CoinMarketCapConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BaseURL    string `toml:"base_url"`
	Token      string `toml:"token"`
	WebhookURL string `toml:"webhook_url"`
	Timeout    string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *TelegramConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Portfolio: PortfolioConfig{
			Path: "portfolio.json",
		},
		Clients: ClientsConfig{
			CoinMarketCap: CoinMarketCapConfig{
				BaseURL:   "https://pro-api.coinmarketcap.com",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Telegram: TelegramConfig{
				BaseURL: "https://api.telegram.org",
				Timeout: "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("HODL_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("HODL_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("HODL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("HODL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("HODL_PORTFOLIO_PATH"); path != "" {
		config.Portfolio.Path = path
	}

	// Client credentials come from the environment in deployed setups
	for _, name := range []string{"CMC_API_KEY", "COINMARKETCAP_API_KEY", "HODL_CMC_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.CoinMarketCap.APIKey = v
			break
		}
	}

	for _, name := range []string{"TELEGRAM_BOT_TOKEN", "HODL_TELEGRAM_TOKEN"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Telegram.Token = v
			break
		}
	}

	for _, name := range []string{"HODL_WEBHOOK_URL", "RAILWAY_PUBLIC_DOMAIN"} {
		if v := os.Getenv(name); v != "" {
			if !strings.Contains(v, "://") {
				v = "https://" + v
			}
			config.Clients.Telegram.WebhookURL = v
			break
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
