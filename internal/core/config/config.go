// Package config handles configuration loading and validation for shopsearch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"gopkg.in/yaml.v3"
)

// SourceKind selects where product records come from.
type SourceKind string

// Supported record sources.
const (
	SourceShopify SourceKind = "shopify"
	SourceLocal   SourceKind = "local"
)

// IsValid reports whether k is a supported source.
func (k SourceKind) IsValid() bool {
	return k == SourceShopify || k == SourceLocal
}

// Config holds the application configuration.
type Config struct {
	Source   SourceKind     `yaml:"source"`
	Shop     ShopConfig     `yaml:"shop"`
	TUI      TUIConfig      `yaml:"tui"`
	Billing  BillingConfig  `yaml:"billing"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ShopConfig identifies the shop and the Admin API credentials.
type ShopConfig struct {
	Domain            string        `yaml:"domain"` // myshop.myshopify.com
	APIVersion        string        `yaml:"api_version"`
	AccessToken       string        `yaml:"access_token"`
	APIKey            string        `yaml:"api_key"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme       string `yaml:"theme"`
	OpenCommand string `yaml:"open_command"` // launcher for admin pages; empty uses the platform default
}

// BillingConfig describes the app subscription plan offered by `subscribe`.
type BillingConfig struct {
	PlanName        string  `yaml:"plan_name"`
	Test            bool    `yaml:"test"`
	Currency        string  `yaml:"currency"`
	RecurringAmount float64 `yaml:"recurring_amount"`
	CappedAmount    float64 `yaml:"capped_amount"`
	UsageTerms      string  `yaml:"terms"`
}

// DatabaseConfig tunes the local catalog database.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source: SourceShopify,
		Shop: ShopConfig{
			APIVersion:        "2024-01",
			RequestsPerSecond: 2,
			Timeout:           10 * time.Second,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Billing: BillingConfig{
			PlanName:        "Super Duper Plan",
			Test:            true,
			Currency:        "USD",
			RecurringAmount: 10,
			CappedAmount:    10,
			UsageTerms:      "$1 for 1000 emails",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shopsearch", "config.yaml")
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Source == "" {
		c.Source = defaults.Source
	}
	c.Shop.Domain = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(c.Shop.Domain), "https://"), "/")
	if c.Shop.APIVersion == "" {
		c.Shop.APIVersion = defaults.Shop.APIVersion
	}
	if c.Shop.RequestsPerSecond == 0 {
		c.Shop.RequestsPerSecond = defaults.Shop.RequestsPerSecond
	}
	if c.Shop.Timeout == 0 {
		c.Shop.Timeout = defaults.Shop.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Billing.PlanName == "" {
		c.Billing.PlanName = defaults.Billing.PlanName
	}
	if c.Billing.Currency == "" {
		c.Billing.Currency = defaults.Billing.Currency
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is structurally valid. Credentials
// are checked separately by RequireShop since only some commands need them.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Source.IsValid() {
		return fmt.Errorf("source must be %q or %q, got %q", SourceShopify, SourceLocal, c.Source)
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not one of %s", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if c.Shop.RequestsPerSecond < 0 {
		return fmt.Errorf("shop.requests_per_second cannot be negative")
	}

	if c.Shop.Timeout < 0 {
		return fmt.Errorf("shop.timeout cannot be negative")
	}

	if c.Billing.RecurringAmount < 0 || c.Billing.CappedAmount < 0 {
		return fmt.Errorf("billing amounts cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// Overrides are command line values that take precedence over the file.
// Empty fields leave the loaded value untouched.
type Overrides struct {
	Shop        string
	AccessToken string
	APIKey      string
	Source      string
}

// ApplyOverrides sets the non-empty overrides, then normalizes and
// re-validates the configuration.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Shop != "" {
		c.Shop.Domain = o.Shop
	}
	if o.AccessToken != "" {
		c.Shop.AccessToken = o.AccessToken
	}
	if o.APIKey != "" {
		c.Shop.APIKey = o.APIKey
	}
	if o.Source != "" {
		c.Source = SourceKind(o.Source)
	}

	c.applyDefaults()
	return c.Validate()
}

// RequireShop checks that the shop domain and access token are set.
func (c *Config) RequireShop() error {
	if c.Shop.Domain == "" {
		return fmt.Errorf("shop domain is required (set shop.domain, --shop or SHOPSEARCH_SHOP)")
	}
	if c.Shop.AccessToken == "" {
		return fmt.Errorf("access token is required (set shop.access_token, --access-token or SHOPSEARCH_ACCESS_TOKEN)")
	}
	return nil
}

// DatabaseDir returns the directory holding the local catalog.
func (c *Config) DatabaseDir() string {
	return filepath.Join(c.DataDir, "catalog")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "shopsearch.log")
}
