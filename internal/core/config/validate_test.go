package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Shop.Domain = "demo.myshopify.com"
	cfg.Shop.AccessToken = "shpat_123"
	cfg.Shop.APIKey = "key123"
	return &cfg
}

func fieldNames(errs criterio.FieldErrors) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Source = "csv"

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	assert.False(t, errors.As(err, &fieldErrs), "structural errors are plain errors")
}

func TestValidateDeep_Shop(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad domain", func(c *Config) { c.Shop.Domain = "not a domain" }, "shop.domain"},
		{"bad api version", func(c *Config) { c.Shop.APIVersion = "2024-02" }, "shop.api_version"},
		{"missing domain for shopify", func(c *Config) { c.Shop.Domain = "" }, "shop.domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
			assert.Contains(t, fieldNames(fieldErrs), tt.field)
		})
	}
}

func TestValidateDeep_LocalSourceNeedsNoDomain(t *testing.T) {
	cfg := validConfig(t)
	cfg.Source = SourceLocal
	cfg.Shop.Domain = ""

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_UnstableAPIVersion(t *testing.T) {
	cfg := validConfig(t)
	cfg.Shop.APIVersion = "unstable"

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_Billing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad currency", func(c *Config) { c.Billing.Currency = "usd" }, "billing.currency"},
		{"no amounts", func(c *Config) { c.Billing.RecurringAmount, c.Billing.CappedAmount = 0, 0 }, "billing"},
		{"capped without terms", func(c *Config) { c.Billing.UsageTerms = "" }, "billing.terms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
			assert.Contains(t, fieldNames(fieldErrs), tt.field)
		})
	}
}

func TestValidateDeep_FileAccess(t *testing.T) {
	t.Run("config path is a directory", func(t *testing.T) {
		cfg := validConfig(t)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(t.TempDir()), &fieldErrs)
		assert.Contains(t, fieldNames(fieldErrs), "config_file")
	})

	t.Run("missing config file is fine", func(t *testing.T) {
		cfg := validConfig(t)
		assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml")))
	})

	t.Run("data dir is a file", func(t *testing.T) {
		cfg := validConfig(t)
		file := filepath.Join(t.TempDir(), "data")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		cfg.DataDir = file

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
		assert.Contains(t, fieldNames(fieldErrs), "data_dir")
	})

	t.Run("open command not on path", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.TUI.OpenCommand = "definitely-not-a-launcher-12345 --new-tab"

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
		assert.Contains(t, fieldNames(fieldErrs), "tui.open_command")
	})
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.Billing.Test = false
	assert.Empty(t, cfg.Warnings())

	cfg.Shop.AccessToken = ""
	cfg.Billing.Test = true
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Shop", warnings[0].Category)
	assert.Equal(t, "Billing", warnings[1].Category)
}
