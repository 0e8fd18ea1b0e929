package config

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

var (
	shopDomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.[a-z0-9-]+)+$`)
	apiVersionRe = regexp.MustCompile(`^\d{4}-(01|04|07|10)$|^unstable$`)
	currencyRe   = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ValidateDeep performs comprehensive validation of the configuration including
// shop settings, billing plan and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateShop(),
		c.validateBilling(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Source == SourceShopify && c.Shop.AccessToken == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Shop",
			Item:     "access_token",
			Message:  "no access token configured; pass --access-token or use source: local",
		})
	}

	if c.Billing.Test {
		warnings = append(warnings, ValidationWarning{
			Category: "Billing",
			Item:     "test",
			Message:  "subscriptions are created as test charges",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory and the open command.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("tui.open_command", c.TUI.OpenCommand, executableExists),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// executableExists validates that the first word of a command is on PATH.
func executableExists(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("executable not found: %s", fields[0])
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateShop() error {
	var errs criterio.FieldErrorsBuilder

	if c.Shop.Domain != "" && !shopDomainRe.MatchString(c.Shop.Domain) {
		errs = errs.Append("shop.domain", fmt.Errorf("invalid shop domain %q", c.Shop.Domain))
	}
	if !apiVersionRe.MatchString(c.Shop.APIVersion) {
		errs = errs.Append("shop.api_version", fmt.Errorf("invalid api version %q, expected YYYY-MM", c.Shop.APIVersion))
	}
	if c.Source == SourceShopify && c.Shop.Domain == "" {
		errs = errs.Append("shop.domain", fmt.Errorf("required when source is %q", SourceShopify))
	}

	return errs.ToError()
}

func (c *Config) validateBilling() error {
	var errs criterio.FieldErrorsBuilder

	if !currencyRe.MatchString(c.Billing.Currency) {
		errs = errs.Append("billing.currency", fmt.Errorf("invalid currency code %q", c.Billing.Currency))
	}
	if c.Billing.RecurringAmount == 0 && c.Billing.CappedAmount == 0 {
		errs = errs.Append("billing", fmt.Errorf("plan has no recurring or capped amount"))
	}
	if c.Billing.CappedAmount > 0 && c.Billing.UsageTerms == "" {
		errs = errs.Append("billing.terms", fmt.Errorf("required when capped_amount is set"))
	}
	if c.Shop.Domain != "" && c.Shop.APIKey != "" {
		returnURL := fmt.Sprintf("https://%s/admin/apps/%s/", c.Shop.Domain, c.Shop.APIKey)
		if _, err := url.Parse(returnURL); err != nil {
			errs = errs.Append("shop.api_key", fmt.Errorf("produces invalid return url: %w", err))
		}
	}

	return errs.ToError()
}
