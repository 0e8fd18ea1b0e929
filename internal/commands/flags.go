package commands

import (
	"os"
	"path/filepath"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Shop credentials override the config file when set.
	Shop        string
	AccessToken string
	APIKey      string
	Source      string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Overrides returns the credential flags as config overrides.
func (f *Flags) Overrides() config.Overrides {
	return config.Overrides{
		Shop:        f.Shop,
		AccessToken: f.AccessToken,
		APIKey:      f.APIKey,
		Source:      f.Source,
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shopsearch", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shopsearch")
}
