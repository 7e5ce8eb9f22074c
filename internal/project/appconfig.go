package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/GiftPack/internal/model"
)

// DefaultConfigDir returns the directory holding GiftPack's configuration,
// catalogs and result archives: ~/.giftpack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".giftpack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// writeJSON marshals v with indentation and writes it to path, creating any
// missing parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	normalizeConfig(&config)
	return config, nil
}

func normalizeConfig(config *model.AppConfig) {
	if config.RecentInputs == nil {
		config.RecentInputs = []string{}
	}
	if config.ExportFormats == nil {
		config.ExportFormats = []string{}
	}
}
