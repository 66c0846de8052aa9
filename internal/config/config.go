package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/flock"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

const configFile = ".starterkit/config.json"
const lockFile = ".starterkit/config.json.lock"

// Load reads the config from disk. A missing file yields an empty config.
func Load(baseDir string) (*models.Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, configPath)
}

// update runs a read-modify-write of the config under the config lock.
func update(baseDir string, fn func(cfg *models.Config)) error {
	lockPath := filepath.Join(baseDir, lockFile)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}
	return flock.With(lockPath, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		fn(cfg)
		return Save(baseDir, cfg)
	})
}

// GetFilterState returns the saved dashboard filter
func GetFilterState(baseDir string) (models.FilterState, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return models.FilterState{}, err
	}
	return cfg.Filter, nil
}

// SetFilterState saves the dashboard filter
func SetFilterState(baseDir string, state models.FilterState) error {
	return update(baseDir, func(cfg *models.Config) { cfg.Filter = state })
}

// ClearFilterState resets the saved dashboard filter
func ClearFilterState(baseDir string) error {
	return SetFilterState(baseDir, models.FilterState{})
}

// SetDisplay saves the currency symbol and locale used to format prices.
// Empty values restore the defaults.
func SetDisplay(baseDir, currency, locale string) error {
	if locale != "" {
		if _, err := language.Parse(locale); err != nil {
			return err
		}
	}
	return update(baseDir, func(cfg *models.Config) {
		cfg.Currency = currency
		cfg.Locale = locale
	})
}

// Domains returns the price and stock domains formatted per the config's
// display settings.
func Domains(cfg *models.Config) (price, stock rangefilter.Domain) {
	tag := language.English
	if cfg.Locale != "" {
		if t, err := language.Parse(cfg.Locale); err == nil {
			tag = t
		}
	}
	currency := cfg.Currency
	if currency == "" {
		currency = rangefilter.DefaultCurrency
	}
	return rangefilter.NewPriceDomain(currency, tag), rangefilter.NewStockDomain(tag)
}
