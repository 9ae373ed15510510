package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"masonry/log"
)

const (
	ConfigFileName = "config.json"
	configDirName  = ".masonry"
)

// Cache policies
const (
	// CachePolicyAll records measurements for every box.
	CachePolicyAll = "all"
	// CachePolicySingle records measurements for CacheBoxID only.
	CachePolicySingle = "single"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// Config represents the application configuration. Lengths are in pixels;
// CellWidth and CellHeight map one terminal cell to pixels.
type Config struct {
	// BoxCount is the number of boxes generated at startup.
	BoxCount int `json:"box_count" toml:"box_count"`
	// MaxColumnWidth is the widest a column may get before another column is added.
	MaxColumnWidth float64 `json:"max_column_width" toml:"max_column_width"`
	// MinBoxWidth and MaxBoxWidth bound the rendered width of a box.
	MinBoxWidth float64 `json:"min_box_width" toml:"min_box_width"`
	MaxBoxWidth float64 `json:"max_box_width" toml:"max_box_width"`
	// MinBoxHeight is the smallest provisional height. HeightSpread is the size of
	// the random range added on top of it.
	MinBoxHeight int `json:"min_box_height" toml:"min_box_height"`
	HeightSpread int `json:"height_spread" toml:"height_spread"`
	// ColumnGap is the horizontal gap between columns.
	ColumnGap float64 `json:"column_gap" toml:"column_gap"`
	// CellWidth and CellHeight are the pixel size of one terminal cell.
	CellWidth  int `json:"cell_width" toml:"cell_width"`
	CellHeight int `json:"cell_height" toml:"cell_height"`
	// CachePolicy is "all" or "single".
	CachePolicy string `json:"cache_policy" toml:"cache_policy"`
	// CacheBoxID is the only box recorded when CachePolicy is "single".
	CacheBoxID int `json:"cache_box_id" toml:"cache_box_id"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BoxCount:       120,
		MaxColumnWidth: 256,
		MinBoxWidth:    96,
		MaxBoxWidth:    256,
		MinBoxHeight:   80,
		HeightSpread:   160,
		ColumnGap:      16,
		CellWidth:      8,
		CellHeight:     16,
		CachePolicy:    CachePolicyAll,
		CacheBoxID:     0,
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.BoxCount < 0 {
		errs = append(errs, fmt.Errorf("box_count must not be negative, got %d", c.BoxCount))
	}
	if c.MaxColumnWidth <= 0 {
		errs = append(errs, fmt.Errorf("max_column_width must be positive, got %v", c.MaxColumnWidth))
	}
	if c.MinBoxWidth < 0 || c.MaxBoxWidth < c.MinBoxWidth {
		errs = append(errs, fmt.Errorf("box width bounds are invalid: min=%v max=%v", c.MinBoxWidth, c.MaxBoxWidth))
	}
	if c.MinBoxHeight < 0 {
		errs = append(errs, fmt.Errorf("min_box_height must not be negative, got %d", c.MinBoxHeight))
	}
	if c.HeightSpread <= 0 {
		errs = append(errs, fmt.Errorf("height_spread must be positive, got %d", c.HeightSpread))
	}
	if c.ColumnGap < 0 {
		errs = append(errs, fmt.Errorf("column_gap must not be negative, got %v", c.ColumnGap))
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight))
	}
	switch c.CachePolicy {
	case CachePolicyAll, CachePolicySingle:
	default:
		errs = append(errs, fmt.Errorf("cache_policy must be %q or %q, got %q", CachePolicyAll, CachePolicySingle, c.CachePolicy))
	}
	return errors.Join(errs...)
}

// LoadConfig loads the configuration from the config directory, writing the
// defaults there on first run. Any failure falls back to the defaults.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Error("failed to get config directory", "err", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Warn("failed to save default config", "err", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Warn("failed to read config file", "err", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Error("failed to parse config file", "path", configPath, "err", err, "preview", preview)

		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Info("backed up corrupted config", "path", backupPath)
		}

		return DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		log.WarningLog.Warn("invalid config, using defaults", "path", configPath, "err", err)
		return DefaultConfig()
	}

	return config
}

// LoadConfigFile reads a config from an explicit path. Files ending in .toml
// are decoded as TOML, everything else as JSON. Unset fields keep their
// default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse toml config %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse json config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
