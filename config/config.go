package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beezkneez/bz-journal/internal/logger"
	"github.com/beezkneez/bz-journal/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tradelog configuration
type Config struct {
	Journal     JournalConfig           `json:"journal" yaml:"journal"`
	Log         logger.Config           `json:"log" yaml:"log"`
	Instruments []market.PointValueRule `json:"instruments,omitempty" yaml:"instruments,omitempty"`
	// Commissions is the default per-session commission total.
	Commissions float64 `json:"commissions" yaml:"commissions"`
	// Timezone of the broker's DateTime column, e.g. "America/New_York".
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile   string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SessionsFile string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.SessionsFile == "") {
		return fmt.Errorf("journal trades_file and sessions_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Commissions < 0 {
		return fmt.Errorf("commissions must not be negative")
	}
	for i, r := range c.Instruments {
		if r.Match == "" {
			return fmt.Errorf("instruments[%d].match is required", i)
		}
		if r.PointValue <= 0 {
			return fmt.Errorf("instruments[%d].point_value must be positive", i)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("unknown timezone: %s", c.Timezone)
	}
	return nil
}

// PointValues returns the lookup table with the configured rules tried
// before the built-in ones.
func (c *Config) PointValues() *market.PointValues {
	return market.NewPointValues(c.Instruments...)
}

// Location resolves Timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradelog.sqlite",
		},
		Log: logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Instruments: append([]market.PointValueRule(nil), market.DefaultRules...),
	}
}
