// Package config loads and saves spendplan settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/theirongolddev/spendplan/internal/model"
)

// Config holds all spendplan configuration.
type Config struct {
	Budget      BudgetConfig       `toml:"budget"`
	Obligations []ObligationConfig `toml:"obligations"`
	Storage     StorageConfig      `toml:"storage"`
	Appearance  AppearanceConfig   `toml:"appearance"`
	Log         LogConfig          `toml:"log"`
}

// BudgetConfig holds the defaults offered when generating a new ledger.
type BudgetConfig struct {
	Total          float64 `toml:"total"`
	WeekdayAmount  float64 `toml:"weekday_amount"`
	WeekendAmount  float64 `toml:"weekend_amount"`
	Days           int     `toml:"days"`
	CurrencySymbol string  `toml:"currency_symbol"`
}

// ObligationConfig is one entry of the seed obligation list.
type ObligationConfig struct {
	Description string  `toml:"description"`
	Amount      float64 `toml:"amount"`
}

// StorageConfig selects where plans are saved.
type StorageConfig struct {
	DBPath string `toml:"db_path,omitempty"`
	Plan   string `toml:"plan"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// envOverrides are read from the environment on top of the config file.
type envOverrides struct {
	DBPath   string `env:"SPENDPLAN_DB"`
	Plan     string `env:"SPENDPLAN_PLAN"`
	Theme    string `env:"SPENDPLAN_THEME"`
	LogLevel string `env:"SPENDPLAN_LOG_LEVEL"`
	LogFile  string `env:"SPENDPLAN_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Budget: BudgetConfig{
			Total:          2000,
			WeekdayAmount:  40,
			WeekendAmount:  60,
			Days:           30,
			CurrencySymbol: "€",
		},
		Obligations: []ObligationConfig{
			{Description: "Girlfriend gift and dinner", Amount: 300},
			{Description: "Trip expenses", Amount: 500},
		},
		Storage: StorageConfig{
			Plan: "budgetData",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the directory holding the snapshot database and log.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendplan")
}

// DBPath returns the snapshot database path, honoring the configured override.
func (c Config) DBPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return filepath.Join(DataDir(), "spendplan.db")
}

// LogPath returns the log file path, honoring the configured override.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(DataDir(), "spendplan.log")
}

// SeedObligations converts the configured seed list into model obligations.
func (c Config) SeedObligations() model.Obligations {
	obs := make(model.Obligations, 0, len(c.Obligations))
	for _, o := range c.Obligations {
		obs = append(obs, model.Obligation{Description: o.Description, Amount: o.Amount})
	}
	return obs
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// An explicit list in the file replaces the default seed rather than merging.
	seed := cfg.Obligations
	cfg.Obligations = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("obligations") {
		cfg.Obligations = seed
	}

	return cfg, nil
}

// ApplyEnv overlays SPENDPLAN_* environment variables onto cfg. The result is
// meant for the running process only and should not be passed to Save.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.DBPath != "" {
		cfg.Storage.DBPath = o.DBPath
	}
	if o.Plan != "" {
		cfg.Storage.Plan = o.Plan
	}
	if o.Theme != "" {
		cfg.Appearance.Theme = o.Theme
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
