// Package config loads and saves the payoff TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/payoff/internal/model"
)

// Config holds all payoff configuration.
type Config struct {
	Defaults   LoanDefaults     `toml:"defaults"`
	Cache      CacheConfig      `toml:"cache"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// LoanDefaults are the starting knob values for every command.
type LoanDefaults struct {
	Principal        float64 `toml:"principal"`
	InterestRate     float64 `toml:"interest_rate_percent"`
	MonthlyPayment   float64 `toml:"monthly_payment"`
	YearlyTax        float64 `toml:"yearly_tax"`
	YearlyInsurance  float64 `toml:"yearly_insurance"`
	YearsLeft        int     `toml:"years_left"`
	ApplyExtras      bool    `toml:"apply_extras"`
	StrictValidation bool    `toml:"strict_validation"`
}

// CacheConfig controls the whole-result cache.
type CacheConfig struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	TTLSec    int    `toml:"ttl_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds defaults for `payoff serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: LoanDefaults{
			Principal:       250000,
			InterestRate:    6,
			MonthlyPayment:  2000,
			YearlyTax:       2500,
			YearlyInsurance: 3000,
			YearsLeft:       30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTLSec:  int((24 * time.Hour).Seconds()),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
	}
}

// Params converts the loan defaults into engine inputs.
func (d LoanDefaults) Params() model.LoanParameters {
	return model.LoanParameters{
		Principal:                 d.Principal,
		AnnualInterestRatePercent: d.InterestRate,
		MonthlyPayment:            d.MonthlyPayment,
		YearlyTax:                 d.YearlyTax,
		YearlyInsurance:           d.YearlyInsurance,
		TermMonths:                d.YearsLeft * 12,
	}
}

// SetParams stores p as the loan defaults. Terms round down to whole years.
func (d *LoanDefaults) SetParams(p model.LoanParameters) {
	d.Principal = p.Principal
	d.InterestRate = p.AnnualInterestRatePercent
	d.MonthlyPayment = p.MonthlyPayment
	d.YearlyTax = p.YearlyTax
	d.YearlyInsurance = p.YearlyInsurance
	d.YearsLeft = p.TermMonths / 12
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "payoff")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "payoff")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "payoff")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "payoff")
}

// CachePath returns the SQLite cache location, honoring the config override.
func (c Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(CacheDir(), "results.db")
}

// RedisAddr returns the Redis address from env var or config, in that order.
func (c Config) RedisAddr() string {
	if addr := os.Getenv("PAYOFF_REDIS_ADDR"); addr != "" {
		return addr
	}
	return c.Cache.RedisAddr
}

// CacheTTL is the lifetime of cached results in Redis.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLSec <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
