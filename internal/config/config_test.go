package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("LoadFrom missing file = %+v, want defaults", cfg)
	}
}

func TestSaveToAndLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Defaults.Principal = 410000
	cfg.Defaults.InterestRate = 5.25
	cfg.Appearance.Theme = "gruvbox-dark"
	cfg.Cache.RedisAddr = "localhost:6379"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[defaults]\nmonthly_payment = 2600\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Defaults.MonthlyPayment != 2600 {
		t.Fatalf("MonthlyPayment = %v, want 2600", cfg.Defaults.MonthlyPayment)
	}
	if cfg.Defaults.YearsLeft != 30 {
		t.Fatalf("YearsLeft = %d, want default 30", cfg.Defaults.YearsLeft)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("Theme = %q, want default", cfg.Appearance.Theme)
	}
}

func TestLoadFromRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted malformed TOML")
	}
}

func TestDefaultsParams(t *testing.T) {
	p := DefaultConfig().Defaults.Params()
	if p.TermMonths != 360 || p.AnnualInterestRatePercent != 6 {
		t.Fatalf("Params = %+v", p)
	}

	var d LoanDefaults
	d.SetParams(p)
	if d.Params() != p {
		t.Fatalf("SetParams round trip = %+v, want %+v", d.Params(), p)
	}
}

func TestRedisAddrEnvOverride(t *testing.T) {
	t.Setenv("PAYOFF_REDIS_ADDR", "redis.internal:6379")
	cfg := DefaultConfig()
	cfg.Cache.RedisAddr = "localhost:6379"
	if got := cfg.RedisAddr(); got != "redis.internal:6379" {
		t.Fatalf("RedisAddr = %q", got)
	}
}
