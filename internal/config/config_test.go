package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Exists() {
		t.Fatal("Exists() = true with no config file")
	}
	if cfg.Budget.Days != 30 || cfg.Storage.Plan != "budgetData" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	seed := cfg.SeedObligations()
	if len(seed) != 2 || seed[1].Description != "Trip expenses" || seed[1].Amount != 500 {
		t.Fatalf("seed obligations = %+v", seed)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Budget.Total = 1500
	cfg.Budget.WeekendAmount = 75
	cfg.Obligations = []ObligationConfig{{Description: "Rent", Amount: 900}}
	cfg.Appearance.Theme = "terminal"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Budget.Total != 1500 || got.Budget.WeekendAmount != 75 || got.Appearance.Theme != "terminal" {
		t.Fatalf("Load after Save = %+v", got)
	}
	if len(got.Obligations) != 1 || got.Obligations[0].Description != "Rent" {
		t.Fatalf("obligations = %+v, want only Rent", got.Obligations)
	}
}

func TestLoadKeepsSeedWhenFileOmitsObligations(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), []byte("[budget]\ntotal = 800\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Budget.Total != 800 {
		t.Fatalf("total = %v, want 800", cfg.Budget.Total)
	}
	if len(cfg.Obligations) != 2 {
		t.Fatalf("obligations = %d, want default seed of 2", len(cfg.Obligations))
	}
}

func TestLoadParseError(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), []byte("[budget\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want parsing error", err)
	}
	if cfg.Budget.Days != 30 {
		t.Fatal("defaults should be returned alongside a parse error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("SPENDPLAN_DB", filepath.Join(dir, "x.db"))
	t.Setenv("SPENDPLAN_PLAN", "march")
	t.Setenv("SPENDPLAN_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.DBPath() != filepath.Join(dir, "x.db") {
		t.Fatalf("DBPath = %s", cfg.DBPath())
	}
	if cfg.Storage.Plan != "march" || cfg.Log.Level != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("unset env var changed theme to %q", cfg.Appearance.Theme)
	}
}

func TestDefaultPathsUnderDataDir(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()
	want := filepath.Join(dir, "data", "spendplan")
	if filepath.Dir(cfg.DBPath()) != want || filepath.Dir(cfg.LogPath()) != want {
		t.Fatalf("paths = %s, %s; want under %s", cfg.DBPath(), cfg.LogPath(), want)
	}
}
