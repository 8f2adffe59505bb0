package config

import (
	"os"
	"path/filepath"
	"testing"

	"universe-builder/internal/shared/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.RadiusLY != 50 || cfg.Catalog.MaxStars != 150 || cfg.Catalog.Scale != 1 {
		t.Errorf("unexpected catalog defaults %+v", cfg.Catalog)
	}
	if cfg.Objects.MaxPrimaries != 5 {
		t.Errorf("max_primaries = %d, want 5", cfg.Objects.MaxPrimaries)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "universe.yaml")
	yamlBody := `
catalog:
  radius_ly: 20
  scale: 0.5
objects:
  seed: 42
database:
  driver: sqlite
  path: test.db
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GLOBAL_SEED", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.RadiusLY != 20 || cfg.Catalog.Scale != 0.5 {
		t.Errorf("yaml values not applied: %+v", cfg.Catalog)
	}
	if cfg.Catalog.MaxStars != 150 {
		t.Errorf("unset yaml key should keep default, got %d", cfg.Catalog.MaxStars)
	}
	if cfg.Objects.Seed != 7 {
		t.Errorf("env should override yaml seed, got %d", cfg.Objects.Seed)
	}
	if cfg.Database.DSN() != "test.db" {
		t.Errorf("sqlite DSN = %q", cfg.Database.DSN())
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scale", func(c *Config) { c.Catalog.Scale = 0 }},
		{"negative radius", func(c *Config) { c.Catalog.RadiusLY = -1 }},
		{"zero max stars", func(c *Config) { c.Catalog.MaxStars = 0 }},
		{"negative primaries", func(c *Config) { c.Objects.MaxPrimaries = -1 }},
		{"artifact rate above one", func(c *Config) { c.Artifacts.Rate = 1.5 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetType(err) != errors.ErrorTypeConfig {
				t.Errorf("error type = %q, want config", errors.GetType(err))
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	d := Default().Database
	want := "host=localhost port=5432 user=postgres password= dbname=universe sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
