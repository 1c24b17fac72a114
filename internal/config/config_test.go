package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseDriver != "postgres" || cfg.Port != 8080 {
		t.Errorf("driver=%q port=%d", cfg.DatabaseDriver, cfg.Port)
	}
	if cfg.DuplicateThreshold != 0.7 {
		t.Errorf("threshold = %v, want 0.7", cfg.DuplicateThreshold)
	}
	if cfg.BGGTimeout != 10*time.Second || cfg.BGGCacheTTL != 24*time.Hour {
		t.Errorf("bgg timeout=%v ttl=%v", cfg.BGGTimeout, cfg.BGGCacheTTL)
	}
	if got := cfg.Categories(); len(got) != 13 || got[0] != "Deck Builder" {
		t.Errorf("categories = %v", got)
	}
	if got := cfg.Languages(); !reflect.DeepEqual(got, []string{"en", "es", "de", "pt", "nl", "other"}) {
		t.Errorf("languages = %v", got)
	}
}

func TestLoadEnvFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"DATABASE_DRIVER=sqlite",
		"DATABASE_URL=file.db",
		"JWT_SECRET=from-file",
		"DUPLICATE_THRESHOLD=0.8",
		"CATEGORY_OPTIONS=Strategy, Cards",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "file.db" {
		t.Errorf("driver=%q url=%q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("secret = %q, want env override", cfg.JWTSecret)
	}
	if cfg.DuplicateThreshold != 0.8 {
		t.Errorf("threshold = %v", cfg.DuplicateThreshold)
	}
	if got := cfg.Categories(); !reflect.DeepEqual(got, []string{"Strategy", "Cards"}) {
		t.Errorf("categories = %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseDriver: "sqlite", DatabaseURL: ":memory:", JWTSecret: "s", DuplicateThreshold: 0.7}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"bad driver", func(c *Config) { c.DatabaseDriver = "mysql" }, false},
		{"no url", func(c *Config) { c.DatabaseURL = "" }, false},
		{"no secret", func(c *Config) { c.JWTSecret = " " }, false},
		{"threshold zero", func(c *Config) { c.DuplicateThreshold = 0 }, false},
		{"threshold above one", func(c *Config) { c.DuplicateThreshold = 1.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
