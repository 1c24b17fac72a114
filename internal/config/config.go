package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           int    `mapstructure:"PORT"`
	GinMode        string `mapstructure:"GIN_MODE"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	DuplicateThreshold float64 `mapstructure:"DUPLICATE_THRESHOLD"`

	BGGBaseURL  string        `mapstructure:"BGG_BASE_URL"`
	BGGTimeout  time.Duration `mapstructure:"BGG_TIMEOUT"`
	BGGCacheTTL time.Duration `mapstructure:"BGG_CACHE_TTL"`
	RedisURL    string        `mapstructure:"REDIS_URL"`

	CategoryOptions string `mapstructure:"CATEGORY_OPTIONS"`
	LanguageOptions string `mapstructure:"LANGUAGE_OPTIONS"`
}

const (
	defaultCategories = "Deck Builder,Teams,Party Game,Expansion,RPG,Strategy,Social Deduction,Engine Builder,Worker Placement,Cards,Puzzle,For Children,Family"
	defaultLanguages  = "en,es,de,pt,nl,other"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PORT", 8080)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("DUPLICATE_THRESHOLD", 0.7)
	v.SetDefault("BGG_BASE_URL", "https://boardgamegeek.com/xmlapi2")
	v.SetDefault("BGG_TIMEOUT", 10*time.Second)
	v.SetDefault("BGG_CACHE_TTL", 24*time.Hour)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CATEGORY_OPTIONS", defaultCategories)
	v.SetDefault("LANGUAGE_OPTIONS", defaultLanguages)
}

// Load reads the configuration from a .env file in dir (when present) and
// from environment variables, which take precedence.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first setting that makes the server unusable.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DATABASE_DRIVER: unsupported value %q", c.DatabaseDriver)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DuplicateThreshold <= 0 || c.DuplicateThreshold > 1 {
		return fmt.Errorf("DUPLICATE_THRESHOLD must be in (0, 1], got %v", c.DuplicateThreshold)
	}
	return nil
}

// Categories returns the configured category vocabulary.
func (c *Config) Categories() []string { return splitList(c.CategoryOptions) }

// Languages returns the configured language codes.
func (c *Config) Languages() []string { return splitList(c.LanguageOptions) }

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
