package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Catalog sources, merged in this order: CSV, then JSON, then the
	// database table when DATABASE_URL is set.
	MoviesCSV   string `envconfig:"MOVIES_CSV" default:"movies.csv"`
	MoviesJSON  string `envconfig:"MOVIES_JSON" default:""`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	MoviesTable string `envconfig:"MOVIES_TABLE" default:"movies"`

	// CatalogRowCap truncates the CSV source before indexing; 0
	// disables truncation.
	CatalogRowCap int `envconfig:"CATALOG_ROW_CAP" default:"1000"`

	MaxFeatures int     `envconfig:"MAX_FEATURES" default:"5000"`
	MatchCutoff float64 `envconfig:"MATCH_CUTOFF" default:"0.3"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.MoviesCSV) == "" && strings.TrimSpace(c.MoviesJSON) == "" && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("at least one catalog source is required (MOVIES_CSV, MOVIES_JSON, or DATABASE_URL)")
	}
	if c.CatalogRowCap < 0 {
		return fmt.Errorf("CATALOG_ROW_CAP must be >= 0")
	}
	if c.MaxFeatures < 1 {
		return fmt.Errorf("MAX_FEATURES must be >= 1")
	}
	if c.MatchCutoff <= 0 || c.MatchCutoff > 1 {
		return fmt.Errorf("MATCH_CUTOFF must be in (0, 1]")
	}
	if strings.TrimSpace(c.DatabaseURL) != "" && strings.TrimSpace(c.MoviesTable) == "" {
		return fmt.Errorf("MOVIES_TABLE is required when DATABASE_URL is set")
	}
	return nil
}

// CORSAllowedOriginsList splits the comma-separated origin list,
// dropping blanks and duplicates.
func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
