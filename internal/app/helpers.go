package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhi017z/Movie-Recommender-System/internal/catalog"
	"github.com/abhi017z/Movie-Recommender-System/internal/cli"
	"github.com/abhi017z/Movie-Recommender-System/internal/config"
	"github.com/abhi017z/Movie-Recommender-System/internal/engine"
	"github.com/abhi017z/Movie-Recommender-System/internal/logging"
)

const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

func parseOutputFormat(raw, defaultFormat string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	if format == "" {
		format = strings.TrimSpace(strings.ToLower(defaultFormat))
	}
	switch format {
	case outputFormatTable, outputFormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("--format must be table or json")
	}
}

// loadEnvironment applies the optional .env file, then reads and
// validates the process configuration and builds the logger.
func loadEnvironment(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// catalogSources assembles the configured sources in merge order: CSV,
// then JSON, then the database table. The returned cleanup closes the
// database connection when one was opened.
func catalogSources(cfg *config.Config) ([]catalog.Source, func(), error) {
	cleanup := func() {}

	var sources []catalog.Source
	if path := strings.TrimSpace(cfg.MoviesCSV); path != "" {
		sources = append(sources, &catalog.CSVSource{Path: path})
	}
	if path := strings.TrimSpace(cfg.MoviesJSON); path != "" {
		sources = append(sources, &catalog.JSONSource{Path: path})
	}
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = func() {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		sources = append(sources, &catalog.DatabaseSource{DB: db, Table: cfg.MoviesTable})
	}

	if len(sources) == 0 {
		return nil, cleanup, fmt.Errorf("no catalog sources configured")
	}
	return sources, cleanup, nil
}

// buildEngine runs the full offline pipeline against the configured
// sources. The row cap applies to the CSV export only; curated JSON
// and database catalogs are loaded in full.
func buildEngine(cfg *config.Config, logger zerolog.Logger) (*engine.Engine, error) {
	sources, cleanup, err := catalogSources(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	opts := engine.BuildOptions{
		MaxFeatures: cfg.MaxFeatures,
		MatchCutoff: cfg.MatchCutoff,
	}
	if cfg.CatalogRowCap > 0 {
		caps := make(map[string]int, len(sources))
		for _, source := range sources {
			if _, ok := source.(*catalog.CSVSource); ok {
				caps[source.Name()] = cfg.CatalogRowCap
			}
		}
		opts.RowCaps = caps
	}

	return engine.Build(logger, sources, opts)
}

func truncateForTable(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if maxLen <= 0 {
		return trimmed
	}
	if utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}

	runes := []rune(trimmed)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeTable(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}
