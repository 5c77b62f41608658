package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abhi017z/Movie-Recommender-System/internal/cli"
	"github.com/abhi017z/Movie-Recommender-System/internal/globaltime"
)

// runCheck builds the full pipeline once and reports its shape. It is
// the preflight for deployments: a zero exit code means serve would
// come up with these sources and settings.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "check does not accept positional arguments")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	cfg, logger, err := loadEnvironment(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	started := globaltime.UTC()
	eng, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Engine build failed: %v\n", err)
		return 1
	}
	elapsed := globaltime.UTC().Sub(started)

	stats := map[string]any{
		"catalog_items": eng.Size(),
		"vocabulary":    eng.VocabularySize(),
		"matrix":        fmt.Sprintf("%dx%d", eng.Size(), eng.Size()),
		"build_seconds": elapsed.Round(time.Millisecond).Seconds(),
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	rows := [][]string{
		{"catalog items", fmt.Sprintf("%d", eng.Size())},
		{"vocabulary terms", fmt.Sprintf("%d", eng.VocabularySize())},
		{"similarity matrix", fmt.Sprintf("%dx%d", eng.Size(), eng.Size())},
		{"build time", elapsed.Round(time.Millisecond).String()},
	}
	if err := writeTable([]string{"STAT", "VALUE"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}

	return 0
}
