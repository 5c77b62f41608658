package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhi017z/Movie-Recommender-System/internal/cli"
	"github.com/abhi017z/Movie-Recommender-System/internal/engine"
)

func runRecommend(args []string) int {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	movie := fs.String("movie", "", "Movie title to recommend from")
	count := fs.Int("count", 10, "Number of recommendations")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "recommend does not accept positional arguments")
		return 2
	}

	trimmedMovie := strings.TrimSpace(*movie)
	if trimmedMovie == "" {
		fmt.Fprintln(os.Stderr, "--movie is required")
		return 2
	}
	if *count <= 0 {
		fmt.Fprintln(os.Stderr, "--count must be > 0")
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

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build the engine: %v\n", err)
		return 1
	}

	result, err := eng.Recommend(trimmedMovie, *count)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No catalog title matches %q\n", trimmedMovie)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Failed to compute recommendations: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("Recommendations for %s:\n", result.InputMovie)
	rows := make([][]string, 0, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncateForTable(rec.Title, 40),
			truncateForTable(rec.Genres, 30),
			truncateForTable(rec.Director, 24),
			fmt.Sprintf("%.2f", rec.SimilarityScore),
		})
	}
	if err := writeTable([]string{"#", "TITLE", "GENRES", "DIRECTOR", "SCORE"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}

	return 0
}
