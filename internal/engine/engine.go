// Package engine is the content-based recommendation core: it merges
// the configured catalog sources, fits the TF-IDF vector space,
// precomputes the pairwise similarity matrix, and answers queries
// against that immutable snapshot.
//
// Build runs once, synchronously, before any request is served and
// either publishes all three structures or nothing. A built Engine is
// read-only and safe for unlimited concurrent use without locking.
package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhi017z/Movie-Recommender-System/internal/catalog"
	"github.com/abhi017z/Movie-Recommender-System/internal/match"
	"github.com/abhi017z/Movie-Recommender-System/internal/similarity"
	"github.com/abhi017z/Movie-Recommender-System/internal/vectorspace"
)

const (
	// DefaultMatchCutoff is the minimum fuzzy-match ratio below which
	// a query resolves to nothing.
	DefaultMatchCutoff = 0.3

	// castDisplayLimit caps the cast field in recommendation output.
	castDisplayLimit = 100

	// DefaultSearchLimit and MaxSearchLimit bound title autocomplete.
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50

	// minSearchQueryLen is the shortest query SearchTitles will run.
	minSearchQueryLen = 2
)

// BuildOptions tunes the build pipeline. Zero values pick the
// documented defaults.
type BuildOptions struct {
	MaxFeatures int
	MatchCutoff float64
	RowCaps     map[string]int
	Matcher     match.Matcher
}

// Engine is the immutable recommendation snapshot.
type Engine struct {
	catalog catalog.Catalog
	titles  []string
	space   *vectorspace.Space
	matrix  *similarity.Matrix
	matcher match.Matcher
	cutoff  float64
}

// Recommendation is one ranked neighbor in a recommendation result.
type Recommendation struct {
	Title           string  `json:"title"`
	Genres          string  `json:"genres"`
	Cast            string  `json:"cast"`
	Director        string  `json:"director"`
	SimilarityScore float64 `json:"similarityScore"`
}

// Result is a resolved query plus its ordered recommendations.
type Result struct {
	InputMovie      string           `json:"inputMovie"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Build runs the full pipeline: merge sources, fit the vector space,
// compute the similarity matrix. Any failure aborts the whole build.
func Build(logger zerolog.Logger, sources []catalog.Source, opts BuildOptions) (*Engine, error) {
	merged, err := catalog.Merge(sources, catalog.MergeOptions{RowCaps: opts.RowCaps})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceLoad, err)
	}
	logger.Info().Int("items", len(merged)).Msg("catalog merged")

	space, err := vectorspace.Fit(merged.FeatureStrings(), vectorspace.Options{
		MaxFeatures: opts.MaxFeatures,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorization, err)
	}
	logger.Info().Int("vocabulary", space.VocabularySize()).Msg("vector space fitted")

	matrix, err := similarity.Build(space)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorization, err)
	}
	logger.Info().Int("size", matrix.Size()).Msg("similarity matrix computed")

	matcher := opts.Matcher
	if matcher == nil {
		matcher = match.NewRatioMatcher()
	}
	cutoff := opts.MatchCutoff
	if cutoff <= 0 {
		cutoff = DefaultMatchCutoff
	}

	return &Engine{
		catalog: merged,
		titles:  merged.Titles(),
		space:   space,
		matrix:  matrix,
		matcher: matcher,
		cutoff:  cutoff,
	}, nil
}

// Size returns the catalog size.
func (e *Engine) Size() int {
	if e == nil {
		return 0
	}
	return len(e.catalog)
}

// VocabularySize returns the number of fitted vocabulary terms.
func (e *Engine) VocabularySize() int {
	if e == nil {
		return 0
	}
	return e.space.VocabularySize()
}

// Recommend resolves query to its closest catalog title and returns
// the count most similar movies, ranked by descending similarity.
func (e *Engine) Recommend(query string, count int) (*Result, error) {
	if e == nil {
		return nil, fmt.Errorf("engine is not initialized")
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: movie name is required", ErrInvalidArgument)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: recommendation count must be at least 1", ErrInvalidArgument)
	}

	matchIndex, ok := e.matcher.BestMatch(trimmed, e.titles, e.cutoff)
	if !ok {
		return nil, fmt.Errorf("%w: no close match for %q", ErrNotFound, trimmed)
	}

	// Duplicate titles across merged sources resolve to the first
	// occurrence by index.
	resolvedTitle := e.titles[matchIndex]
	resolvedIndex := matchIndex
	for i, title := range e.titles {
		if title == resolvedTitle {
			resolvedIndex = i
			break
		}
	}

	ranked := e.rankRow(resolvedIndex)
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	recommendations := make([]Recommendation, 0, len(ranked))
	for _, entry := range ranked {
		item := e.catalog[entry.index]
		recommendations = append(recommendations, Recommendation{
			Title:           item.Title,
			Genres:          item.Genres,
			Cast:            truncateCast(item.Cast),
			Director:        item.Director,
			SimilarityScore: roundScore(entry.score),
		})
	}

	return &Result{
		InputMovie:      resolvedTitle,
		Recommendations: recommendations,
	}, nil
}

type rankedEntry struct {
	index int
	score float64
}

// rankRow sorts one similarity row by descending score, breaking ties
// by ascending index, and drops the resolved item itself. Exclusion is
// by index equality, not list position, so a perfect-score tie can
// never surface the queried movie as its own recommendation.
func (e *Engine) rankRow(resolvedIndex int) []rankedEntry {
	row := e.matrix.Row(resolvedIndex)

	entries := make([]rankedEntry, 0, len(row)-1)
	for index, score := range row {
		if index == resolvedIndex {
			continue
		}
		entries = append(entries, rankedEntry{index: index, score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].index < entries[j].index
	})

	return entries
}

// SearchTitles returns catalog titles containing query
// case-insensitively, in catalog order, capped at limit. Queries
// shorter than two characters yield an empty list, never an error.
func (e *Engine) SearchTitles(query string, limit int) []string {
	if e == nil {
		return []string{}
	}

	trimmed := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(trimmed)) < minSearchQueryLen {
		return []string{}
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	matches := []string{}
	for _, title := range e.titles {
		if strings.Contains(strings.ToLower(title), trimmed) {
			matches = append(matches, title)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// truncateCast caps the cast display field, appending an ellipsis
// marker when content was dropped.
func truncateCast(cast string) string {
	runes := []rune(cast)
	if len(runes) <= castDisplayLimit {
		return cast
	}
	return string(runes[:castDisplayLimit]) + "..."
}

// roundScore rescales a cosine score to 0-100 with two decimals.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 100
}
