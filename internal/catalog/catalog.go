// Package catalog merges heterogeneous tabular movie sources into one
// canonical, immutable catalog. Each item's index is its row and
// column coordinate in the similarity matrix; the two structures are
// never reordered independently.
package catalog

import (
	"strings"

	"github.com/abhi017z/Movie-Recommender-System/internal/textnorm"
)

// Item is one row of the unified catalog. All metadata fields are
// normalized, never null; missing source values become empty strings.
type Item struct {
	Index    int
	Title    string
	Genres   string
	Keywords string
	Tagline  string
	Cast     string
	Director string
}

// Features returns the composite feature string that is the sole input
// to vectorization. Field order and the single-space separator are
// part of the similarity semantics and must not change.
func (it Item) Features() string {
	return strings.Join([]string{
		it.Genres,
		it.Keywords,
		it.Tagline,
		it.Cast,
		it.Director,
	}, " ")
}

// Catalog is the ordered, immutable collection of items. Insertion
// order is source concatenation order.
type Catalog []Item

// Titles returns the full ordered title list, the match target for
// query resolution.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c))
	for i, item := range c {
		titles[i] = item.Title
	}
	return titles
}

// FeatureStrings returns the ordered corpus of composite feature
// strings for vectorization.
func (c Catalog) FeatureStrings() []string {
	features := make([]string, len(c))
	for i, item := range c {
		features[i] = item.Features()
	}
	return features
}

// Row is one record produced by a Source, in source-native form before
// normalization and index assignment.
type Row struct {
	Title    string
	Genres   string
	Keywords string
	Tagline  string
	Cast     string
	Director string
}

// normalize maps a source row into a catalog item.
func (r Row) normalize(index int) Item {
	return Item{
		Index:    index,
		Title:    textnorm.Clean(r.Title),
		Genres:   textnorm.Clean(r.Genres),
		Keywords: textnorm.Clean(r.Keywords),
		Tagline:  textnorm.Clean(r.Tagline),
		Cast:     textnorm.Clean(r.Cast),
		Director: textnorm.Clean(r.Director),
	}
}

// Source is one tabular input to the merge. Rows must return every
// record mapped into the canonical field set, with fields the source
// lacks left as empty strings.
type Source interface {
	Name() string
	Rows() ([]Row, error)
}
