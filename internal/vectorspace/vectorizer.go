// Package vectorspace fits a TF-IDF vocabulary over a corpus of
// composite feature strings and projects each document into a sparse
// L2-normalized vector. The fit is deterministic: the same ordered
// corpus always yields the same vocabulary and the same vectors.
package vectorspace

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary when no explicit cap is set.
const DefaultMaxFeatures = 5000

// tokenPattern matches word tokens of at least two characters.
var tokenPattern = regexp.MustCompile(`[\pL\pN_][\pL\pN_]+`)

// Options tunes the vocabulary fit.
type Options struct {
	// MaxFeatures caps vocabulary size; <= 0 means DefaultMaxFeatures.
	MaxFeatures int
}

// Weight is one non-zero dimension of a sparse vector.
type Weight struct {
	Term  int
	Value float64
}

// Vector is a sparse document vector, sorted by ascending term index.
type Vector []Weight

// Space is a fitted vocabulary plus one vector per corpus document.
// It is immutable after Fit.
type Space struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	vectors    []Vector
}

// Fit builds the vector space over the ordered corpus. It fails when
// the corpus is empty or when no term survives tokenization and
// stop-word filtering, since a degenerate vocabulary cannot produce
// meaningful similarities.
func Fit(documents []string, opts Options) (*Space, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}

	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	tokenized := make([][]string, len(documents))
	corpusCounts := map[string]int{}
	docCounts := map[string]int{}
	for i, doc := range documents {
		tokens := tokenize(doc)
		tokenized[i] = tokens

		seen := map[string]struct{}{}
		for _, token := range tokens {
			corpusCounts[token]++
			if _, dup := seen[token]; !dup {
				seen[token] = struct{}{}
				docCounts[token]++
			}
		}
	}

	if len(corpusCounts) == 0 {
		return nil, fmt.Errorf("vocabulary is empty: no usable terms in %d documents", len(documents))
	}

	terms := selectVocabulary(corpusCounts, maxFeatures)
	vocabulary := make(map[string]int, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
	}

	n := float64(len(documents))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docCounts[term]))) + 1
	}

	space := &Space{
		vocabulary: vocabulary,
		terms:      terms,
		idf:        idf,
		vectors:    make([]Vector, len(documents)),
	}
	for i, tokens := range tokenized {
		space.vectors[i] = space.vectorize(tokens)
	}

	return space, nil
}

// selectVocabulary keeps the top maxFeatures terms by corpus frequency,
// breaking ties alphabetically, and returns them in alphabetical order
// so term indices are stable across runs.
func selectVocabulary(corpusCounts map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(corpusCounts))
	for term := range corpusCounts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if len(terms) > maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return corpusCounts[terms[i]] > corpusCounts[terms[j]]
		})
		terms = terms[:maxFeatures]
		sort.Strings(terms)
	}

	return terms
}

// vectorize projects one token list into the fitted vocabulary with
// raw-count TF times smoothed IDF, L2-normalized. Out-of-vocabulary
// terms are dropped.
func (s *Space) vectorize(tokens []string) Vector {
	counts := map[int]int{}
	for _, token := range tokens {
		if dim, ok := s.vocabulary[token]; ok {
			counts[dim]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(Vector, 0, len(counts))
	for dim, count := range counts {
		vec = append(vec, Weight{Term: dim, Value: float64(count) * s.idf[dim]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Term < vec[j].Term })

	var norm float64
	for _, w := range vec {
		norm += w.Value * w.Value
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for i := range vec {
		vec[i].Value /= norm
	}

	return vec
}

// Len returns the number of documents in the space.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vectors)
}

// VocabularySize returns the number of fitted terms.
func (s *Space) VocabularySize() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// Vector returns the sparse vector for document i.
func (s *Space) Vector(i int) Vector {
	if s == nil || i < 0 || i >= len(s.vectors) {
		return nil
	}
	return s.vectors[i]
}

// Dot returns the dot product of two sparse vectors. Since vectors are
// L2-normalized this is their cosine similarity.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Term == b[j].Term:
			sum += a[i].Value * b[j].Value
			i++
			j++
		case a[i].Term < b[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// tokenize lowercases text, splits it into word tokens of at least two
// characters, and drops stop words.
func tokenize(text string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := matches[:0]
	for _, token := range matches {
		if !isStopWord(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
