package engine

import "errors"

// Build-time failures. Either aborts startup entirely; no partially
// built engine is ever published.
var (
	// ErrSourceLoad marks a required catalog source that could not be
	// read or parsed.
	ErrSourceLoad = errors.New("catalog source load failed")

	// ErrVectorization marks an empty or degenerate corpus that cannot
	// be projected into a vector space.
	ErrVectorization = errors.New("vectorization failed")
)

// Request-time failures. Both are recoverable and surfaced to the
// caller as structured results, never panics.
var (
	// ErrNotFound means no catalog title cleared the fuzzy-match
	// cutoff for the query.
	ErrNotFound = errors.New("title not found")

	// ErrInvalidArgument means the request was rejected before any
	// matching was attempted (blank query, non-positive count).
	ErrInvalidArgument = errors.New("invalid argument")
)
