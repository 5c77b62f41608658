package catalog

import "fmt"

// MergeOptions controls the merge. RowCaps truncates a source to a
// fixed maximum row count by source name, before index assignment, so
// indices stay contiguous. A zero or negative cap leaves the source
// untruncated.
type MergeOptions struct {
	RowCaps map[string]int
}

// Merge reads every source in argument order and concatenates their
// rows into one catalog with indices reassigned contiguously from 0.
// Any source that cannot be read fails the whole merge; a partially
// populated catalog is never returned.
func Merge(sources []Source, opts MergeOptions) (Catalog, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no catalog sources configured")
	}

	var merged Catalog
	for _, source := range sources {
		rows, err := source.Rows()
		if err != nil {
			return nil, fmt.Errorf("load source %q: %w", source.Name(), err)
		}

		if rowCap, ok := opts.RowCaps[source.Name()]; ok && rowCap > 0 && len(rows) > rowCap {
			rows = rows[:rowCap]
		}

		for _, row := range rows {
			merged = append(merged, row.normalize(len(merged)))
		}
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("merged catalog is empty")
	}

	return merged, nil
}
