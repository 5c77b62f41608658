package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads one CSV catalog export. Columns maps canonical field
// names to the source's header names for exports that use their own
// naming; canonical fields without a mapping are looked up under their
// own name. A field whose column is absent is synthesized as empty for
// every row.
type CSVSource struct {
	Path    string
	Columns map[string]string
}

// canonicalFields is the fixed canonical field set, in catalog order.
var canonicalFields = []string{"title", "genres", "keywords", "tagline", "cast", "director"}

func (s *CSVSource) Name() string {
	return fmt.Sprintf("csv:%s", s.Path)
}

func (s *CSVSource) Rows() ([]Row, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	indexes := s.columnIndexes(header)

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rows = append(rows, Row{
			Title:    fieldAt(record, indexes["title"]),
			Genres:   fieldAt(record, indexes["genres"]),
			Keywords: fieldAt(record, indexes["keywords"]),
			Tagline:  fieldAt(record, indexes["tagline"]),
			Cast:     fieldAt(record, indexes["cast"]),
			Director: fieldAt(record, indexes["director"]),
		})
	}

	return rows, nil
}

// columnIndexes resolves each canonical field to a header position,
// case-insensitively, or -1 when the source lacks the column.
func (s *CSVSource) columnIndexes(header []string) map[string]int {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	indexes := make(map[string]int, len(canonicalFields))
	for _, field := range canonicalFields {
		column := field
		if mapped, ok := s.Columns[field]; ok && strings.TrimSpace(mapped) != "" {
			column = mapped
		}
		if pos, ok := positions[strings.ToLower(strings.TrimSpace(column))]; ok {
			indexes[field] = pos
		} else {
			indexes[field] = -1
		}
	}
	return indexes
}

func fieldAt(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}
