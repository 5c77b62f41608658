package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed movie_catalog.schema.json
var movieCatalogSchemaJSON string

var (
	schemaOnce  sync.Once
	movieSchema *jsonschema.Schema
	schemaErr   error
)

// JSONSource reads a catalog export in JSON form: an array of movie
// objects validated against the embedded schema. The catalog order is
// the array order.
type JSONSource struct {
	Path string
}

type jsonMovie struct {
	Title    string `json:"title"`
	Genres   string `json:"genres"`
	Keywords string `json:"keywords"`
	Tagline  string `json:"tagline"`
	Cast     string `json:"cast"`
	Director string `json:"director"`
}

func (s *JSONSource) Name() string {
	return fmt.Sprintf("json:%s", s.Path)
}

func (s *JSONSource) Rows() ([]Row, error) {
	payload, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read json catalog: %w", err)
	}

	movies, err := validateCatalogPayload(payload)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(movies))
	for _, movie := range movies {
		rows = append(rows, Row{
			Title:    movie.Title,
			Genres:   movie.Genres,
			Keywords: movie.Keywords,
			Tagline:  movie.Tagline,
			Cast:     movie.Cast,
			Director: movie.Director,
		})
	}
	return rows, nil
}

// validateCatalogPayload checks a raw JSON catalog export against the
// movie catalog schema and decodes it.
func validateCatalogPayload(payload []byte) ([]jsonMovie, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode catalog JSON: %w", err)
	}

	schema, err := loadCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("load catalog schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize catalog JSON: %w", err)
	}

	var movies []jsonMovie
	if err := json.Unmarshal(normalized, &movies); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return movies, nil
}

func loadCatalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("movie_catalog.schema.json", strings.NewReader(movieCatalogSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("movie_catalog.schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		movieSchema = schema
	})

	if schemaErr != nil {
		return nil, schemaErr
	}
	if movieSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return movieSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}
	return value, nil
}
