package catalog

import (
	"fmt"

	"gorm.io/gorm"
)

// movieRecord maps one row of the movies table. Metadata columns are
// nullable in most exports; NULL degrades to the empty string during
// normalization.
type movieRecord struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	Title    string  `gorm:"column:title;type:text;not null"`
	Genres   *string `gorm:"column:genres;type:text"`
	Keywords *string `gorm:"column:keywords;type:text"`
	Tagline  *string `gorm:"column:tagline;type:text"`
	Cast     *string `gorm:"column:movie_cast;type:text"`
	Director *string `gorm:"column:director;type:text"`
}

// DatabaseSource reads a movies table through gorm. Rows come back
// ordered by primary key so repeated builds see the same catalog
// order. Table defaults to "movies".
type DatabaseSource struct {
	DB    *gorm.DB
	Table string
}

func (s *DatabaseSource) table() string {
	if s.Table == "" {
		return "movies"
	}
	return s.Table
}

func (s *DatabaseSource) Name() string {
	return fmt.Sprintf("db:%s", s.table())
}

func (s *DatabaseSource) Rows() ([]Row, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database source has no connection")
	}

	var records []movieRecord
	if err := s.DB.Table(s.table()).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table(), err)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row{
			Title:    record.Title,
			Genres:   deref(record.Genres),
			Keywords: deref(record.Keywords),
			Tagline:  deref(record.Tagline),
			Cast:     deref(record.Cast),
			Director: deref(record.Director),
		})
	}
	return rows, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
