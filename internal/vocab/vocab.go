// Package vocab loads vocabulary records from a delimited text file.
// The file is the replaceable content source: it owns what is studied,
// while learning progress lives in the snapshot store.
package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Record is one immutable vocabulary row. ID is empty when the source
// has no identity column; such rows never form a valid reconciliation
// key and always restart at New.
type Record struct {
	ID         string
	Front      string
	Back       string
	Annotation string
}

// Source supplies the ordered vocabulary sequence.
type Source interface {
	Load() ([]Record, error)
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("vocabulary file missing required column")

// FileSource reads records from a TSV file (CSV when the path ends in
// .csv). The first row is a header; column order is free.
type FileSource struct {
	path string
	log  *slog.Logger
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string, log *slog.Logger) *FileSource {
	return &FileSource{path: path, log: log}
}

// Load reads and parses the vocabulary file. A missing file yields an
// empty record set and no error - review and list then report "nothing
// to do". Malformed rows or a header without front/back columns are
// real errors.
func (s *FileSource) Load() ([]Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("vocabulary file not found, starting empty", "path", s.path)

			return nil, nil
		}

		return nil, fmt.Errorf("opening vocabulary file: %w", err)
	}

	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if !strings.EqualFold(filepath.Ext(s.path), ".csv") {
		reader.Comma = '\t'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing vocabulary file: %w", err)
	}

	if len(rows) == 0 {
		s.log.Warn("vocabulary file is empty", "path", s.path)

		return nil, nil
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := Record{
			ID:         field(row, cols.id),
			Front:      field(row, cols.front),
			Back:       field(row, cols.back),
			Annotation: field(row, cols.annotation),
		}

		// Blank filler rows carry no content at all.
		if rec.ID == "" && rec.Front == "" && rec.Back == "" && rec.Annotation == "" {
			continue
		}

		records = append(records, rec)
	}

	s.log.Info("vocabulary loaded", "path", s.path, "records", len(records))

	return records, nil
}

// columns holds header indexes; -1 means the column is absent.
type columns struct {
	id         int
	front      int
	back       int
	annotation int
}

// Accepted header names per field, matched case-insensitively. The
// aliases cover the word lists this tool grew up with (English/Chinese/
// Pinyin sheets with a "number" column) alongside the generic names.
var columnAliases = map[string][]string{
	"id":         {"id", "number"},
	"front":      {"front", "english", "term", "word"},
	"back":       {"back", "chinese", "translation", "definition"},
	"annotation": {"annotation", "pinyin", "note", "hint"},
}

func mapColumns(header []string) (columns, error) {
	cols := columns{id: -1, front: -1, back: -1, annotation: -1}

	find := func(field string) int {
		for idx, name := range header {
			name = strings.ToLower(strings.TrimSpace(name))
			for _, alias := range columnAliases[field] {
				if name == alias {
					return idx
				}
			}
		}

		return -1
	}

	cols.id = find("id")
	cols.front = find("front")
	cols.back = find("back")
	cols.annotation = find("annotation")

	if cols.front == -1 {
		return columns{}, fmt.Errorf("%w: front", ErrMissingColumn)
	}

	if cols.back == -1 {
		return columns{}, fmt.Errorf("%w: back", ErrMissingColumn)
	}

	return cols, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
