// Package export renders the vocabulary table as a paginated Markdown
// study deck, a fixed number of rows per section.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natefinch/atomic"

	"vocab/internal/vocab"
)

// Rows-per-slide bounds.
const (
	MinRowsPerSlide     = 1
	MaxRowsPerSlide     = 5
	DefaultRowsPerSlide = 5
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no vocabulary records to export")

// NormalizeRows clamps a requested rows-per-slide value to the allowed
// range. ok is false when the value was out of range and the default
// was used instead.
func NormalizeRows(n int) (rows int, ok bool) {
	if n < MinRowsPerSlide || n > MaxRowsPerSlide {
		return DefaultRowsPerSlide, false
	}

	return n, true
}

// RenderDeck formats the records as Markdown: a document title followed
// by one table section per page of rowsPerSlide records.
func RenderDeck(records []vocab.Record, title string, rowsPerSlide int) string {
	var builder strings.Builder

	pages := (len(records) + rowsPerSlide - 1) / rowsPerSlide

	builder.WriteString("# " + title + "\n")

	for page := range pages {
		start := page * rowsPerSlide
		end := min(start+rowsPerSlide, len(records))

		builder.WriteString(fmt.Sprintf("\n## %s (%d/%d)\n\n", title, page+1, pages))
		builder.WriteString("| # | Front | Back | Annotation |\n")
		builder.WriteString("| --- | --- | --- | --- |\n")

		for idx, rec := range records[start:end] {
			num := rec.ID
			if num == "" {
				num = fmt.Sprintf("%d", start+idx+1)
			}

			builder.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				cell(num), cell(rec.Front), cell(rec.Back), cell(rec.Annotation)))
		}
	}

	return builder.String()
}

// cell escapes the table delimiter so content cannot break the row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// WriteDeck renders the records and writes the deck atomically.
// Returns ErrNoRecords when the table is empty; no file is written.
func WriteDeck(path, title string, records []vocab.Record, rowsPerSlide int) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	rowsPerSlide, _ = NormalizeRows(rowsPerSlide)

	content := RenderDeck(records, title, rowsPerSlide)

	writeErr := atomic.WriteFile(path, strings.NewReader(content))
	if writeErr != nil {
		return fmt.Errorf("writing study deck: %w", writeErr)
	}

	return nil
}
