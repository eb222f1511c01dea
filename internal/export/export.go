// Package export renders tabular reports into downloadable documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/arena/internal/table"
)

// ErrUnsupportedFormat is returned for an unknown export format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Document is a titled table with every row, not just the visible page.
type Document struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// FromTable captures all rows of t.
func FromTable(title string, t *table.Table) Document {
	return Document{Title: title, Columns: t.Titles(), Rows: t.Records()}
}

// Exporter writes a document in one file format.
type Exporter interface {
	ContentType() string
	Extension() string
	Write(w io.Writer, doc Document) error
}

// Options configures the exporters.
type Options struct {
	// FontPath overrides the bundled Go fonts of PDF output with a TTF font.
	FontPath string
}

// ForFormat returns the exporter for "pdf" or "csv". An empty format selects PDF.
func ForFormat(format string, opts Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "pdf":
		return &PDF{FontPath: opts.FontPath}, nil
	case "csv":
		return CSV{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Filename joins base with the exporter's extension.
func Filename(base string, e Exporter) string {
	return base + "." + e.Extension()
}
