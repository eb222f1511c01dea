package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM lets spreadsheet applications detect the encoding of Cyrillic text.
const utf8BOM = "\ufeff"

// CSV writes a header row of column titles followed by one record per row.
type CSV struct{}

func (CSV) ContentType() string { return "text/csv; charset=utf-8" }

func (CSV) Extension() string { return "csv" }

func (CSV) Write(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Columns); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := cw.WriteAll(doc.Rows); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
