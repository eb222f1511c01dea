package export

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	bodyFamily  = "body"
	titleSize   = 16
	bodySize    = 10
	rowHeight   = 7
	minColWidth = 12
)

// PDF renders an A4 portrait report: the title on the first page and the
// table below it, with the header row repeated on every page.
type PDF struct {
	FontPath string
}

func (*PDF) ContentType() string { return "application/pdf" }

func (*PDF) Extension() string { return "pdf" }

func (p *PDF) Write(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("arena", true)

	family, err := p.font(pdf)
	if err != nil {
		return err
	}

	widths := columnWidths(pdf, doc)

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 && doc.Title != "" {
			pdf.SetFont(family, "B", titleSize)
			pdf.CellFormat(0, 10, doc.Title, "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		pdf.SetFont(family, "B", bodySize)
		pdf.SetFillColor(233, 236, 239)
		for i, c := range doc.Columns {
			pdf.CellFormat(widths[i], rowHeight, c, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", bodySize)
	})

	pdf.AddPage()
	for r, row := range doc.Rows {
		pdf.SetFillColor(248, 249, 250)
		for i := range doc.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", r%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

// font registers the UTF-8 body font: the configured TTF for both styles,
// or the bundled Go fonts, which cover Cyrillic.
func (p *PDF) font(pdf *fpdf.Fpdf) (string, error) {
	regular, bold := goregular.TTF, gobold.TTF
	if p.FontPath != "" {
		ttf, err := os.ReadFile(p.FontPath)
		if err != nil {
			return "", fmt.Errorf("export failed: read font: %w", err)
		}
		regular, bold = ttf, ttf
	}

	pdf.AddUTF8FontFromBytes(bodyFamily, "", regular)
	pdf.AddUTF8FontFromBytes(bodyFamily, "B", bold)
	if pdf.Err() {
		return "", fmt.Errorf("export failed: load font: %w", pdf.Error())
	}
	return bodyFamily, nil
}

// columnWidths splits the printable width in proportion to the longest value
// of each column.
func columnWidths(pdf *fpdf.Fpdf, doc Document) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	n := len(doc.Columns)
	if n == 0 {
		return nil
	}

	weights := make([]float64, n)
	var total float64
	for i, c := range doc.Columns {
		longest := utf8.RuneCountInString(c)
		for _, row := range doc.Rows {
			if i < len(row) {
				longest = max(longest, utf8.RuneCountInString(row[i]))
			}
		}
		weights[i] = float64(min(longest, 60))
		total += weights[i]
	}

	widths := make([]float64, n)
	for i, wt := range weights {
		if total == 0 {
			widths[i] = usable / float64(n)
			continue
		}
		widths[i] = max(usable*wt/total, minColWidth)
	}
	return widths
}
