// Package table builds the paginated view model behind every data table of
// the dashboard: a fixed column order, a full in-memory row set, and the
// current page.
package table

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/arena/internal/pagination"
)

// RankKey is the column key rendered as a rank badge.
const RankKey = "rank"

var (
	// ErrEmptyColumnKey is returned when a column has no key.
	ErrEmptyColumnKey = errors.New("column key is empty")

	// ErrDuplicateColumn is returned when two columns share a key.
	ErrDuplicateColumn = errors.New("duplicate column key")
)

// Column defines one table column.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Row maps column keys to displayable values.
type Row map[string]any

// Link is a cell value rendered as a hyperlink. Exports keep only the text.
type Link struct {
	Text string
	Href string
}

// Label implements Labeler.
func (l Link) Label() string { return l.Text }

// Table is a column layout over a full row set. Only the page changes after
// construction.
type Table struct {
	columns []Column
	rows    []Row
	pager   *pagination.Pager
}

// New validates the columns and returns a table on page 1.
// A zero pageSize selects pagination.DefaultPageSize.
func New(columns []Column, rows []Row, pageSize int) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Key == "" {
			return nil, ErrEmptyColumnKey
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = true
	}

	pager, err := pagination.New(len(rows), pageSize)
	if err != nil {
		return nil, err
	}

	return &Table{columns: columns, rows: rows, pager: pager}, nil
}

// Columns returns the column layout.
func (t *Table) Columns() []Column { return t.columns }

// Len returns the total row count.
func (t *Table) Len() int { return len(t.rows) }

// Pager exposes the page state.
func (t *Table) Pager() *pagination.Pager { return t.pager }

// SetPage moves to page n (clamped) and returns the page selected.
func (t *Table) SetPage(n int) int { return t.pager.SetPage(n) }

// Cell is one formatted table cell.
type Cell struct {
	Key  string
	Text string
	Href string // non-empty for Link values
	Rank bool   // render as a rank badge
}

// ViewRow is one displayed row.
type ViewRow struct {
	Index   int // position within the page
	Striped bool
	Cells   []Cell
}

// View is the rendered state of the current page.
type View struct {
	Columns    []Column
	Rows       []ViewRow
	Page       int
	TotalPages int
	Total      int
	Items      []pagination.Item // nil when no page control is shown
}

// ShowControl reports whether the page selector is rendered.
func (v View) ShowControl() bool { return v.TotalPages > 1 }

// View formats the rows of the current page.
func (t *Table) View() View {
	page := pagination.Slice(t.rows, t.pager)

	rows := make([]ViewRow, len(page))
	for i, r := range page {
		cells := make([]Cell, len(t.columns))
		for j, c := range t.columns {
			cells[j] = Cell{
				Key:  c.Key,
				Text: FormatValue(r[c.Key]),
				Rank: c.Key == RankKey,
			}
			if l, ok := r[c.Key].(Link); ok {
				cells[j].Href = l.Href
			}
		}
		rows[i] = ViewRow{Index: i, Striped: i%2 == 1, Cells: cells}
	}

	return View{
		Columns:    t.columns,
		Rows:       rows,
		Page:       t.pager.Page(),
		TotalPages: t.pager.TotalPages(),
		Total:      t.pager.Total(),
		Items:      t.pager.Items(pagination.DefaultSiblings),
	}
}

// Records returns every row as strings in column order, for export.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rec := make([]string, len(t.columns))
		for j, c := range t.columns {
			rec[j] = FormatValue(r[c.Key])
		}
		out[i] = rec
	}
	return out
}

// Titles returns the column titles in order.
func (t *Table) Titles() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Title
	}
	return out
}
