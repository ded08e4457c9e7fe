// Package spreadsheet wraps workbook reading behind a rectangular row/column
// model with typed nulls. All cell values are interpreted as trimmed strings;
// a cell that is absent or blank after trimming is null.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadable is returned when a workbook cannot be opened or parsed.
var ErrUnreadable = errors.New("workbook unreadable")

// ErrSheetNotFound is returned when a named sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Cell is a single spreadsheet cell. Null cells carry an empty Value.
type Cell struct {
	Value string
	Null  bool
}

// Sheet is a rectangular grid of cells. Every row has the same width;
// short source rows are padded with null cells.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook provides read access to the sheets of an opened workbook.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at the given path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return &Workbook{file: f}, nil
}

// OpenReader opens a workbook from a stream, e.g. an upload body.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the underlying workbook resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the workbook's sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet reads the named sheet into a rectangular grid.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSheetNotFound, name, err)
	}
	return newSheet(name, rows), nil
}

// First reads the workbook's first sheet.
func (w *Workbook) First() (*Sheet, error) {
	names := w.SheetNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	return w.Sheet(names[0])
}

// FromRows builds a rectangular sheet from raw string rows, applying the
// same trimming and null semantics as workbook reads.
func FromRows(name string, raw [][]string) *Sheet {
	return newSheet(name, raw)
}

func newSheet(name string, raw [][]string) *Sheet {
	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := make([][]Cell, len(raw))
	for i, row := range raw {
		cells := make([]Cell, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = newCell(row[j])
			} else {
				cells[j] = Cell{Null: true}
			}
		}
		rows[i] = cells
	}

	return &Sheet{Name: name, Rows: rows}
}

func newCell(raw string) Cell {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Cell{Null: true}
	}
	return Cell{Value: value}
}

// Width returns the sheet's column count.
func (s *Sheet) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Empty reports whether the sheet has no rows.
func (s *Sheet) Empty() bool {
	return len(s.Rows) == 0
}

// NonNull counts the non-null cells in the given row.
func NonNull(row []Cell) int {
	count := 0
	for _, c := range row {
		if !c.Null {
			count++
		}
	}
	return count
}

// Values returns the row's cell values, with null cells as empty strings.
func Values(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Value
	}
	return out
}
