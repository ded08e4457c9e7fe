package quality

import (
	"strings"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// Table is a rectangular data table: a header of column names plus rows of
// cells. Cells are normalised strings; coercion failures become nulls.
type Table struct {
	Columns []string
	Rows    [][]spreadsheet.Cell
}

// tableFromSheet reads a sheet's first row as the header and the remainder
// as data rows.
func tableFromSheet(sheet *spreadsheet.Sheet) *Table {
	t := &Table{}
	if sheet == nil || sheet.Empty() {
		return t
	}

	t.Columns = spreadsheet.Values(sheet.Rows[0])
	t.Rows = sheet.Rows[1:]
	return t
}

// ColumnIndex resolves a column by name, case-insensitively. Returns -1 when
// the column is absent.
func (t *Table) ColumnIndex(name string) int {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, col := range t.Columns {
		if strings.ToLower(strings.TrimSpace(col)) == target {
			return i
		}
	}
	return -1
}

// Empty reports whether the table has no data cells.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0 || len(t.Columns) == 0
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// TotalCells returns rows × columns.
func (t *Table) TotalCells() int {
	return len(t.Rows) * len(t.Columns)
}

// NonNullCells counts the non-null cells across all rows.
func (t *Table) NonNullCells() int {
	count := 0
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i < len(row) && !row[i].Null {
				count++
			}
		}
	}
	return count
}

// UniqueRows counts distinct rows, comparing all columns including nullness.
func (t *Table) UniqueRows() int {
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		seen[rowKey(row, len(t.Columns))] = true
	}
	return len(seen)
}

// Deduplicate drops exact-duplicate rows (all columns equal), keeping first
// occurrences in order. Returns the number of rows removed. Deduplication is
// idempotent.
func (t *Table) Deduplicate() int {
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]

	for _, row := range t.Rows {
		key := rowKey(row, len(t.Columns))
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}

	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}

func rowKey(row []spreadsheet.Cell, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < len(row) && !row[i].Null {
			b.WriteString(row[i].Value)
		} else {
			b.WriteByte(0x00)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}
