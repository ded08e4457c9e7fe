package spreadsheet_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

func workbookBuffer(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			f.SetSheetName("Sheet1", name)
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("NewSheet(%q) error = %v", name, err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow error = %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer error = %v", err)
	}
	return buf
}

func TestOpenReader(t *testing.T) {
	buf := workbookBuffer(t, map[string][][]any{
		"Data": {
			{"Name", "  Value  ", ""},
			{"a", "1"},
		},
	})

	wb, err := spreadsheet.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()

	sheet, err := wb.Sheet("Data")
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}

	t.Run("values are trimmed", func(t *testing.T) {
		if got := sheet.Rows[0][1].Value; got != "Value" {
			t.Errorf("header cell = %q, want %q", got, "Value")
		}
	})

	t.Run("short rows are padded with nulls", func(t *testing.T) {
		if w := sheet.Width(); w != 3 {
			t.Fatalf("Width() = %d, want 3", w)
		}
		if !sheet.Rows[1][2].Null {
			t.Error("padded cell not null")
		}
	})

	t.Run("blank cells are null", func(t *testing.T) {
		if !sheet.Rows[0][2].Null {
			t.Error("blank header cell not null")
		}
	})
}

func TestOpenReaderUnreadable(t *testing.T) {
	_, err := spreadsheet.OpenReader(strings.NewReader("not a workbook"))
	if !errors.Is(err, spreadsheet.ErrUnreadable) {
		t.Errorf("OpenReader() error = %v, want ErrUnreadable", err)
	}
}

func TestSheetNotFound(t *testing.T) {
	buf := workbookBuffer(t, map[string][][]any{"Only": {{"x"}}})

	wb, err := spreadsheet.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()

	if _, err := wb.Sheet("Missing"); !errors.Is(err, spreadsheet.ErrSheetNotFound) {
		t.Errorf("Sheet() error = %v, want ErrSheetNotFound", err)
	}
}

func TestFromRows(t *testing.T) {
	sheet := spreadsheet.FromRows("t", [][]string{
		{"a", "", "c"},
		{"  x  "},
	})

	if sheet.Width() != 3 {
		t.Fatalf("Width() = %d, want 3", sheet.Width())
	}
	if !sheet.Rows[0][1].Null {
		t.Error("blank cell not null")
	}
	if sheet.Rows[1][0].Value != "x" {
		t.Errorf("cell = %q, want %q", sheet.Rows[1][0].Value, "x")
	}
	if got := spreadsheet.NonNull(sheet.Rows[0]); got != 2 {
		t.Errorf("NonNull() = %d, want 2", got)
	}
	if got := spreadsheet.Values(sheet.Rows[0]); got[1] != "" || got[2] != "c" {
		t.Errorf("Values() = %v", got)
	}
}
