package quality_test

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

func newProcessor() quality.System {
	return quality.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProcessCleanData(t *testing.T) {
	sheet := spreadsheet.FromRows("data", [][]string{
		{"order_id", "amount", "status"},
		{"1", "10.5", "open"},
		{"2", "20", "closed"},
		{"3", "30", "open"},
	})
	schema := []quality.ColumnSpec{
		{Name: "order_id", Type: quality.TypeNumeric, Required: true},
		{Name: "amount", Type: quality.TypeNumeric},
		{Name: "status", Type: quality.TypeText},
	}

	report := newProcessor().Process(sheet, "clean.xlsx", schema)

	if report.RowsAnalyzed != 3 {
		t.Errorf("RowsAnalyzed = %d, want 3", report.RowsAnalyzed)
	}
	if report.DuplicatesRemoved != 0 || report.NullsFilled != 0 {
		t.Errorf("clean data changed: dups=%d nulls=%d",
			report.DuplicatesRemoved, report.NullsFilled)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none", report.Issues)
	}

	t.Run("complete unique data maxes measured metrics", func(t *testing.T) {
		if !almostEqual(report.Metrics.Completeness, 1) {
			t.Errorf("Completeness = %v, want 1", report.Metrics.Completeness)
		}
		if !almostEqual(report.Metrics.Uniqueness, 1) {
			t.Errorf("Uniqueness = %v, want 1", report.Metrics.Uniqueness)
		}

		// 0.25 + 0.20*0.8 + 0.15*0.8 + 0.20 + 0.20*0.8
		if !almostEqual(report.Metrics.Overall, 0.89) {
			t.Errorf("Overall = %v, want 0.89", report.Metrics.Overall)
		}
	})

	t.Run("placeholder metrics surfaced as estimated", func(t *testing.T) {
		want := []string{"accuracy", "consistency", "validity"}
		if len(report.Metrics.Estimated) != len(want) {
			t.Fatalf("Estimated = %v, want %v", report.Metrics.Estimated, want)
		}
		for i, name := range want {
			if report.Metrics.Estimated[i] != name {
				t.Errorf("Estimated[%d] = %q, want %q", i, report.Metrics.Estimated[i], name)
			}
		}
	})
}

func TestProcessDeduplicates(t *testing.T) {
	sheet := spreadsheet.FromRows("data", [][]string{
		{"id", "name"},
		{"1", "a"},
		{"1", "a"},
		{"1", "a"},
		{"2", "b"},
	})

	report := newProcessor().Process(sheet, "dups.xlsx", nil)

	if report.DuplicatesRemoved != 2 {
		t.Errorf("DuplicatesRemoved = %d, want 2", report.DuplicatesRemoved)
	}
	if !almostEqual(report.Metrics.Uniqueness, 1) {
		t.Errorf("post-dedup Uniqueness = %v, want 1", report.Metrics.Uniqueness)
	}
	if report.Baseline.Uniqueness >= report.Metrics.Uniqueness {
		t.Errorf("baseline uniqueness %v not below final %v",
			report.Baseline.Uniqueness, report.Metrics.Uniqueness)
	}
}

func TestProcessFillsRequiredNulls(t *testing.T) {
	sheet := spreadsheet.FromRows("data", [][]string{
		{"id", "note"},
		{"1", "x"},
		{"", "y"},
		{"3", ""},
	})
	schema := []quality.ColumnSpec{
		{Name: "id", Type: quality.TypeNumeric, Required: true},
		{Name: "note", Type: quality.TypeText, Required: true},
	}

	report := newProcessor().Process(sheet, "nulls.xlsx", schema)

	if report.NullsFilled != 2 {
		t.Errorf("NullsFilled = %d, want 2", report.NullsFilled)
	}
	if !almostEqual(report.Metrics.Completeness, 1) {
		t.Errorf("post-fill Completeness = %v, want 1", report.Metrics.Completeness)
	}
	if report.Baseline.Completeness >= 1 {
		t.Errorf("baseline Completeness = %v, want < 1", report.Baseline.Completeness)
	}
}

func TestProcessCoercionFailuresBecomeNulls(t *testing.T) {
	sheet := spreadsheet.FromRows("data", [][]string{
		{"amount"},
		{"1,500"},
		{"not a number"},
	})
	schema := []quality.ColumnSpec{{Name: "amount", Type: quality.TypeNumeric}}

	report := newProcessor().Process(sheet, "coerce.xlsx", schema)

	if !almostEqual(report.Metrics.Completeness, 0.5) {
		t.Errorf("Completeness = %v, want 0.5", report.Metrics.Completeness)
	}
}

func TestProcessMissingRequiredColumn(t *testing.T) {
	sheet := spreadsheet.FromRows("data", [][]string{
		{"present"},
		{"x"},
	})
	schema := []quality.ColumnSpec{
		{Name: "absent", Type: quality.TypeText, Required: true},
	}

	report := newProcessor().Process(sheet, "missing.xlsx", schema)

	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "absent") {
		t.Errorf("Issues = %v, want one naming the missing column", report.Issues)
	}
	if report.RowsAnalyzed != 1 {
		t.Errorf("RowsAnalyzed = %d, processing did not complete", report.RowsAnalyzed)
	}
}

func TestProcessEmptyTable(t *testing.T) {
	report := newProcessor().Process(spreadsheet.FromRows("data", nil), "empty.xlsx", nil)

	if report.Metrics.Overall != 0 || report.Metrics.Completeness != 0 {
		t.Errorf("empty table metrics = %+v, want zeros", report.Metrics)
	}
	if report.RowsAnalyzed != 0 {
		t.Errorf("RowsAnalyzed = %d, want 0", report.RowsAnalyzed)
	}
}
