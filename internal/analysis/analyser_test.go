package analysis_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rasidhq/rasid/internal/analysis"
	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

func newAnalyser() analysis.System {
	return analysis.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// schemaSheet builds the analyser's expected shape: a header row followed by
// one descriptor row per column of the described table.
func schemaSheet(rows [][]string) *spreadsheet.Sheet {
	return spreadsheet.FromRows("Schema", rows)
}

func findColumn(t *testing.T, result *analysis.SchemaAnalysis, name string) analysis.ColumnAnalysis {
	t.Helper()
	for _, col := range result.ColumnAnalysis {
		if col.Name == name {
			return col
		}
	}
	t.Fatalf("column %q not in analysis (have %v)", name, result.Columns)
	return analysis.ColumnAnalysis{}
}

func TestAnalyseSheetOrderSchema(t *testing.T) {
	sheet := schemaSheet([][]string{
		{"Field Name", "Data Type", "Required", "Sample 1", "Sample 2"},
		{"order_id", "int", "Yes", "1001", "1002"},
		{"product_name", "varchar", "Yes", "Widget", "Gadget"},
		{"customer_email", "", "No", "a@example.com", "b@example.com"},
		{"created_at", "datetime", "No", "2026-01-01", "2026-01-02"},
	})

	result := newAnalyser().AnalyseSheet(sheet, "orders.xlsx")

	if result.TotalColumns != 4 {
		t.Fatalf("TotalColumns = %d, want 4", result.TotalColumns)
	}
	if !result.HasPrimaryKey {
		t.Error("order_id not detected as primary key")
	}
	if !result.HasAuditTrail {
		t.Error("created_at not detected as audit trail")
	}

	t.Run("column types", func(t *testing.T) {
		want := map[string]string{
			"order_id":       quality.TypeNumeric,
			"product_name":   quality.TypeText,
			"customer_email": quality.TypeEmail,
			"created_at":     quality.TypeDateTime,
		}
		for name, wantType := range want {
			if col := findColumn(t, result, name); col.Type != wantType {
				t.Errorf("%s type = %q, want %q", name, col.Type, wantType)
			}
		}
	})

	t.Run("standards mapping", func(t *testing.T) {
		email := findColumn(t, result, "customer_email")
		if !contains(email.Standards, scoring.StdValidity) {
			t.Errorf("customer_email standards = %v, want %s", email.Standards, scoring.StdValidity)
		}

		created := findColumn(t, result, "created_at")
		if !contains(created.Standards, scoring.StdAuditTrail) {
			t.Errorf("created_at standards = %v, want %s", created.Standards, scoring.StdAuditTrail)
		}
		if !contains(created.Standards, scoring.StdTimeliness) {
			t.Errorf("created_at standards = %v, want %s", created.Standards, scoring.StdTimeliness)
		}
	})

	t.Run("no critical issues", func(t *testing.T) {
		for _, issue := range result.Issues {
			if issue.Standard == scoring.StdPrimaryKey || issue.Standard == scoring.StdAuditTrail {
				t.Errorf("unexpected issue for %s: %s", issue.Standard, issue.Description)
			}
		}
	})

	t.Run("sample statistics", func(t *testing.T) {
		col := findColumn(t, result, "order_id")
		if col.TotalCount != 2 || col.NonNullCount != 2 || col.UniqueCount != 2 {
			t.Errorf("order_id counts = %d/%d/%d, want 2/2/2",
				col.TotalCount, col.NonNullCount, col.UniqueCount)
		}
		if col.Completeness != 100 || col.Uniqueness != 100 {
			t.Errorf("order_id completeness/uniqueness = %v/%v, want 100/100",
				col.Completeness, col.Uniqueness)
		}
	})
}

func TestAnalyseSheetKeyColumnScore(t *testing.T) {
	sheet := schemaSheet([][]string{
		{"Field Name", "Data Type", "Sample 1", "Sample 2"},
		{"customer_id", "int", "C-1", "C-2"},
	})

	result := newAnalyser().AnalyseSheet(sheet, "customers.xlsx")

	col := findColumn(t, result, "customer_id")
	if col.Score < 0.8 {
		t.Errorf("fully populated unique key column scored %v, want >= 0.8", col.Score)
	}
	if got := result.NDMOCompliance["customer_id"]; got != col.Score {
		t.Errorf("NDMOCompliance[customer_id] = %v, want %v", got, col.Score)
	}
}

func TestAnalyseSheetMissingAuditTrail(t *testing.T) {
	sheet := schemaSheet([][]string{
		{"Field Name", "Data Type"},
		{"account_id", "int"},
		{"balance", "decimal"},
	})

	result := newAnalyser().AnalyseSheet(sheet, "accounts.xlsx")

	if result.HasAuditTrail {
		t.Fatal("audit trail detected where none exists")
	}

	var issues int
	for _, issue := range result.Issues {
		if issue.Standard == scoring.StdAuditTrail {
			issues++
			if issue.Severity != "High" {
				t.Errorf("audit trail issue severity = %q, want High", issue.Severity)
			}
		}
	}
	if issues != 1 {
		t.Errorf("audit trail issues = %d, want 1", issues)
	}

	var recommended bool
	for _, rec := range result.Recommendations {
		if rec.Standard == scoring.StdAuditTrail && rec.Priority == "High" {
			recommended = true
		}
	}
	if !recommended {
		t.Error("no high-priority recommendation for the missing audit trail")
	}
}

func TestAnalyseSheetEdgeCases(t *testing.T) {
	t.Run("empty sheet flags both critical checks", func(t *testing.T) {
		result := newAnalyser().AnalyseSheet(spreadsheet.FromRows("Schema", nil), "empty.xlsx")

		if result.TotalColumns != 0 {
			t.Errorf("TotalColumns = %d, want 0", result.TotalColumns)
		}
		if len(result.Issues) != 2 {
			t.Errorf("Issues = %v, want primary key and audit trail", result.Issues)
		}
	})

	t.Run("all-null rows are skipped", func(t *testing.T) {
		sheet := schemaSheet([][]string{
			{"Field Name", "Data Type"},
			{"", ""},
			{"status", "varchar"},
			{"", ""},
		})

		result := newAnalyser().AnalyseSheet(sheet, "sparse.xlsx")
		if result.TotalColumns != 1 || result.Columns[0] != "status" {
			t.Errorf("columns = %v, want [status]", result.Columns)
		}
	})

	t.Run("unnamed columns get positional names", func(t *testing.T) {
		sheet := schemaSheet([][]string{
			{"A", "B"},
			{"", "x"},
		})

		result := newAnalyser().AnalyseSheet(sheet, "anon.xlsx")
		if result.TotalColumns != 1 || result.Columns[0] != "Field_1" {
			t.Errorf("columns = %v, want [Field_1]", result.Columns)
		}
	})

	t.Run("numeric keywords are not substring-greedy", func(t *testing.T) {
		sheet := schemaSheet([][]string{
			{"Field Name", "Data Type"},
			{"discount", ""},
		})

		result := newAnalyser().AnalyseSheet(sheet, "pricing.xlsx")
		if col := findColumn(t, result, "discount"); col.Type != quality.TypeText {
			t.Errorf("discount type = %q, want %q", col.Type, quality.TypeText)
		}
	})

	t.Run("declared type overrides name guess", func(t *testing.T) {
		sheet := schemaSheet([][]string{
			{"Field Name", "Data Type"},
			{"record_date", "varchar"},
		})

		result := newAnalyser().AnalyseSheet(sheet, "typed.xlsx")
		if col := findColumn(t, result, "record_date"); col.Type != quality.TypeText {
			t.Errorf("record_date type = %q, want declared %q", col.Type, quality.TypeText)
		}
	})
}

func TestAnalyseWorkbook(t *testing.T) {
	wb := excelize.NewFile()
	wb.SetSheetName("Sheet1", "Schema")
	rows := [][]any{
		{"Field Name", "Data Type", "Required"},
		{"user_id", "int", "Yes"},
		{"updated_at", "datetime", "No"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow("Schema", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	result, err := newAnalyser().Analyse(bytes.NewReader(buf.Bytes()), "users.xlsx")
	if err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	if result.TotalColumns != 2 || !result.HasPrimaryKey || !result.HasAuditTrail {
		t.Errorf("result = columns %d pk %v audit %v, want 2 true true",
			result.TotalColumns, result.HasPrimaryKey, result.HasAuditTrail)
	}
	if result.FileName != "users.xlsx" {
		t.Errorf("FileName = %q", result.FileName)
	}
	if !contains(result.ColumnAnalysis[0].Standards, scoring.StdCompleteness) {
		t.Errorf("required column standards = %v, want %s",
			result.ColumnAnalysis[0].Standards, scoring.StdCompleteness)
	}
}

func TestAnalyseUnreadable(t *testing.T) {
	_, err := newAnalyser().Analyse(strings.NewReader("not a workbook"), "bad.xlsx")
	if !errors.Is(err, analysis.ErrSchemaUnreadable) {
		t.Errorf("err = %v, want ErrSchemaUnreadable", err)
	}
}

func TestSessions(t *testing.T) {
	sys := newAnalyser()

	result := sys.AnalyseSheet(schemaSheet([][]string{
		{"Field Name", "Data Type"},
		{"item_id", "int"},
	}), "items.xlsx")
	sys.Sessions().Put(result)

	t.Run("get", func(t *testing.T) {
		session, err := sys.Sessions().Get(result.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if session.Schema.ID != result.ID {
			t.Errorf("session schema ID = %q, want %q", session.Schema.ID, result.ID)
		}
		if session.Quality != nil {
			t.Error("fresh session carries a quality report")
		}
	})

	t.Run("set quality", func(t *testing.T) {
		report := &quality.Report{}
		if err := sys.Sessions().SetQuality(result.ID, report); err != nil {
			t.Fatalf("SetQuality: %v", err)
		}
		session, err := sys.Sessions().Get(result.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if session.Quality != report {
			t.Error("quality report not attached to session")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := sys.Sessions().Get("missing"); !errors.Is(err, analysis.ErrSessionNotFound) {
			t.Errorf("err = %v, want ErrSessionNotFound", err)
		}
	})
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
