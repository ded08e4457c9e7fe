package render_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rasidhq/rasid/internal/forms"
	"github.com/rasidhq/rasid/internal/render"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/storage"
)

func newRenderer(t *testing.T) (render.System, storage.System) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	workspace, err := storage.New(&storage.Config{Root: t.TempDir()}, logger)
	if err != nil {
		t.Fatal(err)
	}
	return render.New(workspace, logger), workspace
}

// requirePDF reads the rendered key back from the workspace and checks it is
// a valid document with at least one page.
func requirePDF(t *testing.T, workspace storage.System, key string) {
	t.Helper()

	data, err := workspace.Read(key)
	if err != nil {
		t.Fatalf("reading rendered pdf %s: %v", key, err)
	}
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		t.Fatalf("rendered pdf %s invalid: %v", key, err)
	}
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil || pages == 0 {
		t.Fatalf("rendered pdf %s has no pages: %v", key, err)
	}
}

func TestRenderTemplate(t *testing.T) {
	sys, workspace := newRenderer(t)

	for _, kind := range forms.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			key, err := sys.RenderTemplate(kind)
			if err != nil {
				t.Fatalf("RenderTemplate: %v", err)
			}
			if !strings.HasPrefix(key, render.TemplateDir+"/"+string(kind)+"_") {
				t.Errorf("key = %q, want under %s", key, render.TemplateDir)
			}
			requirePDF(t, workspace, key)
		})
	}
}

func TestRenderTemplateUnknownKind(t *testing.T) {
	sys, _ := newRenderer(t)

	if _, err := sys.RenderTemplate(forms.Kind("invoice")); !errors.Is(err, forms.ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestRenderFilledForm(t *testing.T) {
	sys, workspace := newRenderer(t)

	record := &forms.Record{
		FormType:    string(forms.KindEvidence),
		CreatedDate: "2026-08-30T10:15:00",
		Data: map[string]any{
			"control":     "DG.1.1",
			"description": "Charter approved by the governance board",
			"implemented": true,
		},
		ImagePath: "imported_data/evidence.png",
	}

	key, err := sys.RenderFilledForm(forms.KindEvidence, []string{"DG.1", "DG.1.1"}, record)
	if err != nil {
		t.Fatalf("RenderFilledForm: %v", err)
	}

	wantPrefix := render.FilledFormDir + "/evidence_DG.1_DG.1.1_"
	if !strings.HasPrefix(key, wantPrefix) {
		t.Errorf("key = %q, want prefix %q", key, wantPrefix)
	}
	requirePDF(t, workspace, key)
}

func TestRenderComplianceReport(t *testing.T) {
	sys, workspace := newRenderer(t)

	result := &scoring.Result{
		OverallScore: 0.82,
		Status:       scoring.StatusPartiallyCompliant,
		CategoryScores: map[string]float64{
			scoring.CategoryGovernance: 0.95,
			scoring.CategoryQuality:    0.78,
		},
		StandardScores: map[string]scoring.StandardScore{
			scoring.StdPrimaryKey: {
				Name: "Primary Key Definition", Score: 1.0, Weight: 0.08, Critical: true, Assessed: true,
			},
			scoring.StdCompleteness: {
				Name: "Data Completeness", Score: 0.65, Weight: 0.08, Critical: true, Assessed: true,
			},
		},
		Recommendations: []scoring.Recommendation{
			{
				Standard: scoring.StdCompleteness,
				Name:     "Data Completeness",
				Priority: "High",
				Action:   "Fill required null values before publication",
			},
		},
	}

	key, err := sys.RenderComplianceReport(result, "orders.xlsx")
	if err != nil {
		t.Fatalf("RenderComplianceReport: %v", err)
	}

	wantPrefix := render.ReportDir + "/" + string(forms.KindComplianceReport) + "_"
	if !strings.HasPrefix(key, wantPrefix) {
		t.Errorf("key = %q, want prefix %q", key, wantPrefix)
	}
	requirePDF(t, workspace, key)
}

func TestRenderLeavesNoArtifactOnUnknownKind(t *testing.T) {
	sys, workspace := newRenderer(t)

	if _, err := sys.RenderFilledForm(forms.Kind("invoice"), nil, &forms.Record{}); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	names, err := workspace.List(render.FilledFormDir, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("workspace holds %v after a failed render", names)
	}
}
