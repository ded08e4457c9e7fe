package forms_test

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/rasidhq/rasid/internal/forms"
	"github.com/rasidhq/rasid/pkg/storage"
)

func newStore(t *testing.T) (forms.System, storage.System) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	workspace, err := storage.New(&storage.Config{Root: t.TempDir()}, logger)
	if err != nil {
		t.Fatal(err)
	}
	return forms.New(workspace, logger), workspace
}

func TestParseKind(t *testing.T) {
	for _, kind := range forms.Kinds {
		parsed, err := forms.ParseKind(string(kind))
		if err != nil || parsed != kind {
			t.Errorf("ParseKind(%q) = (%q, %v)", kind, parsed, err)
		}
	}

	if _, err := forms.ParseKind("invoice"); !errors.Is(err, forms.ErrUnknownKind) {
		t.Errorf("ParseKind(invoice) err = %v, want ErrUnknownKind", err)
	}
}

func TestSubmitAndLoad(t *testing.T) {
	sys, workspace := newStore(t)

	data := map[string]any{
		"control":     "Data governance charter approved",
		"implemented": true,
	}

	submission, err := sys.Submit(forms.KindEvidence, []string{"DG.1", "DG.1.1"}, data, "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	t.Run("record file", func(t *testing.T) {
		wantPrefix := forms.RecordDir + "/evidence_DG.1_DG.1.1_"
		if !strings.HasPrefix(submission.File, wantPrefix) {
			t.Errorf("File = %q, want prefix %q", submission.File, wantPrefix)
		}
		if !strings.HasSuffix(submission.File, ".json") {
			t.Errorf("File = %q, want .json suffix", submission.File)
		}

		names, err := workspace.List(forms.RecordDir, "evidence_DG.1_DG.1.1_")
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != submission.File {
			t.Errorf("workspace records = %v, want [%s]", names, submission.File)
		}
	})

	t.Run("load latest", func(t *testing.T) {
		record, err := sys.Load(forms.KindEvidence, "DG.1", "DG.1.1")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if record == nil {
			t.Fatal("Load returned nil for an existing record")
		}
		if record.FormType != string(forms.KindEvidence) {
			t.Errorf("FormType = %q", record.FormType)
		}
		if record.CreatedDate == "" {
			t.Error("CreatedDate is empty")
		}
		if !reflect.DeepEqual(record.Data, data) {
			t.Errorf("Data = %v, want %v", record.Data, data)
		}
	})
}

func TestSubmitIsAppendOnly(t *testing.T) {
	sys, workspace := newStore(t)

	first, err := sys.Submit(forms.KindGapAnalysis, []string{"Q3"}, map[string]any{"gaps": "12"}, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := sys.Submit(forms.KindGapAnalysis, []string{"Q3"}, map[string]any{"gaps": "9"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if first.File == second.File {
		t.Fatalf("repeated submissions share file %s", first.File)
	}

	names, err := workspace.List(forms.RecordDir, "gap-analysis_Q3_")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("records = %v, want both submissions", names)
	}

	record, err := sys.Load(forms.KindGapAnalysis, "Q3")
	if err != nil {
		t.Fatal(err)
	}
	if record.Data["gaps"] != "9" {
		t.Errorf("latest record data = %v, want the second submission", record.Data)
	}
}

func TestLoadAbsentRecord(t *testing.T) {
	sys, _ := newStore(t)

	record, err := sys.Load(forms.KindRiskAssessment, "orders")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record != nil {
		t.Errorf("record = %+v, want nil for an absent submission", record)
	}
}

func TestSubmitValidation(t *testing.T) {
	sys, _ := newStore(t)

	tests := []struct {
		name string
		kind forms.Kind
		key  []string
		want error
	}{
		{"unknown kind", forms.Kind("invoice"), []string{"k"}, forms.ErrUnknownKind},
		{"empty key component", forms.KindEvidence, []string{""}, forms.ErrBadKey},
		{"separator in key", forms.KindEvidence, []string{"a/b"}, forms.ErrBadKey},
		{"underscore in key", forms.KindEvidence, []string{"a_b"}, forms.ErrBadKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.Submit(tt.kind, tt.key, nil, ""); !errors.Is(err, tt.want) {
				t.Errorf("Submit err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeyTuplesDoNotCollide(t *testing.T) {
	sys, _ := newStore(t)

	if _, err := sys.Submit(forms.KindEvidence, []string{"DG.1", "DG.1.1"}, map[string]any{"n": "one"}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := sys.Submit(forms.KindEvidence, []string{"DG.1"}, map[string]any{"n": "two"}, ""); err != nil {
		t.Fatal(err)
	}

	record, err := sys.Load(forms.KindEvidence, "DG.1", "DG.1.1")
	if err != nil {
		t.Fatal(err)
	}
	if record.Data["n"] != "one" {
		t.Errorf("tuple (DG.1, DG.1.1) loaded %v", record.Data)
	}

	// The shorter tuple's prefix also matches the longer tuple's files,
	// which sort above its own. Load must not pick those up.
	record, err = sys.Load(forms.KindEvidence, "DG.1")
	if err != nil {
		t.Fatal(err)
	}
	if record == nil || record.Data["n"] != "two" {
		t.Errorf("tuple (DG.1) loaded %v", record)
	}
}
