package storage_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rasidhq/rasid/pkg/lifecycle"
	"github.com/rasidhq/rasid/pkg/storage"
)

func newWorkspace(t *testing.T) (storage.System, string) {
	t.Helper()

	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ws, err := storage.New(&storage.Config{Root: root}, logger)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return ws, root
}

func TestStartCreatesWorkspaceDirs(t *testing.T) {
	ws, root := newWorkspace(t)

	lc := lifecycle.New()
	if err := ws.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()
	if err := lc.Err(); err != nil {
		t.Fatalf("startup error = %v", err)
	}

	for _, dir := range []string{
		"imported_data", "filled_forms", "filled_forms_pdf", "templates", "reports",
	} {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			t.Errorf("workspace dir %q not created: %v", dir, err)
		}
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	ws, _ := newWorkspace(t)

	if err := ws.Write("reports/out.json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := ws.Read("reports/out.json")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Read() = %q, want %q", data, `{"a":1}`)
	}
}

func TestWriteIsWriteOnce(t *testing.T) {
	ws, _ := newWorkspace(t)

	if err := ws.Write("imported_data/a.json", []byte("one")); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}

	err := ws.Write("imported_data/a.json", []byte("two"))
	if !errors.Is(err, storage.ErrKeyExists) {
		t.Fatalf("second Write() error = %v, want ErrKeyExists", err)
	}

	data, _ := ws.Read("imported_data/a.json")
	if string(data) != "one" {
		t.Errorf("content rewritten to %q", data)
	}
}

func TestReadMissing(t *testing.T) {
	ws, _ := newWorkspace(t)

	if _, err := ws.Read("reports/none.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestKeyValidation(t *testing.T) {
	ws, _ := newWorkspace(t)

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "../escape.json", storage.ErrInvalidKey},
		{"inner traversal", "reports/../../escape.json", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ws.Write(tt.key, []byte("x")); !errors.Is(err, tt.want) {
				t.Errorf("Write(%q) error = %v, want %v", tt.key, err, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	ws, _ := newWorkspace(t)

	for _, key := range []string{
		"filled_forms/evidence_DG.1_DG.1.1_20250101_000000_0001.json",
		"filled_forms/evidence_DG.1_DG.1.1_20250101_000000_0002.json",
		"filled_forms/gap-analysis_DG_20250101_000000_0003.json",
	} {
		if err := ws.Write(key, []byte("{}")); err != nil {
			t.Fatalf("Write(%q) error = %v", key, err)
		}
	}

	t.Run("prefix filter returns sorted keys", func(t *testing.T) {
		keys, err := ws.List("filled_forms", "evidence_DG.1_DG.1.1_")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{
			"filled_forms/evidence_DG.1_DG.1.1_20250101_000000_0001.json",
			"filled_forms/evidence_DG.1_DG.1.1_20250101_000000_0002.json",
		}
		if !slices.Equal(keys, want) {
			t.Errorf("List() = %v, want %v", keys, want)
		}
	})

	t.Run("missing dir is empty, not an error", func(t *testing.T) {
		keys, err := ws.List("nonexistent", "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("List() = %v, want empty", keys)
		}
	})
}

func TestRemove(t *testing.T) {
	ws, _ := newWorkspace(t)

	if err := ws.Write("templates/t.pdf", []byte("pdf")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := ws.Remove("templates/t.pdf"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := ws.Read("templates/t.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Read() after Remove error = %v, want ErrNotFound", err)
	}
	if err := ws.Remove("templates/t.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}
