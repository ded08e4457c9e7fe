// Package storage provides workspace file operations over the local filesystem.
// All service artifacts (catalogue snapshots, filled-form records, rendered
// PDFs) live under a single workspace root; keys are slash-separated paths
// relative to that root.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rasidhq/rasid/pkg/lifecycle"
)

// Subdirectories created under the workspace root at startup.
var workspaceDirs = []string{
	"imported_data",
	"filled_forms",
	"filled_forms_pdf",
	"templates",
	"reports",
}

// System manages workspace file operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the workspace directories.
	Start(lc *lifecycle.Coordinator) error
	// Write creates the file at the given key. Keys are write-once:
	// an existing file yields ErrKeyExists and is left untouched.
	Write(key string, data []byte) error
	// Read returns the contents of the file at the given key.
	// Returns ErrNotFound if the file does not exist.
	Read(key string) ([]byte, error)
	// Exists reports whether a file exists at the given key.
	Exists(key string) (bool, error)
	// List returns the keys directly under dir whose base name starts with
	// prefix, sorted lexicographically. An empty prefix lists the whole
	// directory. A missing directory yields an empty list, not an error.
	List(dir, prefix string) ([]string, error)
	// Remove deletes the file at the given key. Used only to discard
	// artifacts that failed post-write validation.
	Remove(key string) error
	// Path resolves a key to an absolute filesystem path.
	Path(key string) string
}

type workspace struct {
	root   string
	logger *slog.Logger
}

// New creates a workspace storage system rooted at cfg.Root.
// Directories are not created until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	return &workspace{
		root:   root,
		logger: logger.With("system", "storage"),
	}, nil
}

func (ws *workspace) Start(lc *lifecycle.Coordinator) error {
	ws.logger.Info("starting storage system", "root", ws.root)

	lc.OnStartup(func() error {
		for _, dir := range workspaceDirs {
			if err := os.MkdirAll(filepath.Join(ws.root, dir), 0o755); err != nil {
				ws.logger.Error("workspace initialization failed", "dir", dir, "error", err)
				return fmt.Errorf("create workspace dir %s: %w", dir, err)
			}
		}

		ws.logger.Info("workspace ready", "root", ws.root)
		return nil
	})

	return nil
}

func (ws *workspace) Write(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := ws.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", key, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrKeyExists, key)
		}
		return fmt.Errorf("create %s: %w", key, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", key, err)
	}

	return nil
}

func (ws *workspace) Read(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ws.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return data, nil
}

func (ws *workspace) Exists(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(ws.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", key, err)
	}

	return true, nil
}

func (ws *workspace) List(dir, prefix string) ([]string, error) {
	if err := validateKey(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(ws.root, filepath.FromSlash(dir)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if prefix != "" && !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		keys = append(keys, dir+"/"+entry.Name())
	}

	sort.Strings(keys)
	return keys, nil
}

func (ws *workspace) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(ws.Path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}

	return nil
}

func (ws *workspace) Path(key string) string {
	return filepath.Join(ws.root, filepath.FromSlash(key))
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
