package forms

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rasidhq/rasid/pkg/storage"
)

const (
	// RecordDir is the workspace directory for filled-form records.
	RecordDir = "filled_forms"

	timestampLayout   = "20060102_150405"
	createdDateLayout = "2006-01-02T15:04:05"
)

// recordSuffixPattern matches the timestamp and sequence part of a record
// filename, as produced by Submit.
var recordSuffixPattern = regexp.MustCompile(`^\d{8}_\d{6}_\d{4}\.json$`)

// System defines the public contract for the form record store.
type System interface {
	Handler(renderer Renderer) *Handler

	// Submit appends one record for the given kind and key tuple and
	// returns the persisted submission.
	Submit(kind Kind, key []string, data map[string]any, imagePath string) (*Submission, error)

	// Load returns the latest record for the given kind and key tuple,
	// or nil when no submission exists.
	Load(kind Kind, key ...string) (*Record, error)
}

// Renderer produces a formatted PDF for a persisted record. Implemented by
// the render system; declared here so the handler can trigger rendering
// without a package cycle.
type Renderer interface {
	RenderFilledForm(kind Kind, key []string, record *Record) (string, error)
}

type store struct {
	workspace storage.System
	logger    *slog.Logger
	now       func() time.Time
	seq       atomic.Uint64
}

// New creates a form record store backed by the given workspace.
func New(workspace storage.System, logger *slog.Logger) System {
	return &store{
		workspace: workspace,
		logger:    logger.With("system", "forms"),
		now:       time.Now,
	}
}

func (s *store) Handler(renderer Renderer) *Handler {
	return NewHandler(s, renderer, s.logger)
}

func (s *store) Submit(kind Kind, key []string, data map[string]any, imagePath string) (*Submission, error) {
	prefix, err := recordPrefix(kind, key)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := Record{
		FormType:    string(kind),
		CreatedDate: now.Format(createdDateLayout),
		Data:        data,
		ImagePath:   imagePath,
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding form record: %w", err)
	}

	// A per-process counter widens the filename so two submissions in the
	// same second land in distinct files, ordered by sequence.
	file := fmt.Sprintf(
		"%s/%s%s_%04d.json",
		RecordDir, prefix, now.Format(timestampLayout), s.seq.Add(1)%10000,
	)
	if err := s.workspace.Write(file, payload); err != nil {
		return nil, fmt.Errorf("writing form record: %w", err)
	}

	s.logger.Info("form submitted", "kind", kind, "key", strings.Join(key, "/"), "file", file)

	return &Submission{Kind: kind, Key: key, File: file, Record: record}, nil
}

func (s *store) Load(kind Kind, key ...string) (*Record, error) {
	prefix, err := recordPrefix(kind, key)
	if err != nil {
		return nil, err
	}

	names, err := s.workspace.List(RecordDir, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing form records: %w", err)
	}

	// The prefix for a short key tuple also matches records written under a
	// longer tuple that extends it. Only names whose remainder after the
	// prefix is exactly a timestamp and sequence belong to this tuple.
	matches := names[:0]
	for _, name := range names {
		rest := strings.TrimPrefix(path.Base(name), prefix)
		if recordSuffixPattern.MatchString(rest) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// List returns sorted keys; the lexicographically greatest filename
	// carries the latest timestamp.
	latest := matches[len(matches)-1]
	payload, err := s.workspace.Read(latest)
	if err != nil {
		return nil, fmt.Errorf("reading form record %s: %w", latest, err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decoding form record %s: %w", latest, err)
	}
	return &record, nil
}

// recordPrefix derives the filename prefix for a kind and key tuple:
// the kind and each key component joined by underscores, with a trailing
// underscore ahead of the timestamp.
func recordPrefix(kind Kind, key []string) (string, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", err
	}

	parts := []string{string(kind)}
	for _, component := range key {
		component = strings.TrimSpace(component)
		if component == "" || strings.ContainsAny(component, "/\\_") {
			return "", fmt.Errorf("%w: %q", ErrBadKey, component)
		}
		parts = append(parts, component)
	}
	return strings.Join(parts, "_") + "_", nil
}
