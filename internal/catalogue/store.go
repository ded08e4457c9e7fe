package catalogue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/rasidhq/rasid/pkg/storage"
)

type store struct {
	workspace storage.System
	logger    *slog.Logger

	mu        sync.RWMutex
	snap      *Snapshot
	byControl map[string]*Control
	stats     Statistics
}

// New creates a catalogue store implementing the System interface.
// The store holds no data until Load is called.
func New(workspace storage.System, logger *slog.Logger) System {
	return &store{
		workspace: workspace,
		logger:    logger.With("system", "catalogue"),
	}
}

func (s *store) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *store) Load() error {
	key, err := s.latestSnapshotKey()
	if err != nil {
		return err
	}

	if key == "" {
		s.logger.Info("no catalogue snapshot found, serving empty catalogue")
		return nil
	}

	data, err := s.workspace.Read(key)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", key, err)
	}

	s.install(&snap)
	s.logger.Info(
		"catalogue snapshot loaded",
		"file", key,
		"controls", snap.Statistics.TotalControls,
		"specifications", snap.Statistics.TotalSpecifications,
	)
	return nil
}

func (s *store) Reload() error {
	s.mu.Lock()
	s.snap = nil
	s.byControl = nil
	s.stats = Statistics{}
	s.mu.Unlock()

	return s.Load()
}

func (s *store) install(snap *Snapshot) {
	byControl := make(map[string]*Control, len(snap.Controls))
	for i := range snap.Controls {
		byControl[snap.Controls[i].ID] = &snap.Controls[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.byControl = byControl
	s.stats = snap.Statistics
}

func (s *store) ListControls() []Control {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	return s.snap.Controls
}

func (s *store) GetControl(id string) *Control {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byControl[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil
	}
	return c
}

func (s *store) ListSpecifications(filters Filters) []Specification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}

	var specs []Specification
	for _, spec := range s.snap.Specifications {
		if filters.Match(spec) {
			specs = append(specs, spec)
		}
	}
	return specs
}

func (s *store) GetEvidence(specID string) []EvidenceRequirement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	return s.snap.Evidence[strings.ToUpper(strings.TrimSpace(specID))]
}

func (s *store) UnlinkedEvidence() []EvidenceRequirement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	return s.snap.UnlinkedEvidence
}

func (s *store) MaturityQuestions() []MaturityQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	return s.snap.MaturityQuestions
}

func (s *store) Calculations() []CalculationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil
	}
	return s.snap.Calculations
}

func (s *store) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	if stats.PriorityCounts == nil {
		stats.PriorityCounts = map[Priority]int{P1: 0, P2: 0, P3: 0}
	}
	return stats
}

func (s *store) Imports() ([]ImportInfo, error) {
	keys, err := s.workspace.List(SnapshotDir, "")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var imports []ImportInfo
	for _, key := range keys {
		name := path.Base(key)
		if !IsSnapshotFile(name) {
			continue
		}
		imports = append(imports, ImportInfo{
			File:       name,
			ImportDate: strings.TrimSuffix(name, ".json"),
		})
	}
	return imports, nil
}

// latestSnapshotKey returns the storage key of the lexicographically
// greatest snapshot file, or "" when none exists.
func (s *store) latestSnapshotKey() (string, error) {
	keys, err := s.workspace.List(SnapshotDir, "")
	if err != nil {
		return "", fmt.Errorf("list snapshots: %w", err)
	}

	latest := ""
	for _, key := range keys {
		if IsSnapshotFile(path.Base(key)) {
			latest = key
		}
	}
	return latest, nil
}
