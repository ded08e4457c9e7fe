// Package importer implements catalogue ingestion for Rasid: it reads one
// vendor workbook, normalises it into a catalogue snapshot, and persists the
// snapshot as a timestamped JSON document. Alias misses, forward-fills,
// priority coercions, and unlinked evidence rows are warnings accumulated on
// the result; only a missing specifications sheet or an unreadable workbook
// aborts the run.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rasidhq/rasid/internal/catalogue"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
	"github.com/rasidhq/rasid/pkg/storage"
)

// importDateLayout is the ISO-8601 local-time format of the snapshot's
// import_date field.
const importDateLayout = "2006-01-02T15:04:05"

// Result reports the outcome of one importer run.
type Result struct {
	RunID      string               `json:"run_id"`
	File       string               `json:"file"`
	Statistics catalogue.Statistics `json:"statistics"`
	Warnings   []string             `json:"warnings"`
}

// System defines the public contract for catalogue import operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// ImportFile runs the importer over a workbook on disk.
	ImportFile(path string) (*Result, error)
	// Import runs the importer over a workbook stream, e.g. an upload body.
	Import(r io.Reader, sourceName string) (*Result, error)
}

type importLog struct {
	warnings []string
}

func (l *importLog) warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

type runner struct {
	workspace storage.System
	store     catalogue.System
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an importer implementing the System interface. The catalogue
// store is reloaded after every successful import so reads observe the new
// snapshot without a restart.
func New(workspace storage.System, store catalogue.System, logger *slog.Logger) System {
	return &runner{
		workspace: workspace,
		store:     store,
		logger:    logger.With("system", "importer"),
		now:       time.Now,
	}
}

func (r *runner) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *runner) ImportFile(path string) (*Result, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return r.run(wb, path)
}

func (r *runner) Import(reader io.Reader, sourceName string) (*Result, error) {
	wb, err := spreadsheet.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return r.run(wb, sourceName)
}

func (r *runner) run(wb *spreadsheet.Workbook, sourceName string) (*Result, error) {
	runID := uuid.NewString()
	log := &importLog{}

	snap, err := r.buildSnapshot(wb, sourceName, log)
	if err != nil {
		r.logger.Error("import aborted", "run", runID, "source", sourceName, "error", err)
		return nil, err
	}

	key, err := r.writeSnapshot(snap)
	if err != nil {
		return nil, err
	}

	if err := r.store.Reload(); err != nil {
		r.logger.Warn("catalogue reload after import failed", "run", runID, "error", err)
	}

	r.logger.Info(
		"catalogue imported",
		"run", runID,
		"source", sourceName,
		"file", key,
		"specifications", snap.Statistics.TotalSpecifications,
		"warnings", len(log.warnings),
	)

	return &Result{
		RunID:      runID,
		File:       key,
		Statistics: snap.Statistics,
		Warnings:   snap.Warnings,
	}, nil
}

func (r *runner) buildSnapshot(
	wb *spreadsheet.Workbook,
	sourceName string,
	log *importLog,
) (*catalogue.Snapshot, error) {
	sheets := discoverSheets(wb)

	specsName, ok := sheets[roleSpecifications]
	if !ok {
		return nil, fmt.Errorf("%w: no specifications sheet found among %v", ErrCatalogueIncomplete, wb.SheetNames())
	}

	specsSheet, err := wb.Sheet(specsName)
	if err != nil {
		return nil, err
	}

	specs, err := parseSpecifications(specsSheet, log)
	if err != nil {
		return nil, err
	}

	snap := &catalogue.Snapshot{
		ImportDate:     r.now().Format(importDateLayout),
		SourceFile:     sourceName,
		Controls:       synthesizeControls(specs),
		Specifications: specs,
		Evidence:       map[string][]catalogue.EvidenceRequirement{},
	}

	if masterName, ok := sheets[roleMaster]; ok {
		masterSheet, err := wb.Sheet(masterName)
		if err != nil {
			return nil, err
		}
		master := parseMasterSheet(masterSheet, specs, log)
		snap.Evidence = master.Evidence
		snap.UnlinkedEvidence = master.Unlinked
		snap.MaturityQuestions = master.MaturityQuestions
	} else {
		log.warnf("no master sheet found, evidence and maturity left empty")
	}

	if priorityName, ok := sheets[rolePriority]; ok {
		prioritySheet, err := wb.Sheet(priorityName)
		if err != nil {
			return nil, err
		}
		snap.Calculations = parseCalculations(prioritySheet, log)
	} else {
		log.warnf("no priority sheet found, calculations left empty")
	}

	snap.Warnings = log.warnings
	snap.Statistics = snap.Summarize()
	return snap, nil
}

// writeSnapshot persists the snapshot under imported_data/ with a filename
// containing the import timestamp. Prior snapshots are never deleted. On a
// same-second filename collision the timestamp advances until a free slot
// is found.
func (r *runner) writeSnapshot(snap *catalogue.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	ts := r.now()
	for attempt := 0; attempt < 10; attempt++ {
		key := catalogue.SnapshotKey(ts)
		err := r.workspace.Write(key, data)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, storage.ErrKeyExists) {
			return "", fmt.Errorf("write snapshot: %w", err)
		}
		ts = ts.Add(time.Second)
	}

	return "", fmt.Errorf("write snapshot: no free timestamped filename")
}
