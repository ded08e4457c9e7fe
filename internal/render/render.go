// Package render turns form templates, filled-form records, and compliance
// results into formatted PDF files under the workspace. Every rendered
// document is validated before it is written, so the workspace never holds
// a partial or corrupt artifact.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rasidhq/rasid/internal/forms"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/storage"
)

const (
	// TemplateDir holds blank form templates.
	TemplateDir = "templates"
	// FilledFormDir holds rendered filled-form PDFs.
	FilledFormDir = "filled_forms_pdf"
	// ReportDir holds rendered compliance reports.
	ReportDir = "reports"

	timestampLayout = "20060102_150405"
)

// System defines the public contract for PDF rendering.
type System interface {
	Handler() *Handler

	// RenderTemplate writes a blank template PDF for the given form kind
	// and returns its storage key.
	RenderTemplate(kind forms.Kind) (string, error)

	// RenderFilledForm writes a PDF of a persisted form record and
	// returns its storage key.
	RenderFilledForm(kind forms.Kind, key []string, record *forms.Record) (string, error)

	// RenderComplianceReport writes a formatted report of a scoring
	// result and returns its storage key.
	RenderComplianceReport(result *scoring.Result, sourceFile string) (string, error)
}

type renderer struct {
	workspace storage.System
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a PDF renderer backed by the given workspace.
func New(workspace storage.System, logger *slog.Logger) System {
	return &renderer{
		workspace: workspace,
		logger:    logger.With("system", "render"),
		now:       time.Now,
	}
}

func (r *renderer) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *renderer) RenderTemplate(kind forms.Kind) (string, error) {
	tmpl, err := templateFor(kind)
	if err != nil {
		return "", err
	}

	doc := newDocument(tmpl.Title)
	doc.sectionTitle("Form Template")
	for _, field := range tmpl.Fields {
		doc.blankField(field)
	}

	key := fmt.Sprintf("%s/%s_%s.pdf", TemplateDir, kind, r.now().Format(timestampLayout))
	return r.finish(key, doc)
}

func (r *renderer) RenderFilledForm(kind forms.Kind, key []string, record *forms.Record) (string, error) {
	tmpl, err := templateFor(kind)
	if err != nil {
		return "", err
	}

	doc := newDocument(tmpl.Title)
	doc.metaLine("Submitted", record.CreatedDate)
	if len(key) > 0 {
		doc.metaLine("Reference", strings.Join(key, " / "))
	}
	doc.sectionTitle("Submitted Fields")
	for name, value := range sortedFields(record.Data) {
		doc.filledField(name, value)
	}
	if record.ImagePath != "" {
		doc.metaLine("Attachment", record.ImagePath)
	}

	parts := append([]string{string(kind)}, key...)
	file := fmt.Sprintf(
		"%s/%s_%s.pdf",
		FilledFormDir, strings.Join(parts, "_"), r.now().Format(timestampLayout),
	)
	return r.finish(file, doc)
}

func (r *renderer) RenderComplianceReport(result *scoring.Result, sourceFile string) (string, error) {
	doc := newDocument("NDMO Compliance Report")
	if sourceFile != "" {
		doc.metaLine("Source", sourceFile)
	}
	doc.metaLine("Generated", r.now().Format("2006-01-02 15:04:05"))
	doc.scoreSummary(result.OverallScore, result.Status)

	doc.sectionTitle("Category Scores")
	for name, score := range sortedScores(result.CategoryScores) {
		doc.scoreRow(name, score)
	}

	doc.sectionTitle("Standards")
	doc.standardsHeader()
	for _, std := range scoring.Standards {
		if record, ok := result.StandardScores[std.ID]; ok {
			doc.standardRow(record.Name, record.Score, record.Weight, record.Critical, record.Assessed)
		}
	}

	if len(result.Recommendations) > 0 {
		doc.sectionTitle("Recommendations")
		for _, rec := range result.Recommendations {
			doc.recommendation(rec.Priority, rec.Standard, rec.Action)
		}
	}

	key := fmt.Sprintf(
		"%s/%s_%s.pdf",
		ReportDir, forms.KindComplianceReport, r.now().Format(timestampLayout),
	)
	return r.finish(key, doc)
}

// finish validates the rendered document and writes it to the workspace.
// Invalid output is discarded, never written.
func (r *renderer) finish(key string, doc *document) (string, error) {
	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	data := buf.Bytes()
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil || pages == 0 {
		return "", fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}

	if err := r.workspace.Write(key, data); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}

	r.logger.Info("pdf rendered", "file", key, "pages", pages, "bytes", len(data))
	return key, nil
}
