package importer

import (
	"slices"
	"strings"

	"github.com/rasidhq/rasid/internal/catalogue"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// specPrefixLength is the length of the case-sensitive text prefix used to
// match a master-sheet reference against specification texts.
const specPrefixLength = 40

var requiredValues = []string{"yes", "true", "1", "y", "required", "mandatory"}

// masterSheetResult carries everything parsed from the master sheet.
type masterSheetResult struct {
	Evidence          map[string][]catalogue.EvidenceRequirement
	Unlinked          []catalogue.EvidenceRequirement
	MaturityQuestions []catalogue.MaturityQuestion
}

// parseMasterSheet extracts evidence requirements and maturity questions.
// Each row nominally references a specification; linkage tries, in order,
// a leading DD.N.M token, then a case-sensitive text-prefix match, and
// finally drops the row into the unlinked bucket for manual reconciliation.
func parseMasterSheet(
	sheet *spreadsheet.Sheet,
	specs []catalogue.Specification,
	log *importLog,
) masterSheetResult {
	result := masterSheetResult{
		Evidence: map[string][]catalogue.EvidenceRequirement{},
	}

	headerRow := probeHeader(sheet)
	if headerRow < 0 {
		log.warnf("master sheet %q has no detectable header row, evidence skipped", sheet.Name)
		return result
	}

	headerValues := spreadsheet.Values(sheet.Rows[headerRow])
	headers := ResolveHeaders(headerValues, masterSheetAliases)
	levels := ResolveHeaders(headerValues, maturityLevels)

	for i := headerRow + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]

		if q, ok := maturityQuestion(row, headers, levels); ok {
			result.MaturityQuestions = append(result.MaturityQuestions, q)
		}

		reference := headers.Cell(row, ColNDMOSpec)
		description := headers.Cell(row, ColEvidence)
		if reference == "" && description == "" {
			continue
		}

		// Evidence priorities differ from specification priorities: a blank
		// cell stays blank rather than defaulting to P1.
		var priority catalogue.Priority
		if raw := headers.Cell(row, ColPriority); raw != "" {
			var coerced bool
			priority, coerced = catalogue.NormalizePriority(raw)
			if coerced {
				log.warnf("master row %d: unknown priority %q coerced to P1", i+1, raw)
			}
		}

		req := catalogue.EvidenceRequirement{
			Type:               headers.Cell(row, ColEvidenceType),
			Description:        description,
			DocumentName:       headers.Cell(row, ColDocument),
			AcceptanceCriteria: headers.Cell(row, ColAcceptance),
			Required:           isRequired(headers.Cell(row, ColRequired)),
			Priority:           priority,
			MaturityLevel:      headers.Cell(row, ColMaturity),
		}

		specID := linkSpecification(reference, specs)
		if specID == "" {
			req.Reference = reference
			result.Unlinked = append(result.Unlinked, req)
			log.warnf("master row %d: no specification matched %q", i+1, truncate(reference, specPrefixLength))
			continue
		}

		req.SpecID = specID
		result.Evidence[specID] = append(result.Evidence[specID], req)
	}

	return result
}

// linkSpecification resolves a master-sheet reference cell to a spec-ID.
// Returns "" when no strategy matches.
func linkSpecification(reference string, specs []catalogue.Specification) string {
	if reference == "" {
		return ""
	}

	if token := leadingSpecID(reference); token != "" {
		return token
	}

	prefix := truncate(reference, specPrefixLength)
	for _, spec := range specs {
		if strings.HasPrefix(spec.Text, prefix) {
			return spec.SpecID
		}
	}

	return ""
}

// leadingSpecID returns the reference's first whitespace token when it has
// the three-part dotted DD.N.M shape.
func leadingSpecID(reference string) string {
	fields := strings.Fields(reference)
	if len(fields) == 0 {
		return ""
	}

	token := strings.ToUpper(strings.Trim(fields[0], ".,;:"))
	if catalogue.SpecIDPattern.MatchString(token) {
		return token
	}
	return ""
}

func maturityQuestion(
	row []spreadsheet.Cell,
	headers HeaderMap,
	levels HeaderMap,
) (catalogue.MaturityQuestion, bool) {
	domain := headers.Cell(row, ColDomain)
	if domain == "" || len(levels) == 0 {
		return catalogue.MaturityQuestion{}, false
	}

	descriptions := map[string]string{}
	for level, idx := range levels {
		if idx < len(row) && !row[idx].Null {
			descriptions[string(level)] = row[idx].Value
		}
	}

	if len(descriptions) == 0 {
		return catalogue.MaturityQuestion{}, false
	}

	return catalogue.MaturityQuestion{Domain: domain, Levels: descriptions}, true
}

func isRequired(value string) bool {
	return slices.Contains(requiredValues, strings.ToLower(strings.TrimSpace(value)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
