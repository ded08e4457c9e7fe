package importer

import (
	"fmt"
	"strings"

	"github.com/rasidhq/rasid/internal/catalogue"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// controlTitleTokens is the number of leading whitespace-separated tokens of
// a control's first specification used as the control title.
const controlTitleTokens = 6

// parseSpecifications walks the specifications sheet top-to-bottom and
// returns the specifications in row order. The domain column is
// forward-filled: a blank cell inherits the most recent non-blank domain.
// Rows with a blank specification-ID are skipped silently; rows whose ID
// fails the DD.N.M shape are skipped with a warning.
func parseSpecifications(sheet *spreadsheet.Sheet, log *importLog) ([]catalogue.Specification, error) {
	headerRow := probeHeader(sheet)
	if headerRow < 0 {
		return nil, fmt.Errorf("%w: specifications sheet %q has no detectable header row", ErrCatalogueIncomplete, sheet.Name)
	}

	headers := ResolveHeaders(spreadsheet.Values(sheet.Rows[headerRow]), specSheetAliases)
	if !headers.Has(ColSpecID) {
		return nil, fmt.Errorf("%w: specifications sheet %q has no specification-ID column", ErrCatalogueIncomplete, sheet.Name)
	}
	if !headers.Has(ColSpecification) {
		log.warnf("specifications sheet %q: no specification-text column matched", sheet.Name)
	}

	var specs []catalogue.Specification
	lastDomain := ""

	for i := headerRow + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]

		// stateful fold: forward-fill the domain across blank cells
		if domain := headers.Cell(row, ColDomain); domain != "" {
			lastDomain = domain
		}

		rawID := headers.Cell(row, ColSpecID)
		if rawID == "" {
			continue
		}

		specID := strings.ToUpper(strings.TrimSpace(rawID))
		if !catalogue.SpecIDPattern.MatchString(specID) {
			log.warnf("row %d: specification id %q does not match DD.N.M, row skipped", i+1, rawID)
			continue
		}

		controlID := specID[:strings.LastIndex(specID, ".")]

		priority, coerced := catalogue.NormalizePriority(headers.Cell(row, ColPriority))
		if coerced {
			log.warnf("row %d: unknown priority %q coerced to P1", i+1, headers.Cell(row, ColPriority))
		}

		domainCode := specID[:2]
		if lastDomain != "" {
			domainCode = catalogue.NormalizeDomainCode(lastDomain)
		}

		specs = append(specs, catalogue.Specification{
			SpecID:          specID,
			ControlID:       controlID,
			DomainCode:      domainCode,
			Priority:        priority,
			Text:            headers.Cell(row, ColSpecification),
			Description:     headers.Cell(row, ColDescription),
			ComplianceLevel: headers.Cell(row, ColComplianceLevel),
		})
	}

	return specs, nil
}

// synthesizeControls groups specifications by their DD.N prefix in first-seen
// order. Controls are not listed in the vendor workbook; the title derives
// from the first tokens of the control's first specification text.
func synthesizeControls(specs []catalogue.Specification) []catalogue.Control {
	var order []string
	grouped := map[string][]catalogue.Specification{}

	for _, spec := range specs {
		if _, seen := grouped[spec.ControlID]; !seen {
			order = append(order, spec.ControlID)
		}
		grouped[spec.ControlID] = append(grouped[spec.ControlID], spec)
	}

	controls := make([]catalogue.Control, 0, len(order))
	for _, id := range order {
		group := grouped[id]
		controls = append(controls, catalogue.Control{
			ID:             id,
			Title:          controlTitle(id, group[0].Text),
			DomainCode:     group[0].DomainCode,
			Description:    group[0].Description,
			Specifications: group,
		})
	}

	return controls
}

func controlTitle(id, firstSpecText string) string {
	tokens := strings.Fields(firstSpecText)
	if len(tokens) == 0 {
		return "Control " + id
	}
	if len(tokens) > controlTitleTokens {
		tokens = tokens[:controlTitleTokens]
	}
	return strings.Join(tokens, " ")
}
