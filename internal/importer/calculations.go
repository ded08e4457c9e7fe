package importer

import (
	"github.com/rasidhq/rasid/internal/catalogue"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// parseCalculations carries priority-sheet rows verbatim as open-ended
// column-name → value mappings keyed by NDI identifier. Rows without an
// identifier are skipped with a warning.
func parseCalculations(sheet *spreadsheet.Sheet, log *importLog) []catalogue.CalculationRecord {
	headerRow := probeHeader(sheet)
	if headerRow < 0 {
		log.warnf("priority sheet %q has no detectable header row, calculations skipped", sheet.Name)
		return nil
	}

	headerValues := spreadsheet.Values(sheet.Rows[headerRow])
	headers := ResolveHeaders(headerValues, prioritySheetAliases)

	var records []catalogue.CalculationRecord
	for i := headerRow + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]

		ndiID := headers.Cell(row, ColNDIID)
		if ndiID == "" && len(row) > 0 {
			ndiID = row[0].Value
		}
		if ndiID == "" {
			if spreadsheet.NonNull(row) > 0 {
				log.warnf("priority row %d: no NDI identifier, row skipped", i+1)
			}
			continue
		}

		fields := map[string]string{}
		for j, cell := range row {
			if cell.Null || j >= len(headerValues) || headerValues[j] == "" {
				continue
			}
			fields[headerValues[j]] = cell.Value
		}

		records = append(records, catalogue.CalculationRecord{
			NDIID:  ndiID,
			Fields: fields,
		})
	}

	return records
}
