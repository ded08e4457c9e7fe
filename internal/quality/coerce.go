package quality

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

var truthyValues = []string{"true", "yes", "1", "y"}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01-02-2006",
}

// coerceColumn applies type conversion to every cell of one column.
// Individual conversion failures null the cell; they are never errors.
func coerceColumn(rows [][]spreadsheet.Cell, idx int, columnType string) {
	for _, row := range rows {
		if idx >= len(row) || row[idx].Null {
			continue
		}
		row[idx] = coerceCell(row[idx], columnType)
	}
}

func coerceCell(cell spreadsheet.Cell, columnType string) spreadsheet.Cell {
	switch columnType {
	case TypeNumeric:
		return coerceNumeric(cell)
	case TypeDateTime:
		return coerceDateTime(cell)
	case TypeBoolean:
		return coerceBoolean(cell)
	default:
		return cell
	}
}

func coerceNumeric(cell spreadsheet.Cell) spreadsheet.Cell {
	cleaned := strings.ReplaceAll(cell.Value, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return spreadsheet.Cell{Null: true}
	}
	return spreadsheet.Cell{Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func coerceDateTime(cell spreadsheet.Cell) spreadsheet.Cell {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, cell.Value); err == nil {
			return cell
		}
	}
	return spreadsheet.Cell{Null: true}
}

// coerceBoolean maps membership in the truthy set to "true", everything
// else to "false".
func coerceBoolean(cell spreadsheet.Cell) spreadsheet.Cell {
	if slices.Contains(truthyValues, strings.ToLower(cell.Value)) {
		return spreadsheet.Cell{Value: "true"}
	}
	return spreadsheet.Cell{Value: "false"}
}
