package importer

import (
	"strings"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// sheetRole identifies the three logical sheets of the vendor workbook.
type sheetRole int

const (
	roleSpecifications sheetRole = iota
	roleMaster
	rolePriority
)

// Discovery keyword lists per logical role, matched case-insensitively as
// substrings of sheet names.
var sheetKeywords = map[sheetRole][]string{
	roleSpecifications: {"specification", "specs", "controls"},
	roleMaster:         {"master", "evidence", "main"},
	rolePriority:       {"priorit", "calculation", "ndi"},
}

// Positional fallbacks tried when no sheet name matches a role's keywords.
var sheetFallbacks = map[sheetRole]int{
	roleSpecifications: 0,
	roleMaster:         1,
	rolePriority:       2,
}

// discoverSheets maps each logical role to a sheet name. Keyword matches win;
// unmatched roles fall back to positional indices not already assigned.
// Roles that cannot be resolved are absent from the result.
func discoverSheets(wb *spreadsheet.Workbook) map[sheetRole]string {
	names := wb.SheetNames()
	assigned := map[string]bool{}
	result := map[sheetRole]string{}

	for _, role := range []sheetRole{roleSpecifications, roleMaster, rolePriority} {
		if name := matchSheet(names, assigned, sheetKeywords[role]); name != "" {
			result[role] = name
			assigned[name] = true
		}
	}

	for _, role := range []sheetRole{roleSpecifications, roleMaster, rolePriority} {
		if _, ok := result[role]; ok {
			continue
		}
		idx := sheetFallbacks[role]
		if idx < len(names) && !assigned[names[idx]] {
			result[role] = names[idx]
			assigned[names[idx]] = true
		}
	}

	return result
}

func matchSheet(names []string, assigned map[string]bool, keywords []string) string {
	for _, keyword := range keywords {
		for _, name := range names {
			if assigned[name] {
				continue
			}
			if strings.Contains(strings.ToLower(name), keyword) {
				return name
			}
		}
	}
	return ""
}
