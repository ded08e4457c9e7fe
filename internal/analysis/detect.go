package analysis

import (
	"slices"
	"strings"

	"github.com/rasidhq/rasid/internal/quality"
)

// Candidate headers for the column-name field, in match order.
var nameHeaders = []string{"field name", "column name", "field", "column", "name"}

// Headers recognised as the declared-type and required columns.
var (
	typeHeaders     = []string{"data type", "type"}
	requiredHeaders = []string{"required", "mandatory", "nullable"}
)

var requiredValues = []string{"yes", "true", "1", "y", "required", "mandatory"}

// Name keyword sets for semantic typing, checked in order.
var nameTypeKeywords = []struct {
	Type     string
	Keywords []string
}{
	{quality.TypeEmail, []string{"email", "e-mail"}},
	{quality.TypePhone, []string{"phone", "mobile", "tel"}},
	{quality.TypeDateTime, []string{"date", "time", "timestamp"}},
	{quality.TypeNumeric, []string{"id", "number", "amount", "price"}},
	{quality.TypeBoolean, []string{"flag", "is_", "has_", "active"}},
}

// Declared-type keyword sets; a declared type overrides the name-based guess.
var declaredTypeKeywords = []struct {
	Type     string
	Keywords []string
}{
	{quality.TypeEmail, []string{"email", "mail"}},
	{quality.TypePhone, []string{"phone"}},
	{quality.TypeDateTime, []string{"date", "time"}},
	{quality.TypeBoolean, []string{"bool", "bit"}},
	{quality.TypeNumeric, []string{"int", "num", "float", "decimal", "double", "money"}},
	{quality.TypeText, []string{"char", "text", "string", "str"}},
}

// Role keyword sets.
var (
	primaryKeyKeywords = []string{"_id", "id", "key", "pk", "primary", "identifier"}
	foreignKeyKeywords = []string{"foreign", "_fk", "fk", "_ref", "reference", "ref"}
	auditKeywords      = []string{"created", "updated", "modified", "deleted", "timestamp", "date", "user", "audit"}
	auditSuffixes      = []string{"_by", "_at", "_on"}
)

// detectType classifies a column in two passes: the lower-cased field name
// against fixed keyword sets, then a declared-type override when present.
func detectType(name, declared string) string {
	detected := quality.TypeText

	lowered := strings.ToLower(name)
	for _, entry := range nameTypeKeywords {
		if containsAny(lowered, entry.Keywords) {
			detected = entry.Type
			break
		}
	}

	if declared != "" {
		loweredDecl := strings.ToLower(declared)
		for _, entry := range declaredTypeKeywords {
			if containsAny(loweredDecl, entry.Keywords) {
				return entry.Type
			}
		}
	}

	return detected
}

func isPrimaryKey(name string) bool {
	return containsAny(strings.ToLower(name), primaryKeyKeywords)
}

func isForeignKey(name string) bool {
	return containsAny(strings.ToLower(name), foreignKeyKeywords)
}

// isAuditField matches temporal and user keywords in the name. The short
// by/at/on markers only match as suffixes to avoid false positives from
// ordinary words.
func isAuditField(name string) bool {
	lowered := strings.ToLower(name)
	if containsAny(lowered, auditKeywords) {
		return true
	}
	for _, suffix := range auditSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}

func isRequiredValue(value string) bool {
	return slices.Contains(requiredValues, strings.ToLower(strings.TrimSpace(value)))
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// matchHeader finds the first header equal to any candidate,
// case-insensitively. Returns -1 when none matches.
func matchHeader(headers []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, header := range headers {
			if strings.ToLower(strings.TrimSpace(header)) == candidate {
				return i
			}
		}
	}
	return -1
}

// matchHeaderContains finds the first header containing any candidate,
// case-insensitively. Returns -1 when none matches.
func matchHeaderContains(headers []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, header := range headers {
			if strings.Contains(strings.ToLower(header), candidate) {
				return i
			}
		}
	}
	return -1
}
