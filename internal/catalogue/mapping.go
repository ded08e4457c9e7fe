package catalogue

import (
	"net/url"
	"strings"
)

// Filters contains optional filtering criteria for specification queries.
// Nil fields are ignored; both use exact matching.
type Filters struct {
	Priority *Priority `json:"priority,omitempty"`
	Domain   *string   `json:"domain,omitempty"`
}

// Match reports whether a specification satisfies all set filters.
func (f Filters) Match(spec Specification) bool {
	if f.Priority != nil && spec.Priority != *f.Priority {
		return false
	}
	if f.Domain != nil && spec.DomainCode != *f.Domain {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("priority"); p != "" {
		priority := Priority(strings.ToUpper(p))
		f.Priority = &priority
	}

	if d := values.Get("domain"); d != "" {
		domain := NormalizeDomainCode(d)
		f.Domain = &domain
	}

	return f
}
