package catalogue

import "strings"

// Domain is a top-level NDMO data-management category.
// The catalogue of fifteen entries is static and immutable after load.
type Domain struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Domains is the fixed NDMO domain catalogue in framework order.
var Domains = []Domain{
	{Code: "DG", Name: "Data Governance", Position: 1},
	{Code: "DC", Name: "Data Catalog and Metadata", Position: 2},
	{Code: "DQ", Name: "Data Quality", Position: 3},
	{Code: "DO", Name: "Data Operations", Position: 4},
	{Code: "CM", Name: "Document and Content Management", Position: 5},
	{Code: "DA", Name: "Data Architecture and Modeling", Position: 6},
	{Code: "RM", Name: "Reference and Master Data Management", Position: 7},
	{Code: "BI", Name: "Business Intelligence and Analytics", Position: 8},
	{Code: "DS", Name: "Data Sharing and Interoperability", Position: 9},
	{Code: "DV", Name: "Data Value Realization", Position: 10},
	{Code: "OD", Name: "Open Data", Position: 11},
	{Code: "FI", Name: "Freedom of Information", Position: 12},
	{Code: "CL", Name: "Data Classification", Position: 13},
	{Code: "PD", Name: "Personal Data Protection", Position: 14},
	{Code: "SP", Name: "Data Security and Protection", Position: 15},
}

// DomainByCode resolves a domain by its two-letter code, case-insensitively.
func DomainByCode(code string) (Domain, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, d := range Domains {
		if d.Code == normalized {
			return d, true
		}
	}
	return Domain{}, false
}

// DomainByName resolves a domain by name, case-insensitively.
func DomainByName(name string) (Domain, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Domains {
		if strings.ToLower(d.Name) == normalized {
			return d, true
		}
	}
	return Domain{}, false
}

// NormalizeDomainCode maps a raw domain cell value to a canonical code.
// Accepts either a code ("dg") or a full name ("Data Governance");
// unrecognised values upper-case the first two letters as a best effort.
func NormalizeDomainCode(raw string) string {
	if d, ok := DomainByCode(raw); ok {
		return d.Code
	}
	if d, ok := DomainByName(raw); ok {
		return d.Code
	}

	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if len(trimmed) >= 2 {
		return trimmed[:2]
	}
	return trimmed
}
