package catalogue_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/rasidhq/rasid/internal/catalogue"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    catalogue.Priority
		coerced bool
	}{
		{"p1", "P1", catalogue.P1, false},
		{"p2 lowercase", "p2", catalogue.P2, false},
		{"p3 padded", "  P3  ", catalogue.P3, false},
		{"unknown coerces", "P9", catalogue.P1, true},
		{"empty coerces", "", catalogue.P1, true},
		{"free text coerces", "Year 2", catalogue.P1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, coerced := catalogue.NormalizePriority(tt.raw)
			if got != tt.want || coerced != tt.coerced {
				t.Errorf("NormalizePriority(%q) = (%v, %v), want (%v, %v)",
					tt.raw, got, coerced, tt.want, tt.coerced)
			}
		})
	}
}

func TestIdentifierPatterns(t *testing.T) {
	tests := []struct {
		id       string
		spec     bool
		control  bool
	}{
		{"DG.1.1", true, false},
		{"DQ.12.3", true, false},
		{"DG.1", false, true},
		{"dg.1.1", false, false},
		{"DG1.1", false, false},
		{"DG.1.1.1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := catalogue.SpecIDPattern.MatchString(tt.id); got != tt.spec {
				t.Errorf("SpecIDPattern.MatchString(%q) = %v, want %v", tt.id, got, tt.spec)
			}
			if got := catalogue.ControlIDPattern.MatchString(tt.id); got != tt.control {
				t.Errorf("ControlIDPattern.MatchString(%q) = %v, want %v", tt.id, got, tt.control)
			}
		})
	}
}

func TestDomains(t *testing.T) {
	if len(catalogue.Domains) != 15 {
		t.Fatalf("len(Domains) = %d, want 15", len(catalogue.Domains))
	}

	if _, ok := catalogue.DomainByCode("DG"); !ok {
		t.Error("DomainByCode(DG) not found")
	}
	if _, ok := catalogue.DomainByCode("ZZ"); ok {
		t.Error("DomainByCode(ZZ) unexpectedly found")
	}

	seen := map[string]bool{}
	for _, d := range catalogue.Domains {
		if len(d.Code) != 2 {
			t.Errorf("domain code %q is not two letters", d.Code)
		}
		if seen[d.Code] {
			t.Errorf("duplicate domain code %q", d.Code)
		}
		seen[d.Code] = true
	}
}

func TestSnapshotKey(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	key := catalogue.SnapshotKey(ts)
	if key != "imported_data/20250314_092653.json" {
		t.Errorf("SnapshotKey() = %q", key)
	}
}

func TestIsSnapshotFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"20250314_092653.json", true},
		{"20250314_092653.pdf", false},
		{"snapshot.json", false},
		{"2025314_092653.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalogue.IsSnapshotFile(tt.name); got != tt.want {
				t.Errorf("IsSnapshotFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	snap := &catalogue.Snapshot{
		Controls: []catalogue.Control{{ID: "DG.1"}, {ID: "DG.2"}},
		Specifications: []catalogue.Specification{
			{SpecID: "DG.1.1", DomainCode: "DG", Priority: catalogue.P1},
			{SpecID: "DG.1.2", DomainCode: "DG", Priority: catalogue.P2},
			{SpecID: "DQ.2.1", DomainCode: "DQ", Priority: catalogue.P1},
		},
		Evidence: map[string][]catalogue.EvidenceRequirement{
			"DG.1.1": {{}, {}},
			"DQ.2.1": {{}},
		},
	}

	stats := snap.Summarize()
	if stats.TotalControls != 2 {
		t.Errorf("TotalControls = %d, want 2", stats.TotalControls)
	}
	if stats.TotalSpecifications != 3 {
		t.Errorf("TotalSpecifications = %d, want 3", stats.TotalSpecifications)
	}
	if stats.TotalEvidence != 3 {
		t.Errorf("TotalEvidence = %d, want 3", stats.TotalEvidence)
	}
	if stats.PriorityCounts[catalogue.P1] != 2 || stats.PriorityCounts[catalogue.P2] != 1 || stats.PriorityCounts[catalogue.P3] != 0 {
		t.Errorf("PriorityCounts = %v", stats.PriorityCounts)
	}
	if len(stats.Domains) != 2 || stats.Domains[0] != "DG" || stats.Domains[1] != "DQ" {
		t.Errorf("Domains = %v", stats.Domains)
	}
}

func TestFilters(t *testing.T) {
	spec := catalogue.Specification{SpecID: "DG.1.1", DomainCode: "DG", Priority: catalogue.P1}

	p2 := catalogue.P2
	dq := "DQ"

	t.Run("empty filters match", func(t *testing.T) {
		if !(catalogue.Filters{}).Match(spec) {
			t.Error("empty filters did not match")
		}
	})

	t.Run("priority mismatch", func(t *testing.T) {
		if (catalogue.Filters{Priority: &p2}).Match(spec) {
			t.Error("P2 filter matched P1 spec")
		}
	})

	t.Run("domain mismatch", func(t *testing.T) {
		if (catalogue.Filters{Domain: &dq}).Match(spec) {
			t.Error("DQ filter matched DG spec")
		}
	})

	t.Run("from query", func(t *testing.T) {
		f := catalogue.FiltersFromQuery(url.Values{"priority": {"p1"}})
		if f.Priority == nil || *f.Priority != catalogue.P1 {
			t.Errorf("FiltersFromQuery priority = %v", f.Priority)
		}
		if !f.Match(spec) {
			t.Error("query filter did not match")
		}
	})
}
