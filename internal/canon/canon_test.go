package canon_test

import (
	"strings"
	"testing"

	"github.com/TFMV/addrmatch/internal/canon"
)

func TestExpand(t *testing.T) {
	table := canon.NewTable()

	tests := []struct {
		name     string
		token    string
		expected string
		found    bool
	}{
		{"Street abbreviation", "St", "Street", true},
		{"Street abbreviation lowercase", "st", "Street", true},
		{"Street abbreviation uppercase", "AVE", "Avenue", true},
		{"Canonical form maps to itself", "Boulevard", "Boulevard", true},
		{"Crescent abbreviation", "cres", "Crescent", true},
		{"Direction abbreviation", "NE", "Northeast", true},
		{"Direction single letter", "w", "West", true},
		{"Unit abbreviation", "apt", "Apartment", true},
		{"Unit canonical", "Suite", "Suite", true},
		{"Token with surrounding spaces", "  rd  ", "Road", true},
		{"Unknown token", "zzz", "", false},
		{"Empty token", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := table.Expand(tt.token)
			if ok != tt.found {
				t.Errorf("Expand(%q) found = %v, want %v", tt.token, ok, tt.found)
			}
			if result != tt.expected {
				t.Errorf("Expand(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestExpandDomains(t *testing.T) {
	table := canon.NewTable()

	if _, ok := table.ExpandStreetType("ne"); ok {
		t.Error("ExpandStreetType should not expand direction tokens")
	}
	if _, ok := table.ExpandDirection("st"); ok {
		t.Error("ExpandDirection should not expand street-type tokens")
	}
	if _, ok := table.ExpandUnit("blvd"); ok {
		t.Error("ExpandUnit should not expand street-type tokens")
	}
}

func TestProvinceCode(t *testing.T) {
	table := canon.NewTable()

	tests := []struct {
		token    string
		expected string
		found    bool
	}{
		{"on", "ON", true},
		{"Ontario", "ON", true},
		{"ONTARIO", "ON", true},
		{"british columbia", "BC", true},
		{"qc", "QC", true},
		{"Newfoundland and Labrador", "NL", true},
		{"Texas", "", false},
	}

	for _, tt := range tests {
		code, ok := table.ProvinceCode(tt.token)
		if ok != tt.found || code != tt.expected {
			t.Errorf("ProvinceCode(%q) = %q, %v, want %q, %v", tt.token, code, ok, tt.expected, tt.found)
		}
	}
}

func TestTokensLongestFirst(t *testing.T) {
	table := canon.NewTable()

	for name, tokens := range map[string][]string{
		"street types": table.StreetTypeTokens(),
		"directions":   table.DirectionTokens(),
		"units":        table.UnitTokens(),
		"provinces":    table.ProvinceTokens(),
	} {
		if len(tokens) == 0 {
			t.Errorf("%s: no tokens", name)
			continue
		}
		for i := 1; i < len(tokens); i++ {
			if len(tokens[i]) > len(tokens[i-1]) {
				t.Errorf("%s: token %q sorted after shorter %q", name, tokens[i], tokens[i-1])
			}
		}
	}
}

func TestCanonicalPairsUnique(t *testing.T) {
	table := canon.NewTable()

	for abbrev, long := range table.CanonicalPairs() {
		if abbrev != strings.ToLower(abbrev) {
			t.Errorf("table key %q is not lowercase", abbrev)
		}
		expanded, ok := table.Expand(abbrev)
		if !ok || expanded != long {
			t.Errorf("Expand(%q) = %q, %v, want %q", abbrev, expanded, ok, long)
		}
	}
}
