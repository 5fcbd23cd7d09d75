package address_test

import (
	"math"
	"testing"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/internal/canon"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatchScenarios(t *testing.T) {
	tests := []struct {
		name          string
		addr1, addr2  string
		fuzzy         bool
		wantMatch     bool
		minConfidence float64
	}{
		{
			name:  "Exact match",
			addr1: "123 Main St, Hamilton, ON", addr2: "123 Main St, Hamilton, ON",
			fuzzy: true, wantMatch: true, minConfidence: 0.9,
		},
		{
			name:  "Direction expansion",
			addr1: "456 King St E, Hamilton", addr2: "456 King Street East, Hamilton",
			fuzzy: true, wantMatch: true, minConfidence: 0.8,
		},
		{
			name:  "Unit variance tolerated in fuzzy mode",
			addr1: "789 Oak Ave, Unit 7, Hamilton", addr2: "789 Oak Avenue #7, Hamilton",
			fuzzy: true, wantMatch: true, minConfidence: 0.7,
		},
		{
			name:  "Postal code corroborates",
			addr1: "123 Main St L8P 1A1", addr2: "123 Main Street, Hamilton, ON L8P 1A1",
			fuzzy: true, wantMatch: true, minConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Match(tt.addr1, tt.addr2, tt.fuzzy)
			if got.IsMatch != tt.wantMatch {
				t.Errorf("Match(%q, %q).IsMatch = %v, want %v", tt.addr1, tt.addr2, got.IsMatch, tt.wantMatch)
			}
			if got.Confidence < tt.minConfidence {
				t.Errorf("Match(%q, %q).Confidence = %v, want >= %v", tt.addr1, tt.addr2, got.Confidence, tt.minConfidence)
			}
		})
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	for _, pair := range [][2]string{
		{"", "123 Main St"},
		{"123 Main St", ""},
		{"", ""},
		{"   ", "123 Main St"},
	} {
		got := address.Match(pair[0], pair[1], true)
		if got.IsMatch || got.Confidence != 0 {
			t.Errorf("Match(%q, %q) = %+v, want no match with zero confidence", pair[0], pair[1], got)
		}
	}
}

func TestStreetNumberHardRejection(t *testing.T) {
	tests := []struct {
		name           string
		addr1, addr2   string
		wantConfidence float64
	}{
		{
			// Everything but the number agrees: 5 of 8 achievable points,
			// scaled by the mismatch penalty.
			name:  "Different numbers",
			addr1: "123 Main St", addr2: "456 Main St",
			wantConfidence: 5.0 / 8.0 * 0.3,
		},
		{
			// One-sided number keeps a third of its weight before the
			// penalty is applied.
			name:  "Number on one side only",
			addr1: "123 Main St", addr2: "Main St",
			wantConfidence: 6.0 / 8.0 * 0.3,
		},
		{
			name:  "Number on neither side",
			addr1: "Main St, Hamilton", addr2: "Main St, Hamilton",
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Match(tt.addr1, tt.addr2, true)
			if got.IsMatch {
				t.Errorf("Match(%q, %q).IsMatch = true, want hard rejection", tt.addr1, tt.addr2)
			}
			if !almostEqual(got.Confidence, tt.wantConfidence) {
				t.Errorf("Match(%q, %q).Confidence = %v, want %v", tt.addr1, tt.addr2, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestDifferentCityRejected(t *testing.T) {
	got := address.Match("123 Main St, Hamilton", "123 Main St, Toronto", true)
	if got.IsMatch {
		t.Errorf("Match across cities = %+v, want no match", got)
	}
	// Number, name, and type agree; the city contributes only to the
	// possible score.
	if !almostEqual(got.Confidence, 8.0/10.0) {
		t.Errorf("Confidence = %v, want %v", got.Confidence, 8.0/10.0)
	}
}

func TestMatchWithoutStreetName(t *testing.T) {
	// "300 North Rd" parses to number, direction, and type with an empty
	// street name; an identical pair must still match in strict mode.
	got := address.Match("300 North Rd", "300 North Rd", false)
	if !got.IsMatch {
		t.Errorf("Match of identical nameless addresses = %+v, want match", got)
	}
	if !almostEqual(got.Confidence, 1.0) {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}

	got = address.Match("300 North Rd, Hamilton", "300 North Road, Hamilton", false)
	if !got.IsMatch || !almostEqual(got.Confidence, 1.0) {
		t.Errorf("Match with type variance = %+v, want match at 1.0", got)
	}
}

func TestAbbreviationEquivalence(t *testing.T) {
	table := canon.NewTable()

	// Unit designators need a number to be part of a valid address, so the
	// street grammar here exercises the street-type and direction domains;
	// unit equivalence is covered by the unit-variance scenario.
	for _, tok := range table.StreetTypeTokens() {
		long, _ := table.ExpandStreetType(tok)
		got := address.Match("123 Main "+tok, "123 Main "+long, true)
		if !got.IsMatch || got.Confidence < 0.8 {
			t.Errorf("street type %q vs %q: got %+v, want match with confidence >= 0.8", tok, long, got)
		}
	}
	for _, tok := range table.DirectionTokens() {
		long, _ := table.ExpandDirection(tok)
		got := address.Match("123 Main "+tok, "123 Main "+long, true)
		if !got.IsMatch || got.Confidence < 0.8 {
			t.Errorf("direction %q vs %q: got %+v, want match with confidence >= 0.8", tok, long, got)
		}
	}
}

func TestFuzzyCredits(t *testing.T) {
	tests := []struct {
		name           string
		addr1, addr2   string
		fuzzy          bool
		wantMatch      bool
		wantConfidence float64
	}{
		{
			// 75% of the type weight when only one side has a type.
			name:  "One-sided street type fuzzy",
			addr1: "123 Main St", addr2: "123 Main",
			fuzzy: true, wantMatch: true, wantConfidence: 7.5 / 8.0,
		},
		{
			name:  "One-sided street type strict",
			addr1: "123 Main St", addr2: "123 Main",
			fuzzy: false, wantMatch: false, wantConfidence: 6.0 / 8.0,
		},
		{
			// 50% of the direction weight.
			name:  "One-sided direction fuzzy",
			addr1: "123 Main St E", addr2: "123 Main St",
			fuzzy: true, wantMatch: true, wantConfidence: 8.5 / 9.0,
		},
		{
			// 70% of the unit weight: missing units are common.
			name:  "One-sided unit fuzzy",
			addr1: "123 Main St #4", addr2: "123 Main St",
			fuzzy: true, wantMatch: true, wantConfidence: 8.7 / 9.0,
		},
		{
			name:  "One-sided unit strict still matches on name and score",
			addr1: "123 Main St #4", addr2: "123 Main St",
			fuzzy: false, wantMatch: true, wantConfidence: 8.0 / 9.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Match(tt.addr1, tt.addr2, tt.fuzzy)
			if got.IsMatch != tt.wantMatch {
				t.Errorf("IsMatch = %v, want %v", got.IsMatch, tt.wantMatch)
			}
			if !almostEqual(got.Confidence, tt.wantConfidence) {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestPostalCodeCredits(t *testing.T) {
	// Same forward-sortation area, different local part: 1.5 of the 2
	// postal points.
	got := address.Match(
		"123 Main St, Hamilton, ON L8P 1A1",
		"123 Main St, Hamilton, ON L8P 4X3",
		true,
	)
	if !got.IsMatch {
		t.Errorf("same-FSA pair should match, got %+v", got)
	}
	if !almostEqual(got.Confidence, 11.5/12.0) {
		t.Errorf("Confidence = %v, want %v", got.Confidence, 11.5/12.0)
	}

	// Exact postal match earns the remaining half point.
	got = address.Match(
		"123 Main St, Hamilton, ON L8P 1A1",
		"123 Main St, Hamilton, ON L8P1A1",
		true,
	)
	if !got.IsMatch || !almostEqual(got.Confidence, 1.0) {
		t.Errorf("exact postal pair = %+v, want match with confidence 1.0", got)
	}
}

func TestTokenSetPartialCredit(t *testing.T) {
	// "Royal Oak" vs "Royal": one shared token of two in the union halves
	// the name credit.
	got := address.Match("123 Royal Oak, Hamilton", "123 Royal, Hamilton", true)
	want := (3.0 + 1.5 + 2.0) / (3.0 + 3.0 + 2.0)
	if !almostEqual(got.Confidence, want) {
		t.Errorf("Confidence = %v, want %v", got.Confidence, want)
	}
}

func TestCustomMatcherConfig(t *testing.T) {
	cfg := address.DefaultMatcherConfig()
	cfg.MatchThreshold = 0.99
	cfg.FuzzyThreshold = 0.99

	m := address.NewMatcher(address.NewParser(canon.NewTable()), cfg)
	got := m.Match("123 Main St", "123 Main", true)
	if got.IsMatch {
		t.Errorf("raised fuzzy threshold should reject near matches, got %+v", got)
	}
}
