package address_test

import (
	"testing"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/internal/canon"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected address.ParsedAddress
	}{
		{
			name:  "Full address with postal code",
			input: "123 Main St, Hamilton, ON L8P 1A1",
			expected: address.ParsedAddress{
				StreetNumber: "123",
				StreetName:   "Main",
				StreetType:   "Street",
				City:         "Hamilton",
				Province:     "ON",
				PostalCode:   "L8P 1A1",
				Normalized:   "123 Main Street, Hamilton ON L8P 1A1",
			},
		},
		{
			name:  "Direction abbreviation",
			input: "456 King St E, Hamilton",
			expected: address.ParsedAddress{
				StreetNumber:    "456",
				StreetName:      "King",
				StreetType:      "Street",
				StreetDirection: "East",
				City:            "Hamilton",
				Normalized:      "456 King Street East, Hamilton",
			},
		},
		{
			name:  "Hash unit",
			input: "789 Oak Avenue #7, Hamilton",
			expected: address.ParsedAddress{
				StreetNumber: "789",
				StreetName:   "Oak",
				StreetType:   "Avenue",
				Unit:         "7",
				City:         "Hamilton",
				Normalized:   "789 Oak Avenue #7, Hamilton",
			},
		},
		{
			name:  "Keyword unit in its own segment",
			input: "789 Oak Ave, Unit 7, Hamilton",
			expected: address.ParsedAddress{
				StreetNumber: "789",
				StreetName:   "Oak",
				StreetType:   "Avenue",
				Unit:         "7",
				City:         "Hamilton",
				Normalized:   "789 Oak Avenue #7, Hamilton",
			},
		},
		{
			name:  "Keyword unit with period and hash",
			input: "50 Bay St Apt. #12B, Toronto",
			expected: address.ParsedAddress{
				StreetNumber: "50",
				StreetName:   "Bay",
				StreetType:   "Street",
				Unit:         "12B",
				City:         "Toronto",
				Normalized:   "50 Bay Street #12B, Toronto",
			},
		},
		{
			name:  "Bare designator run into digits",
			input: "50 Bay St Suite200, Toronto",
			expected: address.ParsedAddress{
				StreetNumber: "50",
				StreetName:   "Bay",
				StreetType:   "Street",
				Unit:         "200",
				City:         "Toronto",
				Normalized:   "50 Bay Street #200, Toronto",
			},
		},
		{
			name:  "Postal code without space",
			input: "4 Elm Dr, Mississauga, ON l5m2b8",
			expected: address.ParsedAddress{
				StreetNumber: "4",
				StreetName:   "Elm",
				StreetType:   "Drive",
				City:         "Mississauga",
				Province:     "ON",
				PostalCode:   "L5M 2B8",
				Normalized:   "4 Elm Drive, Mississauga ON L5M 2B8",
			},
		},
		{
			name:  "Province name normalized to code",
			input: "99 Locke St S, Hamilton, Ontario",
			expected: address.ParsedAddress{
				StreetNumber:    "99",
				StreetName:      "Locke",
				StreetType:      "Street",
				StreetDirection: "South",
				City:            "Hamilton",
				Province:        "ON",
				Normalized:      "99 Locke Street South, Hamilton ON",
			},
		},
		{
			name:  "Non-target province kept verbatim",
			input: "800 Griffiths Way, Vancouver, BC V6B 6G1",
			expected: address.ParsedAddress{
				StreetNumber: "800",
				StreetName:   "Griffiths Way",
				City:         "Vancouver",
				Province:     "BC",
				PostalCode:   "V6B 6G1",
				Normalized:   "800 Griffiths Way, Vancouver BC V6B 6G1",
			},
		},
		{
			name:  "Street named after a province",
			input: "1 Ontario St, Toronto, ON",
			expected: address.ParsedAddress{
				StreetNumber: "1",
				StreetName:   "Ontario",
				StreetType:   "Street",
				City:         "Toronto",
				Province:     "ON",
				Normalized:   "1 Ontario Street, Toronto ON",
			},
		},
		{
			name:  "Street type embedded in the name",
			input: "77 St Clair Ave W, Toronto",
			expected: address.ParsedAddress{
				StreetNumber:    "77",
				StreetName:      "St Clair",
				StreetType:      "Avenue",
				StreetDirection: "West",
				City:            "Toronto",
				Normalized:      "77 St Clair Avenue West, Toronto",
			},
		},
		{
			name:  "Possessive street name keeps its letter",
			input: "10 King's Ct N, Guelph",
			expected: address.ParsedAddress{
				StreetNumber:    "10",
				StreetName:      "King's",
				StreetType:      "Court",
				StreetDirection: "North",
				City:            "Guelph",
				Normalized:      "10 King's Court North, Guelph",
			},
		},
		{
			name:  "Accented characters",
			input: "12 rue côté, montréal, QC",
			expected: address.ParsedAddress{
				StreetNumber: "12",
				StreetName:   "Rue Côté",
				City:         "Montréal",
				Province:     "QC",
				Normalized:   "12 Rue Côté, Montréal QC",
			},
		},
		{
			name:  "PO box accepted as opaque text",
			input: "PO Box 2500, Winnipeg",
			expected: address.ParsedAddress{
				StreetName: "Po Box 2500",
				City:       "Winnipeg",
				Normalized: "Po Box 2500, Winnipeg",
			},
		},
		{
			name:  "No street number",
			input: "Main St W, Hamilton",
			expected: address.ParsedAddress{
				StreetName:      "Main",
				StreetType:      "Street",
				StreetDirection: "West",
				City:            "Hamilton",
				Normalized:      "Main Street West, Hamilton",
			},
		},
		{
			name:  "Street number with trailing letter",
			input: "123a Spruce Cres, Ancaster",
			expected: address.ParsedAddress{
				StreetNumber: "123A",
				StreetName:   "Spruce",
				StreetType:   "Crescent",
				City:         "Ancaster",
				Normalized:   "123A Spruce Crescent, Ancaster",
			},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: address.ParsedAddress{},
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			expected: address.ParsedAddress{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Parse(tt.input)
			tt.expected.Original = tt.input
			if got != tt.expected {
				t.Errorf("Parse(%q) =\n  %+v\nwant\n  %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{
		"123 Main St, Hamilton, ON L8P 1A1",
		"456 King St E, Hamilton",
		"789 Oak Ave, Unit 7, Hamilton",
		"99 Locke St S, Hamilton, Ontario",
		"800 Griffiths Way, Vancouver, BC V6B 6G1",
		"77 St Clair Ave W, Toronto",
		"10 King's Ct N, Guelph",
		"12 rue côté, montréal, QC",
		"PO Box 2500, Winnipeg",
		"4 Elm Dr, Mississauga, ON l5m2b8",
		"300 North Rd",
		"Main St W, Hamilton",
	}

	for _, input := range inputs {
		first := address.Parse(input)
		second := address.Parse(first.Normalized)

		// Original differs by definition; everything else must survive a
		// round trip through the canonical string.
		second.Original = first.Original
		if first != second {
			t.Errorf("Parse not idempotent for %q:\n  first  %+v\n  second %+v", input, first, second)
		}
	}
}

func TestPostalCodeFormatting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123 Main St, Hamilton, ON K1A 0B1", "K1A 0B1"},
		{"123 Main St, Hamilton, ON K1A0B1", "K1A 0B1"},
		{"123 Main St, Hamilton, ON k1a-0b1", "K1A 0B1"},
		{"123 Main St, Hamilton", ""},
	}

	for _, tt := range tests {
		if got := address.Parse(tt.input).PostalCode; got != tt.expected {
			t.Errorf("Parse(%q).PostalCode = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestExtractStreetNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		found    bool
	}{
		{"123 Main St", "123", true},
		{"  123a Main St", "123A", true},
		{"Main St", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := address.ExtractStreetNumber(tt.input)
		if got != tt.expected || ok != tt.found {
			t.Errorf("ExtractStreetNumber(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.expected, tt.found)
		}
	}
}

func TestParserForProvince(t *testing.T) {
	p := address.NewParserForProvince(canon.NewTable(), "BC")

	got := p.Parse("800 Griffiths Way, Vancouver, British Columbia")
	if got.Province != "BC" {
		t.Errorf("Province = %q, want %q", got.Province, "BC")
	}

	got = p.Parse("99 Locke St S, Hamilton, Ontario")
	if got.Province != "Ontario" {
		t.Errorf("non-target province = %q, want verbatim %q", got.Province, "Ontario")
	}
}
