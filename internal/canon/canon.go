// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Package canon holds the canonicalization table for Canada Post style
// addressing: street-type, compass-direction, and unit-designator
// abbreviations mapped to their canonical long forms, plus the province
// table. The table is built once and never mutated, so it is safe to share
// across goroutines without synchronization.
package canon

import (
	"sort"
	"strings"
)

// streetTypes maps lowercase street-type tokens to canonical long forms.
// Canonical spellings map to themselves so that already-expanded input
// round-trips through the parser unchanged.
var streetTypes = map[string]string{
	"st":        "Street",
	"str":       "Street",
	"street":    "Street",
	"ave":       "Avenue",
	"av":        "Avenue",
	"avenue":    "Avenue",
	"rd":        "Road",
	"road":      "Road",
	"blvd":      "Boulevard",
	"boul":      "Boulevard",
	"boulevard": "Boulevard",
	"dr":        "Drive",
	"drive":     "Drive",
	"ln":        "Lane",
	"lane":      "Lane",
	"crt":       "Court",
	"ct":        "Court",
	"court":     "Court",
	"cres":      "Crescent",
	"crescent":  "Crescent",
	"terr":      "Terrace",
	"ter":       "Terrace",
	"terrace":   "Terrace",
	"pl":        "Place",
	"place":     "Place",
	"pk":        "Park",
	"park":      "Park",
	"sq":        "Square",
	"square":    "Square",
	"pkwy":      "Parkway",
	"pky":       "Parkway",
	"parkway":   "Parkway",
	"hwy":       "Highway",
	"highway":   "Highway",
	"cir":       "Circle",
	"circ":      "Circle",
	"circle":    "Circle",
	"trl":       "Trail",
	"trail":     "Trail",
	"path":      "Path",
}

// directions maps lowercase compass tokens to canonical long forms. The
// diagonal compounds come before the cardinals when building patterns so
// "NE" is never consumed as a bare "N".
var directions = map[string]string{
	"n":         "North",
	"north":     "North",
	"s":         "South",
	"south":     "South",
	"e":         "East",
	"east":      "East",
	"w":         "West",
	"west":      "West",
	"ne":        "Northeast",
	"northeast": "Northeast",
	"nw":        "Northwest",
	"northwest": "Northwest",
	"se":        "Southeast",
	"southeast": "Southeast",
	"sw":        "Southwest",
	"southwest": "Southwest",
}

// unitDesignators maps lowercase unit keywords to canonical long forms.
var unitDesignators = map[string]string{
	"apt":       "Apartment",
	"apartment": "Apartment",
	"suite":     "Suite",
	"ste":       "Suite",
	"unit":      "Unit",
	"bldg":      "Building",
	"building":  "Building",
	"fl":        "Floor",
	"floor":     "Floor",
	"ph":        "Penthouse",
	"penthouse": "Penthouse",
	"rm":        "Room",
	"room":      "Room",
}

// provinces maps lowercase province names and two-letter codes to the
// standard two-letter code.
var provinces = map[string]string{
	"ab": "AB", "alberta": "AB",
	"bc": "BC", "british columbia": "BC",
	"mb": "MB", "manitoba": "MB",
	"nb": "NB", "new brunswick": "NB",
	"nl": "NL", "newfoundland and labrador": "NL",
	"ns": "NS", "nova scotia": "NS",
	"nt": "NT", "northwest territories": "NT",
	"nu": "NU", "nunavut": "NU",
	"on": "ON", "ontario": "ON",
	"pe": "PE", "prince edward island": "PE",
	"qc": "QC", "quebec": "QC",
	"sk": "SK", "saskatchewan": "SK",
	"yt": "YT", "yukon": "YT",
}

// Table is the read-only canonicalization table. Construct it with NewTable;
// the zero value is not usable.
type Table struct {
	streetTypes map[string]string
	directions  map[string]string
	units       map[string]string
	provinces   map[string]string
}

// NewTable builds the canonicalization table. Adding a new abbreviation is a
// data change in the maps above, not a logic change here.
func NewTable() *Table {
	return &Table{
		streetTypes: streetTypes,
		directions:  directions,
		units:       unitDesignators,
		provinces:   provinces,
	}
}

// Expand returns the canonical long form for a street-type, direction, or
// unit-designator token. The lookup is case-insensitive; absence is a normal
// outcome, not an error.
func (t *Table) Expand(token string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	if v, ok := t.streetTypes[key]; ok {
		return v, true
	}
	if v, ok := t.directions[key]; ok {
		return v, true
	}
	if v, ok := t.units[key]; ok {
		return v, true
	}
	return "", false
}

// ExpandStreetType expands a street-type token only.
func (t *Table) ExpandStreetType(token string) (string, bool) {
	v, ok := t.streetTypes[strings.ToLower(strings.TrimSpace(token))]
	return v, ok
}

// ExpandDirection expands a compass-direction token only.
func (t *Table) ExpandDirection(token string) (string, bool) {
	v, ok := t.directions[strings.ToLower(strings.TrimSpace(token))]
	return v, ok
}

// ExpandUnit expands a unit-designator token only.
func (t *Table) ExpandUnit(token string) (string, bool) {
	v, ok := t.units[strings.ToLower(strings.TrimSpace(token))]
	return v, ok
}

// ProvinceCode resolves a province name or two-letter code to the standard
// two-letter code.
func (t *Table) ProvinceCode(token string) (string, bool) {
	v, ok := t.provinces[strings.ToLower(strings.TrimSpace(token))]
	return v, ok
}

// StreetTypeTokens returns every street-type token, longest first, for
// building word-boundary alternations.
func (t *Table) StreetTypeTokens() []string {
	return sortedTokens(t.streetTypes)
}

// DirectionTokens returns every direction token, longest first.
func (t *Table) DirectionTokens() []string {
	return sortedTokens(t.directions)
}

// UnitTokens returns every unit-designator token, longest first.
func (t *Table) UnitTokens() []string {
	return sortedTokens(t.units)
}

// ProvinceTokens returns every province name and code, longest first, so
// that "new brunswick" is matched before "nb".
func (t *Table) ProvinceTokens() []string {
	return sortedTokens(t.provinces)
}

// CanonicalPairs returns every abbreviation together with its long form,
// across all three domains. Used by callers that need to enumerate the
// table, such as equivalence tests.
func (t *Table) CanonicalPairs() map[string]string {
	pairs := make(map[string]string, len(t.streetTypes)+len(t.directions)+len(t.units))
	for k, v := range t.streetTypes {
		pairs[k] = v
	}
	for k, v := range t.directions {
		pairs[k] = v
	}
	for k, v := range t.units {
		pairs[k] = v
	}
	return pairs
}

func sortedTokens(m map[string]string) []string {
	tokens := make([]string, 0, len(m))
	for k := range m {
		tokens = append(tokens, k)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}
