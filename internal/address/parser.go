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

// Package address parses free-text Canadian mailing addresses into structured
// records and decides whether two differently formatted address strings refer
// to the same physical location. Parsing never fails: malformed or foreign
// input degrades to a partially populated record, so callers get something
// usable without wrapping every call in error handling.
package address

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TFMV/addrmatch/internal/canon"
)

// ParsedAddress is the structured form of one raw address string. Every field
// is a plain string and the empty string means absent. Normalized is the
// rebuilt canonical string; parsing it again reproduces the same fields. It is
// not a plain space join of the fields: the unit is rendered as "#N" and the
// city follows a comma, otherwise the round trip would not hold.
type ParsedAddress struct {
	StreetNumber    string `json:"street_number"`
	StreetName      string `json:"street_name"`
	StreetType      string `json:"street_type"`
	StreetDirection string `json:"street_direction"`
	Unit            string `json:"unit"`
	City            string `json:"city"`
	Province        string `json:"province"`
	PostalCode      string `json:"postal_code"`
	Normalized      string `json:"normalized"`
	Original        string `json:"original"`
}

// DefaultProvince is the province whose name and code are normalized to the
// two-letter code during parsing. Other provinces are kept verbatim.
const DefaultProvince = "ON"

// Parser turns raw address strings into ParsedAddress records using a
// canonicalization table. It is immutable after construction and safe for
// concurrent use.
type Parser struct {
	table          *canon.Table
	targetProvince string

	postalRe     *regexp.Regexp
	provinceRe   *regexp.Regexp
	unitHashRe   *regexp.Regexp
	unitKeywdRe  *regexp.Regexp
	unitBareRe   *regexp.Regexp
	unitDanglRe  *regexp.Regexp
	numberRe     *regexp.Regexp
	directionRe  *regexp.Regexp
	streetTypeRe *regexp.Regexp
}

// NewParser builds a parser over the given canonicalization table, targeting
// DefaultProvince for code normalization.
func NewParser(table *canon.Table) *Parser {
	return NewParserForProvince(table, DefaultProvince)
}

// NewParserForProvince builds a parser that normalizes the given province's
// name or code to its two-letter code and keeps other provinces verbatim.
func NewParserForProvince(table *canon.Table, province string) *Parser {
	unitAlt := alternation(table.UnitTokens())
	return &Parser{
		table:          table,
		targetProvince: strings.ToUpper(province),
		postalRe:       regexp.MustCompile(`(?i)\b([A-Za-z]\d[A-Za-z])[ -]?(\d[A-Za-z]\d)\b`),
		provinceRe:     regexp.MustCompile(`(?i)\b(` + alternation(table.ProvinceTokens()) + `)\b`),
		unitHashRe:     regexp.MustCompile(`#(\d+[A-Za-z]?)\b`),
		unitKeywdRe:    regexp.MustCompile(`(?i)\b(?:` + unitAlt + `)\.?\s+#?(\d+[A-Za-z]?)\b`),
		unitBareRe:     regexp.MustCompile(`(?i)\b(?:` + unitAlt + `)(\d+[A-Za-z]?)\b`),
		unitDanglRe:    regexp.MustCompile(`(?i)\b(?:` + unitAlt + `)\.?\s*$`),
		numberRe:       regexp.MustCompile(`^(\d+[A-Za-z]?)\b`),
		directionRe:    regexp.MustCompile(`(?i)\b(` + alternation(table.DirectionTokens()) + `)\b\.?`),
		streetTypeRe:   regexp.MustCompile(`(?i)\b(` + alternation(table.StreetTypeTokens()) + `)\b\.?`),
	}
}

// alternation joins pre-sorted tokens into a regexp alternation. Tokens come
// from the table longest first, so compound forms win over their prefixes.
func alternation(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return strings.Join(quoted, "|")
}

// Parse converts a raw address string into a ParsedAddress. It never fails
// and never panics; unrecognized input simply leaves more fields empty. The
// extraction steps run in a fixed order because each one shrinks the text
// the later ones scan.
func (p *Parser) Parse(raw string) ParsedAddress {
	parsed := ParsedAddress{Original: raw}
	working := strings.TrimSpace(raw)
	if working == "" {
		return parsed
	}

	parsed.PostalCode, working = p.extractPostalCode(working)
	parsed.Province, working = p.extractProvince(working)

	var street string
	parsed.City, street = p.extractCity(working)

	parsed.Unit, street = p.extractUnit(street)
	parsed.StreetNumber, street = p.extractStreetNumber(street)
	parsed.StreetDirection, street = p.extractDirection(street)
	parsed.StreetType, street = p.extractStreetType(street)
	parsed.StreetName = titleCase(stripPunct(street))

	parsed.Normalized = assemble(parsed)
	return parsed
}

// ExtractStreetNumber returns the leading numeric token of a raw address,
// a cheap pre-filter that avoids a full parse. The second result reports
// whether a street number was found.
func (p *Parser) ExtractStreetNumber(raw string) (string, bool) {
	m := p.numberRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// extractPostalCode pulls the first Canadian postal code out of the text,
// returning it in the canonical "AAA BBB" form and the text with the matched
// span removed.
func (p *Parser) extractPostalCode(text string) (string, string) {
	loc := p.postalRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text
	}
	stripped := strings.ToUpper(text[loc[2]:loc[3]] + text[loc[4]:loc[5]])
	code := stripped
	if len(stripped) == 6 {
		code = stripped[:3] + " " + stripped[3:]
	}
	return code, cut(text, loc[0], loc[1])
}

// extractProvince finds the last province name or code in the text. The last
// occurrence wins so a street named after a province is not consumed when a
// real province token follows it.
func (p *Parser) extractProvince(text string) (string, string) {
	locs := p.provinceRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return "", text
	}
	loc := locs[len(locs)-1]
	token := text[loc[2]:loc[3]]
	province := token
	if code, ok := p.table.ProvinceCode(token); ok && code == p.targetProvince {
		province = code
	}
	return province, cut(text, loc[0], loc[1])
}

// extractCity splits the text on commas. With two or more segments the last
// one is the city and the earlier ones are rejoined as the street portion.
func (p *Parser) extractCity(text string) (string, string) {
	var segments []string
	for _, seg := range strings.Split(text, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	switch len(segments) {
	case 0:
		return "", ""
	case 1:
		return "", segments[0]
	}
	return titleCase(segments[len(segments)-1]), strings.Join(segments[:len(segments)-1], ", ")
}

// extractUnit tries the three unit spellings in priority order: "#7", a
// designator keyword followed by the number, and a designator run directly
// into the number. First match wins.
func (p *Parser) extractUnit(text string) (string, string) {
	for _, re := range []*regexp.Regexp{p.unitHashRe, p.unitKeywdRe, p.unitBareRe} {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0]
		// "Apt. #12B": the hash pattern wins, so sweep up a designator left
		// dangling just before it.
		if dangling := p.unitDanglRe.FindStringIndex(text[:start]); dangling != nil {
			start = dangling[0]
		}
		return strings.ToUpper(text[loc[2]:loc[3]]), cut(text, start, loc[1])
	}
	return "", text
}

// extractStreetNumber matches leading digits with an optional trailing letter
// at the start of the street portion.
func (p *Parser) extractStreetNumber(text string) (string, string) {
	text = strings.TrimSpace(text)
	loc := p.numberRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text
	}
	return strings.ToUpper(text[loc[2]:loc[3]]), cut(text, loc[0], loc[1])
}

// extractDirection expands the last word-boundary direction token in the
// street portion.
func (p *Parser) extractDirection(text string) (string, string) {
	loc := lastUnquotedMatch(p.directionRe, text)
	if loc == nil {
		return "", text
	}
	expanded, _ := p.table.ExpandDirection(text[loc[2]:loc[3]])
	return expanded, cut(text, loc[0], loc[1])
}

// extractStreetType expands the last word-boundary street-type token. The
// last occurrence wins so "St Clair Ave" resolves to Avenue, not Street.
func (p *Parser) extractStreetType(text string) (string, string) {
	loc := lastUnquotedMatch(p.streetTypeRe, text)
	if loc == nil {
		return "", text
	}
	expanded, _ := p.table.ExpandStreetType(text[loc[2]:loc[3]])
	return expanded, cut(text, loc[0], loc[1])
}

// lastUnquotedMatch returns the last match of re in text whose token is not
// immediately preceded by an apostrophe. Possessives like "King's" would
// otherwise surrender their trailing letter to the single-letter compass
// tokens.
func lastUnquotedMatch(re *regexp.Regexp, text string) []int {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		if loc[2] > 0 {
			prev := text[loc[2]-1]
			if prev == '\'' || prev == '`' {
				continue
			}
		}
		return loc
	}
	return nil
}

// assemble rebuilds the canonical string: number, name, type, direction,
// unit, city, province, postal code, omitting empty fields. The unit is
// emitted as "#N" and the city after a comma so the canonical string parses
// back to the same record.
func assemble(a ParsedAddress) string {
	var street []string
	for _, f := range []string{a.StreetNumber, a.StreetName, a.StreetType, a.StreetDirection} {
		if f != "" {
			street = append(street, f)
		}
	}
	if a.Unit != "" {
		street = append(street, "#"+a.Unit)
	}

	out := strings.Join(street, " ")
	if a.City != "" {
		if out != "" {
			out += ", " + a.City
		} else {
			out = a.City
		}
	}
	for _, f := range []string{a.Province, a.PostalCode} {
		if f != "" {
			if out != "" {
				out += " "
			}
			out += f
		}
	}
	return out
}

// cut removes text[start:end] and collapses the surrounding whitespace.
func cut(text string, start, end int) string {
	return squish(text[:start] + " " + text[end:])
}

// squish collapses runs of whitespace into single spaces and trims the ends.
func squish(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripPunct clears leftover commas and periods from the residual street
// name after the other fields have been carved out.
func stripPunct(s string) string {
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.ReplaceAll(s, ".", " ")
	return squish(s)
}

// titleCase lowercases the text and title-cases each word. Accented letters
// are handled by the language-aware caser rather than byte arithmetic.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}
