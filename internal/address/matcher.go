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

package address

import "strings"

// MatchResult is the outcome of comparing two raw address strings.
type MatchResult struct {
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
}

// MatcherConfig holds the comparison weights, one-sided fuzzy credits, and
// decision thresholds. The defaults are empirically tuned rather than derived
// from a model; tests pin them as regression baselines.
type MatcherConfig struct {
	StreetNumberWeight    float64 `yaml:"street_number_weight"`
	StreetNameWeight      float64 `yaml:"street_name_weight"`
	StreetTypeWeight      float64 `yaml:"street_type_weight"`
	StreetDirectionWeight float64 `yaml:"street_direction_weight"`
	UnitWeight            float64 `yaml:"unit_weight"`
	CityWeight            float64 `yaml:"city_weight"`
	PostalWeight          float64 `yaml:"postal_weight"`

	// Credit awarded against the full weight when only one side carries the
	// field. The street-number credit applies in both modes; the rest only
	// in fuzzy mode.
	OneSidedNumberCredit    float64 `yaml:"one_sided_number_credit"`
	OneSidedTypeCredit      float64 `yaml:"one_sided_type_credit"`
	OneSidedDirectionCredit float64 `yaml:"one_sided_direction_credit"`
	OneSidedUnitCredit      float64 `yaml:"one_sided_unit_credit"`

	// Postal credit splits: the forward-sortation area carries most of the
	// weight, the last three characters the remainder.
	FSACredit         float64 `yaml:"fsa_credit"`
	ExactPostalCredit float64 `yaml:"exact_postal_credit"`

	// MatchThreshold backs the strict-mode confidence fallback;
	// FuzzyThreshold forces a match in fuzzy mode. NumberMismatchPenalty
	// scales the confidence when the street-number hard constraint fails.
	MatchThreshold        float64 `yaml:"match_threshold"`
	FuzzyThreshold        float64 `yaml:"fuzzy_threshold"`
	NumberMismatchPenalty float64 `yaml:"number_mismatch_penalty"`
}

// DefaultMatcherConfig returns the tuned default weights and thresholds.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		StreetNumberWeight:      3,
		StreetNameWeight:        3,
		StreetTypeWeight:        2,
		StreetDirectionWeight:   1,
		UnitWeight:              1,
		CityWeight:              2,
		PostalWeight:            2,
		OneSidedNumberCredit:    1.0 / 3.0,
		OneSidedTypeCredit:      0.75,
		OneSidedDirectionCredit: 0.50,
		OneSidedUnitCredit:      0.70,
		FSACredit:               1.5,
		ExactPostalCredit:       0.5,
		MatchThreshold:          0.8,
		FuzzyThreshold:          0.7,
		NumberMismatchPenalty:   0.3,
	}
}

// Matcher compares pairs of raw address strings. It is immutable after
// construction and safe for concurrent use.
type Matcher struct {
	parser *Parser
	cfg    MatcherConfig
}

// NewMatcher builds a matcher over the given parser and weights.
func NewMatcher(parser *Parser, cfg MatcherConfig) *Matcher {
	return &Matcher{parser: parser, cfg: cfg}
}

// Match parses both inputs and scores them across seven weighted dimensions.
// A dimension where neither side has data contributes to neither the achieved
// nor the possible score. A street-number mismatch is a hard constraint: no
// amount of agreement elsewhere makes the pair a match, and the confidence is
// scaled down to reflect that it almost certainly points at a different
// building.
func (m *Matcher) Match(addr1, addr2 string, fuzzy bool) MatchResult {
	if strings.TrimSpace(addr1) == "" || strings.TrimSpace(addr2) == "" {
		return MatchResult{}
	}

	a := m.parser.Parse(addr1)
	b := m.parser.Parse(addr2)

	var achieved, possible float64

	// Street number.
	numberMatch := a.StreetNumber != "" && a.StreetNumber == b.StreetNumber
	switch {
	case a.StreetNumber != "" && b.StreetNumber != "":
		possible += m.cfg.StreetNumberWeight
		if numberMatch {
			achieved += m.cfg.StreetNumberWeight
		}
	case a.StreetNumber != "" || b.StreetNumber != "":
		possible += m.cfg.StreetNumberWeight
		achieved += m.cfg.StreetNumberWeight * m.cfg.OneSidedNumberCredit
	}

	// Street name, with token-set partial credit for reordered or partly
	// overlapping names. Both absent counts as equal: some streets reduce to
	// number, direction, and type alone.
	nameEqual := strings.EqualFold(a.StreetName, b.StreetName)
	switch {
	case a.StreetName != "" && b.StreetName != "":
		possible += m.cfg.StreetNameWeight
		if nameEqual {
			achieved += m.cfg.StreetNameWeight
		} else {
			achieved += m.cfg.StreetNameWeight * tokenSetRatio(a.StreetName, b.StreetName)
		}
	case a.StreetName != "" || b.StreetName != "":
		possible += m.cfg.StreetNameWeight
	}

	achieved, possible = m.scoreOneSided(achieved, possible,
		a.StreetType, b.StreetType, m.cfg.StreetTypeWeight, m.cfg.OneSidedTypeCredit, fuzzy)
	achieved, possible = m.scoreOneSided(achieved, possible,
		a.StreetDirection, b.StreetDirection, m.cfg.StreetDirectionWeight, m.cfg.OneSidedDirectionCredit, fuzzy)
	achieved, possible = m.scoreOneSided(achieved, possible,
		a.Unit, b.Unit, m.cfg.UnitWeight, m.cfg.OneSidedUnitCredit, fuzzy)

	// City: all or nothing. A mismatch is a strong signal, so no partial
	// credit and no one-sided credit.
	cityEqual := a.City != "" && b.City != "" && strings.EqualFold(a.City, b.City)
	cityConflict := a.City != "" && b.City != "" && !strings.EqualFold(a.City, b.City)
	if a.City != "" || b.City != "" {
		possible += m.cfg.CityWeight
		if cityEqual {
			achieved += m.cfg.CityWeight
		}
	}

	// Postal code: FSA credit plus a smaller exact-match credit.
	pcA, pcB := strippedPostal(a.PostalCode), strippedPostal(b.PostalCode)
	fsaEqual := len(pcA) == 6 && len(pcB) == 6 && pcA[:3] == pcB[:3]
	if a.PostalCode != "" || b.PostalCode != "" {
		possible += m.cfg.PostalWeight
		if fsaEqual {
			achieved += m.cfg.FSACredit
			if pcA == pcB {
				achieved += m.cfg.ExactPostalCredit
			}
		}
	}

	var confidence float64
	if possible > 0 {
		confidence = achieved / possible
	}

	if !numberMatch {
		return MatchResult{IsMatch: false, Confidence: confidence * m.cfg.NumberMismatchPenalty}
	}

	// City and FSA corroborate the street name when abbreviation variance
	// makes the name alone ambiguous. The confidence fallbacks rescue highly
	// complete pairs that merely lack a city or postal code on one side, but
	// a city that disagrees outright disables them.
	isMatch := nameEqual && (cityEqual || fsaEqual || (!cityConflict && confidence >= m.cfg.MatchThreshold))
	if fuzzy && !cityConflict && confidence >= m.cfg.FuzzyThreshold {
		isMatch = true
	}

	return MatchResult{IsMatch: isMatch, Confidence: confidence}
}

// scoreOneSided scores a dimension that gets full credit on equality and a
// reduced credit in fuzzy mode when only one side carries the field.
func (m *Matcher) scoreOneSided(achieved, possible float64, va, vb string, weight, credit float64, fuzzy bool) (float64, float64) {
	switch {
	case va != "" && vb != "":
		possible += weight
		if strings.EqualFold(va, vb) {
			achieved += weight
		}
	case va != "" || vb != "":
		possible += weight
		if fuzzy {
			achieved += weight * credit
		}
	}
	return achieved, possible
}

// tokenSetRatio is the Jaccard similarity of the whitespace-split lowercase
// token sets of the two names.
func tokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	union := len(setB)
	for tok := range setA {
		if setB[tok] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

func strippedPostal(code string) string {
	return strings.ReplaceAll(code, " ", "")
}
