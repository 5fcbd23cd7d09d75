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

import "github.com/TFMV/addrmatch/internal/canon"

// Package-level defaults for callers that do not need custom weights or a
// different target province. Both are immutable, so sharing them across
// goroutines is safe.
var (
	defaultParser  = NewParser(canon.NewTable())
	defaultMatcher = NewMatcher(defaultParser, DefaultMatcherConfig())
)

// Parse parses raw with the default table and target province.
func Parse(raw string) ParsedAddress {
	return defaultParser.Parse(raw)
}

// Match compares two raw address strings with the default weights.
func Match(addr1, addr2 string, fuzzy bool) MatchResult {
	return defaultMatcher.Match(addr1, addr2, fuzzy)
}

// ExtractStreetNumber returns the leading numeric token of raw, if any.
func ExtractStreetNumber(raw string) (string, bool) {
	return defaultParser.ExtractStreetNumber(raw)
}
