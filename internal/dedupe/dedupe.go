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

// Package dedupe finds duplicate address records across heterogeneous
// sources. Records are blocked by forward-sortation area so only plausible
// pairs are compared, then scored pairwise by the address matcher.
package dedupe

import (
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/pkg/tfidf"
)

// Record is one ingested address with its source tag.
type Record struct {
	ID     int                   `json:"id"`
	Source string                `json:"source"`
	Raw    string                `json:"raw"`
	Parsed address.ParsedAddress `json:"parsed"`
}

// Pair is the scored comparison of two records from the same block.
type Pair struct {
	LeftID     int     `json:"left_id"`
	RightID    int     `json:"right_id"`
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
}

// Summary describes one deduplication run.
type Summary struct {
	Records          int     `json:"records"`
	Blocks           int     `json:"blocks"`
	PairsCompared    int     `json:"pairs_compared"`
	Matches          int     `json:"matches"`
	MeanConfidence   float64 `json:"mean_confidence"`
	MedianConfidence float64 `json:"median_confidence"`
	P90Confidence    float64 `json:"p90_confidence"`
}

// Options tune a deduplication run.
type Options struct {
	Workers int
	Fuzzy   bool
}

// Deduper runs batch deduplication with a fixed parser and matcher. Safe for
// concurrent use; each Run is independent.
type Deduper struct {
	parser  *address.Parser
	matcher *address.Matcher
	opts    Options
}

// New builds a Deduper. Zero workers defaults to 4.
func New(parser *address.Parser, matcher *address.Matcher, opts Options) *Deduper {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Deduper{parser: parser, matcher: matcher, opts: opts}
}

// Run parses every record, groups them into blocks, and scores all pairs
// within each block. It returns every compared pair plus a run summary.
func (d *Deduper) Run(records []Record) ([]Pair, Summary) {
	for i := range records {
		records[i].Parsed = d.parser.Parse(records[i].Raw)
	}

	blocks := d.buildBlocks(records)

	type job struct{ left, right int }
	jobs := make(chan job, 1000)
	results := make(chan Pair, 1000)

	var wg sync.WaitGroup
	for w := 0; w < d.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := d.matcher.Match(records[j.left].Raw, records[j.right].Raw, d.opts.Fuzzy)
				results <- Pair{
					LeftID:     records[j.left].ID,
					RightID:    records[j.right].ID,
					IsMatch:    res.IsMatch,
					Confidence: res.Confidence,
				}
			}
		}()
	}

	var pairs []Pair
	var mu sync.Mutex
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range results {
			mu.Lock()
			pairs = append(pairs, p)
			mu.Unlock()
		}
	}()

	for _, members := range blocks {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				jobs <- job{left: members[i], right: members[j]}
			}
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	<-done

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Confidence != pairs[j].Confidence {
			return pairs[i].Confidence > pairs[j].Confidence
		}
		if pairs[i].LeftID != pairs[j].LeftID {
			return pairs[i].LeftID < pairs[j].LeftID
		}
		return pairs[i].RightID < pairs[j].RightID
	})

	return pairs, d.summarize(records, blocks, pairs)
}

// buildBlocks assigns each record index to a block key. Postal records block
// on the forward-sortation area; the rest fall back to their rarest token so
// records missing a postal code still land next to their likely duplicates.
func (d *Deduper) buildBlocks(records []Record) map[string][]int {
	var withoutPostal []string
	for _, r := range records {
		if r.Parsed.PostalCode == "" {
			withoutPostal = append(withoutPostal, r.Parsed.Normalized)
		}
	}

	var vec *tfidf.Vectorizer
	if len(withoutPostal) > 0 {
		vec = tfidf.NewVectorizer()
		vec.Fit(withoutPostal)
	}

	blocks := make(map[string][]int)
	for i, r := range records {
		key := d.blockKey(r.Parsed, vec)
		blocks[key] = append(blocks[key], i)
	}
	return blocks
}

func (d *Deduper) blockKey(p address.ParsedAddress, vec *tfidf.Vectorizer) string {
	if p.PostalCode != "" {
		return "fsa:" + strings.ToUpper(p.PostalCode[:3])
	}
	if vec != nil {
		if tok := vec.RarestToken(p.Normalized); tok != "" {
			return "tok:" + tok
		}
	}
	return "rest"
}

func (d *Deduper) summarize(records []Record, blocks map[string][]int, pairs []Pair) Summary {
	summary := Summary{
		Records:       len(records),
		Blocks:        len(blocks),
		PairsCompared: len(pairs),
	}
	if len(pairs) == 0 {
		return summary
	}

	confidences := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if p.IsMatch {
			summary.Matches++
		}
		confidences = append(confidences, p.Confidence)
	}
	sort.Float64s(confidences)

	summary.MeanConfidence = stat.Mean(confidences, nil)
	summary.MedianConfidence = stat.Quantile(0.5, stat.Empirical, confidences, nil)
	summary.P90Confidence = stat.Quantile(0.9, stat.Empirical, confidences, nil)
	return summary
}

// Matches filters a pair list down to the pairs the matcher accepted.
func Matches(pairs []Pair) []Pair {
	var out []Pair
	for _, p := range pairs {
		if p.IsMatch {
			out = append(out, p)
		}
	}
	return out
}
