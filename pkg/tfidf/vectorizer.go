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

// Package tfidf scores address tokens by how rare they are across a batch of
// records. The deduplication pipeline uses the rarest token of a normalized
// address as a fallback block key when no postal code is available.
package tfidf

import (
	"math"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Vectorizer computes term and inverse-document frequencies over a corpus of
// normalized address strings.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// NewVectorizer creates an empty vectorizer; call Fit before querying it.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		vocabulary: make(map[string]int),
	}
}

// Tokenize splits text into lowercase tokens using the prose tokenizer,
// falling back to whitespace fields if the document cannot be built.
func Tokenize(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return strings.Fields(strings.ToLower(text))
	}
	tokens := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, strings.ToLower(tok.Text))
	}
	return tokens
}

// Fit builds the vocabulary and IDF weights from the input documents.
func (v *Vectorizer) Fit(docs []string) {
	docCount := len(docs)
	termDocCount := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range Tokenize(doc) {
			if _, exists := v.vocabulary[term]; !exists {
				v.vocabulary[term] = len(v.vocabulary)
			}
			if !seen[term] {
				termDocCount[term]++
				seen[term] = true
			}
		}
	}

	v.idf = make([]float64, len(v.vocabulary))
	for term, count := range termDocCount {
		v.idf[v.vocabulary[term]] = math.Log(float64(docCount) / float64(count+1))
	}
}

// IDF returns the inverse document frequency of a term, or zero for terms
// outside the fitted vocabulary.
func (v *Vectorizer) IDF(term string) float64 {
	idx, ok := v.vocabulary[strings.ToLower(term)]
	if !ok {
		return 0
	}
	return v.idf[idx]
}

// RarestToken returns the token of doc with the highest IDF weight. Ties go
// to the earlier token so the result is deterministic.
func (v *Vectorizer) RarestToken(doc string) string {
	var best string
	bestIDF := math.Inf(-1)
	for _, term := range Tokenize(doc) {
		if idf := v.IDF(term); idf > bestIDF {
			best = term
			bestIDF = idf
		}
	}
	return best
}

// Transform converts documents into dense TF-IDF vectors over the fitted
// vocabulary. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(docs []string) [][]float64 {
	vectors := make([][]float64, len(docs))

	for i, doc := range docs {
		tf := make([]float64, len(v.vocabulary))
		for _, term := range Tokenize(doc) {
			if idx, ok := v.vocabulary[term]; ok {
				tf[idx]++
			}
		}

		vec := make([]float64, len(v.vocabulary))
		for j, freq := range tf {
			vec[j] = freq * v.idf[j]
		}
		vectors[i] = vec
	}

	return vectors
}

// FitTransform fits the vectorizer and transforms the same documents.
func (v *Vectorizer) FitTransform(docs []string) [][]float64 {
	v.Fit(docs)
	return v.Transform(docs)
}
