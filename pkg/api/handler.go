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

package api

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/internal/dedupe"
	"github.com/TFMV/addrmatch/pkg/db"
)

type ParseRequest struct {
	Address string `json:"address"`
}

type MatchRequest struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Fuzzy    bool   `json:"fuzzy"`
}

type DedupeResponse struct {
	RunID   int            `json:"run_id,omitempty"`
	Summary dedupe.Summary `json:"summary"`
	Pairs   []dedupe.Pair  `json:"pairs"`
}

// ParseHandler parses a single raw address into its components
func ParseHandler(parser *address.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, parser.Parse(req.Address))
	}
}

// MatchHandler scores two raw addresses against each other
func MatchHandler(matcher *address.Matcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, matcher.Match(req.Address1, req.Address2, req.Fuzzy))
	}
}

// ExtractNumberHandler pulls just the street number out of a raw address
func ExtractNumberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		number, ok := address.ExtractStreetNumber(req.Address)
		c.JSON(http.StatusOK, gin.H{"street_number": number, "found": ok})
	}
}

// DedupeBatchHandler accepts a CSV upload of (id, source, raw_address)
// rows, dedupes them, and optionally persists the scored pairs when
// store=true and a pool is configured.
func DedupeBatchHandler(pool *pgxpool.Pool, deduper *dedupe.Deduper) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()

		records, err := ReadRecords(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read CSV: %v", err)})
			return
		}

		pairs, summary := deduper.Run(records)
		resp := DedupeResponse{Summary: summary, Pairs: pairs}

		store, _ := strconv.ParseBool(c.Query("store"))
		if store {
			if pool == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no database configured for store=true"})
				return
			}
			runID, err := db.CreateRun(c.Request.Context(), pool, "Batch Deduplication")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if err := db.InsertPairs(c.Request.Context(), pool, runID, pairs); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			resp.RunID = runID
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ReadRecords parses a headered CSV of (id, source, raw_address) rows
func ReadRecords(r io.Reader) ([]dedupe.Record, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}

	var records []dedupe.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("expected at least 3 columns (id, source, raw_address), got %d", len(row))
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid record id %q: %v", row[0], err)
		}
		records = append(records, dedupe.Record{ID: id, Source: row[1], Raw: row[2]})
	}
	return records, nil
}
