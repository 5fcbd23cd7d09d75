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
// The above copyright notice shall be included in all
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

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/addrmatch/internal/dedupe"
)

// CreateRun creates a new run entry in the database and returns the run_id
func CreateRun(ctx context.Context, pool *pgxpool.Pool, description string) (int, error) {
	var runID int
	err := pool.QueryRow(ctx, "INSERT INTO runs (description) VALUES ($1) RETURNING run_id", description).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to create new run: %v", err)
	}
	return runID, nil
}

// InsertPairs inserts scored pairs for a run as a single batched statement
func InsertPairs(ctx context.Context, pool *pgxpool.Pool, runID int, pairs []dedupe.Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	lefts := make([]int, len(pairs))
	rights := make([]int, len(pairs))
	matches := make([]bool, len(pairs))
	confidences := make([]float64, len(pairs))
	for i, p := range pairs {
		lefts[i] = p.LeftID
		rights[i] = p.RightID
		matches[i] = p.IsMatch
		confidences[i] = p.Confidence
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO address_pairs (left_id, right_id, is_match, confidence, run_id) SELECT UNNEST($1::int[]), UNNEST($2::int[]), UNNEST($3::bool[]), UNNEST($4::float8[]), $5",
		lefts, rights, matches, confidences, runID,
	)
	if err != nil {
		return fmt.Errorf("batch insert failed: %v", err)
	}
	return nil
}

// FetchRecords reads raw address records from table for deduplication
func FetchRecords(ctx context.Context, pool *pgxpool.Pool, table string) ([]dedupe.Record, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf("SELECT source_id, source, raw_address FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()

	var records []dedupe.Record
	for rows.Next() {
		var rec dedupe.Record
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Raw); err != nil {
			return nil, fmt.Errorf("row scan failed: %v", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
