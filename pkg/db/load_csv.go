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
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/addrmatch/internal/address"
)

// addressColumns is the column list written by LoadAddresses. Each raw
// address is parsed during the load so the table carries the normalized
// components alongside the original text.
var addressColumns = []string{
	"source_id", "source", "raw_address", "normalized",
	"street_number", "street_name", "street_type", "direction",
	"unit", "city", "province", "postal_code",
}

// AddressSource implements pgx.CopyFromSource over a CSV stream of
// (id, source, raw_address) rows, parsing each address as it is read.
type AddressSource struct {
	reader *csv.Reader
	parser *address.Parser
	row    []interface{}
	err    error
}

func NewAddressSource(r io.Reader, parser *address.Parser) *AddressSource {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	return &AddressSource{reader: reader, parser: parser}
}

func (s *AddressSource) Next() bool {
	record, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = err
		return false
	}
	if len(record) < 3 {
		s.err = fmt.Errorf("expected at least 3 columns (id, source, raw_address), got %d", len(record))
		return false
	}
	id, err := strconv.Atoi(record[0])
	if err != nil {
		s.err = fmt.Errorf("invalid record id %q: %v", record[0], err)
		return false
	}

	parsed := s.parser.Parse(record[2])
	s.row = []interface{}{
		id, record[1], record[2], parsed.Normalized,
		parsed.StreetNumber, parsed.StreetName, parsed.StreetType, parsed.StreetDirection,
		parsed.Unit, parsed.City, parsed.Province, parsed.PostalCode,
	}
	return true
}

func (s *AddressSource) Values() ([]interface{}, error) {
	return s.row, nil
}

func (s *AddressSource) Err() error {
	return s.err
}

// LoadAddresses bulk-loads a CSV of raw addresses into table, parsing
// each row on the way in. The CSV must start with a header row.
func LoadAddresses(ctx context.Context, pool *pgxpool.Pool, table string, r io.Reader, parser *address.Parser) (int64, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("unable to acquire a connection: %v", err)
	}
	defer conn.Release()

	source := NewAddressSource(r, parser)
	if _, err := source.reader.Read(); err != nil {
		return 0, fmt.Errorf("error reading CSV header: %v", err)
	}

	copyCount, err := conn.Conn().CopyFrom(
		ctx,
		pgx.Identifier{table},
		addressColumns,
		source,
	)
	if err != nil {
		return 0, fmt.Errorf("error copying data to database: %v", err)
	}
	return copyCount, nil
}
