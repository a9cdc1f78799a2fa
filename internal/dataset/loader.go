// Package dataset loads the coverage CSV into an immutable table.
//
// Headers are trimmed and mapped onto canonical column names through a Schema, and
// coverage flags are normalised onto the canonical YES/NO tokens. Loads are memoised per
// file path by Store for the lifetime of the process.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

// Load reads a comma-separated file with a header row into a Table.
// Every failure wraps apperrors.ErrLoad.
func Load(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", apperrors.ErrLoad, path, err)
	}
	defer f.Close()

	t, err := Read(f, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses CSV from r into a Table.
func Read(r io.Reader, schema Schema) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", apperrors.ErrLoad)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", apperrors.ErrLoad, err)
	}

	var records [][]string

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrLoad, err)
		}

		records = append(records, record)
	}

	return FromRecords(header, records, schema)
}

// FromRecords builds a Table from a header and data records already split into fields.
// Records must match the header width; the table takes ownership of them.
func FromRecords(header []string, records [][]string, schema Schema) (*Table, error) {
	columns, err := canonicalColumns(header, schema)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", apperrors.ErrLoad)
	}

	var flagCols []int

	for i, c := range columns {
		if domain.IsCoverageColumn(c) {
			flagCols = append(flagCols, i)
		}
	}

	for n, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", apperrors.ErrLoad, n+1, len(rec), len(columns))
		}

		for _, i := range flagCols {
			rec[i] = schema.NormalizeFlag(rec[i])
		}
	}

	return newTable(columns, records), nil
}

func canonicalColumns(header []string, schema Schema) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))

	for i, h := range header {
		c := schema.Canonical(h)
		if c == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", apperrors.ErrLoad, i+1)
		}

		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %s", apperrors.ErrLoad, c)
		}

		seen[c] = struct{}{}
		columns[i] = c
	}

	for _, req := range schema.Required {
		if _, ok := seen[req]; !ok {
			return nil, fmt.Errorf("%w: missing required column %s", apperrors.ErrLoad, req)
		}
	}

	return columns, nil
}
