// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roll

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SchemaMismatchError reports a required column missing from the feed header
type SchemaMismatchError struct {
	Column string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("feed is missing column %q", e.Column)
}

// ErrEmptyFeed is returned when the feed has no header row
var ErrEmptyFeed = errors.New("feed is empty")

// Parse reads a comma-delimited voter roll. Every column in RequiredColumns
// and every election in catalog must be present in the header.
func Parse(r io.Reader, catalog []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFeed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	column := func(name string) (int, error) {
		i, ok := positions[name]
		if !ok {
			return 0, &SchemaMismatchError{Column: name}
		}
		return i, nil
	}

	var fixed [8]int
	for i, name := range RequiredColumns {
		if fixed[i], err = column(name); err != nil {
			return nil, err
		}
	}
	votes := make([]int, len(catalog))
	for i, name := range catalog {
		if votes[i], err = column(name); err != nil {
			return nil, err
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}

		rec := Record{
			VoterID:   strings.TrimSpace(row[fixed[0]]),
			Race:      strings.TrimSpace(row[fixed[1]]),
			Sex:       strings.TrimSpace(row[fixed[2]]),
			BirthDate: strings.TrimSpace(row[fixed[3]]),
			Precinct:  strings.TrimSpace(row[fixed[4]]),
			CityWard:  strings.TrimSpace(row[fixed[5]]),
			Party:     strings.TrimSpace(row[fixed[6]]),
			Status:    strings.TrimSpace(row[fixed[7]]),
			Votes:     make([]string, len(votes)),
		}
		for i, pos := range votes {
			rec.Votes[i] = strings.TrimSpace(row[pos])
		}
		records = append(records, rec)
	}

	return NewTable(catalog, records)
}
