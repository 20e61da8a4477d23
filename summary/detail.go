// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/danielhkuo/voter-summary/roll"
)

// DetailKind names a detail projection
type DetailKind string

const (
	// DetailAge projects the demographic columns
	DetailAge DetailKind = "age"
	// DetailHistory adds the raw indicator of each selected election
	DetailHistory DetailKind = "history"
)

// ParseDetailKind validates a detail kind from user input
func ParseDetailKind(s string) (DetailKind, error) {
	switch DetailKind(s) {
	case DetailAge, DetailHistory:
		return DetailKind(s), nil
	}
	return "", fmt.Errorf("unknown detail kind %q", s)
}

var detailColumns = []string{
	roll.ColVoterID, roll.ColRace, roll.ColSex, roll.ColBirthDate, roll.ColPrecinct,
}

// Detail is a per-voter projection ready for display or CSV export
type Detail struct {
	Columns []string
	Rows    [][]string
}

// SelectDetailRows projects a view to one row per voter. No aggregation.
func SelectDetailRows(v *View, kind DetailKind) (*Detail, error) {
	columns := append([]string(nil), detailColumns...)

	var votes []int
	switch kind {
	case DetailAge:
	case DetailHistory:
		for _, name := range v.elections {
			i, ok := v.table.ElectionIndex(name)
			if !ok {
				return nil, &UnknownElectionError{Election: name}
			}
			votes = append(votes, i)
			columns = append(columns, name)
		}
	default:
		return nil, fmt.Errorf("unknown detail kind %q", kind)
	}

	rows := make([][]string, len(v.voters))
	for i, voter := range v.voters {
		rec := voter.Record
		row := make([]string, 0, len(columns))
		row = append(row, rec.VoterID, voter.Race, voter.Sex, rec.BirthDate, rec.Precinct)
		for _, col := range votes {
			row = append(row, rec.Votes[col])
		}
		rows[i] = row
	}

	return &Detail{Columns: columns, Rows: rows}, nil
}

// WriteCSV writes a header row followed by one row per voter
func (d *Detail) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(d.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
