// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"fmt"
	"sort"
)

// Labels of the synthetic totals
const (
	TotalLabel    = "Total"
	RowTotalLabel = "Row Total"
	blankParty    = "(none)"
)

// ValueKey picks the column dimension of a cross-tab
type ValueKey int

const (
	ByAgeRange ValueKey = iota
	ByHistory
)

// Row is one (race, sex[, history]) line of a cross-tab
type Row struct {
	Label   string
	Race    string
	Sex     string
	History int
	Cells   []int
	Total   int
}

// Table is a dense cross-tabulation with row and column totals
type Table struct {
	Columns    []string
	Rows       []Row
	Totals     []int
	GrandTotal int
}

// Cell looks up a count by row label and column label
func (t *Table) Cell(row, column string) (int, bool) {
	col := -1
	for i, c := range t.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Label == row {
			return r.Cells[col], true
		}
	}
	return 0, false
}

// Row looks up a row by label
func (t *Table) Row(label string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

// RowLabel formats the "African American, M" label of a race/sex row
func RowLabel(race, sex string) string {
	return race + ", " + sex
}

// HistoryColumns labels the History values 0..MaxHistory of a view
func HistoryColumns(v *View) []string {
	if v.mode == HistoryAny {
		return []string{"Did not vote", "Voted"}
	}
	n := len(v.elections)
	cols := make([]string, n+1)
	for i := 0; i <= n; i++ {
		cols[i] = fmt.Sprintf("%d of %d", i, n)
	}
	return cols
}

func raceSexIndex() map[[2]string]int {
	index := make(map[[2]string]int, len(RaceOrder)*len(SexOrder))
	for r, race := range RaceOrder {
		for s, sex := range SexOrder {
			index[[2]string{race, sex}] = r*len(SexOrder) + s
		}
	}
	return index
}

// CrossTabulate counts voters by (race, sex) rows against age ranges or
// voting-history values. Every race/sex pair and every column is present,
// zero-filled.
func CrossTabulate(v *View, key ValueKey) *Table {
	var columns []string
	var column func(Voter) int
	switch key {
	case ByHistory:
		columns = HistoryColumns(v)
		column = func(voter Voter) int { return voter.History }
	default:
		for _, r := range AgeRanges() {
			columns = append(columns, r.String())
		}
		column = func(voter Voter) int { return int(voter.AgeRange) }
	}

	rows := make([]Row, 0, len(RaceOrder)*len(SexOrder))
	for _, race := range RaceOrder {
		for _, sex := range SexOrder {
			rows = append(rows, Row{
				Label: RowLabel(race, sex),
				Race:  race,
				Sex:   sex,
				Cells: make([]int, len(columns)),
			})
		}
	}

	index := raceSexIndex()
	for _, voter := range v.voters {
		rows[index[[2]string{voter.Race, voter.Sex}]].Cells[column(voter)]++
	}

	return withTotals(columns, rows)
}

// CrossTabulateByParty counts voters by (race, sex, history) rows against
// the parties present in the view. Parties are sorted by name.
func CrossTabulateByParty(v *View) *Table {
	partyIndex := make(map[string]int)
	for _, voter := range v.voters {
		partyIndex[partyLabel(voter.Record.Party)] = 0
	}
	columns := make([]string, 0, len(partyIndex))
	for p := range partyIndex {
		columns = append(columns, p)
	}
	sort.Strings(columns)
	for i, p := range columns {
		partyIndex[p] = i
	}

	maxHistory := v.MaxHistory()
	rows := make([]Row, 0, len(RaceOrder)*len(SexOrder)*(maxHistory+1))
	for _, race := range RaceOrder {
		for _, sex := range SexOrder {
			for h := 0; h <= maxHistory; h++ {
				rows = append(rows, Row{
					Label:   partyRowLabel(v, race, sex, h),
					Race:    race,
					Sex:     sex,
					History: h,
					Cells:   make([]int, len(columns)),
				})
			}
		}
	}

	index := raceSexIndex()
	for _, voter := range v.voters {
		row := index[[2]string{voter.Race, voter.Sex}]*(maxHistory+1) + voter.History
		rows[row].Cells[partyIndex[partyLabel(voter.Record.Party)]]++
	}

	return withTotals(columns, rows)
}

func partyLabel(party string) string {
	if party == "" {
		return blankParty
	}
	return party
}

func partyRowLabel(v *View, race, sex string, history int) string {
	n := len(v.elections)
	if v.mode == HistoryAny {
		if history == 0 {
			return fmt.Sprintf("%s %s, voted in none of last %d elections", race, sex, n)
		}
		return fmt.Sprintf("%s %s, voted in any of last %d elections", race, sex, n)
	}
	return fmt.Sprintf("%s %s, %d of last %d elections", race, sex, history, n)
}

func withTotals(columns []string, rows []Row) *Table {
	t := &Table{
		Columns: columns,
		Rows:    rows,
		Totals:  make([]int, len(columns)),
	}
	for i := range t.Rows {
		row := &t.Rows[i]
		for c, n := range row.Cells {
			row.Total += n
			t.Totals[c] += n
		}
		t.GrandTotal += row.Total
	}
	return t
}
