// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roll

import (
	"fmt"
	"sort"
	"strings"
)

// Header column names of the voter-roll feed
const (
	ColVoterID   = "VoterID"
	ColRace      = "Race"
	ColSex       = "Sex"
	ColBirthDate = "Birth_Date"
	ColPrecinct  = "Precinct"
	ColCityWard  = "City_Ward"
	ColParty     = "Party"
	ColStatus    = "Status"
)

// RequiredColumns lists the non-election columns every feed must carry
var RequiredColumns = []string{
	ColVoterID, ColRace, ColSex, ColBirthDate,
	ColPrecinct, ColCityWard, ColParty, ColStatus,
}

// DefaultElections is the election catalog published with the county extract.
// Both spellings of the March 2023 Flagler Beach election appear in the feed.
var DefaultElections = []string{
	"03-07-2023 Flagler Beach(Mar/07/2023)",
	"03/07/2023 Flagler Beach(Mar/07/2023)",
	"11-08-2022 General Election(Nov/08/2022)",
	"08-23-2022 Primary Election(Aug/23/2022)",
	"2022 City of Flagler Beach Election(Mar/08/2022)",
	"11-02-2021 Municipal Election(Nov/02/2021)",
	"Daytona Beach Special Primary(Sep/21/2021)",
	"Municipal Election(Aug/17/2021)",
	"04-13-2021 Port Orange Primary(Apr/13/2021)",
	"City of Flagler Beach(Mar/02/2021)",
	"20201103 General Election(Nov/03/2020)",
	"20200818 Primary Election(Aug/18/2020)",
	"20200519 Pierson Mail Ballot Elec(May/19/2020)",
	"20200317 Pres Preference Primary(Mar/17/2020)",
	"City of Flagler Beach(Mar/17/2020)",
	"20191105 Lake Helen General(Nov/05/2019)",
	"20190611 Pt Orange Special Runoff(Jun/11/2019)",
	"20190521 Mail Ballot Election(May/21/2019)",
	"20190430 Pt Orange Special Primary(Apr/30/2019)",
	"20190402 Edgewater Special General(Apr/02/2019)",
}

// Unincorporated is the district of every voter outside a city ward
const Unincorporated = "Unincorporated"

var wardDistricts = map[string]string{
	"51": "District 1",
	"52": "District 2",
	"53": "District 3",
	"54": "District 4",
	"55": "District 5",
	"56": "District 6",
}

// District maps a raw City_Ward code to its commission district
func District(cityWard string) string {
	ward := strings.TrimSpace(cityWard)
	// Some extracts write the ward as a float ("51.0")
	ward = strings.TrimSuffix(ward, ".0")
	if d, ok := wardDistricts[ward]; ok {
		return d
	}
	return Unincorporated
}

// Districts returns every district name in display order
func Districts() []string {
	out := make([]string, 0, len(wardDistricts)+1)
	for i := 1; i <= len(wardDistricts); i++ {
		out = append(out, fmt.Sprintf("District %d", i))
	}
	return append(out, Unincorporated)
}

// Record is one voter row exactly as it appeared in the feed.
// Votes is aligned with the owning Table's Elections.
type Record struct {
	VoterID   string
	Race      string
	Sex       string
	BirthDate string
	Precinct  string
	CityWard  string
	Party     string
	Status    string
	Votes     []string
}

// Table is an immutable voter roll
type Table struct {
	elections []string
	index     map[string]int
	records   []Record
}

// NewTable builds a table from already-split records. Each record's Votes
// must have one entry per election.
func NewTable(elections []string, records []Record) (*Table, error) {
	index := make(map[string]int, len(elections))
	for i, name := range elections {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate election column %q", name)
		}
		index[name] = i
	}
	for i := range records {
		if len(records[i].Votes) != len(elections) {
			return nil, fmt.Errorf("record %d has %d vote columns, want %d",
				i, len(records[i].Votes), len(elections))
		}
	}

	return &Table{
		elections: append([]string(nil), elections...),
		index:     index,
		records:   records,
	}, nil
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.records)
}

// Rows returns the records. Callers must treat the slice as read-only.
func (t *Table) Rows() []Record {
	return t.records
}

// Elections returns a copy of the election column names in feed order
func (t *Table) Elections() []string {
	return append([]string(nil), t.elections...)
}

// ElectionIndex reports the position of an election within Record.Votes
func (t *Table) ElectionIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Distinct returns the sorted set of non-empty values a field takes
func (t *Table) Distinct(field func(Record) string) []string {
	seen := make(map[string]struct{})
	for _, rec := range t.records {
		v := field(rec)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
