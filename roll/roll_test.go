// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roll

import (
	"errors"
	"strings"
	"testing"
)

var testCatalog = []string{"General 2022", "Primary 2022"}

const testFeed = `VoterID,Race,Sex,Birth_Date,Precinct,City_Ward,Party,Status,General 2022,Primary 2022,Extra
100,3,M,1990-05-01,101,51,DEM,ACT,Y,N,x
101,5,F,1960-01-15,102,,REP,ACT,A,,x
102,9,U,2001-12-31,101,56,NPA,INA,,E,x
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(testFeed), testCatalog)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", table.Len())
	}

	rec := table.Rows()[1]
	if rec.VoterID != "101" || rec.Race != "5" || rec.Sex != "F" {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.BirthDate != "1960-01-15" {
		t.Errorf("Expected raw birth date, got %q", rec.BirthDate)
	}
	if len(rec.Votes) != 2 || rec.Votes[0] != "A" || rec.Votes[1] != "" {
		t.Errorf("Unexpected votes: %v", rec.Votes)
	}

	got := table.Elections()
	if len(got) != 2 || got[0] != "General 2022" || got[1] != "Primary 2022" {
		t.Errorf("Unexpected elections: %v", got)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		missing string
	}{
		{"no party", "VoterID,Race,Sex,Birth_Date,Precinct,City_Ward,Status,General 2022,Primary 2022", ColParty},
		{"no ward", "VoterID,Race,Sex,Birth_Date,Precinct,Party,Status,General 2022,Primary 2022", ColCityWard},
		{"no election", "VoterID,Race,Sex,Birth_Date,Precinct,City_Ward,Party,Status,General 2022", "Primary 2022"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.header+"\n"), testCatalog)

			var schemaErr *SchemaMismatchError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Expected SchemaMismatchError, got %v", err)
			}
			if schemaErr.Column != tt.missing {
				t.Errorf("Expected missing column %q, got %q", tt.missing, schemaErr.Column)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""), testCatalog)
	if !errors.Is(err, ErrEmptyFeed) {
		t.Errorf("Expected ErrEmptyFeed, got %v", err)
	}
}

func TestParse_ShortRow(t *testing.T) {
	feed := "VoterID,Race,Sex,Birth_Date,Precinct,City_Ward,Party,Status,General 2022,Primary 2022\n100,3,M\n"
	if _, err := Parse(strings.NewReader(feed), testCatalog); err == nil {
		t.Error("Expected error for short row")
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	table, err := Parse(strings.NewReader("\ufeff"+testFeed), testCatalog)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Rows()[0].VoterID != "100" {
		t.Errorf("Expected first VoterID 100, got %q", table.Rows()[0].VoterID)
	}
}

func TestDistrict(t *testing.T) {
	tests := []struct {
		ward string
		want string
	}{
		{"51", "District 1"},
		{"56", "District 6"},
		{"53.0", "District 3"},
		{" 52 ", "District 2"},
		{"", Unincorporated},
		{"57", Unincorporated},
		{"abc", Unincorporated},
	}

	for _, tt := range tests {
		if got := District(tt.ward); got != tt.want {
			t.Errorf("District(%q) = %q, want %q", tt.ward, got, tt.want)
		}
	}
}

func TestDistricts(t *testing.T) {
	got := Districts()
	if len(got) != 7 {
		t.Fatalf("Expected 7 districts, got %d", len(got))
	}
	if got[0] != "District 1" || got[6] != Unincorporated {
		t.Errorf("Unexpected district order: %v", got)
	}
}

func TestNewTable_VoteWidthMismatch(t *testing.T) {
	_, err := NewTable(testCatalog, []Record{{VoterID: "1", Votes: []string{"Y"}}})
	if err == nil {
		t.Error("Expected error for mismatched vote columns")
	}
}

func TestNewTable_DuplicateElection(t *testing.T) {
	_, err := NewTable([]string{"A", "A"}, nil)
	if err == nil {
		t.Error("Expected error for duplicate election")
	}
}

func TestDistinct(t *testing.T) {
	table, err := Parse(strings.NewReader(testFeed), testCatalog)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	parties := table.Distinct(func(r Record) string { return r.Party })
	want := []string{"DEM", "NPA", "REP"}
	if strings.Join(parties, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, parties)
	}

	wards := table.Distinct(func(r Record) string { return r.CityWard })
	if len(wards) != 2 {
		t.Errorf("Expected blank wards to be skipped, got %v", wards)
	}
}

func TestElectionIndex(t *testing.T) {
	table, _ := NewTable(testCatalog, nil)

	if i, ok := table.ElectionIndex("Primary 2022"); !ok || i != 1 {
		t.Errorf("ElectionIndex() = %d, %v", i, ok)
	}
	if _, ok := table.ElectionIndex("Nope"); ok {
		t.Error("Expected unknown election to be absent")
	}
}
