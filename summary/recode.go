// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/voter-summary/roll"
)

// Race categories
const (
	RaceAfricanAmerican = "African American"
	RaceHispanic        = "Hispanic"
	RaceWhite           = "White"
	RaceOther           = "Other"
)

// Sex categories
const (
	SexMale       = "M"
	SexFemale     = "F"
	SexUnreported = "U"
)

// RaceOrder and SexOrder fix the row order of every cross-tab
var (
	RaceOrder = []string{RaceAfricanAmerican, RaceHispanic, RaceWhite, RaceOther}
	SexOrder  = []string{SexMale, SexFemale, SexUnreported}
)

var raceCodes = map[int]string{
	1: RaceOther,
	2: RaceOther,
	3: RaceAfricanAmerican,
	4: RaceHispanic,
	5: RaceWhite,
	6: RaceOther,
	9: RaceOther,
}

var sexCodes = map[string]string{
	"M": SexMale,
	"F": SexFemale,
	"U": SexUnreported,
}

// SexNames spells out sex categories for display
var SexNames = map[string]string{
	SexMale:       "Male",
	SexFemale:     "Female",
	SexUnreported: "Unreported",
}

// Race maps a raw race code to its category
func Race(code string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(code), ".0"))
	if err != nil {
		return "", false
	}
	race, ok := raceCodes[n]
	return race, ok
}

// Sex maps a raw sex code to its category
func Sex(code string) (string, bool) {
	sex, ok := sexCodes[strings.TrimSpace(code)]
	return sex, ok
}

// AgeRange is an ordinal age bucket
type AgeRange int

const (
	Age18To25 AgeRange = iota
	Age26To34
	Age35To54
	Age55Plus
)

var ageRangeLabels = [...]string{"18-25", "26-34", "35-54", "55+"}

func (a AgeRange) String() string {
	if a < 0 || int(a) >= len(ageRangeLabels) {
		return fmt.Sprintf("AgeRange(%d)", int(a))
	}
	return ageRangeLabels[a]
}

// AgeRanges returns every bucket in order
func AgeRanges() []AgeRange {
	return []AgeRange{Age18To25, Age26To34, Age35To54, Age55Plus}
}

// ParseAgeRange accepts a bucket label such as "26-34"
func ParseAgeRange(label string) (AgeRange, error) {
	for i, l := range ageRangeLabels {
		if l == label {
			return AgeRange(i), nil
		}
	}
	return 0, fmt.Errorf("unknown age range %q", label)
}

// BucketAge assigns an age to its bucket. The youngest bucket also takes
// pre-registered voters under 18.
func BucketAge(age int) AgeRange {
	switch {
	case age <= 25:
		return Age18To25
	case age <= 34:
		return Age26To34
	case age <= 54:
		return Age35To54
	default:
		return Age55Plus
	}
}

var birthDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseBirthDate accepts the date layouts seen in county extracts
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", s)
}

// AgeAt returns whole years lived on asOf
func AgeAt(birth, asOf time.Time) int {
	age := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		age--
	}
	return age
}

// Voter is a recoded view of one roll record
type Voter struct {
	Record   *roll.Record
	Race     string
	Sex      string
	District string
	Age      int
	AgeRange AgeRange
	History  int
}

// View is a derived, filtered slice of a roll. Operations return new views
// and never modify the one they were given or the underlying table.
type View struct {
	table     *roll.Table
	asOf      time.Time
	elections []string
	mode      HistoryMode
	voters    []Voter
}

// Len returns the number of voters in the view
func (v *View) Len() int {
	return len(v.voters)
}

// Voters returns the recoded voters. Callers must treat the slice as read-only.
func (v *View) Voters() []Voter {
	return v.voters
}

// Elections returns the elections voting history was computed over
func (v *View) Elections() []string {
	return append([]string(nil), v.elections...)
}

// Mode returns the voting-history mode, empty before ComputeVotingHistory
func (v *View) Mode() HistoryMode {
	return v.mode
}

// AsOf returns the run date ages were computed against
func (v *View) AsOf() time.Time {
	return v.asOf
}

func (v *View) with(voters []Voter) *View {
	out := *v
	out.voters = voters
	return &out
}

// Recode maps race, sex and ward codes to display categories and derives
// age and age range as of asOf. Any unmapped code or unparseable birth date
// fails the whole table.
func Recode(t *roll.Table, asOf time.Time) (*View, error) {
	rows := t.Rows()
	voters := make([]Voter, len(rows))

	for i := range rows {
		rec := &rows[i]

		race, ok := Race(rec.Race)
		if !ok {
			return nil, &UnknownCategoryError{VoterID: rec.VoterID, Field: roll.ColRace, Value: rec.Race}
		}
		sex, ok := Sex(rec.Sex)
		if !ok {
			return nil, &UnknownCategoryError{VoterID: rec.VoterID, Field: roll.ColSex, Value: rec.Sex}
		}

		birth, err := ParseBirthDate(rec.BirthDate)
		if err != nil {
			return nil, &UnparseableDateError{VoterID: rec.VoterID, Value: rec.BirthDate}
		}
		age := AgeAt(birth, asOf)
		if age < 0 {
			return nil, &UnparseableDateError{VoterID: rec.VoterID, Value: rec.BirthDate}
		}

		voters[i] = Voter{
			Record:   rec,
			Race:     race,
			Sex:      sex,
			District: roll.District(rec.CityWard),
			Age:      age,
			AgeRange: BucketAge(age),
		}
	}

	return &View{table: t, asOf: asOf, voters: voters}, nil
}
