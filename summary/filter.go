// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

// FilterSelection restricts a view by roll fields. An empty slice means the
// dimension is not filtered at all; it never means "match nothing".
type FilterSelection struct {
	Statuses  []string
	Districts []string
	Precincts []string
	Parties   []string
}

// IsEmpty reports whether no dimension is filtered
func (s FilterSelection) IsEmpty() bool {
	return len(s.Statuses) == 0 && len(s.Districts) == 0 &&
		len(s.Precincts) == 0 && len(s.Parties) == 0
}

type valueSet map[string]struct{}

func newValueSet(values []string) valueSet {
	if len(values) == 0 {
		return nil
	}
	set := make(valueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// allows treats a nil set as "no filter"
func (s valueSet) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// Filter keeps voters matching every non-empty dimension of sel
func Filter(v *View, sel FilterSelection) *View {
	if sel.IsEmpty() {
		return v.with(v.voters)
	}

	statuses := newValueSet(sel.Statuses)
	districts := newValueSet(sel.Districts)
	precincts := newValueSet(sel.Precincts)
	parties := newValueSet(sel.Parties)

	kept := make([]Voter, 0, len(v.voters))
	for _, voter := range v.voters {
		rec := voter.Record
		if !statuses.allows(rec.Status) ||
			!districts.allows(voter.District) ||
			!precincts.allows(rec.Precinct) ||
			!parties.allows(rec.Party) {
			continue
		}
		kept = append(kept, voter)
	}
	return v.with(kept)
}

// Narrow drills a view down to specific age ranges and voting-history
// values. Empty slices leave that dimension alone.
func Narrow(v *View, ranges []AgeRange, histories []int) *View {
	if len(ranges) == 0 && len(histories) == 0 {
		return v.with(v.voters)
	}

	rangeSet := make(map[AgeRange]bool, len(ranges))
	for _, r := range ranges {
		rangeSet[r] = true
	}
	historySet := make(map[int]bool, len(histories))
	for _, h := range histories {
		historySet[h] = true
	}

	kept := make([]Voter, 0, len(v.voters))
	for _, voter := range v.voters {
		if len(rangeSet) > 0 && !rangeSet[voter.AgeRange] {
			continue
		}
		if len(historySet) > 0 && !historySet[voter.History] {
			continue
		}
		kept = append(kept, voter)
	}
	return v.with(kept)
}
