// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import "fmt"

// HistoryMode selects how per-election indicators reduce to one number
type HistoryMode string

const (
	// HistoryCount counts the selected elections a voter voted in (0..N)
	HistoryCount HistoryMode = "count"
	// HistoryAny is 1 when a voter voted in at least one selected election
	HistoryAny HistoryMode = "any"
)

// ParseHistoryMode defaults an empty mode to HistoryCount
func ParseHistoryMode(s string) (HistoryMode, error) {
	switch HistoryMode(s) {
	case "", HistoryCount:
		return HistoryCount, nil
	case HistoryAny:
		return HistoryAny, nil
	}
	return "", fmt.Errorf("unknown history mode %q", s)
}

// votedCodes is the vote-indicator alphabet
var votedCodes = map[string]bool{
	"Y": true,
	"Z": true,
	"A": true,
	"E": true,
	"F": true,
}

// Voted reports whether an indicator code means the voter cast a ballot
func Voted(code string) bool {
	return votedCodes[code]
}

// MaxHistory is the largest History value the view can hold
func (v *View) MaxHistory() int {
	if v.mode == HistoryAny {
		return 1
	}
	return len(v.elections)
}

// ComputeVotingHistory sets each voter's History from the selected elections
// only. Duplicate names are counted once.
func ComputeVotingHistory(v *View, elections []string, mode HistoryMode) (*View, error) {
	if len(elections) == 0 {
		return nil, &EmptySelectionWarning{Dimension: "election"}
	}
	if mode != HistoryCount && mode != HistoryAny {
		return nil, fmt.Errorf("unknown history mode %q", mode)
	}

	var selected []string
	var columns []int
	seen := make(map[string]bool, len(elections))
	for _, name := range elections {
		if seen[name] {
			continue
		}
		seen[name] = true

		i, ok := v.table.ElectionIndex(name)
		if !ok {
			return nil, &UnknownElectionError{Election: name}
		}
		selected = append(selected, name)
		columns = append(columns, i)
	}

	voters := make([]Voter, len(v.voters))
	for i, voter := range v.voters {
		count := 0
		for _, col := range columns {
			if Voted(voter.Record.Votes[col]) {
				count++
			}
		}
		if mode == HistoryAny && count > 0 {
			count = 1
		}
		voter.History = count
		voters[i] = voter
	}

	out := v.with(voters)
	out.elections = selected
	out.mode = mode
	return out, nil
}
