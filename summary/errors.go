// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import "fmt"

// UnknownCategoryError reports a race or sex code outside the mapped domain
type UnknownCategoryError struct {
	VoterID string
	Field   string
	Value   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("voter %s: unknown %s code %q", e.VoterID, e.Field, e.Value)
}

// UnparseableDateError reports a birth date that cannot be turned into an age
type UnparseableDateError struct {
	VoterID string
	Value   string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("voter %s: unparseable birth date %q", e.VoterID, e.Value)
}

// UnknownElectionError reports a selected election the roll has no column for
type UnknownElectionError struct {
	Election string
}

func (e *UnknownElectionError) Error() string {
	return fmt.Sprintf("unknown election %q", e.Election)
}

// EmptySelectionWarning is returned instead of a report when a selection the
// report cannot do without is empty. It is not a data error: the caller
// should ask the user to choose at least one value.
type EmptySelectionWarning struct {
	Dimension string
}

func (e *EmptySelectionWarning) Error() string {
	return fmt.Sprintf("select at least one %s", e.Dimension)
}
