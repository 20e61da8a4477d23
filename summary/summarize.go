// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"time"

	"github.com/danielhkuo/voter-summary/roll"
)

// Request carries every user selection for one report run
type Request struct {
	Filter    FilterSelection
	Elections []string
	Mode      HistoryMode
	AsOf      time.Time
}

// Report is the full set of tables produced for one request
type Report struct {
	AsOf          time.Time
	Elections     []string
	Mode          HistoryMode
	Voters        int
	Age           *Table
	History       *Table
	Party         *Table
	AgeDetail     *Detail
	HistoryDetail *Detail
}

// Prepare runs recode, filter and, when elections are selected, voting
// history. A zero AsOf means today.
func Prepare(t *roll.Table, req Request) (*View, error) {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	view, err := Recode(t, asOf)
	if err != nil {
		return nil, err
	}
	view = Filter(view, req.Filter)

	if len(req.Elections) == 0 {
		return view, nil
	}
	mode := req.Mode
	if mode == "" {
		mode = HistoryCount
	}
	return ComputeVotingHistory(view, req.Elections, mode)
}

// Summarize builds every report table for a request. At least one election
// must be selected; otherwise an *EmptySelectionWarning is returned and
// nothing is computed.
func Summarize(t *roll.Table, req Request) (*Report, error) {
	if len(req.Elections) == 0 {
		return nil, &EmptySelectionWarning{Dimension: "election"}
	}

	view, err := Prepare(t, req)
	if err != nil {
		return nil, err
	}

	ageDetail, err := SelectDetailRows(view, DetailAge)
	if err != nil {
		return nil, err
	}
	historyDetail, err := SelectDetailRows(view, DetailHistory)
	if err != nil {
		return nil, err
	}

	return &Report{
		AsOf:          view.AsOf(),
		Elections:     view.Elections(),
		Mode:          view.Mode(),
		Voters:        view.Len(),
		Age:           CrossTabulate(view, ByAgeRange),
		History:       CrossTabulate(view, ByHistory),
		Party:         CrossTabulateByParty(view),
		AgeDetail:     ageDetail,
		HistoryDetail: historyDetail,
	}, nil
}
