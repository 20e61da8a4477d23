// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Report names
const (
	ReportAge     = "age"
	ReportHistory = "history"
	ReportParty   = "party"
	ReportRecords = "records"
)

// Roll load status constants
const (
	LoadOK     = "ok"
	LoadFailed = "failed"
)

// Response types

// Filters echoes the selections a report was computed with
type Filters struct {
	Statuses  []string `json:"status,omitempty"`
	Districts []string `json:"district,omitempty"`
	Precincts []string `json:"precinct,omitempty"`
	Parties   []string `json:"party,omitempty"`
	Elections []string `json:"election,omitempty"`
	Mode      string   `json:"mode,omitempty"`
}

type SummaryRow struct {
	Label    string `json:"label"`
	Race     string `json:"race"`
	Sex      string `json:"sex"`
	History  *int   `json:"history,omitempty"`
	Cells    []int  `json:"cells"`
	RowTotal int    `json:"row_total"`
}

type SummaryTable struct {
	Columns    []string     `json:"columns"`
	Rows       []SummaryRow `json:"rows"`
	Totals     []int        `json:"totals"`
	GrandTotal int          `json:"grand_total"`
}

type ReportResponse struct {
	Report  string       `json:"report"`
	AsOf    time.Time    `json:"as_of"`
	Voters  int          `json:"voters"`
	Filters Filters      `json:"filters"`
	Table   SummaryTable `json:"table"`
}

type RecordsResponse struct {
	Filters Filters    `json:"filters"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
}

type OptionDefaults struct {
	Statuses  []string `json:"status"`
	Elections []string `json:"election"`
}

type OptionsResponse struct {
	Statuses  []string       `json:"statuses"`
	Districts []string       `json:"districts"`
	Precincts []string       `json:"precincts"`
	Parties   []string       `json:"parties"`
	Elections []string       `json:"elections"`
	AgeRanges []string       `json:"age_ranges"`
	Modes     []string       `json:"modes"`
	Defaults  OptionDefaults `json:"defaults"`
}

type RollStatus struct {
	Source      string     `json:"source"`
	Loaded      bool       `json:"loaded"`
	RecordCount int        `json:"record_count"`
	SizeBytes   int64      `json:"size_bytes"`
	Elections   int        `json:"elections"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	RecentLoads []RollLoad `json:"recent_loads,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Audit records

type RollLoad struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	RecordCount int       `json:"record_count"`
	SizeBytes   int64     `json:"size_bytes"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

type ExportRecord struct {
	ID        string
	Kind      string
	Filters   string // JSON encoded Filters
	Elections string // '|' separated
	RowCount  int
	IPHash    string
	UserAgent string
	CreatedAt time.Time
}
