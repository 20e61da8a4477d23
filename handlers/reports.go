// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/voter-summary/metrics"
	"github.com/danielhkuo/voter-summary/middleware"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/roll"
	"github.com/danielhkuo/voter-summary/summary"
)

// defaultStatus is preselected in the dashboard status filter
const defaultStatus = "ACT"

// defaultElectionCount is how many catalog elections are preselected
const defaultElectionCount = 3

type ReportHandler struct {
	roll Roll
}

func NewReportHandler(r Roll) *ReportHandler {
	return &ReportHandler{roll: r}
}

// Options handles GET /options
// Returns the values each filter can take in the current roll
func (h *ReportHandler) Options(w http.ResponseWriter, r *http.Request) {
	table, err := h.roll.Table()
	if err != nil {
		writeError(w, err)
		return
	}

	ageRanges := []string{}
	for _, ar := range summary.AgeRanges() {
		ageRanges = append(ageRanges, ar.String())
	}

	elections := table.Elections()
	defaults := elections
	if len(defaults) > defaultElectionCount {
		defaults = defaults[:defaultElectionCount]
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Statuses:  nonNil(table.Distinct(func(rec roll.Record) string { return rec.Status })),
		Districts: roll.Districts(),
		Precincts: nonNil(table.Distinct(func(rec roll.Record) string { return rec.Precinct })),
		Parties:   nonNil(table.Distinct(func(rec roll.Record) string { return rec.Party })),
		Elections: elections,
		AgeRanges: ageRanges,
		Modes:     []string{string(summary.HistoryCount), string(summary.HistoryAny)},
		Defaults: models.OptionDefaults{
			Statuses:  []string{defaultStatus},
			Elections: defaults,
		},
	})
}

// AgeReport handles GET /reports/age
// Race/sex by age range for the filtered roll; elections are ignored
func (h *ReportHandler) AgeReport(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, models.ReportAge, false, func(v *summary.View) *summary.Table {
		return summary.CrossTabulate(v, summary.ByAgeRange)
	})
}

// HistoryReport handles GET /reports/history
// Race/sex by voting history over the selected elections
func (h *ReportHandler) HistoryReport(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, models.ReportHistory, true, func(v *summary.View) *summary.Table {
		return summary.CrossTabulate(v, summary.ByHistory)
	})
}

// PartyReport handles GET /reports/party
// Race/sex/history rows by party
func (h *ReportHandler) PartyReport(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, models.ReportParty, true, summary.CrossTabulateByParty)
}

func (h *ReportHandler) report(w http.ResponseWriter, r *http.Request, name string, needsElections bool, tabulate func(*summary.View) *summary.Table) {
	start := time.Now()
	resp, err := h.buildReport(r, name, needsElections, tabulate)
	metrics.ObserveReport(name, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *ReportHandler) buildReport(r *http.Request, name string, needsElections bool, tabulate func(*summary.View) *summary.Table) (*models.ReportResponse, error) {
	req, filters, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	if !needsElections {
		req.Elections = nil
		filters.Elections = nil
		filters.Mode = ""
	} else if len(req.Elections) == 0 {
		return nil, &summary.EmptySelectionWarning{Dimension: "election"}
	}

	table, err := h.roll.Table()
	if err != nil {
		return nil, err
	}
	view, err := summary.Prepare(table, req)
	if err != nil {
		return nil, err
	}

	return &models.ReportResponse{
		Report:  name,
		AsOf:    view.AsOf(),
		Voters:  view.Len(),
		Filters: filters,
		Table:   toSummaryTable(tabulate(view), name == models.ReportParty),
	}, nil
}

// Records handles GET /reports/records
// Returns the voter-level rows behind one or more cross-tab cells
func (h *ReportHandler) Records(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp, err := h.buildRecords(r)
	metrics.ObserveReport(models.ReportRecords, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *ReportHandler) buildRecords(r *http.Request) (*models.RecordsResponse, error) {
	req, filters, err := parseRequest(r)
	if err != nil {
		return nil, err
	}
	ranges, histories, err := parseNarrowing(r.URL.Query())
	if err != nil {
		return nil, err
	}
	if len(histories) > 0 && len(req.Elections) == 0 {
		return nil, &summary.EmptySelectionWarning{Dimension: "election"}
	}

	table, err := h.roll.Table()
	if err != nil {
		return nil, err
	}
	view, err := summary.Prepare(table, req)
	if err != nil {
		return nil, err
	}
	view = summary.Narrow(view, ranges, histories)

	kind := summary.DetailAge
	if len(req.Elections) > 0 {
		kind = summary.DetailHistory
	}
	detail, err := summary.SelectDetailRows(view, kind)
	if err != nil {
		return nil, err
	}

	rows := detail.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return &models.RecordsResponse{
		Filters: filters,
		Columns: detail.Columns,
		Rows:    rows,
		Count:   len(rows),
	}, nil
}

func toSummaryTable(t *summary.Table, withHistory bool) models.SummaryTable {
	rows := make([]models.SummaryRow, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = models.SummaryRow{
			Label:    row.Label,
			Race:     row.Race,
			Sex:      row.Sex,
			Cells:    row.Cells,
			RowTotal: row.Total,
		}
		if withHistory {
			history := row.History
			rows[i].History = &history
		}
	}
	return models.SummaryTable{
		Columns:    t.Columns,
		Rows:       rows,
		Totals:     t.Totals,
		GrandTotal: t.GrandTotal,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
