// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/danielhkuo/voter-summary/db"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/testutil"
)

// TestDashboardWorkflow walks the dashboard flow end to end:
// 1. Load the filter options and their defaults
// 2. Run the history report with the default selection
// 3. Drill into one cell
// 4. Download the same selection as CSV
func TestDashboardWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	store := testutil.NewTestStore(t, conn, testutil.TestFeed)
	reportHandler := NewReportHandler(store)
	exportHandler := NewExportHandler(conn, store, cfg)

	// Step 1: Options
	req := httptest.NewRequest("GET", "/options", nil)
	w := httptest.NewRecorder()
	reportHandler.Options(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Options failed: %d - %s", w.Code, w.Body.String())
	}

	var options models.OptionsResponse
	json.NewDecoder(w.Body).Decode(&options)

	query := url.Values{}
	for _, s := range options.Defaults.Statuses {
		query.Add("status", s)
	}
	for _, e := range options.Defaults.Elections {
		query.Add("election", e)
	}
	query.Set("as_of", "2026-06-01")
	t.Logf("Step 1 - Default selection: %s", query.Encode())

	// Step 2: History report
	req = httptest.NewRequest("GET", "/reports/history?"+query.Encode(), nil)
	w = httptest.NewRecorder()
	reportHandler.HistoryReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - History report failed: %d - %s", w.Code, w.Body.String())
	}

	var report models.ReportResponse
	json.NewDecoder(w.Body).Decode(&report)

	var cell int
	for _, row := range report.Table.Rows {
		if row.Label == "White, M" {
			cell = row.Cells[2]
		}
	}
	if cell != 1 {
		t.Fatalf("Step 2 - Expected one White male voting in 2 of 3, got %d", cell)
	}
	t.Logf("Step 2 - %d voters in report", report.Voters)

	// Step 3: Drill into "White, M" / "2 of 3"
	drill := url.Values{}
	for k, v := range query {
		drill[k] = v
	}
	drill.Set("history", strconv.Itoa(2))
	req = httptest.NewRequest("GET", "/reports/records?"+drill.Encode(), nil)
	w = httptest.NewRecorder()
	reportHandler.Records(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Records failed: %d - %s", w.Code, w.Body.String())
	}

	var records models.RecordsResponse
	json.NewDecoder(w.Body).Decode(&records)

	white := 0
	for _, row := range records.Rows {
		if row[1] == "White" && row[2] == "M" {
			white++
		}
	}
	if white != cell {
		t.Errorf("Step 3 - Drill-down has %d White male rows, report cell says %d", white, cell)
	}
	t.Logf("Step 3 - Drill-down returned %d rows", records.Count)

	// Step 4: Export
	req = httptest.NewRequest("GET", "/exports/history.csv?"+query.Encode(), nil)
	req.SetPathValue("file", "history.csv")
	w = httptest.NewRecorder()
	exportHandler.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Export failed: %d - %s", w.Code, w.Body.String())
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("Step 4 - Failed to read CSV: %v", err)
	}
	if len(rows)-1 != report.Voters {
		t.Errorf("Step 4 - Export has %d rows, report counted %d voters", len(rows)-1, report.Voters)
	}

	n, err := db.CountExports(context.Background(), conn, models.ReportHistory)
	if err != nil {
		t.Fatalf("CountExports() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Step 4 - Expected 1 audited export, got %d", n)
	}
}
