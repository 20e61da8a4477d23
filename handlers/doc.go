// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voter summary API.

# Handler Types

  - ReportHandler: filter options, the three cross-tab reports and record
    drill-down
  - ExportHandler: detail CSV downloads, audited in export_log
  - RollHandler: feed status and on-demand reload

Report handlers only need the read side of the roll store, so they take a
Roll; RollHandler takes a Loader. *feed.Store satisfies both:

	reportHandler := handlers.NewReportHandler(store)
	exportHandler := handlers.NewExportHandler(db, store, cfg)
	rollHandler := handlers.NewRollHandler(db, store)

# Selections

Every report reads the same repeatable query parameters:

	status, district, precinct, party   filters; empty means everyone
	election                            history and party reports, >= 1
	mode                                count (default) or any
	as_of                               YYYY-MM-DD age reference date

Records also takes age_range and history to narrow to specific cells.

# Reports

	GET /options            → Options
	GET /reports/age        → AgeReport
	GET /reports/history    → HistoryReport
	GET /reports/party      → PartyReport
	GET /reports/records    → Records
	GET /exports/{file}     → Export (age.csv or history.csv)
	GET /roll               → Status
	POST /roll/refresh      → Refresh

Each request takes the current table once, so a concurrent reload never
mixes two rolls in one response.

# Errors

	400  unknown election, mode, age range or malformed parameter
	422  no election selected where one is required
	500  unparseable birth date or unknown category code in the roll
	502  feed reload failed
	503  no roll loaded yet
*/
package handlers
