// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines response and audit types for the API.

# Response Types

Types for JSON responses:

  - ReportResponse: report, as_of, voters, filters, table
  - SummaryTable: columns, rows, totals, grand_total
  - SummaryRow: label, race, sex, history (party report only), cells, row_total
  - RecordsResponse: filters, columns, rows, count
  - OptionsResponse: every selectable filter value plus defaults
  - RollStatus: feed source, record count, recent loads
  - ErrorResponse: error, message

Selections arrive as repeated query parameters, not JSON bodies, so there
are no request types.

# Audit Types

Rows of the audit tables:

  - RollLoad: one feed load attempt
  - ExportRecord: one detail CSV download

# Constants

Report names:

	ReportAge     = "age"
	ReportHistory = "history"
	ReportParty   = "party"
	ReportRecords = "records"

Load status:

	LoadOK     = "ok"
	LoadFailed = "failed"
*/
package models
