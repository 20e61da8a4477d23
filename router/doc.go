// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voter summary API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, store, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics - Prometheus exposition

Reports (public, aggregate counts):

	GET /options          - Filter values and default selection
	GET /reports/age      - Race/sex by age range
	GET /reports/history  - Race/sex by voting history
	GET /reports/party    - Race/sex/history by party
	GET /reports/records  - Voter rows behind selected cells

Exports (requires an export-scoped X-Access-Key):

	GET /exports/age.csv
	GET /exports/history.csv

Feed (refresh requires a refresh-scoped X-Access-Key):

	GET  /roll         - What is loaded, recent load attempts
	POST /roll/refresh - Reload the feed now

# Handler Initialization

The router creates handler instances with dependency injection:

	reportHandler := handlers.NewReportHandler(store)
	exportHandler := handlers.NewExportHandler(db, store, cfg)
	rollHandler := handlers.NewRollHandler(db, store)

The database only holds audit tables; the roll itself lives in store.
*/
package router
