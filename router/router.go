// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/voter-summary/auth"
	"github.com/danielhkuo/voter-summary/cliparse"
	"github.com/danielhkuo/voter-summary/feed"
	"github.com/danielhkuo/voter-summary/handlers"
	"github.com/danielhkuo/voter-summary/metrics"
	"github.com/danielhkuo/voter-summary/middleware"
)

func NewRouter(db *sql.DB, store *feed.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(store)
	exportHandler := handlers.NewExportHandler(db, store, cfg)
	rollHandler := handlers.NewRollHandler(db, store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reports (public, aggregate counts only)
	mux.HandleFunc("GET /options", middleware.WithLogging(reportHandler.Options))
	mux.HandleFunc("GET /reports/age", middleware.WithLogging(reportHandler.AgeReport))
	mux.HandleFunc("GET /reports/history", middleware.WithLogging(reportHandler.HistoryReport))
	mux.HandleFunc("GET /reports/party", middleware.WithLogging(reportHandler.PartyReport))
	mux.HandleFunc("GET /reports/records", middleware.WithLogging(reportHandler.Records))

	// Voter-level downloads (requires X-Access-Key)
	mux.HandleFunc("GET /exports/{file}", middleware.WithLogging(
		middleware.RequireAccessKey(auth.ScopeExport, cfg.AccessSecret, exportHandler.Export)))

	// Feed management
	mux.HandleFunc("GET /roll", middleware.WithLogging(rollHandler.Status))
	mux.HandleFunc("POST /roll/refresh", middleware.WithLogging(
		middleware.RequireAccessKey(auth.ScopeRefresh, cfg.AccessSecret, rollHandler.Refresh)))

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voter-summary API v1"))
	})

	return mux
}
