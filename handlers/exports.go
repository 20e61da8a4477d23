// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voter-summary/auth"
	"github.com/danielhkuo/voter-summary/cliparse"
	"github.com/danielhkuo/voter-summary/db"
	"github.com/danielhkuo/voter-summary/metrics"
	"github.com/danielhkuo/voter-summary/middleware"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/summary"
)

type ExportHandler struct {
	db   *sql.DB
	roll Roll
	cfg  cliparse.Config
}

func NewExportHandler(db *sql.DB, r Roll, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{db: db, roll: r, cfg: cfg}
}

// Export handles GET /exports/{file}
// Streams the detail rows of the age or history report as CSV.
// Every download is recorded in export_log before any row is sent.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	name, ok := strings.CutSuffix(file, ".csv")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Export not found")
		return
	}
	kind, err := summary.ParseDetailKind(name)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Export not found")
		return
	}

	req, filters, err := parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if kind == summary.DetailAge {
		req.Elections = nil
		filters.Elections = nil
		filters.Mode = ""
	} else if len(req.Elections) == 0 {
		writeError(w, &summary.EmptySelectionWarning{Dimension: "election"})
		return
	}

	table, err := h.roll.Table()
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := summary.Prepare(table, req)
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := summary.SelectDetailRows(view, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := detail.WriteCSV(&buf); err != nil {
		slog.Error("failed to write export", "kind", kind, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filterJSON, err := json.Marshal(filters)
	if err != nil {
		slog.Error("failed to encode export filters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	export := models.ExportRecord{
		ID:        uuid.NewString(),
		Kind:      string(kind),
		Filters:   string(filterJSON),
		Elections: strings.Join(view.Elections(), "|"),
		RowCount:  len(detail.Rows),
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.AccessSecret),
		UserAgent: r.UserAgent(),
		CreatedAt: time.Now(),
	}
	if err := db.RecordExport(r.Context(), h.db, export); err != nil {
		slog.Error("failed to audit export", "kind", kind, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	metrics.Exports.WithLabelValues(string(kind)).Inc()

	slog.Info("detail export",
		"id", export.ID,
		"kind", export.Kind,
		"rows", export.RowCount,
	)

	filename := fmt.Sprintf("voters-%s-%s.csv", kind, view.AsOf().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("export interrupted", "id", export.ID, "error", err)
	}
}
