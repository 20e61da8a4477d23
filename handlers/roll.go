// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voter-summary/db"
	"github.com/danielhkuo/voter-summary/middleware"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/roll"
)

// recentLoadLimit caps the load history returned with the roll status
const recentLoadLimit = 10

// Loader is the write side of the voter-roll store
type Loader interface {
	Load(ctx context.Context) (*roll.Table, error)
	Status() models.RollStatus
}

type RollHandler struct {
	db     *sql.DB
	loader Loader
}

func NewRollHandler(db *sql.DB, loader Loader) *RollHandler {
	return &RollHandler{db: db, loader: loader}
}

// Status handles GET /roll
// Returns what is currently loaded and the latest load attempts
func (h *RollHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.status(r.Context())
	if err != nil {
		slog.Error("failed to query roll loads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, status)
}

// Refresh handles POST /roll/refresh
// Reloads the feed now. A failed reload keeps serving the previous roll.
func (h *RollHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, err := h.loader.Load(r.Context()); err != nil {
		middleware.ErrorResponse(w, http.StatusBadGateway, "Feed reload failed: "+err.Error())
		return
	}

	status, err := h.status(r.Context())
	if err != nil {
		slog.Error("failed to query roll loads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, status)
}

func (h *RollHandler) status(ctx context.Context) (models.RollStatus, error) {
	status := h.loader.Status()
	if h.db == nil {
		return status, nil
	}
	loads, err := db.RecentLoads(ctx, h.db, recentLoadLimit)
	if err != nil {
		return status, err
	}
	status.RecentLoads = loads
	return status, nil
}
