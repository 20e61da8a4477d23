// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/voter-summary/feed"
	"github.com/danielhkuo/voter-summary/middleware"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/roll"
	"github.com/danielhkuo/voter-summary/summary"
)

// Roll is the read side of the voter-roll store
type Roll interface {
	Table() (*roll.Table, error)
}

// selectionError is a query parameter the server cannot interpret
type selectionError struct {
	param string
	err   error
}

func (e *selectionError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.param, e.err)
}

func (e *selectionError) Unwrap() error { return e.err }

// queryValues returns every non-blank value of a repeatable parameter
func queryValues(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseRequest reads the filter, election, mode and as_of parameters
func parseRequest(r *http.Request) (summary.Request, models.Filters, error) {
	q := r.URL.Query()

	req := summary.Request{
		Filter: summary.FilterSelection{
			Statuses:  queryValues(q, "status"),
			Districts: queryValues(q, "district"),
			Precincts: queryValues(q, "precinct"),
			Parties:   queryValues(q, "party"),
		},
		Elections: queryValues(q, "election"),
	}

	mode, err := summary.ParseHistoryMode(strings.TrimSpace(q.Get("mode")))
	if err != nil {
		return req, models.Filters{}, &selectionError{param: "mode", err: err}
	}
	req.Mode = mode

	if raw := strings.TrimSpace(q.Get("as_of")); raw != "" {
		asOf, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return req, models.Filters{}, &selectionError{param: "as_of", err: err}
		}
		req.AsOf = asOf
	}

	filters := models.Filters{
		Statuses:  req.Filter.Statuses,
		Districts: req.Filter.Districts,
		Precincts: req.Filter.Precincts,
		Parties:   req.Filter.Parties,
		Elections: req.Elections,
	}
	if len(req.Elections) > 0 {
		filters.Mode = string(mode)
	}
	return req, filters, nil
}

// parseNarrowing reads the age_range and history drill-down parameters
func parseNarrowing(q url.Values) ([]summary.AgeRange, []int, error) {
	var ranges []summary.AgeRange
	for _, raw := range queryValues(q, "age_range") {
		// An unescaped "+" in "55+" arrives as a trailing space
		label := raw
		if label == "55" {
			label = "55+"
		}
		ar, err := summary.ParseAgeRange(label)
		if err != nil {
			return nil, nil, &selectionError{param: "age_range", err: err}
		}
		ranges = append(ranges, ar)
	}

	var histories []int
	for _, raw := range queryValues(q, "history") {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, nil, &selectionError{param: "history", err: fmt.Errorf("%q is not a count", raw)}
		}
		histories = append(histories, n)
	}
	return ranges, histories, nil
}

// writeError maps pipeline errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var (
		empty     *summary.EmptySelectionWarning
		election  *summary.UnknownElectionError
		selection *selectionError
		date      *summary.UnparseableDateError
		category  *summary.UnknownCategoryError
		schema    *roll.SchemaMismatchError
	)

	switch {
	case errors.As(err, &empty):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, feed.ErrNotLoaded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Voter roll not loaded yet")
	case errors.As(err, &election), errors.As(err, &selection):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &date), errors.As(err, &category), errors.As(err, &schema):
		slog.Error("voter roll data error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("report failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
