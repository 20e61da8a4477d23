// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/voter-summary/auth"
	"github.com/danielhkuo/voter-summary/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, testutil.NewTestStore(t, db, testutil.TestFeed), cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, testutil.NewTestStore(t, db, testutil.TestFeed), cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	expected := "voter-summary API v1"
	if w.Code != http.StatusOK || w.Body.String() != expected {
		t.Errorf("Expected 200 '%s', got %d '%s'", expected, w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/no-such-page", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, testutil.NewTestStore(t, db, testutil.TestFeed), cfg)

	exportKey := testutil.AccessHeaders(cfg, auth.ScopeExport)
	refreshKey := testutil.AccessHeaders(cfg, auth.ScopeRefresh)

	testCases := []struct {
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"GET", "/health", nil, http.StatusOK},
		{"GET", "/", nil, http.StatusOK},
		{"GET", "/metrics", nil, http.StatusOK},

		{"GET", "/options", nil, http.StatusOK},
		{"GET", "/reports/age", nil, http.StatusOK},
		{"GET", "/reports/history?election=General+2022", nil, http.StatusOK},
		{"GET", "/reports/party?election=General+2022", nil, http.StatusOK},
		{"GET", "/reports/records", nil, http.StatusOK},

		{"GET", "/exports/age.csv", exportKey, http.StatusOK},
		{"GET", "/exports/history.csv?election=General+2022", exportKey, http.StatusOK},
		{"GET", "/roll", nil, http.StatusOK},
		{"POST", "/roll/refresh", refreshKey, http.StatusOK},

		// Wrong method
		{"POST", "/reports/age", nil, http.StatusMethodNotAllowed},
		{"GET", "/roll/refresh", nil, http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, tc.headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestAccessKeyRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, testutil.NewTestStore(t, db, testutil.TestFeed), cfg)

	testCases := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
	}{
		{"export without key", "GET", "/exports/age.csv", nil},
		{"export with refresh key", "GET", "/exports/age.csv", testutil.AccessHeaders(cfg, auth.ScopeRefresh)},
		{"refresh without key", "POST", "/roll/refresh", nil},
		{"refresh with export key", "POST", "/roll/refresh", testutil.AccessHeaders(cfg, auth.ScopeExport)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, tc.headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, testutil.NewTestStore(t, db, testutil.TestFeed), cfg)

	// Generate a report so its counter exists
	req := httptest.NewRequest("GET", "/reports/age", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	body := w.Body.String()
	for _, name := range []string{
		"voter_summary_report_requests_total",
		"voter_summary_feed_loads_total",
		"voter_summary_roll_records",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected %s in metrics output", name)
		}
	}
}
