// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/voter-summary/auth"
	"github.com/danielhkuo/voter-summary/cliparse"
	"github.com/danielhkuo/voter-summary/db"
	"github.com/danielhkuo/voter-summary/feed"
)

// TestElections is the election catalog of TestFeed
var TestElections = []string{"General 2022", "Primary 2022", "General 2020"}

// TestFeed is a small voter roll. As of 2026-06-01:
//
//	V1  African American M  30  26-34  ACT  DEM  District 1  P101  votes 2 of 3
//	V2  White F             60  55+    ACT  REP  District 2  P102  votes 3 of 3
//	V3  African American M  22  18-25  ACT  DEM  District 1  P101  votes 0 of 3
//	V4  Hispanic F          40  35-54  INA  NPA  Unincorp.   P103  votes 1 of 3
//	V5  Other U             70  55+    ACT  REP  District 6  P102  votes 1 of 3
//	V6  White M             45  35-54  ACT  DEM  District 2  P101  votes 2 of 3
const TestFeed = `VoterID,Race,Sex,Birth_Date,Precinct,City_Ward,Party,Status,General 2022,Primary 2022,General 2020
V1,3,M,1996-01-01,P101,51,DEM,ACT,Y,,A
V2,5,F,1966-01-01,P102,52,REP,ACT,Y,E,Z
V3,3,M,2004-01-01,P101,51,DEM,ACT,N,,
V4,4,F,1986-01-01,P103,,NPA,INA,,Y,
V5,2,U,1956-01-01,P102,56,REP,ACT,,,F
V6,5,M,1981-01-01,P101,52,DEM,ACT,Y,Y,N
`

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		FeedURL:      "test://roll",
		AccessSecret: "test-access-secret",
		Elections:    TestElections,
	}
}

// AccessHeaders returns the X-Access-Key header for a scope
func AccessHeaders(cfg cliparse.Config, scope string) map[string]string {
	return map[string]string{"X-Access-Key": auth.GenerateAccessKey(scope, cfg.AccessSecret)}
}

// StaticSource serves a fixed feed and counts how often it was opened
type StaticSource struct {
	Name  string
	Data  string
	Err   error
	Opens atomic.Int32
}

func (s *StaticSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.Opens.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return io.NopCloser(bytes.NewReader([]byte(s.Data))), nil
}

func (s *StaticSource) String() string { return s.Name }

// NewTestStore returns a store already loaded with feedCSV
func NewTestStore(t *testing.T, conn *sql.DB, feedCSV string) *feed.Store {
	t.Helper()

	store := feed.NewStore(&StaticSource{Name: "test://roll", Data: feedCSV}, TestElections, conn)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load test roll: %v", err)
	}
	return store
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
