// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/danielhkuo/voter-summary/db"
	"github.com/danielhkuo/voter-summary/metrics"
	"github.com/danielhkuo/voter-summary/models"
	"github.com/danielhkuo/voter-summary/roll"
)

// ErrNotLoaded is returned before the first successful load
var ErrNotLoaded = errors.New("voter roll not loaded")

type snapshot struct {
	table     *roll.Table
	loadedAt  time.Time
	sizeBytes int64
}

// Store is the process-wide handle on the current voter roll. The table it
// hands out is never mutated; a reload swaps in a new one.
type Store struct {
	source  Source
	catalog []string
	db      *sql.DB

	mu      sync.Mutex // serializes loads
	current atomic.Pointer[snapshot]
}

// NewStore creates an empty store. conn may be nil to skip load auditing.
func NewStore(source Source, catalog []string, conn *sql.DB) *Store {
	return &Store{
		source:  source,
		catalog: append([]string(nil), catalog...),
		db:      conn,
	}
}

// Table returns the current roll
func (s *Store) Table() (*roll.Table, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.table, nil
}

// Catalog returns the election catalog the store parses with
func (s *Store) Catalog() []string {
	return append([]string(nil), s.catalog...)
}

// Status describes the roll currently served
func (s *Store) Status() models.RollStatus {
	status := models.RollStatus{
		Source:    s.source.String(),
		Elections: len(s.catalog),
	}
	if snap := s.current.Load(); snap != nil {
		loadedAt := snap.loadedAt
		status.Loaded = true
		status.RecordCount = snap.table.Len()
		status.SizeBytes = snap.sizeBytes
		status.LoadedAt = &loadedAt
	}
	return status
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Load fetches and parses the feed, then makes it the current roll. On
// failure the previous roll stays in place.
func (s *Store) Load(ctx context.Context) (*roll.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	table, size, err := s.fetch(ctx)
	finished := time.Now()

	s.audit(ctx, table, size, err, started, finished)
	metrics.FeedLoads.WithLabelValues(metrics.Outcome(err)).Inc()

	if err != nil {
		slog.Error("voter roll load failed", "source", s.source.String(), "error", err)
		return nil, err
	}

	s.current.Store(&snapshot{table: table, loadedAt: finished, sizeBytes: size})
	metrics.RollRecords.Set(float64(table.Len()))

	slog.Info("voter roll loaded",
		"source", s.source.String(),
		"records", humanize.Comma(int64(table.Len())),
		"size", humanize.Bytes(uint64(size)),
		"duration_ms", finished.Sub(started).Milliseconds(),
	)
	return table, nil
}

func (s *Store) fetch(ctx context.Context) (*roll.Table, int64, error) {
	rc, err := s.source.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	counter := &countingReader{r: rc}
	table, err := roll.Parse(counter, s.catalog)
	if err != nil {
		return nil, counter.n, fmt.Errorf("failed to parse feed: %w", err)
	}
	return table, counter.n, nil
}

func (s *Store) audit(ctx context.Context, table *roll.Table, size int64, loadErr error, started, finished time.Time) {
	if s.db == nil {
		return
	}

	load := models.RollLoad{
		ID:         uuid.NewString(),
		Source:     s.source.String(),
		Status:     models.LoadOK,
		SizeBytes:  size,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if loadErr != nil {
		load.Status = models.LoadFailed
		load.Error = loadErr.Error()
	} else {
		load.RecordCount = table.Len()
	}

	// A canceled load context must not drop the audit row
	if err := db.RecordLoad(context.WithoutCancel(ctx), s.db, load); err != nil {
		slog.Error("failed to audit roll load", "error", err)
	}
}

// StartRefresh reloads the feed every interval until ctx is done. The first
// reload happens one interval from now.
func (s *Store) StartRefresh(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(interval).WaitForSchedule().Do(func() {
		slog.Info("scheduled voter roll refresh", "source", s.source.String())
		if _, err := s.Load(ctx); err != nil {
			slog.Warn("keeping previous voter roll", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	scheduler.StartAsync()
	slog.Info("voter roll refresh scheduled", "interval", interval.String())

	go func() {
		<-ctx.Done()
		scheduler.Stop()
		slog.Info("voter roll refresh stopped")
	}()
	return nil
}
