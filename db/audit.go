// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/voter-summary/models"
)

// RecordLoad inserts one feed load attempt
func RecordLoad(ctx context.Context, db *sql.DB, load models.RollLoad) error {
	var errText *string
	if load.Error != "" {
		errText = &load.Error
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO roll_load (id, source, status, record_count, size_bytes, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, load.ID, load.Source, load.Status, load.RecordCount, load.SizeBytes, errText,
		load.StartedAt.UTC(), load.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record roll load: %w", err)
	}
	return nil
}

// RecentLoads returns the latest feed loads, newest first
func RecentLoads(ctx context.Context, db *sql.DB, limit int) ([]models.RollLoad, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, source, status, record_count, size_bytes, error, started_at, finished_at
		FROM roll_load
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query roll loads: %w", err)
	}
	defer rows.Close()

	loads := []models.RollLoad{}
	for rows.Next() {
		var load models.RollLoad
		var errText sql.NullString
		if err := rows.Scan(&load.ID, &load.Source, &load.Status, &load.RecordCount,
			&load.SizeBytes, &errText, &load.StartedAt, &load.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roll load: %w", err)
		}
		load.Error = errText.String
		loads = append(loads, load)
	}
	return loads, rows.Err()
}

// RecordExport inserts one detail CSV download
func RecordExport(ctx context.Context, db *sql.DB, export models.ExportRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO export_log (id, kind, filters, elections, row_count, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, export.ID, export.Kind, export.Filters, export.Elections, export.RowCount,
		export.IPHash, export.UserAgent, export.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// CountExports returns how many downloads of a kind were recorded
func CountExports(ctx context.Context, db *sql.DB, kind string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM export_log WHERE kind = $1`, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count exports: %w", err)
	}
	return n, nil
}
