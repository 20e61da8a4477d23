// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the audit schema and its queries.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq).

# Tables

  - roll_load: one row per attempt to load the voter roll feed
  - export_log: one row per detail CSV download

Voter records are never written to the database. The roll lives only in
memory for the life of the process.

# Queries

	db.RecordLoad(ctx, conn, load)
	db.RecentLoads(ctx, conn, 10)
	db.RecordExport(ctx, conn, export)
	db.CountExports(ctx, conn, "age")
*/
package db
