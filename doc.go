// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voter summary API server.

The server loads a county voter-roll extract once at startup and answers
cross-tabulated reports over it: race/sex by age range, by voting history
in a chosen set of elections, and by party. Voter-level rows can be drilled
into and downloaded as CSV by holders of an access key.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first if present.

	FEED_URL=s3://county-rolls/roll.csv ACCESS_SECRET=... go run .

Or with flags:

	go run . -p 3318 -feed ./roll.csv -access-secret ...

# Configuration

Required settings:

  - FEED_URL (-feed): https://, s3://bucket/key or a file path
  - ACCESS_SECRET (-access-secret): Secret behind export and refresh keys

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ELECTIONS (-elections): '|' separated election catalog
  - REFRESH_INTERVAL (-refresh): Reload the feed periodically (e.g. 6h)
  - FEED_S3_REGION, FEED_S3_ENDPOINT, FEED_S3_PATH_STYLE: S3 feed client

Access keys are printed by the terminal tool:

	go run ./cmd/rollreport -print-key export

# Architecture

  - roll: Feed schema, parsed voter records
  - summary: Recoding, filters, voting history, cross-tabs, detail rows
  - feed: Feed sources (HTTP, S3, file) and the in-memory roll store
  - handlers: HTTP request handlers (reports, exports, roll)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, access keys, JSON helpers
  - models: Response and audit types
  - auth: Access key derivation, IP hashing
  - db: Audit schema and queries
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
