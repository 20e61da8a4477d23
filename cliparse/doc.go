// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: Audit database (default: voter-summary.db for sqlite)
  - FeedURL: Voter roll location (required)
  - AccessSecret: Secret behind export and refresh access keys (required)
  - Elections: Election catalog (default: roll.DefaultElections)
  - RefreshInterval: Feed reload period (default: 0, load once)
  - S3Region, S3Endpoint, S3PathStyle: S3 feed settings

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-feed            Voter roll URL
	-elections       Election catalog, '|' separated
	-refresh         Feed refresh interval
	-s3-region       S3 region
	-s3-endpoint     S3 endpoint (MinIO)
	-access-secret   Access secret

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	FEED_URL           → -feed
	ELECTIONS          → -elections
	REFRESH_INTERVAL   → -refresh
	FEED_S3_REGION     → -s3-region
	FEED_S3_ENDPOINT   → -s3-endpoint
	FEED_S3_PATH_STYLE (true forces path-style addressing)
	ACCESS_SECRET      → -access-secret

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.

# Validation

ParseFlags returns an error if required values are missing:

  - FEED_URL must be provided
  - ACCESS_SECRET must be provided
  - DATABASE_URL must be provided when DATABASE_TYPE is postgres
*/
package cliparse
