// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed fetches the voter-roll extract and keeps the parsed table in
memory.

# Sources

A Source opens a fresh reader over the feed. NewSource picks one from the
feed URL:

	https://example.org/roll.csv   HTTPSource, plain GET
	s3://bucket/path/roll.csv      S3Source, aws-sdk-go-v2 GetObject
	file:///var/data/roll.csv      FileSource
	./roll.csv                     FileSource

S3 credentials come from the default AWS chain. S3Config can point the
client at a compatible endpoint such as MinIO with path-style addressing.

# Store

Store holds the current roll behind an atomic pointer. Load fetches, parses
and swaps in a new table; a failed load leaves the previous table in place
so reports keep working on stale data rather than failing outright.

	store := feed.NewStore(source, cfg.Elections, conn)
	if _, err := store.Load(ctx); err != nil {
	    log.Fatal(err)
	}
	store.StartRefresh(ctx, 6*time.Hour)

Every load attempt, successful or not, is written to the roll_load table
when the store has a database, and counted in the feed load metrics.

Until the first successful load, Table returns ErrNotLoaded.
*/
package feed
