// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roll holds the voter-roll data model and the CSV feed parser.

# Tables

A Table is an ordered, read-only collection of voter records plus the
ordered list of election columns the feed carries:

	table, err := roll.Parse(r, roll.DefaultElections)

Tables are never mutated after Parse or NewTable returns. Anything derived
from a table (categories, ages, voting history) lives in copies owned by the
caller, so one table can be shared by any number of concurrent reports.

# Feed Format

The feed is comma-delimited with a header row. These columns are required:

  - VoterID
  - Race (numeric code)
  - Sex (M, F or U)
  - Birth_Date
  - Precinct
  - City_Ward (numeric ward code, blank outside the city)
  - Party
  - Status (ACT, INA, ...)

plus one column per catalog election holding that voter's vote-indicator
code. A missing column fails the whole parse with a *SchemaMismatchError.
Columns outside the required set and the catalog are ignored.

# City Wards

Ward codes 51 through 56 map to "District 1" through "District 6". Every
other value maps to "Unincorporated":

	district := roll.District(rec.CityWard)
*/
package roll
