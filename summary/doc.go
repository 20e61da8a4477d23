// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package summary turns a voter roll into demographic cross-tabulations.

# Pipeline

Every report is one pass over an immutable roll.Table:

	view, err := summary.Recode(table, asOf)         // categories, age, age range
	view = summary.Filter(view, selection)           // status, district, precinct, party
	view, err = summary.ComputeVotingHistory(view, elections, summary.HistoryCount)
	ages := summary.CrossTabulate(view, summary.ByAgeRange)

Summarize runs the whole pipeline and returns every table at once:

	report, err := summary.Summarize(table, summary.Request{
		Filter:    summary.FilterSelection{Statuses: []string{"ACT"}},
		Elections: []string{"11-08-2022 General Election(Nov/08/2022)"},
	})

Views are values derived from the table; nothing in this package writes to
a roll.Table, so a cached table can serve concurrent requests.

# Categories

Race codes 1, 2, 6 and 9 are "Other", 3 is "African American", 4 is
"Hispanic" and 5 is "White". Sex codes are M, F and U. Any other code is an
*UnknownCategoryError.

# Age Ranges

Ages are whole years on the run date. Buckets are 18-25, 26-34, 35-54 and
55+; voters under 18 count toward 18-25.

# Voting History

HistoryCount counts the selected elections with a voted indicator
(Y, Z, A, E or F), giving 0..N. HistoryAny reduces that to 0 or 1.

# Cross-tabs

Rows are ordered African American, Hispanic, White, Other and within each
race M, F, U. All rows and columns are present even when zero. Each table
carries per-row totals (Row Total) and per-column totals (Total).

# Errors

	*UnknownCategoryError   race or sex code outside the mapping
	*UnparseableDateError   birth date with no known layout, or in the future
	*UnknownElectionError   election with no column in the roll
	*EmptySelectionWarning  no election selected; ask the user to pick one

There is no partial mode: any error aborts the report.
*/
package summary
