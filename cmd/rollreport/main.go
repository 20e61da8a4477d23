// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command rollreport prints the voter summary tables for one selection.
//
//	rollreport -feed roll.csv -status ACT -election "General 2022" -election "Primary 2022"
//	rollreport -feed roll.csv -csv history -election "General 2022" > detail.csv
//	rollreport -print-key export
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/voter-summary/auth"
	"github.com/danielhkuo/voter-summary/feed"
	"github.com/danielhkuo/voter-summary/roll"
	"github.com/danielhkuo/voter-summary/summary"
)

// listFlag collects a repeatable flag; each value may also be comma separated
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

type options struct {
	feedURL   string
	catalog   string
	filter    summary.FilterSelection
	elections []string
	mode      string
	asOf      string
	csvKind   string
	printKey  string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var opts options
	var statuses, districts, precincts, parties, elections listFlag

	flags := flag.NewFlagSet("rollreport", flag.ContinueOnError)
	flags.StringVar(&opts.feedURL, "feed", os.Getenv("FEED_URL"), "Voter roll URL (https://, s3://bucket/key or a file path)")
	flags.StringVar(&opts.catalog, "elections", os.Getenv("ELECTIONS"), "Election catalog, '|' separated")
	flags.Var(&statuses, "status", "Voter status filter (repeatable)")
	flags.Var(&districts, "district", "District filter (repeatable)")
	flags.Var(&precincts, "precinct", "Precinct filter (repeatable)")
	flags.Var(&parties, "party", "Party filter (repeatable)")
	flags.Var(&elections, "election", "Election for voting history (repeatable); defaults to the first three")
	flags.StringVar(&opts.mode, "mode", "count", "Voting history mode: count or any")
	flags.StringVar(&opts.asOf, "as-of", "", "Age reference date YYYY-MM-DD (default today)")
	flags.StringVar(&opts.csvKind, "csv", "", "Write the age or history detail rows as CSV instead of tables")
	flags.StringVar(&opts.printKey, "print-key", "", "Print the access key for a scope (export or refresh) and exit")

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	opts.filter = summary.FilterSelection{
		Statuses:  statuses,
		Districts: districts,
		Precincts: precincts,
		Parties:   parties,
	}
	opts.elections = elections
	return opts, nil
}

func run(ctx context.Context, args []string, w io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	if opts.printKey != "" {
		return printKey(w, opts.printKey, os.Getenv("ACCESS_SECRET"))
	}

	if opts.feedURL == "" {
		return errors.New("feed URL required (use -feed or FEED_URL env)")
	}

	catalog := roll.DefaultElections
	if opts.catalog != "" {
		catalog = nil
		for _, name := range strings.Split(opts.catalog, "|") {
			if name = strings.TrimSpace(name); name != "" {
				catalog = append(catalog, name)
			}
		}
	}

	req, err := buildRequest(opts, catalog)
	if err != nil {
		return err
	}

	source, err := feed.NewSource(ctx, opts.feedURL, feed.S3Config{
		Region:   os.Getenv("FEED_S3_REGION"),
		Endpoint: os.Getenv("FEED_S3_ENDPOINT"),
		// Custom endpoints (MinIO) use path-style addressing
		PathStyle: os.Getenv("FEED_S3_ENDPOINT") != "",
	})
	if err != nil {
		return err
	}
	table, err := feed.NewStore(source, catalog, nil).Load(ctx)
	if err != nil {
		return err
	}

	if opts.csvKind != "" {
		return writeDetail(w, table, req, opts.csvKind)
	}

	report, err := summary.Summarize(table, req)
	if err != nil {
		return err
	}
	printReport(w, report)
	return nil
}

func buildRequest(opts options, catalog []string) (summary.Request, error) {
	mode, err := summary.ParseHistoryMode(opts.mode)
	if err != nil {
		return summary.Request{}, err
	}

	elections := opts.elections
	if len(elections) == 0 {
		elections = catalog
		if len(elections) > 3 {
			elections = elections[:3]
		}
	}

	req := summary.Request{Filter: opts.filter, Elections: elections, Mode: mode}
	if opts.asOf != "" {
		asOf, err := time.Parse(time.DateOnly, opts.asOf)
		if err != nil {
			return summary.Request{}, fmt.Errorf("invalid -as-of: %w", err)
		}
		req.AsOf = asOf
	}
	return req, nil
}

func printKey(w io.Writer, scope, secret string) error {
	if scope != auth.ScopeExport && scope != auth.ScopeRefresh {
		return fmt.Errorf("unknown scope %q (use %s or %s)", scope, auth.ScopeExport, auth.ScopeRefresh)
	}
	if secret == "" {
		return auth.ErrMissingSecret
	}
	fmt.Fprintln(w, auth.GenerateAccessKey(scope, secret))
	return nil
}

func writeDetail(w io.Writer, table *roll.Table, req summary.Request, kind string) error {
	detailKind, err := summary.ParseDetailKind(kind)
	if err != nil {
		return err
	}
	view, err := summary.Prepare(table, req)
	if err != nil {
		return err
	}
	detail, err := summary.SelectDetailRows(view, detailKind)
	if err != nil {
		return err
	}
	return detail.WriteCSV(w)
}

func printReport(w io.Writer, report *summary.Report) {
	heading := color.New(color.FgCyan, color.Bold)
	faint := color.New(color.Faint)

	faint.Fprintf(w, "%s voters as of %s, elections: %s (%s)\n\n",
		humanize.Comma(int64(report.Voters)),
		report.AsOf.Format(time.DateOnly),
		strings.Join(report.Elections, ", "),
		report.Mode,
	)

	heading.Fprintln(w, "Age Range by Race and Sex")
	summary.RenderText(w, report.Age)
	fmt.Fprintln(w)

	heading.Fprintln(w, "Voting History by Race and Sex")
	summary.RenderText(w, report.History)
	fmt.Fprintln(w)

	heading.Fprintln(w, "Party by Race, Sex and Voting History")
	summary.RenderText(w, report.Party)
}
