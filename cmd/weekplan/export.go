// Package main is the entry point for the weekplan application.
// This file contains the export and report subcommand handlers.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"weekplan/internal/calendar"
	"weekplan/internal/fsutil"
	"weekplan/internal/reports"
	"weekplan/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `weekplan export - Export schedules to a file

USAGE:
    weekplan export [OPTIONS] [DATE]

OPTIONS:
    -f, --format FMT   backup (default) or ics
    -o, --output FILE  Write to FILE; "-" writes to stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               For ics, a date (YYYY-MM-DD) inside the week to
                       export. Defaults to today.

DESCRIPTION:
    The backup format holds every schedule and is named
    schedule-backup-YYYY-MM-DD.json by default. Import it again with
    'weekplan import FILE'.

    The ics format places the current schedule's activities on the days of
    one calendar week.

EXAMPLES:
    # Backup file in the current directory
    weekplan export

    # Backup to a chosen path
    weekplan export -o ~/Dropbox/weekplan.json

    # This week as a calendar
    weekplan export --format ics -o week.ics
`

// reportHelpText is the help message for the report subcommand.
const reportHelpText = `weekplan report - Summarize the current schedule

USAGE:
    weekplan report [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Lists activities per day, the total scheduled time, and every upcoming
    test and important date of the current schedule.
`

// runExport handles the "weekplan export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "backup", "output format: backup or ics")
	fs.StringVar(formatFlag, "f", "backup", "output format (shorthand)")

	outputFlag := fs.String("output", "", "output file")
	fs.StringVar(outputFlag, "o", "", "output file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format == "json" {
		format = "backup"
	}
	if format != "backup" && format != "ics" {
		fatalf("invalid format %q. Use 'backup' or 'ics'.", format)
	}

	now := time.Now()
	weekOf := now
	if fs.NArg() > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", fs.Arg(0), time.Local)
		if err != nil {
			fatalf("invalid date %q. Use YYYY-MM-DD format.", fs.Arg(0))
		}
		weekOf = parsed
	}

	cfg := mustLoadConfig()
	e := mustOpenEnv(cfg)
	defer e.close()

	var (
		data    []byte
		outPath = *outputFlag
	)
	switch format {
	case "backup":
		var err error
		data, err = storage.Export(e.store.Snapshot())
		if err != nil {
			fatalf("exporting: %v", err)
		}
		if outPath == "" {
			outPath = storage.ExportFilename(now)
		}
	case "ics":
		sch, ok := e.store.Current()
		if !ok {
			fatalf("no current schedule")
		}
		data = calendar.Export(sch, weekOf, time.Local)
		if outPath == "" {
			outPath = "-"
		}
	}

	if err := writeOutput(outPath, data); err != nil {
		fatalf("%v", err)
	}
	if outPath != "-" {
		fmt.Printf("✓ Exported to %s\n", outPath)
	}
}

// runReport handles the "weekplan report" subcommand.
func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, reportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(reportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format == "md" {
		format = "markdown"
	}
	if format != "markdown" && format != "json" {
		fatalf("invalid format %q. Use 'markdown' or 'json'.", format)
	}

	cfg := mustLoadConfig()
	e := mustOpenEnv(cfg)
	defer e.close()

	sch, ok := e.store.Current()
	if !ok {
		fatalf("no current schedule")
	}
	report := reports.NewGenerator().GenerateWeekly(sch)

	var output []byte
	if format == "json" {
		data, err := reports.FormatWeeklyJSON(report)
		if err != nil {
			fatalf("formatting JSON: %v", err)
		}
		output = append(data, '\n')
	} else {
		output = []byte(reports.FormatWeeklyMarkdown(report))
	}

	outPath := *outputFlag
	if outPath == "" {
		outPath = "-"
	}
	if err := writeOutput(outPath, output); err != nil {
		fatalf("%v", err)
	}
	if outPath != "-" {
		fmt.Printf("Report written to %s\n", outPath)
	}
}

// writeOutput writes data atomically to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, fsutil.DirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
