// Package main is the entry point for the weekplan application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"weekplan/internal/importer"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `weekplan import - Import schedules or activities

USAGE:
    weekplan import [OPTIONS] <file>
    weekplan import [OPTIONS] <format> <file>

FORMATS:
    (none)   A schedule-backup-YYYY-MM-DD.json file from 'weekplan export'.
             Replaces every schedule.
    ics      iCalendar events. Each timed event becomes an activity on its
             weekday in the current schedule.
    csv      A header row naming NAME, DAY, TIME and optionally DESCRIPTION,
             UPCOMING_TESTS, IMPORTANT_DATES, in any order. Each row is
             added to the current schedule. List cells separate entries
             with ';'.

OPTIONS:
    --dry-run    Preview import without making changes
    --force, -f  Replace schedules without asking
    -h, --help   Show this help message

EXAMPLES:
    # Restore a backup file
    weekplan import schedule-backup-2024-03-04.json

    # Add classes from a calendar
    weekplan import ics timetable.ics

    # Preview before importing
    weekplan import --dry-run csv activities.csv
`

// runImport handles the "weekplan import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	forceFlag := fs.Bool("force", false, "replace schedules without asking")
	fs.BoolVar(forceFlag, "f", false, "replace schedules without asking (shorthand)")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	switch fs.NArg() {
	case 1:
		importBackup(fs.Arg(0), *dryRunFlag, *forceFlag)
	case 2:
		importActivities(strings.ToLower(fs.Arg(0)), fs.Arg(1), *dryRunFlag)
	default:
		fmt.Fprintf(os.Stderr, "Error: missing arguments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: weekplan import [<format>] <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nRun 'weekplan import --help' for more information.\n")
		os.Exit(1)
	}
}

// importBackup replaces the whole state with a backup file. The file is
// validated before anything is written.
func importBackup(path string, dryRun, force bool) {
	file, err := os.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	st, err := storage.Import(file)
	file.Close()
	if err != nil {
		fatalf("importing: %v", err)
	}

	fmt.Printf("Backup %s holds %d schedules:\n", path, len(st.Schedules))
	for _, sch := range st.Schedules {
		marker := " "
		if sch.ID == st.CurrentScheduleID {
			marker = "*"
		}
		fmt.Printf("  %s %s (%d activities)\n", marker, sch.Name, countActivities(sch))
	}

	if dryRun {
		fmt.Println()
		fmt.Println("Run without --dry-run to import.")
		return
	}

	if !force {
		fmt.Println()
		ok, err := confirm(os.Stdin, "⚠ This replaces every schedule you have. Continue?")
		if err != nil {
			fatalf("%v", err)
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return
		}
	}

	cfg := mustLoadConfig()
	e := mustOpenEnv(cfg)
	defer e.close()

	if err := e.store.Replace(st); err != nil {
		fatalf("importing: %v", err)
	}
	fmt.Printf("✓ Imported %d schedules from %s\n", len(st.Schedules), path)
}

// importActivities adds activities from a foreign format to the current
// schedule.
func importActivities(format, path string, dryRun bool) {
	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	defer file.Close()

	if dryRun {
		previewActivities(imp, file)
		return
	}

	cfg := mustLoadConfig()
	e := mustOpenEnv(cfg)
	defer e.close()

	result, err := imp.Import(file, e.store)
	if err != nil {
		fatalf("importing: %v", err)
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("  Imported: %d activities\n", result.Imported)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:  %d items\n", result.Skipped)
	}
	for _, msg := range result.Errors {
		fmt.Printf("    - %s\n", msg)
	}
}

// previewActivities prints what an import would add.
func previewActivities(imp importer.Importer, file *os.File) {
	acts, err := imp.Preview(file)
	if err != nil {
		fatalf("parsing file: %v", err)
	}

	if len(acts) == 0 {
		fmt.Println("No activities found to import.")
		return
	}

	fmt.Printf("Preview: %d activities to import\n", len(acts))
	fmt.Println("────────────────────────────")

	showCount := min(len(acts), 20)
	for _, a := range acts[:showCount] {
		fmt.Printf("  %-9s %-20s %s", a.Day, a.Time, a.Name)
		var details []string
		if n := len(a.UpcomingTests); n > 0 {
			details = append(details, fmt.Sprintf("%d tests", n))
		}
		if n := len(a.ImportantDates); n > 0 {
			details = append(details, fmt.Sprintf("%d dates", n))
		}
		if len(details) > 0 {
			fmt.Printf(" (%s)", strings.Join(details, ", "))
		}
		fmt.Println()
	}

	if len(acts) > showCount {
		fmt.Printf("  ... and %d more\n", len(acts)-showCount)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

func countActivities(sch schedule.Schedule) int {
	n := 0
	for _, d := range sch.Data {
		n += len(d.Activities)
	}
	return n
}
