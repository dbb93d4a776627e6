// Package main is the entry point for the weekplan application.
// It loads configuration, opens the schedule store, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"weekplan/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `weekplan - Weekly activity schedules in your terminal

USAGE:
    weekplan [OPTIONS]
    weekplan <command> [ARGS]

COMMANDS:
    serve              Serve the schedule over HTTP behind a login
    export             Write schedule-backup-YYYY-MM-DD.json
    export -f ics      Export the current week as an iCalendar file
    report             Weekly summary of the current schedule
    import FILE        Replace all schedules with a backup file
    import ics FILE    Add activities from an iCalendar file
    import csv FILE    Add activities from a CSV file
    backup             Snapshot the data file
    backup --list      List available backups
    restore NAME       Restore from a specific backup
    restore --latest   Restore from the most recent backup
    clear              Reset to a single empty schedule

OPTIONS:
    -h, --help         Show this help message
    -v, --version      Show version information

DESCRIPTION:
    weekplan keeps one or more weekly schedules of activities (classes,
    meetings, routines) and shows them as a day list, a week overview, or
    an hour grid from 8 AM to 6 PM.

KEYBINDINGS:
    Views:
        1, 2, 3      Daily, weekly, grid
        Tab          Next view
        h/l, ←/→     Previous/next day
        j/k, ↓/↑     Select activity

    Activities:
        a            Add activity
        e/Enter      Edit activity
        x            Delete activity

    Schedules:
        [ / ]        Previous/next schedule
        n            New schedule
        c            Duplicate schedule
        X            Delete schedule
        Ctrl+X       Clear all schedules

    General:
        E            Export backup file
        Ctrl+Z, u    Undo
        Ctrl+Y       Redo
        ?            Show help overlay
        q            Quit

DATA STORAGE:
    Schedules are stored in ~/.weekplan/schedule-viewer-data.json.
    The previous version is kept next to it with a .bak suffix.

CONFIGURATION:
    Optional config file: ~/.config/weekplan/config.yaml
    Secrets for 'weekplan serve' come from the environment or a .env file.

EXAMPLES:
    # Start the app
    weekplan

    # Save a backup file in the current directory
    weekplan export

    # Load it back on another machine
    weekplan import schedule-backup-2024-03-04.json

    # Show version
    weekplan --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "clear":
			runClear(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("weekplan version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg := mustLoadConfig()

	// The TUI owns the terminal, so logs go to a file in the data directory.
	e := mustOpenEnv(cfg)
	e.log.Info("starting", zap.String("version", version), zap.String("data_dir", e.dataDir))

	styles := ui.NewStyles(cfg)
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ConfirmClear:          cfg.UX.ConfirmClear,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		Slots:                 gridSlots(cfg),
		ExportDir:             e.dataDir,
	}

	runErr := ui.Run(e.store, styles, appCfg)
	e.close()
	if runErr != nil {
		fatalf("running app: %v", runErr)
	}
}
