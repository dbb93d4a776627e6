// Package main is the entry point for the weekplan application.
// This file contains the clear subcommand handler.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"weekplan/internal/backup"
)

// clearHelpText is the help message for the clear subcommand.
const clearHelpText = `weekplan clear - Remove every schedule

USAGE:
    weekplan clear [OPTIONS]

OPTIONS:
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

DESCRIPTION:
    Replaces all schedules with a single empty "New Schedule". A backup of
    the current data is taken first; undo with 'weekplan restore --latest'.
`

// runClear handles the "weekplan clear" subcommand.
func runClear(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)

	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, clearHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(clearHelpText)
		os.Exit(0)
	}

	if !*forceFlag {
		ok, err := confirm(os.Stdin, "⚠ This deletes every schedule and activity. Continue?")
		if err != nil {
			fatalf("%v", err)
		}
		if !ok {
			fmt.Println("Clear cancelled.")
			return
		}
	}

	cfg := mustLoadConfig()
	name, err := backup.NewManager(cfg.GetDataDir(), version).Create()
	switch {
	case errors.Is(err, backup.ErrNothingToSave):
	case err != nil:
		fatalf("creating backup: %v", err)
	default:
		fmt.Printf("✓ Backup created: %s\n", name)
	}

	e := mustOpenEnv(cfg)
	defer e.close()
	e.store.ClearAll()
	fmt.Println("✓ All schedules cleared")
}
