// Package main is the entry point for the weekplan application.
// This file contains the restore subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"weekplan/internal/backup"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `weekplan restore - Restore data from a backup

USAGE:
    weekplan restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2024-03-04_143022_000)
                   Use 'weekplan backup --list' to see available backups.

DESCRIPTION:
    Replaces the schedule data file with the one from a backup. The backup
    is validated first, and a safety backup of the current file is taken
    before it is overwritten.

EXAMPLES:
    # Restore from a specific backup
    weekplan restore 2024-03-04_143022_000

    # Restore from the most recent backup
    weekplan restore --latest
`

// runRestore handles the "weekplan restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg := mustLoadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	var backupName string
	switch {
	case *latestFlag:
		latest, err := manager.Latest()
		if err != nil {
			fatalf("%v", err)
		}
		backupName = latest.Name
	case fs.NArg() > 0:
		backupName = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'weekplan restore BACKUP_NAME' or 'weekplan restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'weekplan backup --list' to see available backups.")
		os.Exit(1)
	}

	info, err := manager.GetBackup(backupName)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Schedules: %d, Activities: %d\n", info.Stats["schedules"], info.Stats["activities"])
	fmt.Println()

	if !*forceFlag {
		ok, err := confirm(os.Stdin, "⚠ This will overwrite your current data. Continue?")
		if err != nil {
			fatalf("%v", err)
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	st, safety, err := manager.Restore(backupName)
	if err != nil {
		fatalf("restoring backup: %v", err)
	}

	if safety != "" {
		fmt.Printf("  Safety backup: %s\n", safety)
	}
	fmt.Printf("✓ Restored %d schedules from %s\n", len(st.Schedules), backupName)
}
