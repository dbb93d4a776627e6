// Package main is the entry point for the weekplan application.
// This file contains the backup subcommand handler.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"weekplan/internal/backup"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `weekplan backup - Create and manage backups

USAGE:
    weekplan backup [OPTIONS]

OPTIONS:
    -l, --list       List available backups
    --prune N        Delete all but the N most recent backups
    -h, --help       Show this help message

DESCRIPTION:
    Creates a timestamped copy of the schedule data file.
    Backups are stored in ~/.weekplan/backups/ and can be restored later
    with 'weekplan restore'.

EXAMPLES:
    # Create a new backup
    weekplan backup

    # List all available backups
    weekplan backup --list

    # Keep only the last 10
    weekplan backup --prune 10
`

// runBackup handles the "weekplan backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", -1, "keep only the N most recent backups")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg := mustLoadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag >= 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if errors.Is(err, backup.ErrNothingToSave) {
		fmt.Println("Nothing to back up yet.")
		fmt.Println("Start 'weekplan' and add an activity first.")
		return
	}
	if err != nil {
		fatalf("creating backup: %v", err)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fatalf("reading backup info: %v", err)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Schedules: %d, Activities: %d\n", info.Stats["schedules"], info.Stats["activities"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fatalf("listing backups: %v", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'weekplan backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   Schedules: %d, Activities: %d\n",
			b.Name, formatAge(time.Since(b.CreatedAt)), b.Stats["schedules"], b.Stats["activities"])
	}
}

// pruneBackups deletes all but the keep most recent backups.
func pruneBackups(manager *backup.Manager, keep int) {
	deleted, err := manager.Prune(keep)
	if err != nil {
		fatalf("pruning backups: %v", err)
	}
	fmt.Printf("✓ Deleted %d backups, kept up to %d\n", deleted, keep)
}

// formatAge returns a human-readable age string.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
