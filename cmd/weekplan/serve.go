// Package main is the entry point for the weekplan application.
// This file contains the serve subcommand handler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"weekplan/internal/auth"
	"weekplan/internal/config"
	"weekplan/internal/logging"
	"weekplan/internal/server"
)

// serveHelpText is the help message for the serve subcommand.
const serveHelpText = `weekplan serve - Serve the schedule over HTTP

USAGE:
    weekplan serve [OPTIONS]

OPTIONS:
    -a, --addr ADDR    Listen address (default from config, 127.0.0.1:8080)
    -h, --help         Show this help message

ENVIRONMENT:
    WEEKPLAN_JWT_SECRET            Token signing secret (required)
    WEEKPLAN_USER1_USERNAME        First allowed user
    WEEKPLAN_USER1_PASSWORD        Its password (USER2 and USER3 likewise)

ENDPOINTS:
    POST /api/auth/login    {"username","password"} -> {"token","username"}
    POST /api/auth/verify   {"token"} -> {"valid","username"}
    GET  /                  Current view (?mode=daily|weekly|schedule&day=)
    GET  /export            Download schedule-backup-YYYY-MM-DD.json
    POST /import            Replace all schedules with a backup file
    GET  /calendar.ics      Current week as iCalendar
    GET  /report            Weekly summary (Markdown)

    Everything except /login and /api/* needs the auth-token cookie or an
    Authorization: Bearer header; otherwise it redirects to /login.
`

// runServe handles the "weekplan serve" subcommand.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	addrFlag := fs.String("addr", "", "listen address")
	fs.StringVar(addrFlag, "a", "", "listen address (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, serveHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(serveHelpText)
		os.Exit(0)
	}

	cfg := mustLoadConfig()
	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fatalf("initializing logger: %v", err)
	}

	tokens, err := auth.NewTokens(config.JWTSecret(), time.Duration(cfg.Server.TokenTTLHours)*time.Hour)
	if err != nil {
		fatalf("%v (set %s)", err, config.EnvJWTSecret)
	}
	creds := auth.CredentialsFromEnv(os.Getenv)
	if creds.Len() == 0 {
		log.Warn("no users configured, every login will be rejected")
	}

	e, err := openEnv(cfg, log)
	if err != nil {
		fatalf("%v", err)
	}
	defer e.close()

	srv := server.New(server.Options{
		Store:          e.store,
		Credentials:    creds,
		Tokens:         tokens,
		Log:            log,
		Slots:          gridSlots(cfg),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxRequests:    cfg.Server.MaxRequestsPerSecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving schedules", zap.String("data_dir", e.dataDir), zap.Int("users", creds.Len()))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		log.Error("server stopped", zap.Error(err))
		e.close()
		fatalf("serving: %v", err)
	}
	log.Info("shut down")
}
