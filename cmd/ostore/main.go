// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command ostore inspects and edits storefront configurations and prints the
// resolved storefront view as JSON.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/ostore-go/internal/autosave"
	"github.com/olegiv/ostore-go/internal/cache"
	"github.com/olegiv/ostore-go/internal/config"
	"github.com/olegiv/ostore-go/internal/logging"
	"github.com/olegiv/ostore-go/internal/store"
	"github.com/olegiv/ostore-go/internal/storefront"
	"github.com/olegiv/ostore-go/internal/util"
	"github.com/olegiv/ostore-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// options are the parsed command-line flags.
type options struct {
	slug       string
	category   string
	seed       bool
	preset     string
	move       string
	toggle     int
	patch      string
	showConfig bool
	list       bool
	events     int
}

func main() {
	var opts options

	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	flag.StringVar(&opts.slug, "slug", "", "Storefront slug to render or edit")
	flag.StringVar(&opts.category, "category", "", "Active category id for the rendered view")
	flag.BoolVar(&opts.seed, "seed", false, "Create the demo storefront under -slug (default: demo)")
	flag.StringVar(&opts.preset, "preset", "", "Replace the landing blocks with a preset (business-card, catalog, story-highlights)")
	flag.StringVar(&opts.move, "move", "", "Move a landing block, as from:to block indexes")
	flag.IntVar(&opts.toggle, "toggle", -1, "Hide or show the landing block at this index")
	flag.StringVar(&opts.patch, "patch", "", "JSON object merged into the settings document")
	flag.BoolVar(&opts.showConfig, "config", false, "Print the merged settings document instead of the view")
	flag.BoolVar(&opts.list, "list", false, "List storefronts")
	flag.IntVar(&opts.events, "events", 0, "Print the N most recent event log entries")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oStore - storefront configuration engine\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_DB_PATH               SQLite database path (default: ./data/ostore.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_LOG_LEVEL             debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_REDIS_URL             Redis URL for the view cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_AUTOSAVE_DELAY_MS     Autosave debounce window (default: 350)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_AUTOSAVE_MAX_WAIT_MS  Longest an edit waits to be saved (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSTORE_DO_SEED               Seed the demo storefront on start (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(opts, os.Stdout); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr; stdout carries the JSON output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logger.Debug("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Mirror WARN and ERROR logs into the event log.
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slug := opts.slug
	if opts.seed || cfg.DoSeed {
		sf, err := store.SeedDemo(ctx, db, util.Coalesce(slug, "demo"), logger)
		if err != nil {
			return fmt.Errorf("seeding demo storefront: %w", err)
		}
		slug = sf.Slug
	}

	switch {
	case opts.list:
		list, err := store.New(db).ListStorefronts(ctx)
		if err != nil {
			return fmt.Errorf("listing storefronts: %w", err)
		}
		return writeJSON(out, list)
	case opts.events > 0:
		events, err := store.New(db).ListEvents(ctx, int64(opts.events))
		if err != nil {
			return fmt.Errorf("listing events: %w", err)
		}
		return writeJSON(out, events)
	}

	if slug == "" {
		return errors.New("no storefront selected, use -slug or -seed")
	}

	viewCache := cache.New(cfg.Cache(), logger)
	defer func() { _ = viewCache.Close() }()
	svc := storefront.NewService(db, viewCache, logger)

	if opts.preset != "" || opts.move != "" || opts.toggle >= 0 || opts.patch != "" {
		if err := edit(ctx, svc, store.New(db), cfg, logger, slug, opts); err != nil {
			return err
		}
	}

	if opts.showConfig {
		doc, _, err := svc.Config(ctx, slug)
		if err != nil {
			return err
		}
		return writeJSON(out, doc)
	}

	view, err := svc.Render(ctx, slug, opts.category)
	if err != nil {
		return err
	}
	return writeJSON(out, view)
}

// edit applies -preset, -move, -toggle and -patch, in that order, through an autosave session and waits for
// the write.
func edit(ctx context.Context, svc *storefront.Service, q *store.Queries, cfg *config.Config,
	logger *slog.Logger, slug string, opts options) error {
	saver := autosave.New(q, autosave.Config{
		Delay:   cfg.AutosaveDelay(),
		MaxWait: cfg.AutosaveMaxWait(),
	}, logger, autosave.WithOnSave(func(r autosave.Result) {
		if r.Err != nil {
			return
		}
		if err := svc.Invalidate(context.Background(), r.Slug); err != nil {
			logger.Warn("invalidating storefront views failed", "slug", r.Slug, "error", err, "category", "cache")
		}
	}))
	defer func() { _ = saver.Stop() }()

	sess, err := svc.Edit(ctx, saver, slug)
	if err != nil {
		return err
	}

	if opts.preset != "" {
		ok, err := sess.ApplyPreset(opts.preset)
		if err != nil {
			return fmt.Errorf("applying preset: %w", err)
		}
		if !ok {
			return fmt.Errorf("unknown preset %q", opts.preset)
		}
	}

	if opts.move != "" {
		from, to, err := parseMove(opts.move)
		if err != nil {
			return err
		}
		if err := sess.Reorder(from, to); err != nil {
			return fmt.Errorf("moving block: %w", err)
		}
	}

	if opts.toggle >= 0 {
		if err := sess.ToggleHidden(opts.toggle); err != nil {
			return fmt.Errorf("toggling block: %w", err)
		}
	}

	if opts.patch != "" {
		var patch map[string]any
		if err := json.Unmarshal([]byte(opts.patch), &patch); err != nil {
			return fmt.Errorf("parsing -patch: %w", err)
		}
		if err := sess.Apply(patch); err != nil {
			return fmt.Errorf("applying patch: %w", err)
		}
	}

	if err := saver.Flush(ctx); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	logger.Info("settings saved", "slug", slug, "version", sess.Version())
	return nil
}

// parseMove reads a "from:to" pair of block indexes.
func parseMove(s string) (int, int, error) {
	fromStr, toStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid -move %q, want from:to", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -move source index: %w", err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -move target index: %w", err)
	}
	return from, to, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
