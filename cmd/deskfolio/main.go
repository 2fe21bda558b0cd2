package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/foxzinnx/deskfolio/internal/clock"
	"github.com/foxzinnx/deskfolio/internal/config"
	"github.com/foxzinnx/deskfolio/internal/content"
	"github.com/foxzinnx/deskfolio/internal/database"
	"github.com/foxzinnx/deskfolio/internal/database/repository"
	"github.com/foxzinnx/deskfolio/internal/logging"
	"github.com/foxzinnx/deskfolio/internal/replay"
	"github.com/foxzinnx/deskfolio/internal/session"
	"github.com/foxzinnx/deskfolio/internal/tui"
)

const usage = `usage:
  deskfolio               run the desktop
  deskfolio replay FILE   run a scripted gesture against the unlock engine
  deskfolio init-config   write the effective configuration to disk`

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatalf("deskfolio: %v", err)
	}
}

// run executes one command. The log file is closed before it returns, so
// callers may exit right after.
func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("deskfolio", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Path:   cfg.Log.Path,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	// xdg-open output would land on the alt screen.
	browser.Stdout, browser.Stderr = io.Discard, io.Discard

	cmd := flags.Arg(0)
	switch cmd {
	case "":
		err = runDesktop(cfg, logger)
	case "replay":
		if flags.NArg() != 2 {
			return errUsage
		}
		err = runReplay(flags.Arg(1), stdout, logger)
	case "init-config":
		err = config.Save(cfg)
	default:
		return errUsage
	}
	if err != nil {
		logger.Error("command failed", "cmd", cmd, "err", err)
	}
	return err
}

func runDesktop(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	overrides, err := content.LoadFile(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := database.SeedPanels(ctx, db, content.Merge(content.Defaults(), overrides)); err != nil {
		return fmt.Errorf("seed panels: %w", err)
	}
	panels, err := database.LoadPanels(ctx, db)
	if err != nil {
		return fmt.Errorf("load panels: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("using local timezone", "err", err)
	}

	opts := tui.Options{
		Panels:      panels,
		Clock:       clock.NewSource(loc),
		UnitsPerRow: cfg.UI.UnitsPerRow,
		IdleRelock:  cfg.UI.IdleRelock,
		Launches:    repository.NewLaunchRepo(db),
		Opener:      tui.SystemOpener{BaseURL: cfg.Content.BaseURL},
		Logger:      logger,
	}
	if cfg.Session.DBusLock {
		watcher, err := session.Dial(cfg.Session.ID)
		if err != nil {
			logger.Warn("session lock signal unavailable", "err", err)
		} else {
			defer watcher.Close()
			opts.LockSource = watcher
		}
	}

	logger.Info("starting", "panels", len(panels), "db", cfg.Database.Path)
	p := tea.NewProgram(tui.New(ctx, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func runReplay(path string, stdout io.Writer, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	steps, err := replay.Parse(f)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	res := replay.Run(steps, stdout, logger)
	fmt.Fprintf(stdout, "final: %s offset=%g unlocks=%d elapsed=%s\n", res.Phase, res.Offset, res.Unlocks, res.Elapsed)
	return nil
}
