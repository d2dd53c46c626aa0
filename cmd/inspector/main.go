// Inspector TUI — interactive inspection and marking of series data.
//
// Usage:
//
//	inspector [flags] [file ...]
//
// Files may be JSON, CSV, or gzip-wrapped versions of either. Flags:
//
//	--config  Directory holding inspector.cfg.json (default: ".")
//	--db      Path to the marking database (overrides config;
//	          empty runs without persistence)
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/loader"
	"github.com/serieslab/inspector/internal/logging"
	"github.com/serieslab/inspector/internal/plugin"
	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/internal/storage"
	"github.com/serieslab/inspector/internal/tui"
	"github.com/serieslab/inspector/internal/views"
)

func main() {
	configDir := flag.String("config", ".", "Directory holding inspector.cfg.json")
	dbPath := flag.String("db", "", "Path to the marking database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	log, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var store storage.Store
	if cfg.DBPath != "" {
		s, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open marking database at %s: %v\n", cfg.DBPath, err)
			os.Exit(1)
		}
		store = s
	} else {
		log.Info().Msg("no database configured, markings are session-only")
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	sess := session.NewModel(cfg, log)
	ws := views.NewWorkspace(cfg, log, sess)

	mgr := plugin.NewManager(log)
	deps := plugin.Deps{Cfg: cfg, Log: log, Store: store}
	if err := mgr.AttachAll(sess, plugin.Builtins(), deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to attach plugins: %v\n", err)
		os.Exit(1)
	}
	defer mgr.DetachAll()

	for _, path := range flag.Args() {
		loadFileInto(sess, path)
	}

	model := tui.NewModel(cfg, log, sess, ws, mgr)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadFileInto reads one file and adds every series it yields. A bad
// file is reported and skipped; the remaining arguments still load.
func loadFileInto(sess *session.Model, path string) {
	loaded, err := loader.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
		return
	}
	for _, l := range loaded {
		if _, err := sess.AddItem(l.Series, l.Name, l.Metadata); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping series %s from %s: %v\n", l.Name, path, err)
		}
	}
}
