package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/dirview/internal/app"
	"github.com/kk-code-lab/dirview/internal/config"
	"github.com/kk-code-lab/dirview/internal/logging"
	"github.com/kk-code-lab/dirview/internal/settings"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func printHelp() {
	fmt.Print(`dirview - Terminal directory browser

USAGE:
    dirview [OPTIONS] [PATH]

OPTIONS:
    -h, --help                 Show this help message and exit
    -l, --list                 Print the resolved listing and exit
        --sort CRITERION       byName, byFileSize, byDateModified, byDateCreated,
                               byExtension, byFirstTag or byRelevance
        --desc                 Sort descending
        --filter TEXT          Keep entries whose name contains TEXT
        --search QUERY         Search below PATH recursively
        --perspective NAME     grid, list or kanban

Overrides given on the command line are never persisted.
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred log flushing always happens.
func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirview: %v\n", err)
		return 2
	}
	if opts.help {
		printHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirview: %v\n", err)
		return 1
	}

	// tcell owns the terminal in interactive mode, so logs go to a file.
	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = logging.DefaultOutputPath()
	}
	if opts.list {
		logPath = "stderr"
	}
	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: logPath}); err != nil {
		fmt.Fprintf(os.Stderr, "dirview: init logging: %v\n", err)
	}
	defer func() {
		_ = logging.Sync()
	}()

	store := newSettingsStore(cfg)

	if opts.list {
		err := apppkg.List(os.Stdout, apppkg.ListOptions{
			Config:      cfg,
			Settings:    store,
			Path:        opts.path,
			Perspective: opts.perspective,
			SortBy:      opts.sortBy,
			Descending:  opts.descending,
			Filter:      opts.filter,
			Search:      opts.search,
			Width:       terminalWidth(),
		})
		if err != nil {
			logging.Error("list failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "dirview: %v\n", err)
			return 1
		}
		return 0
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		Config:    cfg,
		Settings:  store,
		StartPath: opts.path,
	})
	if err != nil {
		logging.Error("init failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		return 1
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return 0
}

func newSettingsStore(cfg *config.Config) settings.Store {
	path := cfg.Settings.LocalPath
	if path == "" {
		var err error
		if path, err = settings.DefaultLocalStorePath(); err != nil {
			logging.Warn("no local settings store", zap.Error(err))
		}
	}
	var local *settings.LocalStore
	if path != "" {
		local = settings.NewLocalStore(path)
	}
	return settings.NewChain(local, cfg.Settings.Enhanced, cfg.DefaultViewSettings())
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
