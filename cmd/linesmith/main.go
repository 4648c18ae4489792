// Package main is the entry point for the linesmith demo editor: a
// terminal host that feeds input events into the formatting engine and
// renders the surface it maintains.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/linesmith/internal/config"
	"github.com/dshills/linesmith/internal/engine"
	"github.com/dshills/linesmith/internal/log"
	"github.com/dshills/linesmith/internal/surface"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		rulePath    string
		logLevel    string
		placeholder string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to options file (TOML)")
	flag.StringVar(&rulePath, "rule", "", "Path to a Lua rule script")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.StringVar(&placeholder, "placeholder", "Start typing...", "Placeholder text")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("linesmith %s (%s)\n", version, commit)
		return 0
	}

	logger := log.New(os.Stderr, log.ParseLevel(logLevel))

	opts, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading options: %v\n", err)
		return 1
	}
	if placeholder != "" && opts.Placeholder == "" {
		opts.Placeholder = placeholder
	}
	if rulePath != "" {
		opts.RulePath = rulePath
	}
	opts.HighlightEnabled = true

	surf := surface.New(surface.Capabilities{PlaintextEditing: true})
	eng, err := engine.New(surf, engine.WithOptions(opts), engine.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer eng.Close()

	host, err := newHost(eng, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	if configPath != "" {
		w, err := config.Watch(configPath, logger, host.postOptions)
		if err != nil {
			logger.Warn("options live reload unavailable: %v", err)
		} else {
			defer w.Close()
		}
	}

	if err := host.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
