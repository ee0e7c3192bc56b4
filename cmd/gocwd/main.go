// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hamkit/gocw/app"
	"github.com/hamkit/gocw/config/loaders"
	"github.com/hamkit/gocw/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logLevel := logger.InfoLevel
	if opts.debug {
		logLevel = logger.DebugLevel
	}
	log := logger.NewDefaultLogger(logLevel)

	cfg, err := loaders.LoadConfig(opts.configFile)
	if err != nil {
		log.Error("Failed to load config: %v", err)
		return 1
	}

	a, err := app.New(*cfg, opts.configFile, log)
	if err != nil {
		log.Error("Failed to assemble keyer: %v", err)
		return 1
	}

	if err := a.Start(); err != nil {
		log.Error("Failed to start keyer: %v", err)
		return 1
	}
	defer a.Stop()

	log.Info("gocwd running (config: %s)", opts.configFile)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	return 0
}

type options struct {
	configFile string
	debug      bool
}

func parseOptions(args []string) (*options, error) {
	opts := &options{configFile: "config.yaml"}

	fs := flag.NewFlagSet("gocwd", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", opts.configFile, "Path to configuration file")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "gocwd - Morse keyer/sounder daemon")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}
