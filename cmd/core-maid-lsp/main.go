package main

import (
	"flag"
	"os"

	"github.com/tliron/glsp/server"

	"github.com/griffnb/core-maid/internal/config"
	"github.com/griffnb/core-maid/internal/console"
	"github.com/griffnb/core-maid/internal/lsp"
	"github.com/griffnb/core-maid/internal/reorganize"
)

const version = "v0.1.0"

func main() {
	configPath := flag.String("config", config.DefaultFile, "configuration file providing the initial member type settings")
	debug := flag.Bool("debug", false, "log protocol traffic to stderr")
	flag.Parse()

	// stdout carries the protocol
	console.Logger.SetOutput(os.Stderr)
	if *debug {
		console.Logger.DebugLevel = 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		console.Logger.Exception("Unable to load configuration, using defaults", err)
		cfg = config.Default()
	}

	srv := lsp.NewServer(version, cfg.MemberTypeSettings(console.Logger.Errors()), reorganize.Options{
		Alphabetize: cfg.Alphabetize,
		Regions:     cfg.Regions,
	}, console.Logger)

	if err := server.NewServer(srv.Handler(), lsp.Name, *debug).RunStdio(); err != nil {
		console.Logger.Error("%v", err)
		os.Exit(1)
	}
}
