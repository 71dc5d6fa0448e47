// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the word prediction server and CLI [DBG] application.

WordServe loads a newline-delimited word list into a byte trie where every
word is scored by its line position, so words near the top of the list rank
higher. Predictions are served over MessagePack IPC, a small JSON HTTP API
or an interactive CLI.

# Usage

Start the IPC server with the default word list:

	wordserve

Use a custom word list and enable debug mode:

	wordserve -words /path/to/words.txt -d

Run in CLI mode for interactive testing:

	wordserve -c -limit 10 -prmin 2

Serve JSON over HTTP instead of stdin/stdout:

	wordserve -http :8080

# Configuration

Runtime configuration is read from a TOML file. It is created with defaults
if it doesn't exist:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	default_limit = 10
	http_addr = ""

	[dict]
	words_file = "words.txt"
	base_score = 100003

	[cli]
	default_limit = 5
	default_min_len = 1
	default_max_len = 24
	default_no_filter = false

# Command Line Flags

	-words string
	    Word list file, one word per line (default from config)
	-config string
	    Path to a config file
	-rebuild-config
	    Overwrite the config file with defaults and exit
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-http string
	    Serve the HTTP API on this address
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-version
	    Show current version

Relative word list paths are looked up in the working directory, next to
the executable, in its data/ directory and in the config directory.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordserve/internal/cli"
	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/dictionary"
	"github.com/bastiangx/wordserve/pkg/dicttree"
	"github.com/bastiangx/wordserve/pkg/server"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.9.0-beta"
	AppName = "wordserve"
	gh      = "https://github.com/bastiangx/wordserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	wordsFile := flag.String("words", "", "Word list file, one word per line (default from config)")
	configFile := flag.String("config", "", "Path to a config file")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the config file with defaults and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	httpAddr := flag.String("http", "", "Serve the HTTP API on this address instead of IPC")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default from config)")
	minPrefix := flag.Int("prmin", 0, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - shows all raw dictionary entries (numbers, symbols, etc)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Error("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *rebuildConfig {
		target := *configFile
		if target == "" {
			target, err = pathResolver.GetConfigPath(config.FileName)
			if err != nil {
				log.Fatalf("Failed to determine config path: (%v)", err)
			}
		}
		if err := config.RebuildConfigFile(target); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(target))
		os.Exit(0)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", configPath)

	name := appConfig.Dict.WordsFile
	if *wordsFile != "" {
		name = *wordsFile
	}
	resolvedWords := pathResolver.GetWordsFile(name)

	tree, err := dictionary.LoadFileWithBase(resolvedWords, appConfig.Dict.BaseScore)
	if err != nil {
		log.Warnf("Failed to load word list %s: %v", resolvedWords, err)
		log.Warn("Running with empty dict...")
		tree = dicttree.New()
	}
	completer := suggest.NewCompleterFromTree(tree)
	log.Debug("Completer init done", "stats", completer.Stats())

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		cliCfg := appConfig.CLI
		if *limit > 0 {
			cliCfg.DefaultLimit = *limit
		}
		if *minPrefix > 0 {
			cliCfg.DefaultMinLen = *minPrefix
		}
		if *maxPrefix > 0 {
			cliCfg.DefaultMaxLen = *maxPrefix
		}
		if *noFilter {
			cliCfg.DefaultNoFilter = true
		}
		log.Debug("Input info:",
			"minPrefix", cliCfg.DefaultMinLen,
			"maxPrefix", cliCfg.DefaultMaxLen,
			"limit", cliCfg.DefaultLimit,
			"noFilter", cliCfg.DefaultNoFilter)

		inputHandler := cli.NewInputHandler(completer, cliCfg.DefaultMinLen, cliCfg.DefaultMaxLen, cliCfg.DefaultLimit, cliCfg.DefaultNoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	addr := appConfig.Server.HTTPAddr
	if *httpAddr != "" {
		addr = *httpAddr
	}
	if addr != "" {
		showStartupInfo(resolvedWords, configPath, completer, "http "+addr)
		srv := server.NewHTTPServer(addr, completer, appConfig)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(resolvedWords, configPath, completer, "ipc")
	if err := server.NewServer(completer, appConfig).Start(); err != nil {
		log.Fatalf("IPC server failed: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordServe ] Serves really Fast word predictions!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// stdout carries the IPC stream, so everything goes to stderr.
func showStartupInfo(wordsFile, configPath string, completer *suggest.Completer, mode string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := completer.Stats()
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " WordServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("words: ( %s ) %s loaded", wordsFile, utils.FormatWithCommas(stats["totalWords"]))
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Infof("mode: %s", mode)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
