/*
Package main implements the automobile completion server and CLI application.

Automobile provides offline, dictionary-driven text completion built on a
character trie. As you type, the engine walks the trie one keystroke at a
time and surfaces the pending completion for the current word; Tab accepts
it, Backspace rewinds, and multi-word phrase entries can replace the typed
prefix outright. It can operate as a MessagePack IPC server for integration
with text editors, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	automobile

Use a custom dictionary directory and enable debug mode:

	automobile -data /path/to/dicts -d

Run in CLI mode for interactive testing:

	automobile -c -limit 10

Replay a scripted typing session against the dictionary:

	automobile -sim 'going to the aut\t'

Compile a raw word-frequency list into a completion dictionary:

	automobile -build words.txt -o completions.txt

The data directory holds plain-text dictionary files (*.txt) where each
line is a PRE|POST completion entry with an optional " #FREQ" suffix.
Files are merged in name order; later entries win on conflicts.

# Configuration

Runtime configuration is managed through a TOML file covering the engine,
session policy, dictionary paths, and CLI defaults:

	[engine]
	case_insensitive = true

	[session]
	tab_behavior = "select-if-single"
	max_completions = 10

	[dict]
	dir = "data/"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Text edits and
key events are processed synchronously, with microsecond timing included
in state responses.

Send a text change:

	{"id": "1", "op": "text", "t": "the aut"}

Send a Tab press and receive the updated field state:

	{"id": "2", "op": "key", "k": "tab"}
	{"id": "2", "t": "the automobile", "p": "automobile", "s": "", ...}

# Server Mode

The default mode starts a MessagePack IPC server that processes requests
from stdin and writes responses to stdout, enabling integration with text
editors through process communication.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging. Each
input line becomes the field text; colon commands (:tab, :up, :down, :save)
emulate key events. New features should be tested here first.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/modularizer/automobile-complete/internal/cli"
	"github.com/modularizer/automobile-complete/internal/utils"
	"github.com/modularizer/automobile-complete/pkg/config"
	"github.com/modularizer/automobile-complete/pkg/dictionary"
	"github.com/modularizer/automobile-complete/pkg/server"
	"github.com/modularizer/automobile-complete/pkg/session"
	"github.com/modularizer/automobile-complete/pkg/suggest"
	"github.com/modularizer/automobile-complete/pkg/wordlist"
)

const (
	Version = "0.3.0"
	AppName = "automobile"
	gh      = "https://github.com/modularizer/automobile-complete"
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

// main calls other packages to initialize the server, CLI, simulator or
// builder. main() does not implement their logic and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", defaultConfig.Dict.Dir, "Directory containing dictionary .txt files")
	configPath := flag.String("config", "", "Path to the TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	simScript := flag.String("sim", "", "Replay a scripted typing session (\\t accepts, \\b rewinds)")
	buildList := flag.String("build", "", "Compile a 'word #freq' wordlist into a completion dictionary")
	outPath := flag.String("o", "", "Output path for -build (default stdout)")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of completion options to show")

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

	if *buildList != "" {
		if err := runBuild(*buildList, *outPath); err != nil {
			log.Fatalf("Build failed: %v", err)
		}
		return
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activePath)

	resolvedDataDir, err := utils.ResolveDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	dictText, err := dictionary.LoadDir(resolvedDataDir)
	if err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
	}

	if *simScript != "" {
		runSim(dictText, *simScript, appConfig)
		return
	}

	sess, err := session.New(dictText, appConfig.Engine.Options(), appConfig.Session.Settings())
	if err != nil {
		log.Fatalf("Failed to init session: %v", err)
	}
	if appConfig.Dict.PersonalFile != "" && utils.FileExists(appConfig.Dict.PersonalFile) {
		if personal, err := dictionary.LoadFile(appConfig.Dict.PersonalFile); err == nil {
			if err := sess.Reload(dictionary.Merge(dictText, personal)); err != nil {
				log.Warn("personal dictionary merge failed", "err", err)
			}
		}
	}
	log.Debugf("Session ready: %d words indexed", sess.Trie().WordCount())

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(sess, appConfig.CLI.Colors, *limit)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	reload := func() (string, error) {
		return dictionary.LoadDir(resolvedDataDir)
	}
	srv := server.NewServer(sess, reload)

	showStartupInfo(resolvedDataDir, sess.Trie().WordCount())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runBuild compiles a raw wordlist into completion dictionary lines.
func runBuild(listPath, outPath string) error {
	entries, err := wordlist.ReadFile(listPath)
	if err != nil {
		return err
	}
	log.Debugf("Read %d words from %s", len(entries), listPath)

	text := dictionary.BuildCompletionText(entries, dictionary.DefaultBuildOptions())
	if outPath == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(text+"\n"), 0644); err != nil {
		return err
	}
	log.Infof("Wrote %d completion lines to %s", strings.Count(text, "\n")+1, outPath)
	return nil
}

// runSim replays a scripted typing session at human-ish speed.
func runSim(dictText, script string, cfg *config.Config) {
	trie := suggestTrie(dictText, cfg)
	cli.Simulate(trie, script, cli.SimOptions{
		LetterDelay: time.Duration(cfg.CLI.LetterDelayMs) * time.Millisecond,
		WordDelay:   time.Duration(cfg.CLI.WordDelayMs) * time.Millisecond,
		Colors:      cfg.CLI.Colors,
	})
}

func suggestTrie(dictText string, cfg *config.Config) *suggest.Trie {
	return suggest.FromLines(dictText, cfg.Engine.Options())
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ automobile ] Offline dictionary-driven text completion")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" automobile ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words indexed: [ %d ]", words)
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
