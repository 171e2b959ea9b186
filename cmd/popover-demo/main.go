// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// popover-demo runs the trigger-build screen in the terminal. The git
// object picker at the top is a popover host: tap it to open a strip
// of git object kinds, or press and hold to open the strip and drag
// onto a kind.
//
// Two modes of operation:
//
// Interactive (default): runs the screen on the alt screen with mouse
// reporting. With --record, every pointer event is written to a
// gesture trace for later replay.
//
// Replay (popover-demo replay TRACE): feeds a recorded trace to the
// screen on a simulated clock, without a terminal, and prints the
// resulting form state. The exit code is 1 when the trace ends with
// the strip open.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/popover/lib/cli"
	"github.com/bureau-foundation/popover/lib/clock"
	"github.com/bureau-foundation/popover/lib/config"
	"github.com/bureau-foundation/popover/lib/gesturetrace"
	"github.com/bureau-foundation/popover/lib/popover"
	"github.com/bureau-foundation/popover/lib/triggerui"
	"github.com/bureau-foundation/popover/lib/tui"
	"github.com/bureau-foundation/popover/lib/version"
)

// replayEpoch is the simulated clock's reading when a replay starts.
var replayEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var exit *cli.ExitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	// Handle --version before flag parsing to match the other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Fprint(stdout, "popover-demo")
		return nil
	}
	if len(args) > 0 {
		switch args[0] {
		case "replay":
			return runReplay(args[1:], stdout)
		case "run":
			return runInteractive(args[1:], stdout)
		}
	}
	return runInteractive(args, stdout)
}

func runInteractive(args []string, stdout io.Writer) error {
	var configPath string
	var recordPath string
	var compressionName string
	var logOutput string
	var colorProfile string

	flagSet := pflag.NewFlagSet("popover-demo", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML or JSONC config file (default: built-in demo form)")
	flagSet.StringVar(&recordPath, "record", "", "write every pointer event to this gesture trace file")
	flagSet.StringVar(&compressionName, "compression", "zstd", "trace compression: none, lz4, or zstd")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.StringVar(&colorProfile, "color-profile", "auto", "color output: auto, truecolor, ansi256, ansi, or ascii")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return cli.Validation("unexpected argument: %s", rest[0]).
			WithHint("Run 'popover-demo replay TRACE' to replay a recorded trace.")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	compression, err := gesturetrace.ParseCompression(compressionName)
	if err != nil {
		return cli.Validation("--compression: %w", err)
	}
	profile, override, err := parseColorProfile(colorProfile)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Validation("popover-demo needs an interactive terminal").
			WithHint("Use 'popover-demo replay TRACE' to run a recorded session without one.")
	}
	if override {
		lipgloss.SetColorProfile(profile)
	}

	// While the alt screen is up, warnings go to the status bar (and
	// the log file) instead of stderr.
	tuiHandler := tui.NewLogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if logOutput != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(logOutput)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		handler = cli.FanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	var recorder *gesturetrace.Recorder
	if recordPath != "" {
		file, err := os.Create(recordPath)
		if err != nil {
			return cli.Validation("cannot create trace file %s: %w", recordPath, err)
		}
		defer file.Close()
		recorder, err = gesturetrace.NewRecorder(file, compression, clock.Real())
		if err != nil {
			return cli.Internal("starting trace %s: %w", recordPath, err)
		}
	}

	loop := &tui.Loop{}
	model := triggerui.NewModel(cfg, triggerui.Options{
		Logger:   logger,
		Post:     loop.Post,
		Recorder: recorder,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	loop.SetProgram(program)
	tuiHandler.SetProgram(program)

	_, runErr := program.Run()
	model.Close()

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return cli.Internal("finishing trace %s: %w", recordPath, err)
		}
		fmt.Fprintf(stdout, "recorded %d pointer events to %s\n", recorder.Count(), recordPath)
	}
	printRequests(stdout, model.Requests())
	if runErr != nil {
		return cli.Internal("running terminal UI: %w", runErr)
	}
	return nil
}

func runReplay(args []string, stdout io.Writer) error {
	var configPath string
	var verbose bool
	var showEvents bool

	flagSet := pflag.NewFlagSet("popover-demo replay", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "config file the trace was recorded with (default: built-in demo form)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every widget transition to stderr")
	flagSet.BoolVar(&showEvents, "events", false, "print each recorded event before replaying")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printReplayHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printReplayHelp(flagSet)
		return nil
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return cli.Validation("replay takes exactly one trace file, got %d arguments", len(rest)).
			WithHint("Record one with 'popover-demo --record session.trace'.")
	}
	tracePath := rest[0]

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	records, err := readTrace(tracePath)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level)

	if showEvents {
		for _, record := range records {
			fmt.Fprintln(stdout, record)
		}
	}

	fake := clock.Fake(replayEpoch)
	model := triggerui.NewModel(cfg, triggerui.Options{Clock: fake, Logger: logger})
	delivered, err := gesturetrace.Replay(records, fake, model)
	if err != nil {
		return cli.Validation("replaying %s: %w", tracePath, err)
	}
	// Let the last fade settle so the reported state is final.
	fake.Advance(popover.FadeDuration)

	screen := model.Screen()
	strip := "closed"
	if model.Host().IsOpen() {
		strip = "open"
	}
	fmt.Fprintf(stdout, "events:         %d (%d delivered)\n", len(records), delivered)
	fmt.Fprintf(stdout, "git object:     %s:%s\n", screen.GitObject.Kind, screen.GitObject.Value)
	fmt.Fprintf(stdout, "workflow:       %s\n", screen.WorkflowID)
	fmt.Fprintf(stdout, "focus changes:  %d\n", model.FocusChanges())
	fmt.Fprintf(stdout, "strip:          %s\n", strip)
	printRequests(stdout, model.Requests())

	if model.Host().IsOpen() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// loadConfig returns the built-in configuration when path is empty,
// and the validated file otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("config file %s does not exist", path).
			WithHint("Omit --config to use the built-in demo form.")
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config %s:\n%w", path, err)
	}
	return cfg, nil
}

func readTrace(path string) ([]gesturetrace.Record, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("trace file %s does not exist", path)
	}
	if err != nil {
		return nil, cli.Internal("opening trace: %w", err)
	}
	defer file.Close()

	reader, err := gesturetrace.NewReader(file)
	if errors.Is(err, gesturetrace.ErrNotATrace) {
		return nil, cli.Validation("%s: %w", path, err).
			WithHint("Traces are written by 'popover-demo --record'.")
	}
	if err != nil {
		return nil, cli.Validation("%s: %w", path, err)
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		return nil, cli.Validation("%s: %w", path, err)
	}
	return records, nil
}

// parseColorProfile maps a --color-profile value to a termenv profile.
// override is false for "auto", which leaves lipgloss's detection in
// charge.
func parseColorProfile(name string) (profile termenv.Profile, override bool, err error) {
	switch name {
	case "", "auto":
		return termenv.Ascii, false, nil
	case "truecolor":
		return termenv.TrueColor, true, nil
	case "ansi256":
		return termenv.ANSI256, true, nil
	case "ansi":
		return termenv.ANSI, true, nil
	case "ascii":
		return termenv.Ascii, true, nil
	}
	return termenv.Ascii, false, cli.Validation("unknown color profile %q", name).
		WithHint("Valid profiles: auto, truecolor, ansi256, ansi, ascii.")
}

func printRequests(stdout io.Writer, requests []triggerui.BuildRequest) {
	for _, request := range requests {
		fmt.Fprintf(stdout, "triggered:      %s\n", request)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `popover-demo: trigger-build form with a press-and-hold git object picker.

Tap the picker to toggle its strip of git object kinds, or press and
hold it, drag onto a kind, and release. The keyboard drives the rest of
the form; the help line at the bottom lists the keys.

Usage:
  popover-demo [run] [flags]
  popover-demo replay [flags] TRACE
  popover-demo --version

Examples:
  # Run the built-in demo form
  popover-demo

  # Record a session, then replay it without a terminal
  popover-demo --record session.trace
  popover-demo replay session.trace

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

func printReplayHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Replay a recorded gesture trace against the trigger-build form on a
simulated clock and print the resulting state. Exits 1 when the trace
ends with the picker's strip open.

Usage:
  popover-demo replay [flags] TRACE

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
