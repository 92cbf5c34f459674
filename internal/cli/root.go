// Package cli wires the cobra command tree to the todo store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// Exit codes: 0 ok, 1 runtime failure, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const tuiLogFile = "tui.log"

// exitErr carries an exit code and an optional hint line for the user.
type exitErr struct {
	code int
	err  error
	hint string
}

func (e *exitErr) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitErr) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return &exitErr{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &exitErr{code: exitUsage, err: fmt.Errorf("%s: %w", cmd.Name(), err), hint: "usage: " + cmd.UseLine()}
		}
		return nil
	}
}

type globalFlags struct {
	configPath string
	backend    string
	dataDir    string
	key        string
	theme      string
	logLevel   string
	noColor    bool
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdout, stderr io.Writer
	flags          globalFlags

	cfg       *config.Config
	log       *log.Logger
	st        *store.Store
	closeSlot func() error
}

// setup merges config sources, flags last, and prepares logging and theme.
func (a *app) setup() error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	if a.flags.dataDir != "" {
		cfg.DataDir = a.flags.dataDir
	}
	if a.flags.key != "" {
		cfg.Key = a.flags.key
	}
	if a.flags.theme != "" {
		cfg.Theme = a.flags.theme
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if a.flags.noColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	a.cfg = cfg
	a.log = logging.New(a.stderr, cfg.Log.Level, cfg.Log.Format)
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, cfg.NoColor)
	a.log.Debug("config loaded", "file", cfg.File, "backend", cfg.Backend, "key", cfg.Key)
	return nil
}

// store opens the configured slot on first use and loads the list.
func (a *app) store() (*store.Store, error) {
	if a.st != nil {
		return a.st, nil
	}
	slot, closeFn, err := openSlot(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", a.cfg.Backend, err)
	}
	a.closeSlot = closeFn
	a.st = store.Open(slot, store.WithKey(a.cfg.Key), store.WithLogger(a.log))
	return a.st, nil
}

// tuiLogger returns a logger writing to tui.log in the data dir, so nothing is
// printed over the alternate screen. It discards output when the file cannot be opened.
func (a *app) tuiLogger() (*log.Logger, func()) {
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return logging.Discard(), func() {}
	}
	f, err := tea.LogToFile(filepath.Join(a.cfg.DataDir, tuiLogFile), "")
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logging.New(f, a.cfg.Log.Level, a.cfg.Log.Format), func() { _ = f.Close() }
}

func (a *app) close() {
	if a.closeSlot == nil {
		return
	}
	if err := a.closeSlot(); err != nil {
		a.log.Warn("close backend", "err", err)
	}
	a.closeSlot = nil
}

// newRoot builds the command tree writing to the given streams.
func newRoot(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list for your terminal",
		Long: `todo keeps a newest-first todo list in a local slot (a JSON file by default,
or SQLite / Cloud Firestore) and lets you add, edit, toggle, filter and clear items
from the command line or an interactive view.`,
		Example: `  todo add "Buy milk"
  todo ls --filter active
  todo done 2
  todo edit 1 "Buy oat milk"
  todo clear
  todo ui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &exitErr{code: exitUsage}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitErr{code: exitUsage, err: err, hint: "run `todo --help` for usage"}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.UserConfigFile()+")")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: file, sqlite or firestore")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory for the file and sqlite backends")
	pf.StringVar(&a.flags.key, "key", "", "storage key holding the list")
	pf.StringVar(&a.flags.theme, "theme", "", "output theme: classic, neon or mono")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		addCmd(a),
		listCmd(a),
		toggleCmd(a),
		removeCmd(a),
		editCmd(a),
		clearCmd(a),
		countCmd(a),
		uiCmd(a),
	)
	return root, a
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root, a := newRoot(stdout, stderr)
	defer a.close()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var ee *exitErr
	if !errors.As(err, &ee) {
		ee = &exitErr{code: exitError, err: err}
		if strings.HasPrefix(err.Error(), "unknown command") {
			ee.code = exitUsage
			ee.hint = "run `todo --help` for usage"
		}
	}
	if msg := ee.Error(); msg != "" {
		ui.Fail(stderr, msg)
	}
	if ee.hint != "" {
		ui.Hint(stderr, ee.hint)
	}
	return ee.code
}
