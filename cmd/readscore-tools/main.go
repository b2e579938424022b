// Package main provides readscore-tools: human-readable tables, recorded
// history, copy-editing checks and the interactive viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readscore/internal/config"
	"github.com/verte-zerg/readscore/internal/copyedit"
	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/report"
	"github.com/verte-zerg/readscore/internal/reportui"
	"github.com/verte-zerg/readscore/internal/stats"
	"github.com/verte-zerg/readscore/internal/store"
)

const (
	defaultLast   = 20
	defaultWindow = stats.DefaultTrendWindow
	defaultColor  = string(model.ColorAuto)
)

var (
	tableColor string
	tableWidth int

	recordDB string

	historyDB      string
	historyLast    int
	historyWindow  int
	historySection string
	historyColor   string

	viewWatch bool

	copyeditWords string
)

// usageError marks wrong argument counts and unknown flags.
type usageError struct {
	usage string
}

func (e usageError) Error() string {
	return e.usage
}

// errReported signals that the failure was already written as a JSON payload.
var errReported = errors.New("error already reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var uerr usageError
	switch {
	case errors.As(err, &uerr):
		writeLine(stderr, uerr.usage)
	case errors.Is(err, errReported):
	default:
		writeLine(stderr, "Error: "+err.Error())
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readscore-tools",
		Short:         "Tables, history, copy-editing and a viewer for readscore reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, _ error) error {
		return usageError{usage: usageLine(cmd)}
	})

	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newCopyeditCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{usage: usageLine(cmd)}
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageError{usage: usageLine(cmd)}
		}
		return nil
	}
}

func usageLine(cmd *cobra.Command) string {
	return "Usage: " + strings.TrimSuffix(cmd.UseLine(), " [flags]")
}

func writeAnalysisError(w io.Writer, path string, err error) error {
	if werr := report.WriteError(w, report.ErrorMessage(path, err)); werr != nil {
		return werr
	}
	return errReported
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <path>",
		Short: "Print the report as human-readable tables",
		Args:  exactArgs(1),
		RunE:  runTableCmd,
	}
	cmd.Flags().StringVar(&tableColor, "color", defaultColor, "color output: auto, always or never")
	cmd.Flags().IntVar(&tableWidth, "width", 0, "truncate lines to this width (0 uses the terminal width)")
	return cmd
}

func runTableCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "color", &tableColor, fileCfg.Table.Color)
	mode, err := parseColorMode(tableColor)
	if err != nil {
		return err
	}

	path := args[0]
	rep, err := report.AnalyzeFile(path)
	if err != nil {
		return errors.New(report.ErrorMessage(path, err))
	}
	out := cmd.OutOrStdout()
	opts := stats.RenderOptions{
		Color: stats.ShouldUseColor(out, mode),
		Width: outputWidth(out, tableWidth),
	}
	if err := stats.RenderReport(out, rep, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <path>",
		Short: "Analyse a file, store the run and print the JSON report",
		Args:  exactArgs(1),
		RunE:  runRecordCmd,
	}
	cmd.Flags().StringVar(&recordDB, "db", "", "history database path")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &recordDB, fileCfg.History.DBPath)

	path := args[0]
	rep, err := report.AnalyzeFile(path)
	if err != nil {
		return writeAnalysisError(cmd.OutOrStdout(), path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	st, err := openStore(recordDB)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	entry := model.Run{
		File:       abs,
		Title:      rep.Title,
		AnalyzedAt: time.Now(),
		Overall:    rep.Overall,
		Sections:   rep.Sections,
		FlagCount:  len(rep.Flags),
	}
	if _, err := st.InsertRun(context.Background(), entry); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	if err := report.WriteJSON(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded runs and readability trends",
		Args:  maxArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDB, "db", "", "history database path")
	cmd.Flags().IntVar(&historyLast, "last", defaultLast, "limit to last N runs (0 for all)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultWindow, "moving average window")
	cmd.Flags().StringVar(&historySection, "section", "", "trend a single section heading")
	cmd.Flags().StringVar(&historyColor, "color", defaultColor, "color output: auto, always or never")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &historyDB, fileCfg.History.DBPath)
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyIntConfig(cmd, "window", &historyWindow, fileCfg.History.Window)
	applyStringConfig(cmd, "color", &historyColor, fileCfg.Table.Color)

	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	mode, err := parseColorMode(historyColor)
	if err != nil {
		return err
	}

	cfg := model.HistoryConfig{
		Section: historySection,
		Last:    historyLast,
		Window:  historyWindow,
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		cfg.File = abs
	}

	st, err := openStore(historyDB)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	h, err := stats.LoadHistory(context.Background(), st, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	opts := stats.RenderOptions{
		Color: stats.ShouldUseColor(out, mode),
		Width: outputWidth(out, 0),
	}
	if err := stats.RenderHistory(out, h, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <path>",
		Short: "Browse the report in a terminal UI",
		Args:  exactArgs(1),
		RunE:  runViewCmd,
	}
	cmd.Flags().BoolVar(&viewWatch, "watch", true, "re-analyse when the file changes")
	return cmd
}

func runViewCmd(_ *cobra.Command, args []string) error {
	path := args[0]
	var watcher *reportui.Watcher
	if viewWatch {
		w, err := reportui.NewWatcher(path)
		if err != nil {
			return err
		}
		watcher = w
		defer func() {
			if cerr := watcher.Close(); cerr != nil {
				logErrf("failed to close watcher: %v\n", cerr)
			}
		}()
	}

	load := func() (model.Report, error) {
		rep, err := report.AnalyzeFile(path)
		if err != nil {
			return model.Report{}, errors.New(report.ErrorMessage(path, err))
		}
		return rep, nil
	}
	program := tea.NewProgram(reportui.NewModel(path, load, watcher), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

func newCopyeditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copyedit <path>",
		Short: "Check headings, em-dashes and flagged words as JSON",
		Args:  exactArgs(1),
		RunE:  runCopyeditCmd,
	}
	cmd.Flags().StringVar(&copyeditWords, "words", "", "flagged words file (default: built-in list)")
	return cmd
}

func runCopyeditCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "words", &copyeditWords, fileCfg.Copyedit.Words)

	list := copyedit.DefaultWordList()
	if copyeditWords != "" {
		list, err = copyedit.LoadWordList(copyeditWords)
		if err != nil {
			return err
		}
	}

	path := args[0]
	raw, err := report.ReadDocument(path)
	if err != nil {
		return writeAnalysisError(cmd.OutOrStdout(), path, err)
	}
	if err := copyedit.WriteJSON(cmd.OutOrStdout(), copyedit.Check(path, raw, list)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  exactArgs(0),
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func parseColorMode(value string) (model.ColorMode, error) {
	switch mode := model.ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case model.ColorAuto, model.ColorAlways, model.ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (want auto, always or never)", value)
	}
}

func outputWidth(w io.Writer, requested int) int {
	if requested > 0 {
		return requested
	}
	return stats.TerminalWidth(w)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readscore-tools configuration
# Uncomment a value to enable it. CLI flags override config values.
# Analysis thresholds are fixed and cannot be configured.

[history]
# db = %q      # SQLite database for recorded runs
# last = %d               # Runs shown by history (0 for all)
# window = %d              # Moving average window for trends

[table]
# color = %q           # auto, always or never

[copyedit]
# words = "/path/to/flagged-words.txt"  # one entry per line, "word → replacement"
`,
		config.DefaultDBPath(),
		defaultLast,
		defaultWindow,
		defaultColor,
	)
}

func writeLine(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		// Best-effort write of diagnostics.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
