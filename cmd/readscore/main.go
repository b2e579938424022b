// Package main provides the readscore entrypoint: one markdown file in, one
// JSON readability report out.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/readscore/internal/report"
)

const usage = "Usage: readscore <path-to-markdown-file>"

// errUsage marks a wrong argument count.
var errUsage = errors.New(usage)

// errReported signals that the failure was already written as a JSON payload.
var errReported = errors.New("error already reported")

const argTerminator = "--"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd := newRootCmd()
	// The leading terminator stops cobra from resolving a path such as
	// "__complete" as its hidden completion command.
	rootCmd.SetArgs(append([]string{argTerminator}, args...))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		writeLine(stderr, usage)
	case errors.Is(err, errReported):
	default:
		writeLine(stderr, "Error: "+err.Error())
	}
	return 1
}

// newRootCmd builds a command without flags or subcommands, so every
// argument, including "-h" and "help", is taken as a file path.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "readscore <path-to-markdown-file>",
		Short:              "Readability scores for markdown documents",
		Args:               exactOneArg,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runAnalyzeCmd,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

// paths drops the terminator added by run.
func paths(args []string) []string {
	if len(args) > 0 && args[0] == argTerminator {
		return args[1:]
	}
	return args
}

func exactOneArg(_ *cobra.Command, args []string) error {
	if len(paths(args)) != 1 {
		return errUsage
	}
	return nil
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	path := paths(args)[0]
	out := cmd.OutOrStdout()
	rep, err := report.AnalyzeFile(path)
	if err != nil {
		if werr := report.WriteError(out, report.ErrorMessage(path, err)); werr != nil {
			return werr
		}
		return errReported
	}
	if err := report.WriteJSON(out, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		// Best-effort write of diagnostics.
		_ = err
	}
}
