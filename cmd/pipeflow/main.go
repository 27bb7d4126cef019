package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/internal/cli"
	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/search"
)

// Exit codes. Interrupted runs use the shell convention for SIGINT.
const (
	exitOK          = 0
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(report(os.Stderr, err))
}

// run executes the command tree with args, logging to logs.
func run(ctx context.Context, args []string, logs io.Writer) error {
	c := cli.New(logs, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	addVerboseFlag(c, root)
	return root.ExecuteContext(ctx)
}

// addVerboseFlag registers --verbose and applies it before the root attaches
// its logger to the command context.
func addVerboseFlag(c *cli.CLI, root *cobra.Command) {
	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging; reports every search level and solution")

	attach := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if attach == nil {
			return nil
		}
		return attach(cmd, args)
	}
}

// report prints err, if any, and returns the process exit code for it.
func report(w io.Writer, err error) int {
	code := exitCode(err)
	if code != exitOK && code != exitInterrupted {
		fmt.Fprintln(w, "Error:", err)
	}
	return code
}

// exitCode maps an error to an exit code. Rejected paths and failed runs
// exit 1; input the tool could not use exits 2.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, context.Canceled):
		return exitInterrupted
	case stderrors.Is(err, search.ErrRejected):
		return exitFailure
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLevel, errors.ErrCodeInvalidNode,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidPath, errors.ErrCodeDegenerateGeometry,
		errors.ErrCodeUnknownNode, errors.ErrCodeLevelNotFound, errors.ErrCodeFileNotFound:
		return exitBadInput
	}
	return exitFailure
}
