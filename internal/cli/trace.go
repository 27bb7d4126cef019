package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/pkg/io"
	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/trace"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	levelFlags
	path      string // literal path
	solutions string // JSON report to pick a path from
	pick      int    // 1-based solution index in the report
	logPath   string // explicit trace log path
	logDir    string // directory for the default trace log path
}

// traceCommand creates the trace command, which replays one path and logs a
// node table after every connection.
func (c *CLI) traceCommand() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Replay one connection sequence and log every node after each step",
		Long: `Replay a fixed connection sequence through the flow engine. After each
connection the slots, empty capacity, blocks and colors of every node are
appended to a trace log. No validity or geometry checks are applied; use
'check' for that.

The path comes from --path or from a solve report (--solutions, --pick).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), opts)
		},
	}

	opts.levelFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.path, "path", "p", trace.DefaultPath, `connections as "a -> b, c -> d"`)
	cmd.Flags().StringVar(&opts.solutions, "solutions", "", "JSON report written by 'solve --json'")
	cmd.Flags().IntVar(&opts.pick, "pick", 1, "solution number to replay from --solutions")
	cmd.Flags().StringVarP(&opts.logPath, "log", "o", "", "trace log file (default: <log-dir>/<level>-trace-logs/<timestamp>.txt)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", ".", "directory for the default trace log")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, opts traceOpts) error {
	logger := loggerFromContext(ctx)

	lvl, err := opts.load()
	if err != nil {
		return err
	}

	path, err := opts.resolvePath(lvl.Name)
	if err != nil {
		return err
	}
	if opts.solutions != "" {
		logger.Info("Replaying solution", "report", opts.solutions, "pick", opts.pick)
	}

	defer newLogHooks(logger, nil).install()()

	snaps, err := trace.Run(ctx, lvl.Topology, path)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return pathError(err, "trace %s", lvl.Name)
	}

	l, err := io.OpenLog(resolveLogPath(opts.logPath, opts.logDir, lvl.Name+"-trace", time.Now()))
	if err != nil {
		return err
	}
	defer l.Close()
	if err := trace.Write(l, snaps); err != nil {
		return err
	}
	if err := l.Close(); err != nil {
		return err
	}

	final := trace.Final(snaps)
	printSuccess("Traced %d connections on %s", len(path), lvl.Name)
	printFile(l.Path())
	printNodeTable(final)

	left := 0
	for _, n := range final {
		left += n.Empty
	}
	if left == 0 {
		printSuccess("The network is saturated")
	} else {
		printInfo("%d empty slots remain", left)
	}
	return nil
}

// resolvePath returns the path to trace: a pick from the report if one is
// given, else the literal path.
func (o traceOpts) resolvePath(levelName string) (network.State, error) {
	if o.solutions == "" {
		return parsePath(o.path)
	}
	rep, err := io.ImportJSON(o.solutions)
	if err != nil {
		return nil, err
	}
	if rep.Level != levelName {
		printWarning("Report is for level %s, tracing on %s", rep.Level, levelName)
	}
	return rep.Pick(o.pick)
}
