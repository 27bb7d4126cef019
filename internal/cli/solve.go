package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/pkg/cache"
	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/io"
	"github.com/matzehuels/pipeflow/pkg/search"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	levelFlags
	workers  int    // frontier states evaluated concurrently
	maxDepth int    // stop after states of this length; 0 = no limit
	memo     bool   // memoize state configurations
	memoMax  int    // memo entry bound; 0 = unbounded
	logPath  string // explicit solution log path
	logDir   string // directory for the default log path
	jsonPath string // JSON report path; empty = none
}

// solveCommand creates the solve command, which runs the full search.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find every connection sequence that saturates a level",
		Long: `Search a level breadth-first for every ordered sequence of connections that
leaves no empty capacity in any node.

Each solution is appended to a log file as soon as its level is finished:

  b -> c, c -> a, d -> e, e -> f, f -> a, a -> b, c -> f, f -> d | Connections: 8

By default the log goes to ./<level>-logs/<timestamp>.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), opts)
		},
	}

	opts.levelFlags.register(cmd)
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "frontier states evaluated in parallel")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "stop after this many connections (0 = no limit)")
	cmd.Flags().BoolVar(&opts.memo, "memo", false, "memoize the configuration of each state")
	cmd.Flags().IntVar(&opts.memoMax, "memo-max", 0, "maximum memoized states (0 = unbounded)")
	cmd.Flags().StringVarP(&opts.logPath, "log", "o", "", "solution log file (default: <log-dir>/<level>-logs/<timestamp>.txt)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", ".", "directory for the default solution log")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "also write a JSON report to this file")

	return cmd
}

// runSolve loads the level, runs the search into the log, and reports.
func (c *CLI) runSolve(ctx context.Context, opts solveOpts) error {
	lvl, err := opts.load()
	if err != nil {
		return err
	}

	runID := uuid.New()
	logger := loggerFromContext(ctx).With("run", runID.String()[:8], "level", lvl.Name)

	sink, err := io.OpenLog(resolveLogPath(opts.logPath, opts.logDir, lvl.Name, time.Now()))
	if err != nil {
		return err
	}
	defer sink.Close()

	searchOpts := search.Options{
		Workers:  opts.workers,
		MaxDepth: opts.maxDepth,
		Memoize:  opts.memo,
		Scope:    lvl.Name,
	}
	if opts.memo {
		mc := cache.NewMemoryCache(opts.memoMax)
		defer mc.Close()
		searchOpts.Cache = mc
	}
	engine, err := search.New(lvl.Topology, lvl.Blocking, searchOpts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLevel, err, "prepare search for %s", lvl.Name)
	}

	var spinner *Spinner
	if !c.verbose() {
		spinner = newSpinnerWithContext(ctx, "Searching...")
		spinner.Start()
	}
	hooks := newLogHooks(logger, spinner)
	defer hooks.install()()

	logger.Info("Solving", "nodes", lvl.Topology.Len(), "workers", max(opts.workers, 1), "log", sink.Path())
	prog := newProgress(logger)
	res, err := engine.Run(ctx, sink)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Search stopped")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		if stderrors.Is(err, context.Canceled) && res != nil {
			printWarning("Interrupted after %d levels with %d solutions", res.Stats.Depth, len(res.Solutions))
			printFile(sink.Path())
		}
		return err
	}
	prog.done(fmt.Sprintf("Found %d solutions", len(res.Solutions)))

	if opts.memo {
		hits, misses := hooks.cacheSummary()
		logger.Debug("memo", "hits", hits, "misses", misses)
	}

	if err := sink.Close(); err != nil {
		return err
	}

	printSuccess("Found %s solutions for %s", StyleNumber.Render(fmt.Sprint(len(res.Solutions))), lvl.Name)
	printFile(sink.Path())
	printSearchStats(res.Stats)
	if res.Truncated {
		printWarning("Stopped at depth %d; deeper solutions were not searched", opts.maxDepth)
	}

	if opts.jsonPath != "" {
		report := io.NewReport(runID, lvl.Name, res, time.Now())
		if err := io.ExportJSON(report, opts.jsonPath); err != nil {
			return errors.Wrap(errors.ErrCodeLogIO, err, "write report")
		}
		printFile(opts.jsonPath)
		if len(res.Solutions) > 0 {
			printNewline()
			printNextStep("Replay a solution", fmt.Sprintf("%s trace --solutions %s --pick 1", appName, opts.jsonPath))
		}
	}
	return nil
}
