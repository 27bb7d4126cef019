package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/search"
	"github.com/matzehuels/pipeflow/pkg/trace"
)

// checkCommand creates the check command, which validates one fixed path.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		lf   levelFlags
		path string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a connection sequence against the validity rules",
		Long: `Check a fixed connection sequence step by step, the way the search checks a
candidate against its parent state. Stops at the first rejected connection and
reports why. Exits non-zero if the path is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), lf, path)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&path, "path", "p", trace.DefaultPath, `connections as "a -> b, c -> d"`)

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, lf levelFlags, text string) error {
	lvl, err := lf.load()
	if err != nil {
		return err
	}
	path, err := parsePath(text)
	if err != nil {
		return err
	}

	engine, err := search.New(lvl.Topology, lvl.Blocking, search.Options{Scope: lvl.Name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLevel, err, "prepare checks for %s", lvl.Name)
	}
	v, err := engine.Verify(path)
	if err != nil {
		return pathError(err, "check path")
	}

	loggerFromContext(ctx).Debug("checked", "level", lvl.Name, "steps", len(v.Steps), "accepted", v.Accepted())

	for _, step := range v.Steps {
		if step.Verdict.Accepted() {
			printSuccess("%d. %s", step.Index+1, step.Connection)
		} else {
			printError("%d. %s: %s", step.Index+1, step.Connection, step.Verdict)
		}
	}
	printNewline()
	printNodeTable(orderedNodes(engine.Topology(), v.Final))

	if err := v.Err(); err != nil {
		return err
	}
	if v.Saturated() {
		printSuccess("Valid; the network is saturated")
	} else {
		printWarning("Valid, but %d empty slots remain", v.Final.EmptyLeft())
	}
	return nil
}

// parsePath parses a path flag, mapping syntax errors to INVALID_PATH.
func parsePath(text string) (network.State, error) {
	path, err := network.ParseState(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "parse path")
	}
	if len(path) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPath, "path is empty")
	}
	return path, nil
}
