// Package cli implements the pipeflow command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/pkg/buildinfo"
	"github.com/matzehuels/pipeflow/pkg/level"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "pipeflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// verbose reports whether debug logging is on. Spinners are hidden then so
// they do not interleave with log lines.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pipeflow enumerates every way to saturate a pipe-flow puzzle",
		Long: `Pipeflow searches a small network of nodes joined by straight pipes for every
ordered sequence of connections that fills all node capacity, subject to
color matching, capacity, barrier and no-crossing rules.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Level Selection
// =============================================================================

// levelFlags selects the level a command runs against.
type levelFlags struct {
	file    string // path to a TOML level file
	builtin string // name of an embedded level
}

func (f *levelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "level", "l", "", "level file (TOML); overrides --builtin")
	cmd.Flags().StringVar(&f.builtin, "builtin", level.Reference, "built-in level name")
	_ = cmd.RegisterFlagCompletionFunc("builtin", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return level.Builtins(), cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *levelFlags) load() (*level.Level, error) {
	if f.file != "" {
		return level.Load(f.file)
	}
	return level.Builtin(f.builtin)
}
