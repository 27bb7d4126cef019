package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeflow/pkg/level"
	"github.com/matzehuels/pipeflow/pkg/network"
)

// levelsCommand creates the levels command, which lists and shows levels.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		file   string
		asTOML bool
	)

	cmd := &cobra.Command{
		Use:   "levels [name]",
		Short: "List built-in levels or show one level",
		Long: `Without arguments, list the built-in levels. With a level name (or --level
for a file), print its nodes and barriers. --toml prints the level in the
file format accepted by --level, a starting point for custom levels.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return level.Builtins(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return listLevels()
			}
			var (
				lvl *level.Level
				err error
			)
			if file != "" {
				lvl, err = level.Load(file)
			} else {
				lvl, err = level.Builtin(args[0])
			}
			if err != nil {
				return err
			}
			if asTOML {
				data, err := lvl.Encode()
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			showLevel(lvl)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "level", "l", "", "level file (TOML)")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print the level as TOML")

	return cmd
}

func listLevels() error {
	names := level.Builtins()
	if len(names) == 0 {
		printInfo("No built-in levels")
		return nil
	}
	fmt.Println(StyleTitle.Render("Built-in levels"))
	for _, name := range names {
		lvl, err := level.Builtin(name)
		if err != nil {
			return err
		}
		printKeyValue(name, fmt.Sprintf("%d nodes, capacity %d", lvl.Topology.Len(), lvl.Topology.Capacity()))
	}
	return nil
}

func showLevel(lvl *level.Level) {
	fmt.Println(StyleTitle.Render(lvl.Name))
	printDetail("source: %s", lvl.Source)
	printNodeTable(orderedNodes(lvl.Topology, lvl.Topology.Fresh()))

	for _, s := range lvl.Topology.Specs() {
		printKeyValue(s.ID, fmt.Sprintf("%s at %s", s.Kind, s.Pos))
	}
	printKeyValue("blocked", formatPairs(lvl.Blocking.Unconditional))
	printKeyValue("if white", formatPairs(lvl.Blocking.Conditional))
}

func formatPairs(ps []network.Pair) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p[0] + "-" + p[1]
	}
	return strings.Join(parts, ", ")
}
