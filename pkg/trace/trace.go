// Package trace replays one fixed path through the flow engine and records
// the state of every node after each connection.
//
// A trace performs no search and checks neither validity nor geometry: it
// shows what the flow does, not whether the path is legal. Use
// [search.Engine.Verify] for that.
package trace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/observability"
)

// DefaultPath is the path traced when none is given.
const DefaultPath = "b -> c, c -> f, e -> d, d -> f, f -> e, f -> a, a -> b, c -> a"

// Snapshot is the node configuration after a number of connections.
type Snapshot struct {
	// Step is the number of connections applied; 0 is the base configuration.
	Step int
	// Connections lists the connections applied so far.
	Connections network.State
	// Moves counts the transfers the last connection caused, cascades
	// included.
	Moves int
	// Nodes holds node copies in topology order.
	Nodes []network.Node
}

// Run applies path to a fresh configuration of topo and returns the base
// snapshot followed by one snapshot per connection.
func Run(ctx context.Context, topo *network.Topology, path network.State) ([]Snapshot, error) {
	if err := topo.Validate(path); err != nil {
		return nil, err
	}

	flow := network.NewFlow(topo.Fresh())
	snaps := make([]Snapshot, 0, len(path)+1)
	snaps = append(snaps, snapshot(topo, flow, 0, 0))

	for i, c := range path {
		if err := ctx.Err(); err != nil {
			return snaps, err
		}
		before := flow.Moves()
		flow.Apply(c)
		moves := flow.Moves() - before
		observability.Trace().OnTraceStep(ctx, i+1, c.Name(), moves)
		snaps = append(snaps, snapshot(topo, flow, i+1, moves))
	}
	return snaps, nil
}

func snapshot(topo *network.Topology, flow *network.Flow, step, moves int) Snapshot {
	nodes := flow.Nodes()
	ids := topo.IDs()
	out := make([]network.Node, len(ids))
	for i, id := range ids {
		out[i] = *nodes[id]
	}
	return Snapshot{Step: step, Connections: flow.Settled(), Moves: moves, Nodes: out}
}

// Final returns the configuration after the last step.
func Final(snaps []Snapshot) []network.Node {
	if len(snaps) == 0 {
		return nil
	}
	return snaps[len(snaps)-1].Nodes
}

// Table renders nodes as a plain bordered table with one row per node.
func Table(nodes []network.Node) string {
	return newTable(nodes).String()
}

// StyledTable renders nodes like [Table] with a colored header and border for
// terminal output.
func StyledTable(nodes []network.Node, header, border lipgloss.Style) string {
	return newTable(nodes).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return s.Inherit(header)
			}
			return s
		}).
		String()
}

func newTable(nodes []network.Node) *table.Table {
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		rows[i] = []string{
			n.ID,
			strconv.Itoa(n.Slots),
			strconv.Itoa(n.Empty),
			strconv.Itoa(n.Blocks),
			n.InColor.String(),
			n.OutColor.String(),
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Node", "Slots", "Empty", "Blocks", "In", "Out").
		Rows(rows...)
}

// Format renders a snapshot as a log block: a header line and the node
// table.
func (s Snapshot) Format() string {
	var b strings.Builder
	if s.Step == 0 {
		b.WriteString("Nodes:\n")
	} else {
		fmt.Fprintf(&b, "Connections: %s\n", s.Connections)
		fmt.Fprintf(&b, "Step %d moved %d time(s)\n", s.Step, s.Moves)
	}
	b.WriteString(Table(s.Nodes))
	b.WriteString("\n")
	return b.String()
}

// separator divides snapshots in a trace log.
var separator = strings.Repeat("-", 72)

// Writer receives formatted trace output, one block at a time.
type Writer interface {
	WriteLines(text string) error
}

// Write formats every snapshot into w, separating steps with a rule.
func Write(w Writer, snaps []Snapshot) error {
	for _, s := range snaps {
		text := s.Format()
		if s.Step > 0 {
			text = separator + "\n" + text
		}
		if err := w.WriteLines(text); err != nil {
			return err
		}
	}
	return nil
}
