package network

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/pipeflow/pkg/geom"
)

// Kind selects how a node assigns colors on its first inbound transfer.
type Kind uint8

const (
	// Transceiver nodes keep the color they were built with.
	Transceiver Kind = iota
	// Swapper nodes take their colors from the first flow they receive.
	Swapper
)

// String returns "transceiver" or "swapper".
func (k Kind) String() string {
	if k == Swapper {
		return "swapper"
	}
	return "transceiver"
}

// ParseKind parses "transceiver" or "swapper" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transceiver":
		return Transceiver, nil
	case "swapper":
		return Swapper, nil
	}
	return Transceiver, fmt.Errorf("unknown node kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Node is one vertex of the network during a single simulation run.
// Nodes are created from a [Topology] and discarded when the run ends.
type Node struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	Slots    int        `json:"slots"`
	Empty    int        `json:"empty"`
	Blocks   int        `json:"blocks"`
	Pos      geom.Point `json:"pos"`
	InColor  Color      `json:"in_color"`
	OutColor Color      `json:"out_color"`
}

// receiveColors returns a node's colors after it receives flow emitted in the
// sender's color. Colors are assigned once, on the first inbound transfer, and
// only swappers have unassigned colors to begin with.
func receiveColors(kind Kind, in, out, sender Color) (Color, Color) {
	if in.IsSet() {
		return in, out
	}
	if kind == Swapper {
		return sender, sender.Flip()
	}
	return in, out
}

// Nodes maps node identifiers to the nodes of one simulation run.
type Nodes map[string]*Node

// EmptyLeft returns the total unfilled capacity over all nodes.
func (ns Nodes) EmptyLeft() int {
	total := 0
	for _, n := range ns {
		total += n.Empty
	}
	return total
}

// Saturated reports whether every node's capacity has been filled.
func (ns Nodes) Saturated() bool { return ns.EmptyLeft() == 0 }

// TotalBlocks returns the number of blocks held over all nodes.
func (ns Nodes) TotalBlocks() int {
	total := 0
	for _, n := range ns {
		total += n.Blocks
	}
	return total
}

// Snapshot returns copies of the nodes ordered by ID.
func (ns Nodes) Snapshot() []Node {
	ids := make([]string, 0, len(ns))
	for id := range ns {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = *ns[id]
	}
	return out
}

// FromSnapshot rebuilds a node map from copies produced by [Nodes.Snapshot].
func FromSnapshot(snap []Node) Nodes {
	ns := make(Nodes, len(snap))
	for i := range snap {
		n := snap[i]
		ns[n.ID] = &n
	}
	return ns
}
