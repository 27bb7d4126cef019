package network

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/pipeflow/pkg/geom"
)

var (
	// ErrEmptyTopology is returned by [NewTopology] when no nodes are given.
	ErrEmptyTopology = errors.New("topology has no nodes")

	// ErrInvalidNodeID is returned by [NewTopology] for an empty node ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [NewTopology] when two nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrCapacityMismatch is returned by [NewTopology] when a node's counts are
	// negative or slots != empty + blocks.
	ErrCapacityMismatch = errors.New("slots must equal empty + blocks")

	// ErrMissingColor is returned by [NewTopology] for a transceiver without a color.
	ErrMissingColor = errors.New("transceiver requires a color")

	// ErrUnexpectedColor is returned by [NewTopology] for a swapper that has a
	// color or starts with blocks it could not color.
	ErrUnexpectedColor = errors.New("swapper must start uncolored and without blocks")

	// ErrDegenerateGeometry is returned by [NewTopology] when two nodes share an
	// x-coordinate, leaving the connection between them without a slope.
	ErrDegenerateGeometry = errors.New("nodes share an x-coordinate")

	// ErrUnknownNode is returned when a connection references a node that is
	// not part of the topology.
	ErrUnknownNode = errors.New("unknown node")
)

// NodeSpec is the base configuration of one node.
type NodeSpec struct {
	ID     string
	Kind   Kind
	Slots  int
	Empty  int
	Blocks int
	Pos    geom.Point
	// Color is the fixed color of a transceiver. Swappers leave it unset.
	Color Color
}

// Topology is the immutable base configuration of a level. The order of node
// IDs is the enumeration order used by the search.
//
// Topology is safe for concurrent use; nothing mutates it after construction.
type Topology struct {
	order []string
	specs map[string]NodeSpec
}

// NewTopology validates specs and builds a topology. The order of specs is
// kept as the node enumeration order.
//
// Every pair of nodes is a potential connection, so no two nodes may share an
// x-coordinate: the line through them would have no slope.
func NewTopology(specs []NodeSpec) (*Topology, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyTopology
	}

	t := &Topology{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]NodeSpec, len(specs)),
	}
	for _, s := range specs {
		if err := validateSpec(s); err != nil {
			return nil, err
		}
		if _, ok := t.specs[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNodeID, s.ID)
		}
		t.order = append(t.order, s.ID)
		t.specs[s.ID] = s
	}

	for i, a := range t.order {
		for _, b := range t.order[i+1:] {
			pa, pb := t.specs[a].Pos, t.specs[b].Pos
			if _, err := geom.LineOf(pa, pb); err != nil {
				return nil, fmt.Errorf("%w: %s %v and %s %v", ErrDegenerateGeometry, a, pa, b, pb)
			}
		}
	}
	return t, nil
}

func validateSpec(s NodeSpec) error {
	if s.ID == "" {
		return ErrInvalidNodeID
	}
	if s.Slots < 0 || s.Empty < 0 || s.Blocks < 0 || s.Slots != s.Empty+s.Blocks {
		return fmt.Errorf("%w: node %s has slots=%d empty=%d blocks=%d",
			ErrCapacityMismatch, s.ID, s.Slots, s.Empty, s.Blocks)
	}
	switch s.Kind {
	case Transceiver:
		if !s.Color.IsSet() {
			return fmt.Errorf("%w: node %s", ErrMissingColor, s.ID)
		}
	case Swapper:
		if s.Color.IsSet() || s.Blocks > 0 {
			return fmt.Errorf("%w: node %s", ErrUnexpectedColor, s.ID)
		}
	}
	return nil
}

// IDs returns the node identifiers in enumeration order.
func (t *Topology) IDs() []string { return slices.Clone(t.order) }

// Len returns the number of nodes.
func (t *Topology) Len() int { return len(t.order) }

// Has reports whether id names a node of the topology.
func (t *Topology) Has(id string) bool {
	_, ok := t.specs[id]
	return ok
}

// Spec returns the base configuration of node id.
func (t *Topology) Spec(id string) (NodeSpec, bool) {
	s, ok := t.specs[id]
	return s, ok
}

// Specs returns all node configurations in enumeration order.
func (t *Topology) Specs() []NodeSpec {
	out := make([]NodeSpec, len(t.order))
	for i, id := range t.order {
		out[i] = t.specs[id]
	}
	return out
}

// Capacity returns the sum of all slots.
func (t *Topology) Capacity() int {
	total := 0
	for _, s := range t.specs {
		total += s.Slots
	}
	return total
}

// Segment returns the straight segment drawn by connection c.
func (t *Topology) Segment(c Connection) (geom.Segment, error) {
	start, ok := t.specs[c.Start]
	if !ok {
		return geom.Segment{}, fmt.Errorf("%w: %q", ErrUnknownNode, c.Start)
	}
	end, ok := t.specs[c.End]
	if !ok {
		return geom.Segment{}, fmt.Errorf("%w: %q", ErrUnknownNode, c.End)
	}
	return geom.Segment{A: start.Pos, B: end.Pos}, nil
}

// Validate checks that every connection of s joins two distinct known nodes.
func (t *Topology) Validate(s State) error {
	for _, c := range s {
		if !t.Has(c.Start) {
			return fmt.Errorf("%w: %q in %s", ErrUnknownNode, c.Start, c)
		}
		if !t.Has(c.End) {
			return fmt.Errorf("%w: %q in %s", ErrUnknownNode, c.End, c)
		}
		if c.Start == c.End {
			return fmt.Errorf("%w: %s connects a node to itself", ErrMalformedConnection, c)
		}
	}
	return nil
}

// Fresh returns a new node map in the base configuration.
func (t *Topology) Fresh() Nodes {
	nodes := make(Nodes, len(t.specs))
	for id, s := range t.specs {
		nodes[id] = &Node{
			ID:       id,
			Kind:     s.Kind,
			Slots:    s.Slots,
			Empty:    s.Empty,
			Blocks:   s.Blocks,
			Pos:      s.Pos,
			InColor:  s.Color,
			OutColor: s.Color,
		}
	}
	return nodes
}

// Replay builds a fresh node map and propagates the connections of s through
// it. The result is the exact node configuration reached by state s.
func (t *Topology) Replay(s State) Nodes {
	nodes := t.Fresh()
	Propagate(s, nodes)
	return nodes
}
