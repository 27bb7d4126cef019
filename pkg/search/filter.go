package search

import (
	"fmt"

	"github.com/matzehuels/pipeflow/pkg/geom"
	"github.com/matzehuels/pipeflow/pkg/network"
)

// Reason classifies the outcome of a validity check.
type Reason uint8

const (
	// Accepted means the candidate passed every check.
	Accepted Reason = iota
	// Blocked means a barrier forbids the pair.
	Blocked
	// ColorMismatch means the end node expects a different color.
	ColorMismatch
	// NoBlocks means the start node has nothing to send.
	NoBlocks
	// NoCapacity means the end node has no room left.
	NoCapacity
	// DuplicatePair means the state already joins the two nodes.
	DuplicatePair
	// Crossing means the candidate crosses a connection of the state.
	Crossing
)

// Reasons lists every Reason in check order.
var Reasons = []Reason{Accepted, Blocked, ColorMismatch, NoBlocks, NoCapacity, DuplicatePair, Crossing}

var reasonNames = [...]string{
	Accepted:      "accepted",
	Blocked:       "blocked",
	ColorMismatch: "color mismatch",
	NoBlocks:      "no blocks",
	NoCapacity:    "no capacity",
	DuplicatePair: "duplicate pair",
	Crossing:      "crossing",
}

// String returns a short lower-case description.
func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// Verdict is the result of checking one candidate connection.
type Verdict struct {
	Reason Reason
	// Conflict is the existing connection responsible for a DuplicatePair or
	// Crossing rejection.
	Conflict network.Connection
}

// Accepted reports whether the candidate passed every check.
func (v Verdict) Accepted() bool { return v.Reason == Accepted }

// String describes the verdict, naming the conflicting connection if any.
func (v Verdict) String() string {
	switch v.Reason {
	case DuplicatePair:
		return fmt.Sprintf("%s: already connected by %s", v.Reason, v.Conflict)
	case Crossing:
		return fmt.Sprintf("%s: crosses %s", v.Reason, v.Conflict)
	}
	return v.Reason.String()
}

// Blocking lists node pairs that may never be connected. Conditional pairs
// are only blocked while the start node emits [network.ColorWhite].
type Blocking struct {
	Unconditional []network.Pair
	Conditional   []network.Pair
}

type edgeGeometry struct {
	seg  geom.Segment
	line geom.Line
}

// Filter decides whether a candidate connection may extend a state.
// A Filter is immutable after construction and safe for concurrent use.
type Filter struct {
	unconditional map[network.Pair]struct{}
	conditional   map[network.Pair]struct{}
	edges         map[network.Pair]edgeGeometry
}

// NewFilter precomputes the segment and line of every node pair of topo.
// It fails if a blocking pair names an unknown node or if a pair of nodes has
// no line (shared x-coordinate).
func NewFilter(topo *network.Topology, blocking Blocking) (*Filter, error) {
	f := &Filter{
		unconditional: make(map[network.Pair]struct{}, len(blocking.Unconditional)),
		conditional:   make(map[network.Pair]struct{}, len(blocking.Conditional)),
		edges:         make(map[network.Pair]edgeGeometry),
	}

	for _, set := range []struct {
		pairs []network.Pair
		into  map[network.Pair]struct{}
	}{
		{blocking.Unconditional, f.unconditional},
		{blocking.Conditional, f.conditional},
	} {
		for _, p := range set.pairs {
			for _, id := range p {
				if !topo.Has(id) {
					return nil, fmt.Errorf("blocking pair %v: %w: %q", p, network.ErrUnknownNode, id)
				}
			}
			set.into[network.PairOf(p[0], p[1])] = struct{}{}
		}
	}

	ids := topo.IDs()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			c := network.Connect(a, b)
			seg, err := topo.Segment(c)
			if err != nil {
				return nil, err
			}
			line, err := seg.Line()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", network.ErrDegenerateGeometry, c, err)
			}
			f.edges[c.Pair()] = edgeGeometry{seg: seg, line: line}
		}
	}
	return f, nil
}

// Check applies the validity checks to candidate c against state and the
// node configuration the state produces. Both endpoints of c must be nodes
// of the topology the filter was built for.
func (f *Filter) Check(state network.State, nodes network.Nodes, c network.Connection) Verdict {
	start, end := nodes[c.Start], nodes[c.End]
	pair := c.Pair()

	if f.blocked(pair, start.OutColor) {
		return Verdict{Reason: Blocked}
	}
	if end.InColor.IsSet() && end.InColor != start.OutColor {
		return Verdict{Reason: ColorMismatch}
	}
	if start.Blocks == 0 {
		return Verdict{Reason: NoBlocks}
	}
	if end.Empty == 0 {
		return Verdict{Reason: NoCapacity}
	}

	cand := f.edges[pair]
	for _, existing := range state {
		if existing.Pair() == pair {
			return Verdict{Reason: DuplicatePair, Conflict: existing}
		}
		if sharesNode(existing, c) {
			continue
		}
		other := f.edges[existing.Pair()]
		if geom.Intersects(cand.line, cand.seg, other.line, other.seg) {
			return Verdict{Reason: Crossing, Conflict: existing}
		}
	}
	return Verdict{Reason: Accepted}
}

func (f *Filter) blocked(p network.Pair, startColor network.Color) bool {
	if _, ok := f.unconditional[p]; ok {
		return true
	}
	if startColor == network.ColorWhite {
		_, ok := f.conditional[p]
		return ok
	}
	return false
}

// sharesNode reports whether two connections with different pairs meet at a
// node. Such connections touch only at that node and never cross.
func sharesNode(a, b network.Connection) bool {
	return a.Start == b.Start || a.Start == b.End || a.End == b.Start || a.End == b.End
}
