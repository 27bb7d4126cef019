package network

// Flow applies connections one at a time to a node map, cascading blocks
// through connections that have already settled.
//
// A Flow owns its node map for the duration of a run. It is not safe for
// concurrent use.
type Flow struct {
	nodes   Nodes
	settled State
	moves   int
}

// NewFlow starts a flow over nodes. The map is mutated by [Flow.Apply].
func NewFlow(nodes Nodes) *Flow {
	return &Flow{nodes: nodes}
}

// Apply transfers along c, records it as settled, and then follows the
// chain from c's end node: among the settled connections leaving that node,
// in settlement order, the first one whose transfer succeeds moves the chain
// to its own end node. The chain stops at a node with no settled outgoing
// connection or when none of them can transfer.
//
// Every successful transfer fills at least one unit of capacity, so the chain
// ends after at most as many steps as there was empty capacity.
func (f *Flow) Apply(c Connection) {
	if c.Transfer(f.nodes) {
		f.moves++
	}
	f.settled = append(f.settled, c)

	at := c.End
	for {
		next, ok := f.fallThrough(at)
		if !ok {
			return
		}
		at = next
	}
}

// fallThrough tries the settled connections leaving node id in order and
// returns the end node of the first one that transfers.
func (f *Flow) fallThrough(id string) (string, bool) {
	for _, c := range f.settled {
		if c.Start != id {
			continue
		}
		if c.Transfer(f.nodes) {
			f.moves++
			return c.End, true
		}
	}
	return "", false
}

// Nodes returns the node map the flow is operating on.
func (f *Flow) Nodes() Nodes { return f.nodes }

// Settled returns a copy of the connections applied so far.
func (f *Flow) Settled() State {
	out := make(State, len(f.settled))
	copy(out, f.settled)
	return out
}

// Moves returns the number of successful transfers so far, including
// cascaded ones.
func (f *Flow) Moves() int { return f.moves }

// Propagate applies the connections of s to nodes in sequence order.
func Propagate(s State, nodes Nodes) {
	f := NewFlow(nodes)
	for _, c := range s {
		f.Apply(c)
	}
}
