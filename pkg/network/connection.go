package network

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedConnection is returned when a connection label cannot be parsed
// or joins a node to itself.
var ErrMalformedConnection = errors.New("malformed connection")

// Pair is the unordered pair of a connection's endpoints, stored sorted so
// that both directions of a connection compare equal.
type Pair [2]string

// PairOf returns the unordered pair {a, b}.
func PairOf(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{a, b}
}

// Connection is a directed pipe from Start to End.
type Connection struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Connect returns the connection start -> end.
func Connect(start, end string) Connection {
	return Connection{Start: start, End: end}
}

// Name returns the human-readable label "start -> end".
func (c Connection) Name() string { return c.Start + " -> " + c.End }

// String implements fmt.Stringer.
func (c Connection) String() string { return c.Name() }

// Pair returns the unordered endpoint pair used for duplicate detection.
func (c Connection) Pair() Pair { return PairOf(c.Start, c.End) }

// Transfer moves min(start.Blocks, end.Empty) blocks from Start to End and
// reports whether anything moved. The receiver takes its colors from the
// sender on its first inbound transfer.
//
// Transfer is a no-op returning false when the sender holds no blocks, the
// receiver has no capacity left, or either node is missing.
func (c Connection) Transfer(nodes Nodes) bool {
	start, end := nodes[c.Start], nodes[c.End]
	if start == nil || end == nil || start.Blocks <= 0 || end.Empty <= 0 {
		return false
	}

	n := min(start.Blocks, end.Empty)
	start.Blocks -= n
	end.Blocks += n
	end.Empty -= n

	end.InColor, end.OutColor = receiveColors(end.Kind, end.InColor, end.OutColor, start.OutColor)
	return true
}

// State is an ordered sequence of accepted connections: one path through the
// search tree. States are never modified in place; use [State.Extend].
type State []Connection

// Extend returns a new state with c appended. s is left untouched.
func (s State) Extend(c Connection) State {
	next := make(State, len(s), len(s)+1)
	copy(next, s)
	return append(next, c)
}

// HasPair reports whether any connection of s joins the same two nodes as p.
func (s State) HasPair(p Pair) bool {
	for _, c := range s {
		if c.Pair() == p {
			return true
		}
	}
	return false
}

// Names returns the connection labels in sequence order.
func (s State) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name()
	}
	return names
}

// String joins the connection labels with ", ".
func (s State) String() string { return strings.Join(s.Names(), ", ") }

// ParseState parses a comma-separated list of "start -> end" labels, the
// format produced by [State.String]. Whitespace around labels and node IDs
// is ignored; an empty string yields an empty state.
func ParseState(text string) (State, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return State{}, nil
	}

	parts := strings.Split(text, ",")
	s := make(State, 0, len(parts))
	for _, part := range parts {
		start, end, ok := strings.Cut(part, "->")
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		if !ok || start == "" || end == "" || strings.Contains(end, "->") {
			return nil, fmt.Errorf("%w: %q", ErrMalformedConnection, strings.TrimSpace(part))
		}
		if start == end {
			return nil, fmt.Errorf("%w: %q connects a node to itself", ErrMalformedConnection, strings.TrimSpace(part))
		}
		s = append(s, Connect(start, end))
	}
	return s, nil
}
