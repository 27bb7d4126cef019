package network

import (
	"errors"
	"testing"

	"github.com/matzehuels/pipeflow/pkg/geom"
)

// referenceSpecs mirrors the built-in level-5-12.
func referenceSpecs() []NodeSpec {
	return []NodeSpec{
		{ID: "a", Kind: Swapper, Slots: 3, Empty: 3, Blocks: 0, Pos: geom.Point{X: 0, Y: 2}},
		{ID: "b", Kind: Transceiver, Slots: 4, Empty: 3, Blocks: 1, Pos: geom.Point{X: 2, Y: 0}, Color: ColorWhite},
		{ID: "c", Kind: Swapper, Slots: 2, Empty: 2, Blocks: 0, Pos: geom.Point{X: 0.5, Y: -2}},
		{ID: "d", Kind: Transceiver, Slots: 2, Empty: 1, Blocks: 1, Pos: geom.Point{X: 8, Y: 2}, Color: ColorOrange},
		{ID: "e", Kind: Transceiver, Slots: 2, Empty: 1, Blocks: 1, Pos: geom.Point{X: 10, Y: 0}, Color: ColorOrange},
		{ID: "f", Kind: Transceiver, Slots: 3, Empty: 3, Blocks: 0, Pos: geom.Point{X: 8.5, Y: -2}, Color: ColorOrange},
	}
}

func referenceTopology(t *testing.T) *Topology {
	t.Helper()
	topo, err := NewTopology(referenceSpecs())
	if err != nil {
		t.Fatalf("NewTopology() error = %v", err)
	}
	return topo
}

const referencePath = "b -> c, c -> f, e -> d, d -> f, f -> e, f -> a, a -> b, c -> a"

func TestNewTopology(t *testing.T) {
	topo := referenceTopology(t)

	if topo.Len() != 6 {
		t.Errorf("Len() = %d, want 6", topo.Len())
	}
	if got := topo.IDs(); len(got) != 6 || got[0] != "a" || got[5] != "f" {
		t.Errorf("IDs() = %v, want [a b c d e f]", got)
	}
	if topo.Capacity() != 16 {
		t.Errorf("Capacity() = %d, want 16", topo.Capacity())
	}
	if !topo.Has("c") || topo.Has("z") {
		t.Error("Has() reports wrong membership")
	}
}

func TestNewTopology_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]NodeSpec) []NodeSpec
		want   error
	}{
		{
			name:   "empty",
			mutate: func([]NodeSpec) []NodeSpec { return nil },
			want:   ErrEmptyTopology,
		},
		{
			name:   "empty id",
			mutate: func(s []NodeSpec) []NodeSpec { s[0].ID = ""; return s },
			want:   ErrInvalidNodeID,
		},
		{
			name:   "duplicate id",
			mutate: func(s []NodeSpec) []NodeSpec { s[1].ID = "a"; return s },
			want:   ErrDuplicateNodeID,
		},
		{
			name:   "capacity mismatch",
			mutate: func(s []NodeSpec) []NodeSpec { s[1].Empty = 1; return s },
			want:   ErrCapacityMismatch,
		},
		{
			name:   "transceiver without color",
			mutate: func(s []NodeSpec) []NodeSpec { s[1].Color = ColorNone; return s },
			want:   ErrMissingColor,
		},
		{
			name:   "swapper with color",
			mutate: func(s []NodeSpec) []NodeSpec { s[0].Color = ColorWhite; return s },
			want:   ErrUnexpectedColor,
		},
		{
			name: "swapper with blocks",
			mutate: func(s []NodeSpec) []NodeSpec {
				s[0].Empty, s[0].Blocks = 2, 1
				return s
			},
			want: ErrUnexpectedColor,
		},
		{
			name:   "shared x-coordinate",
			mutate: func(s []NodeSpec) []NodeSpec { s[2].Pos.X = 0; return s },
			want:   ErrDegenerateGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTopology(tt.mutate(referenceSpecs()))
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTopology() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFresh_Independent(t *testing.T) {
	topo := referenceTopology(t)

	n1 := topo.Fresh()
	n1["b"].Blocks = 0
	n1["b"].InColor = ColorOrange

	n2 := topo.Fresh()
	if n2["b"].Blocks != 1 || n2["b"].InColor != ColorWhite {
		t.Errorf("Fresh() shares state between runs: %+v", *n2["b"])
	}
}

func TestTransfer_BToC(t *testing.T) {
	topo := referenceTopology(t)
	nodes := topo.Fresh()

	if !Connect("b", "c").Transfer(nodes) {
		t.Fatal("Transfer() = false, want true")
	}

	b, c := nodes["b"], nodes["c"]
	if b.Blocks != 0 || b.Empty != 3 {
		t.Errorf("b = blocks %d empty %d, want blocks 0 empty 3", b.Blocks, b.Empty)
	}
	if c.Blocks != 1 || c.Empty != 1 {
		t.Errorf("c = blocks %d empty %d, want blocks 1 empty 1", c.Blocks, c.Empty)
	}
	if c.InColor != ColorWhite || c.OutColor != ColorOrange {
		t.Errorf("c colors = %v/%v, want W/O", c.InColor, c.OutColor)
	}
}

func TestTransfer_NoOp(t *testing.T) {
	topo := referenceTopology(t)

	tests := []struct {
		name string
		conn Connection
	}{
		{"sender empty", Connect("a", "b")},
		{"receiver full", Connect("e", "d")},
		{"unknown node", Connect("b", "z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := topo.Fresh()
			if tt.name == "receiver full" {
				nodes["d"].Empty, nodes["d"].Blocks = 0, 2
			}
			before := nodes.Snapshot()
			if tt.conn.Transfer(nodes) {
				t.Fatal("Transfer() = true, want false")
			}
			after := nodes.Snapshot()
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("node %s changed: %+v -> %+v", before[i].ID, before[i], after[i])
				}
			}
		})
	}
}

func TestTransfer_MovesMinimum(t *testing.T) {
	topo := referenceTopology(t)
	nodes := topo.Fresh()
	nodes["f"].Blocks, nodes["f"].Empty = 3, 0

	Connect("f", "e").Transfer(nodes)

	if nodes["f"].Blocks != 2 || nodes["e"].Blocks != 2 || nodes["e"].Empty != 0 {
		t.Errorf("after f -> e: f.blocks=%d e.blocks=%d e.empty=%d, want 2 2 0",
			nodes["f"].Blocks, nodes["e"].Blocks, nodes["e"].Empty)
	}
	// The sender's empty capacity is never restored.
	if nodes["f"].Empty != 0 {
		t.Errorf("f.Empty = %d, want 0", nodes["f"].Empty)
	}
}

func TestSwapperColorsFixedAfterFirstTransfer(t *testing.T) {
	topo := referenceTopology(t)
	nodes := topo.Fresh()

	a := nodes["a"]
	if a.InColor.IsSet() || a.OutColor.IsSet() {
		t.Fatalf("unused swapper has colors %v/%v", a.InColor, a.OutColor)
	}

	nodes["f"].Blocks = 1
	Connect("f", "a").Transfer(nodes)
	if a.InColor != ColorOrange || a.OutColor != ColorWhite {
		t.Fatalf("a colors = %v/%v, want O/W", a.InColor, a.OutColor)
	}

	// A later transfer in the other color leaves the colors alone.
	Connect("b", "a").Transfer(nodes)
	if a.Blocks != 2 {
		t.Fatalf("a.Blocks = %d, want 2", a.Blocks)
	}
	if a.InColor != ColorOrange || a.OutColor != ColorWhite {
		t.Errorf("a colors changed to %v/%v", a.InColor, a.OutColor)
	}
}

func TestTransceiverColorsNeverChange(t *testing.T) {
	topo := referenceTopology(t)
	nodes := topo.Fresh()

	Connect("b", "f").Transfer(nodes)
	f := nodes["f"]
	if f.InColor != ColorOrange || f.OutColor != ColorOrange {
		t.Errorf("f colors = %v/%v, want O/O", f.InColor, f.OutColor)
	}
}

func TestReplay_ReferencePath(t *testing.T) {
	topo := referenceTopology(t)
	path, err := ParseState(referencePath)
	if err != nil {
		t.Fatalf("ParseState() error = %v", err)
	}

	nodes := topo.Replay(path)

	want := map[string]struct{ blocks, empty int }{
		"a": {0, 0},
		"b": {2, 0},
		"c": {0, 0},
		"d": {0, 0},
		"e": {1, 0},
		"f": {0, 0},
	}
	for id, w := range want {
		n := nodes[id]
		if n.Blocks != w.blocks || n.Empty != w.empty {
			t.Errorf("%s = blocks %d empty %d, want blocks %d empty %d", id, n.Blocks, n.Empty, w.blocks, w.empty)
		}
	}
	if !nodes.Saturated() {
		t.Errorf("EmptyLeft() = %d, want 0", nodes.EmptyLeft())
	}
}

func TestFlow_Cascade(t *testing.T) {
	topo := referenceTopology(t)
	path, _ := ParseState(referencePath)

	// After "a -> b" the block arriving at b falls through "b -> c".
	f := NewFlow(topo.Fresh())
	for _, c := range path[:7] {
		f.Apply(c)
	}
	nodes := f.Nodes()

	if nodes["b"].Blocks != 1 || nodes["c"].Blocks != 1 || nodes["c"].Empty != 0 {
		t.Errorf("b.blocks=%d c.blocks=%d c.empty=%d, want 1 1 0",
			nodes["b"].Blocks, nodes["c"].Blocks, nodes["c"].Empty)
	}
	if nodes["a"].Blocks != 0 || nodes["a"].Empty != 1 {
		t.Errorf("a = blocks %d empty %d, want blocks 0 empty 1", nodes["a"].Blocks, nodes["a"].Empty)
	}
	if got := len(f.Settled()); got != 7 {
		t.Errorf("len(Settled()) = %d, want 7", got)
	}
	if f.Moves() != 8 {
		t.Errorf("Moves() = %d, want 8", f.Moves())
	}
}

func TestFlow_Conservation(t *testing.T) {
	topo := referenceTopology(t)
	path, _ := ParseState(referencePath)
	specs := referenceSpecs()

	initialBlocks := 0
	for _, s := range specs {
		initialBlocks += s.Blocks
	}

	f := NewFlow(topo.Fresh())
	prev := f.Nodes().Snapshot()
	for _, c := range path {
		f.Apply(c)
		nodes := f.Nodes()

		if got := nodes.TotalBlocks(); got != initialBlocks {
			t.Fatalf("after %s: TotalBlocks() = %d, want %d", c, got, initialBlocks)
		}
		for i, n := range nodes.Snapshot() {
			if n.Empty > prev[i].Empty {
				t.Errorf("after %s: %s.Empty grew from %d to %d", c, n.ID, prev[i].Empty, n.Empty)
			}
			if n.Empty+n.Blocks > n.Slots {
				t.Errorf("after %s: %s holds empty %d + blocks %d > slots %d", c, n.ID, n.Empty, n.Blocks, n.Slots)
			}
			if n.Empty < 0 || n.Blocks < 0 {
				t.Errorf("after %s: %s has negative counts", c, n.ID)
			}
		}
		prev = nodes.Snapshot()
	}
}

func TestPair_Symmetric(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, u := range ids {
		for _, v := range ids {
			if u == v {
				continue
			}
			if Connect(u, v).Pair() != Connect(v, u).Pair() {
				t.Errorf("Pair(%s,%s) != Pair(%s,%s)", u, v, v, u)
			}
		}
	}
}

func TestState_ExtendDoesNotAlias(t *testing.T) {
	base := make(State, 1, 4)
	base[0] = Connect("b", "c")

	s1 := base.Extend(Connect("c", "f"))
	s2 := base.Extend(Connect("c", "a"))

	if len(base) != 1 {
		t.Errorf("len(base) = %d, want 1", len(base))
	}
	if s1[1] != Connect("c", "f") || s2[1] != Connect("c", "a") {
		t.Errorf("Extend() aliased: s1=%v s2=%v", s1, s2)
	}
	if !s1.HasPair(PairOf("f", "c")) || s1.HasPair(PairOf("a", "c")) {
		t.Error("HasPair() reports wrong membership")
	}
}

func TestParseState(t *testing.T) {
	s, err := ParseState(referencePath)
	if err != nil {
		t.Fatalf("ParseState() error = %v", err)
	}
	if len(s) != 8 {
		t.Fatalf("len = %d, want 8", len(s))
	}
	if s[0] != Connect("b", "c") || s[7] != Connect("c", "a") {
		t.Errorf("ParseState() = %v", s)
	}
	if s.String() != referencePath {
		t.Errorf("String() = %q, want %q", s.String(), referencePath)
	}

	compact, err := ParseState("b->c,c->f")
	if err != nil || len(compact) != 2 || compact[1] != Connect("c", "f") {
		t.Errorf("ParseState(compact) = %v, %v", compact, err)
	}

	empty, err := ParseState("  ")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParseState(blank) = %v, %v", empty, err)
	}
}

func TestParseState_Errors(t *testing.T) {
	for _, in := range []string{"b c", "b ->", "-> c", "a -> a", "a -> b -> c", "a -> b,,b -> c"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseState(in); !errors.Is(err, ErrMalformedConnection) {
				t.Errorf("ParseState(%q) error = %v, want ErrMalformedConnection", in, err)
			}
		})
	}
}

func TestTopologyValidate(t *testing.T) {
	topo := referenceTopology(t)
	if err := topo.Validate(State{Connect("a", "b")}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := topo.Validate(State{Connect("a", "z")}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Validate() error = %v, want ErrUnknownNode", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	topo := referenceTopology(t)
	nodes := topo.Replay(State{Connect("b", "c")})

	rebuilt := FromSnapshot(nodes.Snapshot())
	for id, n := range nodes {
		if *rebuilt[id] != *n {
			t.Errorf("node %s = %+v, want %+v", id, *rebuilt[id], *n)
		}
	}
}

func TestColor(t *testing.T) {
	if ColorWhite.Flip() != ColorOrange || ColorOrange.Flip() != ColorWhite || ColorNone.Flip() != ColorNone {
		t.Error("Flip() is not an involution on the binary color space")
	}
	for _, in := range []string{"white", "W", " Orange "} {
		if _, err := ParseColor(in); err != nil {
			t.Errorf("ParseColor(%q) error = %v", in, err)
		}
	}
	if _, err := ParseColor("green"); err == nil {
		t.Error("ParseColor(green) succeeded")
	}
}
