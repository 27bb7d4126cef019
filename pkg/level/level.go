// Package level loads puzzle levels: the base topology and the blocking
// configuration the search runs against.
//
// Levels are TOML files. The reference level is embedded in the binary and
// available through [Builtin]:
//
//	lvl, err := level.Builtin(level.Reference)
//
// Custom levels are read with [Load] or [Parse]. Every load validates the
// whole level up front; nothing is checked lazily during a search.
package level

import (
	"bytes"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/geom"
	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/search"
)

// Reference is the name of the built-in reference level.
const Reference = "level-5-12"

//go:embed levels/*.toml
var builtinFS embed.FS

// File is the on-disk layout of a level.
type File struct {
	Name     string                `toml:"name"`
	Order    []string              `toml:"order,omitempty"`
	Nodes    map[string]NodeConfig `toml:"nodes"`
	Blocking BlockingConfig        `toml:"blocking"`
}

// NodeConfig is one [nodes.<id>] table.
type NodeConfig struct {
	Kind   string  `toml:"kind"`
	Color  string  `toml:"color,omitempty"`
	Slots  int     `toml:"slots"`
	Empty  int     `toml:"empty"`
	Blocks int     `toml:"blocks"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
}

// BlockingConfig lists barrier pairs. Conditional pairs only apply while the
// start node emits white.
type BlockingConfig struct {
	Unconditional [][]string `toml:"unconditional"`
	Conditional   [][]string `toml:"conditional"`
}

// Level is a validated level ready to search.
type Level struct {
	Name     string
	Topology *network.Topology
	Blocking search.Blocking
	// Source is the file path, or "builtin" for embedded levels.
	Source string
}

// Builtins returns the names of the embedded levels, sorted.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "levels")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Builtin returns the embedded level with the given name.
func Builtin(name string) (*Level, error) {
	if err := errors.ValidateLevelName(name); err != nil {
		return nil, err
	}
	data, err := builtinFS.ReadFile("levels/" + name + ".toml")
	if err != nil {
		return nil, errors.New(errors.ErrCodeLevelNotFound, "no built-in level %q (have %s)", name, strings.Join(Builtins(), ", "))
	}
	return Parse(data, "builtin")
}

// MustBuiltin is like [Builtin] but panics on error. It is meant for the
// embedded levels, which are validated by the package tests.
func MustBuiltin(name string) *Level {
	lvl, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return lvl
}

// Load reads and validates a level file. A file without a name takes the
// file's base name.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "level file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "read level file %s", path)
	}
	f, err := decode(data)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f.Build(path)
}

// Parse decodes and validates level data. source is recorded on the result.
func Parse(data []byte, source string) (*Level, error) {
	f, err := decode(data)
	if err != nil {
		return nil, err
	}
	return f.Build(source)
}

func decode(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "decode level")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidLevel, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Build validates f and turns it into a Level.
func (f *File) Build(source string) (*Level, error) {
	if err := errors.ValidateLevelName(f.Name); err != nil {
		return nil, err
	}
	if len(f.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLevel, "level %q has no nodes", f.Name)
	}

	order, err := f.nodeOrder()
	if err != nil {
		return nil, err
	}

	specs := make([]network.NodeSpec, 0, len(order))
	for _, id := range order {
		spec, err := f.Nodes[id].spec(id)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	topo, err := network.NewTopology(specs)
	if err != nil {
		return nil, topologyError(f.Name, err)
	}

	blocking, err := f.Blocking.build(topo)
	if err != nil {
		return nil, err
	}

	return &Level{Name: f.Name, Topology: topo, Blocking: blocking, Source: source}, nil
}

// nodeOrder returns the explicit order if given, else the sorted node IDs.
func (f *File) nodeOrder() ([]string, error) {
	if len(f.Order) == 0 {
		ids := make([]string, 0, len(f.Nodes))
		for id := range f.Nodes {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids, nil
	}

	if len(f.Order) != len(f.Nodes) {
		return nil, errors.New(errors.ErrCodeInvalidLevel, "order lists %d nodes, level has %d", len(f.Order), len(f.Nodes))
	}
	seen := make(map[string]bool, len(f.Order))
	for _, id := range f.Order {
		if _, ok := f.Nodes[id]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "order names unknown node %q", id)
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidLevel, "order lists %q twice", id)
		}
		seen[id] = true
	}
	return slices.Clone(f.Order), nil
}

func (n NodeConfig) spec(id string) (network.NodeSpec, error) {
	if err := errors.ValidateNodeID(id); err != nil {
		return network.NodeSpec{}, err
	}
	kind, err := network.ParseKind(n.Kind)
	if err != nil {
		return network.NodeSpec{}, errors.Wrap(errors.ErrCodeInvalidNode, err, "node %q", id)
	}
	color, err := network.ParseColor(n.Color)
	if err != nil {
		return network.NodeSpec{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "node %q", id)
	}
	return network.NodeSpec{
		ID:     id,
		Kind:   kind,
		Slots:  n.Slots,
		Empty:  n.Empty,
		Blocks: n.Blocks,
		Pos:    geom.Point{X: n.X, Y: n.Y},
		Color:  color,
	}, nil
}

func topologyError(name string, err error) error {
	switch {
	case stderrors.Is(err, network.ErrDegenerateGeometry):
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "level %q", name)
	case stderrors.Is(err, network.ErrMissingColor), stderrors.Is(err, network.ErrUnexpectedColor):
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "level %q", name)
	default:
		return errors.Wrap(errors.ErrCodeInvalidNode, err, "level %q", name)
	}
}

func (b BlockingConfig) build(topo *network.Topology) (search.Blocking, error) {
	unconditional, err := pairs("unconditional", b.Unconditional, topo)
	if err != nil {
		return search.Blocking{}, err
	}
	conditional, err := pairs("conditional", b.Conditional, topo)
	if err != nil {
		return search.Blocking{}, err
	}
	return search.Blocking{Unconditional: unconditional, Conditional: conditional}, nil
}

func pairs(field string, raw [][]string, topo *network.Topology) ([]network.Pair, error) {
	out := make([]network.Pair, 0, len(raw))
	for _, p := range raw {
		if len(p) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidLevel, "blocking.%s: pair %v must name two nodes", field, p)
		}
		if p[0] == p[1] {
			return nil, errors.New(errors.ErrCodeInvalidLevel, "blocking.%s: pair %v names one node twice", field, p)
		}
		for _, id := range p {
			if !topo.Has(id) {
				return nil, errors.New(errors.ErrCodeUnknownNode, "blocking.%s: unknown node %q", field, id)
			}
		}
		out = append(out, network.PairOf(p[0], p[1]))
	}
	return out, nil
}

// File converts the level back to its on-disk layout.
func (l *Level) File() *File {
	f := &File{
		Name:  l.Name,
		Order: l.Topology.IDs(),
		Nodes: make(map[string]NodeConfig, l.Topology.Len()),
		Blocking: BlockingConfig{
			Unconditional: rawPairs(l.Blocking.Unconditional),
			Conditional:   rawPairs(l.Blocking.Conditional),
		},
	}
	for _, s := range l.Topology.Specs() {
		color := ""
		if s.Color.IsSet() {
			text, _ := s.Color.MarshalText()
			color = string(text)
		}
		f.Nodes[s.ID] = NodeConfig{
			Kind:   s.Kind.String(),
			Color:  color,
			Slots:  s.Slots,
			Empty:  s.Empty,
			Blocks: s.Blocks,
			X:      s.Pos.X,
			Y:      s.Pos.Y,
		}
	}
	return f
}

func rawPairs(ps []network.Pair) [][]string {
	out := make([][]string, len(ps))
	for i, p := range ps {
		out[i] = []string{p[0], p[1]}
	}
	return out
}

// Encode writes the level as TOML.
func (l *Level) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(l.File()); err != nil {
		return nil, fmt.Errorf("encode level %s: %w", l.Name, err)
	}
	return buf.Bytes(), nil
}
