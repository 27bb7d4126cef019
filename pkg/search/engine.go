package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pipeflow/pkg/cache"
	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/observability"
)

// Options tunes a search run. The zero value runs a sequential, unbounded,
// unmemoized search.
type Options struct {
	// Workers is the number of frontier states evaluated concurrently.
	// Values below 2 evaluate sequentially.
	Workers int

	// MaxDepth stops the search once states of this length have been
	// produced. Zero means no limit.
	MaxDepth int

	// Memoize caches the node configuration of each state, keyed by its
	// ordered connection sequence, instead of replaying it per candidate.
	Memoize bool

	// Cache stores memoized configurations. Nil selects an unbounded
	// [cache.MemoryCache]. Ignored unless Memoize is set.
	Cache cache.Cache

	// Scope names the run in cache keys and hook events, usually the level
	// name.
	Scope string
}

// Solution is a state that leaves no empty capacity anywhere.
type Solution struct {
	Connections network.State `json:"connections"`
}

// String formats the solution as one log line, for example
// "b -> c, c -> f | Connections: 2".
func (s Solution) String() string {
	return fmt.Sprintf("%s | Connections: %d", strings.Join(s.Connections.Names(), ", "), len(s.Connections))
}

// Sink receives solutions in discovery order.
type Sink interface {
	Record(Solution) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(Solution) error

// Record calls f(s).
func (f SinkFunc) Record(s Solution) error { return f(s) }

// Stats summarizes a run.
type Stats struct {
	// Depth is the number of levels expanded.
	Depth int `json:"depth"`
	// States is the number of child states produced across all levels.
	States int `json:"states"`
	// Candidates is the number of connections checked by the filter.
	Candidates int `json:"candidates"`
	// Rejections counts rejected candidates per reason.
	Rejections map[Reason]int `json:"-"`
	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// Result is everything a finished run found.
type Result struct {
	Solutions []Solution
	Stats     Stats
	// Truncated is set when MaxDepth ended the run while the last level
	// still produced children.
	Truncated bool
}

// Expansion is the outcome of trying every candidate on one state.
type Expansion struct {
	// Children holds the accepted extensions in enumeration order.
	Children []network.State
	// Solutions holds the children that saturate the network.
	Solutions []Solution
	// Candidates is the number of candidates checked.
	Candidates int
	// Rejections counts rejected candidates per reason.
	Rejections map[Reason]int
}

// Engine runs breadth-first searches over one topology.
type Engine struct {
	topo   *network.Topology
	filter *Filter
	ids    []string
	opts   Options
	memo   *memo
}

// New builds an engine for topo with the given barriers. Geometry problems
// and unknown blocking nodes are reported here rather than during a run.
func New(topo *network.Topology, blocking Blocking, opts Options) (*Engine, error) {
	if topo == nil || topo.Len() == 0 {
		return nil, network.ErrEmptyTopology
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", opts.MaxDepth)
	}
	filter, err := NewFilter(topo, blocking)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		topo:   topo,
		filter: filter,
		ids:    topo.IDs(),
		opts:   opts,
	}
	if opts.Memoize {
		c := opts.Cache
		if c == nil {
			c = cache.NewMemoryCache(0)
		}
		e.memo = newMemo(c, opts.Scope)
	}
	return e, nil
}

// Topology returns the topology the engine searches.
func (e *Engine) Topology() *network.Topology { return e.topo }

// Run searches level by level from the empty state, passing each solution to
// sink as soon as its level has been merged. A nil sink is allowed.
//
// Run stops when a level produces no child, when MaxDepth is reached, when
// ctx is cancelled, or when sink returns an error. In the last two cases the
// partial result is returned together with the error.
func (e *Engine) Run(ctx context.Context, sink Sink) (*Result, error) {
	start := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, e.opts.Scope, e.topo.Len())

	res := &Result{Stats: Stats{Rejections: make(map[Reason]int)}}
	err := e.run(ctx, sink, res)

	res.Stats.Elapsed = time.Since(start)
	hooks.OnSearchComplete(ctx, e.opts.Scope, res.Stats.Depth, len(res.Solutions), res.Stats.Elapsed, err)
	return res, err
}

func (e *Engine) run(ctx context.Context, sink Sink, res *Result) error {
	hooks := observability.Search()
	frontier := []network.State{{}}

	for depth := 0; len(frontier) > 0; depth++ {
		if e.opts.MaxDepth > 0 && depth >= e.opts.MaxDepth {
			res.Truncated = true
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		levelStart := time.Now()
		hooks.OnLevelStart(ctx, depth, len(frontier))

		expansions, err := e.expandAll(ctx, frontier)
		if err != nil {
			return err
		}

		var next []network.State
		found := 0
		for _, ex := range expansions {
			next = append(next, ex.Children...)
			res.Stats.Candidates += ex.Candidates
			for r, n := range ex.Rejections {
				res.Stats.Rejections[r] += n
			}
			for _, sol := range ex.Solutions {
				res.Solutions = append(res.Solutions, sol)
				found++
				hooks.OnSolution(ctx, sol.Connections.Names())
				if sink != nil {
					if err := sink.Record(sol); err != nil {
						return fmt.Errorf("record solution: %w", err)
					}
				}
			}
		}

		res.Stats.Depth++
		res.Stats.States += len(next)
		hooks.OnLevelComplete(ctx, depth, len(next), found, time.Since(levelStart))
		frontier = next
	}
	return nil
}

// expandAll expands every frontier state and returns the expansions in
// frontier order, regardless of how many workers ran.
func (e *Engine) expandAll(ctx context.Context, frontier []network.State) ([]Expansion, error) {
	out := make([]Expansion, len(frontier))

	if e.opts.Workers < 2 {
		for i, s := range frontier {
			ex, err := e.Expand(ctx, s)
			if err != nil {
				return nil, err
			}
			out[i] = ex
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, s := range frontier {
		i, s := i, s
		g.Go(func() error {
			ex, err := e.Expand(gctx, s)
			if err != nil {
				return err
			}
			out[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Expand tries every ordered pair of distinct nodes as an extension of state,
// in node order for the start and then for the end. The configuration of
// state is rebuilt for every candidate so no check can observe another
// candidate's effects.
func (e *Engine) Expand(ctx context.Context, state network.State) (Expansion, error) {
	ex := Expansion{Rejections: make(map[Reason]int)}

	for _, u := range e.ids {
		if err := ctx.Err(); err != nil {
			return Expansion{}, err
		}
		for _, v := range e.ids {
			if u == v {
				continue
			}
			nodes, err := e.configure(ctx, state)
			if err != nil {
				return Expansion{}, err
			}

			cand := network.Connect(u, v)
			ex.Candidates++
			verdict := e.filter.Check(state, nodes, cand)
			if !verdict.Accepted() {
				ex.Rejections[verdict.Reason]++
				continue
			}

			child := state.Extend(cand)
			ex.Children = append(ex.Children, child)

			final, err := e.configure(ctx, child)
			if err != nil {
				return Expansion{}, err
			}
			if final.Saturated() {
				ex.Solutions = append(ex.Solutions, Solution{Connections: child})
			}
		}
	}
	return ex, nil
}

// configure returns a node map for state that the caller may mutate.
func (e *Engine) configure(ctx context.Context, state network.State) (network.Nodes, error) {
	if e.memo == nil {
		return e.topo.Replay(state), nil
	}
	nodes, ok, err := e.memo.get(ctx, state)
	if err != nil {
		return nil, err
	}
	if ok {
		return nodes, nil
	}
	nodes = e.topo.Replay(state)
	if err := e.memo.set(ctx, state, nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
