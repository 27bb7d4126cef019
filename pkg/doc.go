// Package pkg provides the core libraries for Pipeflow, an exhaustive solver
// for pipe-flow puzzle levels.
//
// # Overview
//
// A level is a small set of nodes placed in the plane. Each node holds colored
// blocks and empty slots. The player draws directed connections between nodes;
// each connection moves blocks from its start node into free slots of its end
// node, and moved blocks keep flowing along connections that already exist.
// A level is solved once no empty slot is left anywhere. Pipeflow enumerates
// every valid connection sequence breadth-first and records the ones that
// saturate the level.
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [geom], [network], [search], [level]
//  2. Tools: [trace], [io]
//  3. Infrastructure: [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow of a solve run:
//
//	level TOML (embedded or on disk)
//	         ↓
//	    [level] package (decode + validate into a topology)
//	         ↓
//	    [search] package (breadth-first enumeration + validity filter)
//	         ↓
//	    [network] package (replay a sequence, cascade blocks)
//	         ↓
//	    [io] package (append-only solution log, JSON report)
//
// # Quick Start
//
// Solve the built-in reference level and print every solution:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/pipeflow/pkg/level"
//	    "github.com/matzehuels/pipeflow/pkg/search"
//	)
//
//	func main() {
//	    lvl := level.MustBuiltin(level.Reference)
//
//	    engine, err := search.New(lvl.Topology, lvl.Blocking, search.Options{Workers: 4})
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    res, err := engine.Run(context.Background(), search.SinkFunc(func(s search.Solution) error {
//	        fmt.Println(s)
//	        return nil
//	    }))
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(len(res.Solutions), "solutions in", res.Stats.Depth, "levels")
//	}
//
// # Package Organization
//
// ## Domain
//
// [geom] - Points, segments and the strict crossing test used to reject
// connections that would cross an existing one.
//
// [network] - Node kinds (transceiver, swapper), colors, the immutable
// [network.Topology] and the flow engine. [network.Topology.Replay] rebuilds
// the node configuration of a connection sequence from scratch.
//
// [search] - The breadth-first engine. Every candidate connection is checked
// by the [search.Filter] against the state it would extend; accepted
// candidates become the next frontier and saturated ones are reported to a
// [search.Sink].
//
// [level] - Level definitions in TOML, including the embedded reference
// level. Loading validates node kinds, colors, counts and coordinates.
//
// ## Tools
//
// [trace] - Replays one fixed sequence and captures the node table after
// every step.
//
// [io] - Append-only log files named by level and start time, plus the JSON
// run report that later trace runs can pick a solution from.
//
// ## Infrastructure
//
// [cache] - Optional in-run memoization of replayed states.
//
// [observability] - Hook interfaces for search, cache and trace events.
//
// [errors] - Coded errors with user-facing messages and input validation.
//
// [buildinfo] - Version information embedded at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/search/...      # Skip the full reference solve
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/geom
// [network]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/network
// [network.Topology]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/network#Topology
// [network.Topology.Replay]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/network#Topology.Replay
// [search]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/search
// [search.Filter]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/search#Filter
// [search.Sink]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/search#Sink
// [level]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/level
// [trace]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/trace
// [io]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pipeflow/pkg/buildinfo
package pkg
