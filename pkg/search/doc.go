// Package search enumerates every ordered sequence of pipe connections that
// saturates a network.
//
// # Overview
//
// The [Engine] runs a breadth-first search over [network.State] values. Level
// k holds the states of length k. For every state and every ordered pair of
// distinct nodes, the engine rebuilds the state's node configuration from the
// base topology, asks the [Filter] whether the candidate connection is legal,
// and turns every accepted candidate into a child state. Each child is
// replayed once more from scratch; if no node has empty capacity left, the
// child is a [Solution] and is handed to the [Sink]. Solutions stay in the
// next frontier. The search ends at the first level that produces no child.
//
// # Validity
//
// [Filter.Check] applies five checks in order and returns a [Verdict]:
//
//  1. Blocking: the pair is blocked unconditionally, or conditionally while
//     the start node emits white.
//  2. Color: the end node's input color is set and differs from the start
//     node's output color.
//  3. Capacity: the start node holds no blocks, or the end node has no room.
//  4. Duplicate: the state already connects the same two nodes.
//  5. Crossing: the candidate's segment crosses a segment of the state.
//
// Rejections are ordinary outcomes, not errors.
//
// # Cost
//
// The search has no deduplication of equivalent states and, by default, no
// memoization: every candidate replays its state from the base topology.
// [Options.Memoize] trades memory for fewer replays; [Options.Workers]
// evaluates frontier states in parallel while keeping the sequential
// enumeration order for children and solutions.
package search
