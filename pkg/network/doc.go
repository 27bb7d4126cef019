// Package network models the fixed pipe network: nodes that hold blocks,
// directed connections between them, and the cascading flow engine that moves
// blocks along connections.
//
// # Nodes
//
// Every [Node] has a fixed capacity (Slots), the capacity that has never been
// filled (Empty) and the blocks it currently holds (Blocks). Two kinds exist:
//
//   - [Transceiver]: input and output color are fixed at construction.
//   - [Swapper]: colors start unset; the first inbound transfer sets the input
//     color to the sender's output color and the output color to the other one.
//
// # Topology
//
// A [Topology] is the immutable base configuration of a level. It never
// changes during a search; every evaluation builds its own node map with
// [Topology.Fresh] or [Topology.Replay], so no node state is shared between
// states.
//
// # Flow
//
// [Connection.Transfer] moves as many blocks as the receiving node can take.
// A [Flow] applies connections in order and, after each one, lets blocks fall
// through already-settled downstream connections until no further transfer
// along the chain succeeds:
//
//	topo := level.MustBuiltin("level-5-12").Topology
//	nodes := topo.Replay(network.State{
//	    network.Connect("b", "c"),
//	    network.Connect("c", "f"),
//	})
//	fmt.Println(nodes["f"].Blocks) // 1
//
// Transfers only ever fill capacity: the receiver's Empty shrinks and the
// sender's Empty is left as is. Total blocks are conserved and Empty never
// grows, which bounds every cascade.
package network
