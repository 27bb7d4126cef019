package cli

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/io"
	"github.com/matzehuels/pipeflow/pkg/network"
)

// resolveLogPath returns explicit if set, else the default log path for name
// under dir.
func resolveLogPath(explicit, dir, name string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	if dir == "" {
		dir = "."
	}
	return io.DefaultLogPath(dir, name, now)
}

// orderedNodes returns copies of nodes in the topology's order.
func orderedNodes(topo *network.Topology, nodes network.Nodes) []network.Node {
	ids := topo.IDs()
	out := make([]network.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := nodes[id]; ok {
			out = append(out, *n)
		}
	}
	return out
}

// pathError maps a path validation error to its code: unknown nodes to
// UNKNOWN_NODE, everything else to INVALID_PATH.
func pathError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if stderrors.Is(err, network.ErrUnknownNode) {
		return errors.Wrap(errors.ErrCodeUnknownNode, err, "%s", msg)
	}
	return errors.Wrap(errors.ErrCodeInvalidPath, err, "%s", msg)
}
