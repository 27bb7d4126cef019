package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/pipeflow/pkg/cache"
	"github.com/matzehuels/pipeflow/pkg/network"
	"github.com/matzehuels/pipeflow/pkg/observability"
)

const memoKeyType = "state"

// memo caches node configurations as JSON snapshots. Keys keep the order of
// the connections: two states with the same connections in a different order
// can propagate differently.
type memo struct {
	cache cache.Cache
	scope string
}

func newMemo(c cache.Cache, scope string) *memo {
	return &memo{cache: c, scope: scope}
}

func (m *memo) key(s network.State) string {
	return cache.StateKey(m.scope, s.Names())
}

func (m *memo) get(ctx context.Context, s network.State) (network.Nodes, bool, error) {
	data, ok, err := m.cache.Get(ctx, m.key(s))
	if err != nil {
		return nil, false, fmt.Errorf("memo get: %w", err)
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, memoKeyType)
		return nil, false, nil
	}
	var snap []network.Node
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt entry is treated as a miss and overwritten.
		observability.Cache().OnCacheMiss(ctx, memoKeyType)
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, memoKeyType)
	return network.FromSnapshot(snap), true, nil
}

func (m *memo) set(ctx context.Context, s network.State, nodes network.Nodes) error {
	data, err := json.Marshal(nodes.Snapshot())
	if err != nil {
		return fmt.Errorf("memo encode: %w", err)
	}
	if err := m.cache.Set(ctx, m.key(s), data, 0); err != nil {
		return fmt.Errorf("memo set: %w", err)
	}
	observability.Cache().OnCacheSet(ctx, memoKeyType, len(data))
	return nil
}
