// Package observability provides hooks for progress reporting, metrics and
// logging.
//
// Library packages emit events through the registered hooks and never log on
// their own. The CLI registers implementations that write through its
// logger; tests and embedders can register their own.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnLevelStart(ctx, depth, len(frontier))
//	// ... expand the level ...
//	observability.Search().OnLevelComplete(ctx, depth, children, solutions, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the state-space search.
type SearchHooks interface {
	// Run events
	OnSearchStart(ctx context.Context, level string, nodes int)
	OnSearchComplete(ctx context.Context, level string, depth, solutions int, duration time.Duration, err error)

	// Level events. depth is the length of the states being expanded.
	OnLevelStart(ctx context.Context, depth, frontier int)
	OnLevelComplete(ctx context.Context, depth, children, solutions int, duration time.Duration)

	// OnSolution records a fully saturated state.
	OnSolution(ctx context.Context, connections []string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Trace Hooks
// =============================================================================

// TraceHooks receives events from single-path replays.
type TraceHooks interface {
	// OnTraceStep records one applied connection and the number of transfers
	// it caused, cascades included.
	OnTraceStep(ctx context.Context, step int, connection string, moves int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string, int) {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopSearchHooks) OnLevelStart(context.Context, int, int)                        {}
func (NoopSearchHooks) OnLevelComplete(context.Context, int, int, int, time.Duration) {}
func (NoopSearchHooks) OnSolution(context.Context, []string)                          {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopTraceHooks is a no-op implementation of TraceHooks.
type NoopTraceHooks struct{}

func (NoopTraceHooks) OnTraceStep(context.Context, int, string, int) {}

// =============================================================================
// Global Registry
// =============================================================================

var (
	hooksMu     sync.RWMutex
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	traceHooks  TraceHooks  = NoopTraceHooks{}
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetTraceHooks registers custom trace hooks.
func SetTraceHooks(h TraceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		traceHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Trace returns the registered trace hooks.
func Trace() TraceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return traceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
	traceHooks = NoopTraceHooks{}
}
