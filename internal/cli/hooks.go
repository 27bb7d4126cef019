package cli

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipeflow/pkg/observability"
)

// logHooks turns search, cache and trace events into log lines and spinner
// updates. Cache events arrive from worker goroutines.
type logHooks struct {
	logger  *log.Logger
	spinner *Spinner // nil in verbose mode

	hits   atomic.Int64
	misses atomic.Int64
}

func newLogHooks(logger *log.Logger, spinner *Spinner) *logHooks {
	return &logHooks{logger: logger, spinner: spinner}
}

// install registers h globally and returns a function restoring the no-op
// hooks.
func (h *logHooks) install() func() {
	observability.SetSearchHooks(h)
	observability.SetCacheHooks(h)
	observability.SetTraceHooks(h)
	return observability.Reset
}

func (h *logHooks) OnSearchStart(_ context.Context, level string, nodes int) {
	h.logger.Debug("search started", "level", level, "nodes", nodes)
}

func (h *logHooks) OnSearchComplete(_ context.Context, level string, depth, solutions int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("search stopped", "level", level, "depth", depth, "solutions", solutions, "err", err)
		return
	}
	h.logger.Debug("search finished", "level", level, "depth", depth, "solutions", solutions, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnLevelStart(_ context.Context, depth, frontier int) {
	h.logger.Debug("expanding level", "depth", depth, "frontier", frontier)
	if h.spinner != nil {
		h.spinner.SetMessage(fmt.Sprintf("Searching level %d (%d states)...", depth+1, frontier))
	}
}

func (h *logHooks) OnLevelComplete(_ context.Context, depth, children, solutions int, d time.Duration) {
	h.logger.Debug("level complete", "depth", depth, "children", children, "solutions", solutions, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnSolution(_ context.Context, connections []string) {
	h.logger.Debug("solution", "path", strings.Join(connections, ", "))
}

func (h *logHooks) OnCacheHit(context.Context, string)  { h.hits.Add(1) }
func (h *logHooks) OnCacheMiss(context.Context, string) { h.misses.Add(1) }

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {}

// cacheSummary returns hit and miss counts.
func (h *logHooks) cacheSummary() (hits, misses int64) {
	return h.hits.Load(), h.misses.Load()
}

func (h *logHooks) OnTraceStep(_ context.Context, step int, connection string, moves int) {
	h.logger.Debug("applied", "step", step, "connection", connection, "moves", moves)
}

var (
	_ observability.SearchHooks = (*logHooks)(nil)
	_ observability.CacheHooks  = (*logHooks)(nil)
	_ observability.TraceHooks  = (*logHooks)(nil)
)
