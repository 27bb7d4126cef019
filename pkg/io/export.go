package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pipeflow/pkg/buildinfo"
	"github.com/matzehuels/pipeflow/pkg/search"
)

// Report is the JSON form of one search run.
type Report struct {
	RunID     uuid.UUID      `json:"run_id"`
	Level     string         `json:"level"`
	CreatedAt time.Time      `json:"created_at"`
	Build     buildinfo.Info `json:"build"`
	Stats     stats          `json:"stats"`
	// Solutions holds one path per solution, formatted as "a -> b, c -> d".
	Solutions []string `json:"solutions"`
}

type stats struct {
	Depth      int            `json:"depth"`
	States     int            `json:"states"`
	Candidates int            `json:"candidates"`
	Rejections map[string]int `json:"rejections,omitempty"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	Truncated  bool           `json:"truncated,omitempty"`
}

// NewReport builds a report for res. Rejection counts are keyed by reason
// name.
func NewReport(runID uuid.UUID, level string, res *search.Result, now time.Time) *Report {
	r := &Report{
		RunID:     runID,
		Level:     level,
		CreatedAt: now.UTC(),
		Build:     buildinfo.Current(),
		Stats: stats{
			Depth:      res.Stats.Depth,
			States:     res.Stats.States,
			Candidates: res.Stats.Candidates,
			ElapsedMS:  res.Stats.Elapsed.Milliseconds(),
			Truncated:  res.Truncated,
		},
		Solutions: make([]string, len(res.Solutions)),
	}
	for _, reason := range search.Reasons {
		if n := res.Stats.Rejections[reason]; n > 0 {
			if r.Stats.Rejections == nil {
				r.Stats.Rejections = make(map[string]int)
			}
			r.Stats.Rejections[reason.String()] = n
		}
	}
	for i, s := range res.Solutions {
		r.Solutions[i] = s.Connections.String()
	}
	return r
}

// WriteJSON encodes r as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes r to a JSON file at path.
func ExportJSON(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeAndClose(r, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAndClose writes r to wc and closes it. A failed close is reported
// even when the write succeeded, since buffered data may not have reached
// the disk.
func writeAndClose(r *Report, wc io.WriteCloser) error {
	if err := WriteJSON(r, wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
