package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/search"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", fmt.Errorf("level 4: %w", context.Canceled), exitInterrupted},
		{"rejected path", fmt.Errorf("%w: step 2 (b -> c): duplicate pair", search.ErrRejected), exitFailure},
		{"unknown node", errors.New(errors.ErrCodeUnknownNode, "z"), exitBadInput},
		{"degenerate level", errors.New(errors.ErrCodeDegenerateGeometry, "a and b share x"), exitBadInput},
		{"log write", errors.New(errors.ErrCodeLogIO, "append"), exitFailure},
		{"plain", fmt.Errorf("boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	if code := report(&buf, context.Canceled); code != exitInterrupted || buf.Len() != 0 {
		t.Errorf("report(canceled) = %d, printed %q", code, buf.String())
	}

	code := report(&buf, errors.New(errors.ErrCodeLevelNotFound, "no level %q", "level-0-0"))
	if code != exitBadInput || !strings.HasPrefix(buf.String(), "Error: LEVEL_NOT_FOUND") {
		t.Errorf("report() = %d, printed %q", code, buf.String())
	}
}

func TestRun(t *testing.T) {
	var logs bytes.Buffer
	if err := run(context.Background(), []string{"check"}, &logs); err != nil {
		t.Fatalf("check error = %v", err)
	}
	if strings.Contains(logs.String(), "checked") {
		t.Errorf("debug line logged without --verbose:\n%s", logs.String())
	}

	logs.Reset()
	if err := run(context.Background(), []string{"--verbose", "check"}, &logs); err != nil {
		t.Fatalf("check --verbose error = %v", err)
	}
	if !strings.Contains(logs.String(), "checked") {
		t.Errorf("--verbose did not enable debug logging:\n%s", logs.String())
	}

	err := run(context.Background(), []string{"check", "--path", "b -> z"}, &logs)
	if got := exitCode(err); got != exitBadInput {
		t.Errorf("exitCode(%v) = %d, want %d", err, got, exitBadInput)
	}
}
