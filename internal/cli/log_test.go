package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var logTimestamp = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{2} `)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("expanding level", "depth", 0)
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}

	logger.Info("Solving", "nodes", 6)
	line := buf.String()
	if !logTimestamp.MatchString(line) {
		t.Errorf("line %q has no 15:04:05.00 timestamp", line)
	}
	if !strings.Contains(line, "nodes=6") {
		t.Errorf("line %q missing nodes=6", line)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)

	prog.done("Found 1131 solutions")

	if out := buf.String(); !strings.Contains(out, "Found 1131 solutions (1.5") {
		t.Errorf("done() output = %q, want message with elapsed time", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext() did not return the attached logger")
	}
}

// solveRunID matches the short run ID solve attaches to its logger.
var solveRunID = regexp.MustCompile(`run=([0-9a-f]{8})`)

func TestSolve_LoggerFields(t *testing.T) {
	dir := t.TempDir()
	levelPath := writeTinyLevel(t, dir)

	logs, err := execute(t, "solve", "--level", levelPath, "--log", filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("solve error = %v", err)
	}

	var runID string
	for _, event := range []string{"Solving", "expanding level", "solution", "level complete"} {
		line := lineWith(logs, event)
		if line == "" {
			t.Errorf("no %q line in logs:\n%s", event, logs)
			continue
		}
		if !strings.Contains(line, "level=tiny") {
			t.Errorf("%q line missing level=tiny: %q", event, line)
		}
		m := solveRunID.FindStringSubmatch(line)
		if m == nil {
			t.Errorf("%q line missing run ID: %q", event, line)
			continue
		}
		if runID == "" {
			runID = m[1]
		} else if m[1] != runID {
			t.Errorf("%q line has run %s, want %s", event, m[1], runID)
		}
	}

	if line := lineWith(logs, "solution"); !strings.Contains(line, "s -> t") {
		t.Errorf("solution line = %q, want path s -> t", line)
	}

	again, err := execute(t, "solve", "--level", levelPath, "--log", filepath.Join(dir, "again.txt"))
	if err != nil {
		t.Fatalf("second solve error = %v", err)
	}
	if m := solveRunID.FindStringSubmatch(again); m == nil || m[1] == runID {
		t.Errorf("second run ID = %v, want one different from %s", m, runID)
	}
}

// lineWith returns the first log line whose message part contains event.
func lineWith(logs, event string) string {
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, event) {
			return line
		}
	}
	return ""
}
