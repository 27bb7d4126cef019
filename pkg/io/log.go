package io

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/search"
)

// LogTimeFormat names log files after the time a run started.
const LogTimeFormat = "2006-01-02T15-04-05"

// DefaultLogPath returns <dir>/<level>-logs/<timestamp>.txt.
func DefaultLogPath(dir, level string, t time.Time) string {
	return filepath.Join(dir, level+"-logs", t.Format(LogTimeFormat)+".txt")
}

// Log is an append-only text file. Every write is one or more complete
// lines; a failed write is reported, never dropped.
//
// Log implements [search.Sink]. It is safe for concurrent use.
type Log struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenLog opens path for appending, creating it and its directory if needed.
func OpenLog(path string) (*Log, error) {
	if err := errors.ValidateLogPath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeLogIO, err, "create log directory %s", dir)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLogIO, err, "open log %s", path)
	}
	return &Log{f: f, path: path}, nil
}

// Path returns the file the log appends to.
func (l *Log) Path() string { return l.path }

// Record appends one solution line.
func (l *Log) Record(s search.Solution) error {
	return l.WriteLines(s.String())
}

// WriteLines appends text, adding a trailing newline if it has none.
func (l *Log) WriteLines(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return errors.New(errors.ErrCodeLogIO, "append to %s: log is closed", l.path)
	}
	if _, err := l.f.WriteString(text); err != nil {
		return errors.Wrap(errors.ErrCodeLogIO, err, "append to %s", l.path)
	}
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeLogIO, err, "close %s", l.path)
	}
	return nil
}

var _ search.Sink = (*Log)(nil)
