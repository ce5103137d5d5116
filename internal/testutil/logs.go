// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

type (
	// LogEntry is one decoded log line.
	LogEntry struct {
		Level   string
		Message string
		Fields  map[string]any
	}

	// LogRecorder captures logger output as JSON lines.
	LogRecorder struct {
		t   testing.TB
		mu  sync.Mutex
		buf bytes.Buffer
	}
)

// NewLogRecorder returns a debug-level logger writing into a recorder.
func NewLogRecorder(t testing.TB) (*log.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{t: t}
	logger := log.NewWithOptions(rec, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.JSONFormatter,
	})
	return logger, rec
}

// Write implements io.Writer.
func (r *LogRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Entries decodes every captured line.
func (r *LogRecorder) Entries() []LogEntry {
	r.t.Helper()
	r.mu.Lock()
	data := append([]byte(nil), r.buf.Bytes()...)
	r.mu.Unlock()

	var entries []LogEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		fields := map[string]any{}
		if err := json.Unmarshal(line, &fields); err != nil {
			r.t.Fatalf("failed to decode log line %q: %v", line, err)
		}
		entry := LogEntry{Fields: fields}
		entry.Level, _ = fields["level"].(string)
		entry.Message, _ = fields["msg"].(string)
		delete(fields, "level")
		delete(fields, "msg")
		entries = append(entries, entry)
	}
	return entries
}

// Count returns the number of entries at level ("debug", "info", "warn", "error").
func (r *LogRecorder) Count(level string) int {
	r.t.Helper()
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages logged at level.
func (r *LogRecorder) Messages(level string) []string {
	r.t.Helper()
	var msgs []string
	for _, e := range r.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
