// Package journal implements the append-only, timestamped event journal that every
// account writes its state transitions to.
package journal

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Journal is an append-only sequence of entries, echoed to a writer as they arrive.
// All appends and reads are serialized, so it is safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	out     io.Writer
	now     func() time.Time
	log     logrus.FieldLogger
}

// Option configures a Journal
type Option func(*Journal)

// WithClock overrides the time source used for entry timestamps
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(j *Journal) {
		j.log = log
	}
}

// New creates a journal that echoes every entry to out. A nil out disables the echo.
func New(out io.Writer, opts ...Option) *Journal {
	j := &Journal{
		out: out,
		now: time.Now,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Write appends a timestamped entry and echoes its rendered line
func (j *Journal) Write(message string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{
		Timestamp: j.now(),
		Message:   message,
	}
	j.entries = append(j.entries, entry)

	if j.out == nil {
		return
	}
	// Echo under the lock so output order matches history order
	if _, err := io.WriteString(j.out, entry.String()+"\n"); err != nil {
		j.log.WithError(err).Warn("Failed to echo journal entry")
	}
}

// History returns a copy of the rendered entries in insertion order
func (j *Journal) History() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	lines := make([]string, len(j.entries))
	for i, entry := range j.entries {
		lines[i] = entry.String()
	}
	return lines
}

// Entries returns a copy of the structured entries in insertion order
func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entries := make([]Entry, len(j.entries))
	copy(entries, j.entries)
	return entries
}

// Len returns the number of entries written so far
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}
