package diag

import (
	"fmt"
	"sync"

	"github.com/dshills/msgbus/channel"
)

// Entry is one recorded diagnostics event.
type Entry struct {
	Level   Level
	Channel channel.Channel
	Message string
}

// Capture records diagnostics events in memory. It is safe for concurrent
// use and is the sink used by tests to assert on router behavior.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCapture returns an empty capture sink.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) record(level Level, ch channel.Channel, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{
		Level:   level,
		Channel: ch,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Capture) Trace(ch channel.Channel, format string, args ...any) {
	c.record(LevelTrace, ch, format, args...)
}

func (c *Capture) Warn(ch channel.Channel, format string, args ...any) {
	c.record(LevelWarn, ch, format, args...)
}

func (c *Capture) Error(ch channel.Channel, format string, args ...any) {
	c.record(LevelError, ch, format, args...)
}

// Entries returns a copy of all recorded entries.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByLevel returns recorded entries with the given level.
func (c *Capture) ByLevel(level Level) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Entry
	for _, e := range c.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of recorded entries with the given level.
func (c *Capture) Count(level Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset discards all recorded entries.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}
