// Package diag is the one-way diagnostics boundary of the message router.
// The router emits (severity, channel, message) events here and never reads
// anything back; implementations decide where they go.
package diag

import "github.com/dshills/msgbus/channel"

// Level is the severity of a diagnostics event.
type Level int

const (
	// LevelTrace is verbose per-broadcast tracing.
	LevelTrace Level = iota
	// LevelWarn covers recoverable conditions such as invalid handles and
	// stale listener purges.
	LevelWarn
	// LevelError covers type mismatches between broadcast and listener.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Sink receives diagnostics events from the router.
// Implementations must be safe for use from listener callbacks, which may
// run while a broadcast is in flight.
type Sink interface {
	Trace(ch channel.Channel, format string, args ...any)
	Warn(ch channel.Channel, format string, args ...any)
	Error(ch channel.Channel, format string, args ...any)
}

type nopSink struct{}

func (nopSink) Trace(channel.Channel, string, ...any) {}
func (nopSink) Warn(channel.Channel, string, ...any)  {}
func (nopSink) Error(channel.Channel, string, ...any) {}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return nopSink{}
}
