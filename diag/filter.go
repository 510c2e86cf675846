package diag

import "github.com/dshills/msgbus/channel"

// filtered passes trace events only for channels matching one of its
// wildcard patterns. Warnings and errors always pass; broadcast tracing is
// the only high-volume emission worth narrowing.
type filtered struct {
	inner    Sink
	patterns []string
}

// Filtered wraps a sink so that trace events are forwarded only when the
// channel matches one of the given wildcard patterns (e.g. "Game.*").
// With no patterns, every trace passes through.
func Filtered(inner Sink, patterns ...string) Sink {
	if len(patterns) == 0 {
		return inner
	}
	return &filtered{inner: inner, patterns: patterns}
}

func (f *filtered) Trace(ch channel.Channel, format string, args ...any) {
	for _, p := range f.patterns {
		if ch.MatchesPattern(p) {
			f.inner.Trace(ch, format, args...)
			return
		}
	}
}

func (f *filtered) Warn(ch channel.Channel, format string, args ...any) {
	f.inner.Warn(ch, format, args...)
}

func (f *filtered) Error(ch channel.Channel, format string, args ...any) {
	f.inner.Error(ch, format, args...)
}
