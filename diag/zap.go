package diag

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/msgbus/channel"
)

// zapSink forwards diagnostics to a zap logger with the channel attached
// as a structured field. Trace maps to Debug.
type zapSink struct {
	l *zap.Logger
}

// NewZapSink wraps an existing zap logger as a diagnostics sink.
func NewZapSink(l *zap.Logger) Sink {
	return &zapSink{l: l}
}

// NewDevelopmentSink builds a sink over a development zap logger, which
// keeps trace output visible. Intended for interactive debugging.
func NewDevelopmentSink() (Sink, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &zapSink{l: l}, nil
}

// NewProductionSink builds a sink over a production zap logger at the given
// level. Caller and stacktrace annotation are disabled; router diagnostics
// identify their own call sites through the channel field.
func NewProductionSink(level zapcore.Level) (Sink, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapSink{l: l}, nil
}

func (s *zapSink) Trace(ch channel.Channel, format string, args ...any) {
	s.l.Debug(fmt.Sprintf(format, args...), zap.String("channel", ch.String()))
}

func (s *zapSink) Warn(ch channel.Channel, format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...), zap.String("channel", ch.String()))
}

func (s *zapSink) Error(ch channel.Channel, format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...), zap.String("channel", ch.String()))
}
