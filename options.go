package msgbus

import (
	"github.com/dshills/msgbus/diag"
	"github.com/dshills/msgbus/msgtype"
)

// Option configures a Router.
type Option func(*Router)

// WithDiagnostics sets the diagnostics sink. The default discards
// everything.
func WithDiagnostics(sink diag.Sink) Option {
	return func(r *Router) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// registerConfig collects per-registration settings.
type registerConfig struct {
	expected msgtype.Descriptor
	match    MatchCriteria
	owner    Liveness
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

// WithExpectedType declares the payload type the listener expects. Without
// it the registration is wildcard-typed and accepts any payload; the typed
// On helper sets it automatically.
func WithExpectedType(d msgtype.Descriptor) RegisterOption {
	return func(c *registerConfig) {
		c.expected = d
	}
}

// WithMatch sets the channel match criteria. The default is ExactMatch.
func WithMatch(m MatchCriteria) RegisterOption {
	return func(c *registerConfig) {
		c.match = m
	}
}

// WithOwner binds the registration to an owning object's lifetime. When the
// owner is no longer alive the listener is purged lazily during broadcast
// instead of being invoked.
func WithOwner(owner Liveness) RegisterOption {
	return func(c *registerConfig) {
		c.owner = owner
	}
}
