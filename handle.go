package msgbus

import "github.com/dshills/msgbus/channel"

// Handle identifies one registered listener. It is the only way to
// unregister and carries no ownership: the router owns the listener entry,
// the handle is a lookup key. The zero Handle is invalid.
type Handle struct {
	ch channel.Channel
	id int64
}

// IsValid reports whether the handle refers to a registration. A handle
// stays structurally valid after its listener is removed; unregistering
// with it again is a silent no-op.
func (h Handle) IsValid() bool {
	return h.id != 0
}

// Channel returns the channel the handle was issued for.
func (h Handle) Channel() channel.Channel {
	return h.ch
}
