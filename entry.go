package msgbus

import (
	"sync/atomic"

	"github.com/dshills/msgbus/channel"
	"github.com/dshills/msgbus/msgtype"
)

// MatchCriteria controls which broadcasts reach a listener.
type MatchCriteria int

const (
	// ExactMatch delivers only broadcasts on the exact registered channel:
	// registering for "A.B" matches a broadcast of "A.B" but not "A.B.C".
	ExactMatch MatchCriteria = iota

	// PartialMatch also delivers broadcasts rooted in the registered
	// channel: registering for "A.B" matches "A.B" as well as "A.B.C".
	PartialMatch
)

// String returns the criteria name.
func (m MatchCriteria) String() string {
	switch m {
	case ExactMatch:
		return "exact"
	case PartialMatch:
		return "partial"
	default:
		return "unknown"
	}
}

// Callback receives a delivered message. The channel argument is always the
// channel the message was broadcast on, which may be a descendant of the
// channel the listener registered on. The payload's type has already passed
// the router's compatibility gate; callbacks cast directly.
type Callback func(ch channel.Channel, mt msgtype.Descriptor, payload any)

// Liveness is an optional binding between a listener and its owning object.
// When Alive returns false the listener is treated as already removed and
// is purged lazily during broadcast.
type Liveness interface {
	Alive() bool
}

// LifeToken is a concrete Liveness owned by the registering object. Revoke
// it when the owner is destroyed; any listeners bound to the token are then
// purged on their next eligible broadcast.
type LifeToken struct {
	dead atomic.Bool
}

// NewLifeToken returns a live token.
func NewLifeToken() *LifeToken {
	return &LifeToken{}
}

// Alive implements Liveness.
func (t *LifeToken) Alive() bool {
	return !t.dead.Load()
}

// Revoke marks the token dead. Idempotent.
func (t *LifeToken) Revoke() {
	t.dead.Store(true)
}

// listenerEntry is one registered listener within a channel's list.
type listenerEntry struct {
	handleID int64
	callback Callback
	expected msgtype.Descriptor
	match    MatchCriteria
	owner    Liveness
}

// channelListenerList is the per-channel registry state: the ordered
// listener entries and the counter that issues handle IDs. IDs increase
// monotonically for the lifetime of the channel's presence in the router
// and are never reused, even after removals.
type channelListenerList struct {
	listeners    []listenerEntry
	nextHandleID int64
}
