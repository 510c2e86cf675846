package msgbus

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/msgbus/channel"
	"github.com/dshills/msgbus/diag"
	"github.com/dshills/msgbus/msgtype"
)

// Router owns the channel/listener registry and dispatches broadcasts.
//
// A single mutex covers register, unregister, and the snapshot step of
// broadcast; listener callbacks always run outside it, so callbacks may
// freely register, unregister, and broadcast again without deadlocking.
type Router struct {
	mu       sync.Mutex
	channels map[channel.Channel]*channelListenerList
	closed   bool
	sink     diag.Sink

	broadcasts  atomic.Uint64
	deliveries  atomic.Uint64
	mismatches  atomic.Uint64
	stalePurges atomic.Uint64
}

// New creates an empty router.
func New(opts ...Option) *Router {
	r := &Router{
		channels: make(map[channel.Channel]*channelListenerList),
		sink:     diag.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a listener on ch and returns its handle. A registration
// without WithExpectedType is wildcard-typed and accepts any payload;
// typed callers should use On instead. Register never fails: a nil
// callback or a closed router is reported to diagnostics and yields the
// invalid zero handle.
func (r *Router) Register(ch channel.Channel, cb Callback, opts ...RegisterOption) Handle {
	if cb == nil {
		r.sink.Warn(ch, "register: nil callback")
		return Handle{}
	}

	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.sink.Warn(ch, "register: router is closed")
		return Handle{}
	}

	list := r.channels[ch]
	if list == nil {
		list = &channelListenerList{}
		r.channels[ch] = list
	}
	list.nextHandleID++
	list.listeners = append(list.listeners, listenerEntry{
		handleID: list.nextHandleID,
		callback: cb,
		expected: cfg.expected,
		match:    cfg.match,
		owner:    cfg.owner,
	})
	h := Handle{ch: ch, id: list.nextHandleID}
	r.mu.Unlock()

	return h
}

// On registers a typed listener: the expected payload type is derived from
// T and the callback receives the payload already asserted. A broadcast of
// a subtype of T that embeds T delivers the embedded T value.
func On[T any](r *Router, ch channel.Channel, match MatchCriteria, fn func(channel.Channel, T), opts ...RegisterOption) Handle {
	cb := func(ch channel.Channel, _ msgtype.Descriptor, payload any) {
		if msg, ok := payload.(T); ok {
			fn(ch, msg)
			return
		}
		// The gate admitted a subtype; extract the embedded base value.
		if msg, ok := msgtype.Embedded[T](payload); ok {
			fn(ch, msg)
		}
	}
	opts = append(opts, WithExpectedType(msgtype.For[T]()), WithMatch(match))
	return r.Register(ch, cb, opts...)
}

// Unregister removes the listener the handle refers to. An invalid handle
// is reported and ignored; a well-formed handle with no live entry is a
// silent no-op, so unregistering twice is safe.
func (r *Router) Unregister(h Handle) {
	if !h.IsValid() {
		r.sink.Warn(h.ch, "unregister: invalid handle")
		return
	}
	r.mu.Lock()
	r.removeLocked(h.ch, h.id)
	r.mu.Unlock()
}

// removeLocked removes the entry with the given handle ID from ch's list,
// pruning the channel when its list empties. Removal order is swap-delete;
// listener order within a channel is not a contract. Caller holds r.mu.
func (r *Router) removeLocked(ch channel.Channel, id int64) bool {
	list := r.channels[ch]
	if list == nil {
		return false
	}
	for i := range list.listeners {
		if list.listeners[i].handleID != id {
			continue
		}
		last := len(list.listeners) - 1
		list.listeners[i] = list.listeners[last]
		list.listeners[last] = listenerEntry{}
		list.listeners = list.listeners[:last]
		if len(list.listeners) == 0 {
			delete(r.channels, ch)
		}
		return true
	}
	return false
}

// Broadcast sends msg on ch as type T. Listeners on ch receive it first,
// then PartialMatch listeners on each ancestor channel, nearest first.
func Broadcast[T any](r *Router, ch channel.Channel, msg T) {
	r.BroadcastPayload(ch, msgtype.For[T](), msg)
}

// BroadcastPayload is the untyped broadcast entry point shared by typed
// callers and boundary adapters. It walks ch and its ancestors, snapshots
// each level's listener list before invoking anything, gates every delivery
// on type compatibility, and purges listeners whose owner has died. It
// never fails from the caller's point of view; mismatches and purges are
// diagnostics only.
func (r *Router) BroadcastPayload(ch channel.Channel, mt msgtype.Descriptor, payload any) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return
	}

	r.sink.Trace(ch, "broadcasting %s message on %s", mt, ch)
	r.broadcasts.Add(1)

	initial := true
	for level := ch; ; level = level.Parent() {
		// Snapshot before invoking any callback: registrations and
		// removals made by callbacks never affect this broadcast.
		r.mu.Lock()
		var snapshot []listenerEntry
		if list := r.channels[level]; list != nil {
			snapshot = make([]listenerEntry, len(list.listeners))
			copy(snapshot, list.listeners)
		}
		r.mu.Unlock()

		for _, entry := range snapshot {
			if !initial && entry.match != PartialMatch {
				continue
			}

			if entry.owner != nil && !entry.owner.Alive() {
				r.mu.Lock()
				r.removeLocked(level, entry.handleID)
				r.mu.Unlock()
				r.stalePurges.Add(1)
				r.sink.Warn(ch, "listener owner on channel %s has gone invalid, removing listener", level)
				continue
			}

			// The broadcast type must be the same as, or a subtype of,
			// what the listener declared.
			if entry.expected.IsWildcard() || mt.IsChildOf(entry.expected) {
				entry.callback(ch, mt, payload)
				r.deliveries.Add(1)
			} else {
				r.mismatches.Add(1)
				r.sink.Error(ch, "message type mismatch on channel %s: broadcast type %s, listener at %s expected type %s",
					ch, mt, level, entry.expected)
			}
		}

		initial = false
		if !level.HasParent() {
			break
		}
	}
}

// Diagnostics returns the router's sink, letting boundary adapters report
// through the same channel the router does.
func (r *Router) Diagnostics() diag.Sink {
	return r.sink
}

// Close tears the router down: the registry is cleared and every
// outstanding handle becomes permanently dead. Subsequent unregisters are
// no-ops and subsequent broadcasts deliver nothing.
func (r *Router) Close() {
	r.mu.Lock()
	r.channels = make(map[channel.Channel]*channelListenerList)
	r.closed = true
	r.mu.Unlock()
}

// Stats returns a snapshot of router counters.
func (r *Router) Stats() Stats {
	r.mu.Lock()
	listeners := 0
	for _, list := range r.channels {
		listeners += len(list.listeners)
	}
	chans := len(r.channels)
	r.mu.Unlock()

	return Stats{
		Broadcasts:     r.broadcasts.Load(),
		Deliveries:     r.deliveries.Load(),
		TypeMismatches: r.mismatches.Load(),
		StalePurges:    r.stalePurges.Load(),
		Listeners:      listeners,
		Channels:       chans,
	}
}
