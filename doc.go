// Package msgbus is a decoupled publish/subscribe message router with
// hierarchical channels.
//
// Producers broadcast strongly typed messages on dot-separated channels
// ("Game.Death.Player"); listeners register interest in a channel without
// holding any reference to producers. A broadcast reaches exact-match
// listeners on its own channel first, then PartialMatch listeners on each
// ancestor channel, nearest ancestor first.
//
// # Registration
//
// Typed listeners use the On helper, which derives the expected payload
// type and asserts the payload before the callback runs:
//
//	h := msgbus.On(r, "Game.Death", msgbus.ExactMatch,
//		func(ch channel.Channel, msg DeathMessage) {
//			// ...
//		})
//	defer r.Unregister(h)
//
// Register is the raw entry point used by boundary adapters; without
// WithExpectedType it produces a wildcard-typed listener that accepts any
// payload. Registrations may be bound to an owner's lifetime with
// WithOwner; listeners whose owner has died are purged lazily during
// broadcast.
//
// # Broadcasting
//
// Broadcast sends a typed message; BroadcastPayload is the shared untyped
// entry point. Delivery is gated on type compatibility: a broadcast is
// delivered when its type is the same as, or a subtype of, the listener's
// expected type. Incompatible deliveries are skipped and reported to the
// diagnostics sink; broadcasting to a channel with no listeners is a
// normal, silent outcome. Neither operation returns an error: producers
// and listeners are decoupled, and error handling must not recouple them.
//
// # Reentrancy
//
// All dispatch is synchronous in the caller's goroutine. The router
// snapshots each channel's listener list before invoking callbacks, so a
// callback may register, unregister (including itself), or broadcast again
// without corrupting the in-flight dispatch. Listeners added during a
// broadcast never receive that broadcast.
//
// Call order among multiple listeners on the same channel is not
// guaranteed and can change over time.
package msgbus
