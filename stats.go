package msgbus

// Stats contains router counters.
type Stats struct {
	// Broadcasts is the total number of broadcast calls.
	Broadcasts uint64

	// Deliveries is the number of successful callback invocations.
	Deliveries uint64

	// TypeMismatches is the number of deliveries skipped because the
	// broadcast type was incompatible with the listener's expected type.
	TypeMismatches uint64

	// StalePurges is the number of listeners removed because their owner
	// was no longer alive.
	StalePurges uint64

	// Listeners is the current number of registered listeners.
	Listeners int

	// Channels is the current number of channels with listeners.
	Channels int
}
