package emit

// NullEmitter implements Emitter by discarding all events.
//
// It is the engine default, so a search that does not ask for
// observability pays nothing beyond building the event value.
//
// Example usage:
//
//	engine, err := search.New(policy, search.WithEmitter(emit.NewNullEmitter()))
type NullEmitter struct{}

// NewNullEmitter creates a new NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(event Event) {
	// No-op: discard the event
}
