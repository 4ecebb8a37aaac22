package emit

// Event represents an observability event emitted during a search run.
//
// Events provide insight into how the frontier evolves:
//   - Run initialisation and cleanup
//   - Node expansion and reopening
//   - Stale frontier entries discarded on extraction
//   - Goal detection and frontier exhaustion
//   - Successor-generation failures
//
// Events are emitted to an Emitter which can:
//   - Log to stdout/stderr or a structured logger
//   - Send to OpenTelemetry
//   - Buffer in memory for later inspection
type Event struct {
	// RunID identifies the search run that emitted this event.
	RunID string

	// Step is the engine tick that produced the event (1-indexed).
	// Zero for run-level events (init, cleanup).
	Step int

	// Node is the arena handle of the node involved.
	// -1 for run-level events.
	Node int

	// Msg is the event name (e.g. "node_expanded", "goal_found").
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "g": accumulated cost of the node
	//   - "f": priority key of the node
	//   - "frontier": open set size after the step
	//   - "visited": number of distinct states recorded
	//   - "generated": successors produced by the expansion
	//   - "algorithm": search variant name
	//   - "error": failure details
	Meta map[string]interface{}
}
