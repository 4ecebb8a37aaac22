// Package emit provides event emission and observability for search execution.
package emit

// Emitter receives and processes observability events from a search run.
//
// Emitters enable pluggable observability backends:
//   - Logging: text or JSON lines, zerolog
//   - Distributed tracing: OpenTelemetry
//   - In-memory history for tests and live progress views
//
// The engine calls Emit synchronously from the goroutine driving the
// search, so implementations should be cheap and must not call back
// into the engine.
type Emitter interface {
	// Emit sends an observability event to the configured backend.
	//
	// Emit should not panic. Errors should be handled internally.
	Emit(event Event)
}

// MultiEmitter fans every event out to a fixed list of emitters, in order.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter creates a MultiEmitter. Nil entries are skipped.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	m := &MultiEmitter{emitters: make([]Emitter, 0, len(emitters))}
	for _, e := range emitters {
		if e != nil {
			m.emitters = append(m.emitters, e)
		}
	}
	return m
}

// Emit forwards the event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
