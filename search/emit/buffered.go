package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory.
//
// Events are grouped by runID. It backs the step-mode progress view of the
// puzzle CLI and most engine tests, which assert on the sequence of
// expansions a run produced.
//
// Warning: every event is retained until Clear is called. Large searches
// emit one event per expansion, so prefer LogEmitter or ZerologEmitter for
// long runs.
//
// Example usage:
//
//	emitter := emit.NewBufferedEmitter()
//	engine, _ := search.New(policy, search.WithEmitter(emitter))
//	found, _ := engine.Find(ctx, start, goal)
//
//	expansions := emitter.GetHistoryWithFilter(engine.RunID(), emit.HistoryFilter{Msg: "node_expanded"})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
}

// HistoryFilter specifies criteria for filtering execution history.
//
// All filter fields are optional. When multiple fields are set, they are
// combined with AND logic.
type HistoryFilter struct {
	Msg     string // Filter by message (empty = no filter)
	MinStep *int   // Minimum step number (nil = no filter)
	MaxStep *int   // Maximum step number (nil = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// GetHistory retrieves all events for a specific runID in emission order.
//
// Returns a copy; an unknown runID yields an empty slice.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[runID]
	result := make([]Event, len(events))
	copy(result, events)
	return result
}

// GetHistoryWithFilter retrieves filtered events for a specific runID.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := []Event{}
	for _, event := range b.events[runID] {
		if matchesFilter(event, filter) {
			result = append(result, event)
		}
	}
	return result
}

// Count returns how many events with the given message were recorded for runID.
func (b *BufferedEmitter) Count(runID, msg string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, event := range b.events[runID] {
		if event.Msg == msg {
			n++
		}
	}
	return n
}

func matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinStep != nil && event.Step < *filter.MinStep {
		return false
	}
	if filter.MaxStep != nil && event.Step > *filter.MaxStep {
		return false
	}
	return true
}

// Clear removes stored events.
//
// If runID is non-empty, clears only events for that run.
// If runID is empty, clears everything.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID == "" {
		b.events = make(map[string][]Event)
	} else {
		delete(b.events, runID)
	}
}
