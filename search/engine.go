package search

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/informed-search/search/emit"
	"github.com/dshills/informed-search/search/store"
)

// Phase is the lifecycle state of an Engine.
//
//	Ready --Init--> Stepping --Step--> Found | Exhausted
//	any   --Cleanup--> Ready
type Phase int

const (
	// PhaseReady means no search is loaded.
	PhaseReady Phase = iota
	// PhaseStepping means Init ran and the frontier may still hold work.
	PhaseStepping
	// PhaseFound means the goal was extracted; the path cursor is valid.
	PhaseFound
	// PhaseExhausted means the frontier emptied without reaching the goal.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseStepping:
		return "stepping"
	case PhaseFound:
		return "found"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Status is the outcome of one Step.
type Status int

const (
	// StatusContinuing means more steps are needed.
	StatusContinuing Status = iota
	// StatusFound means the goal was reached.
	StatusFound
	// StatusExhausted means there is no path to the goal.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusContinuing:
		return "continuing"
	case StatusFound:
		return "found"
	case StatusExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Stats counts the work done by the current search.
type Stats struct {
	Steps       int // live nodes extracted from the frontier
	Expanded    int // nodes whose successors were generated
	Generated   int // candidate states produced by Successors
	Reopened    int // states re-queued with a strictly cheaper cost
	Stale       int // superseded frontier entries discarded
	Rejected    int // candidates no cheaper than the known cost
	MaxFrontier int // largest frontier size observed
	Frontier    int // current frontier size
	Visited     int // distinct states recorded
}

// Result summarises a search.
type Result[S any] struct {
	RunID     string
	Algorithm Algorithm
	Found     bool
	Path      []S
	Cost      float64
	Stats     Stats
	Duration  time.Duration
}

// Engine runs Best-First, Dijkstra or A* over a caller-defined state space.
//
// The engine can be driven two ways:
//   - Find runs the search to completion
//   - Init followed by repeated Step runs one extraction per call, so the
//     caller can interleave search with other work
//
// Both paths share the same state machine (see Phase). After a successful
// search the solution is read with First/Next, Path or States.
//
// An Engine is not safe for concurrent use. Policy callbacks must not call
// back into the engine.
//
// Type parameter S is the state type.
//
// Example:
//
//	engine, err := search.New[Board](puzzle.Policy{}, search.WithAlgorithm(search.AStar))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Cleanup()
//
//	found, err := engine.Find(ctx, start, puzzle.Goal())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if found {
//	    for b := range engine.States() {
//	        fmt.Println(b)
//	    }
//	}
type Engine[S any] struct {
	policy   Policy[S]
	cfg      engineConfig
	recorder store.Store[S]
	quiet    bool // emitter discards events; skip building metadata

	arena   nodeArena[S]
	visited *visitedStore[S]
	open    openSet
	succ    *Successors[S]

	phase    Phase
	runID    string
	start    S
	goal     S
	current  int32
	terminus int32
	stats    Stats
	began    time.Time
	elapsed  time.Duration

	path   []S
	cursor int // next path index for Next; -1 until First
}

// New creates an Engine for policy p.
//
// Returns an EngineError with code:
//   - MISSING_POLICY if p is nil or a PolicyFuncs lacks a required function
//   - INVALID_OPTION if an option rejects its argument
func New[S any](p Policy[S], opts ...Option) (*Engine[S], error) {
	if p == nil {
		return nil, &EngineError{Message: "policy is required", Code: "MISSING_POLICY"}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, &EngineError{Message: "invalid option", Code: "INVALID_OPTION", Cause: err}
		}
	}

	if v, ok := p.(policyValidator); ok {
		if err := v.validate(cfg.algorithm); err != nil {
			return nil, err
		}
	}

	e := &Engine[S]{
		policy:   p,
		cfg:      cfg,
		visited:  newVisitedStore(p),
		succ:     NewSuccessors[S](cfg.successorLimit),
		current:  noParent,
		terminus: noParent,
		cursor:   -1,
	}
	_, e.quiet = cfg.emitter.(*emit.NullEmitter)

	if cfg.recorder != nil {
		r, ok := cfg.recorder.(store.Store[S])
		if !ok {
			return nil, &EngineError{
				Message: fmt.Sprintf("recorder %T does not match the engine state type", cfg.recorder),
				Code:    "INVALID_OPTION",
			}
		}
		e.recorder = r
	}

	return e, nil
}

// Algorithm returns the configured algorithm.
func (e *Engine[S]) Algorithm() Algorithm { return e.cfg.algorithm }

// Find searches from start to goal and reports whether a path exists.
//
// A false result with a nil error means the frontier was exhausted: there
// is no path. Errors are reserved for failures such as a successor
// generator error, a spent expansion budget, cancellation of ctx, or a
// recorder failure. A recorder failure still returns the search outcome.
func (e *Engine[S]) Find(ctx context.Context, start, goal S) (bool, error) {
	if e.cfg.timeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeBudget)
		defer cancel()
	}

	if err := e.Init(start, goal); err != nil {
		return false, err
	}

	for {
		status, err := e.Step(ctx)
		if err != nil {
			return status == StatusFound, err
		}
		switch status {
		case StatusFound:
			return true, nil
		case StatusExhausted:
			return false, nil
		}
	}
}

// Init discards any previous search and seeds the frontier with start.
// The engine moves to PhaseStepping.
func (e *Engine[S]) Init(start, goal S) error {
	e.reset()

	e.start, e.goal = start, goal
	e.runID = e.cfg.runID
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	e.began = time.Now()

	f := e.cfg.algorithm.priority(0, e.heuristic(start))
	h := e.arena.add(start, noParent, 0, f)
	e.visited.recordOrImprove(start, 0, h)
	e.open.insert(h, f)
	e.stats.MaxFrontier = 1
	e.phase = PhaseStepping

	e.emit(-1, "search_init", func() map[string]interface{} {
		return map[string]interface{}{
			"algorithm": e.cfg.algorithm.String(),
			"f":         f,
		}
	})
	return nil
}

// Step performs one unit of work: it extracts the best live frontier node,
// stops if it is the goal, and otherwise expands it.
//
// Stale frontier entries surfacing before the live node are discarded in
// the same call. Calling Step after the search finished returns the final
// status again without doing work.
//
// On error the status is StatusContinuing (or the terminal status for a
// recorder failure) and the engine state is unchanged apart from stale
// entries already discarded: a node whose expansion failed goes back to
// the frontier in its original position.
func (e *Engine[S]) Step(ctx context.Context) (Status, error) {
	switch e.phase {
	case PhaseReady:
		return StatusContinuing, &EngineError{
			Message: "call Init before Step",
			Code:    "NOT_INITIALIZED",
			Cause:   ErrNotInitialized,
		}
	case PhaseFound:
		return StatusFound, nil
	case PhaseExhausted:
		return StatusExhausted, nil
	}

	if err := ctx.Err(); err != nil {
		return StatusContinuing, err
	}

	began := time.Now()
	defer func() {
		e.cfg.metrics.ObserveStep(e.cfg.algorithm.String(), time.Since(began))
	}()

	entry, ok := e.nextLive()
	if !ok {
		return e.finish(ctx, false)
	}

	cur := e.arena.get(entry.node)
	state, g, f := cur.state, cur.g, cur.f
	e.current = entry.node

	if e.policy.Compare(state, e.goal) == 0 {
		e.stats.Steps++
		e.terminus = entry.node
		return e.finish(ctx, true)
	}

	if e.cfg.maxExpansions > 0 && e.stats.Expanded >= e.cfg.maxExpansions {
		e.open.restore(entry)
		return StatusContinuing, &EngineError{
			Message: fmt.Sprintf("reached %d expansions", e.cfg.maxExpansions),
			Code:    "MAX_EXPANSIONS_EXCEEDED",
			Cause:   ErrMaxExpansions,
		}
	}

	e.stats.Steps++

	e.succ.Clear()
	err := e.policy.Successors(state, e.succ)
	if err == nil {
		err = e.succ.Err()
	}
	if err != nil {
		e.succ.Clear()
		return StatusContinuing, e.failExpansion(entry, err)
	}
	if !e.arena.room(e.succ.Len()) {
		e.succ.Clear()
		return StatusContinuing, e.failExpansion(entry, fmt.Errorf("%w: node arena full", ErrAllocation))
	}

	e.stats.Expanded++
	e.cfg.metrics.IncExpansions(e.cfg.algorithm.String())

	for _, cand := range e.succ.items {
		e.stats.Generated++
		g2 := g + e.policy.Cost(state, cand)

		h := e.arena.next()
		switch e.visited.recordOrImprove(cand, g2, h) {
		case Rejected:
			e.stats.Rejected++
			continue
		case Improved:
			e.stats.Reopened++
			e.cfg.metrics.IncReopened(e.cfg.algorithm.String())
			e.emit(int(h), "node_reopened", func() map[string]interface{} {
				return map[string]interface{}{"g": g2}
			})
		}

		f2 := e.cfg.algorithm.priority(g2, e.heuristic(cand))
		e.arena.add(cand, entry.node, g2, f2)
		e.open.insert(h, f2)
	}

	generated := e.succ.Len()
	e.succ.Clear()

	if n := e.open.len(); n > e.stats.MaxFrontier {
		e.stats.MaxFrontier = n
	}
	e.cfg.metrics.UpdateSizes(e.open.len(), e.visited.len())

	e.emit(int(entry.node), "node_expanded", func() map[string]interface{} {
		return map[string]interface{}{
			"g":         g,
			"f":         f,
			"generated": generated,
			"frontier":  e.open.len(),
			"visited":   e.visited.len(),
		}
	})

	return StatusContinuing, nil
}

// IsDone reports whether the search reached PhaseFound or PhaseExhausted.
func (e *Engine[S]) IsDone() bool {
	return e.phase == PhaseFound || e.phase == PhaseExhausted
}

// Phase returns the lifecycle state.
func (e *Engine[S]) Phase() Phase { return e.phase }

// RunID returns the ID of the current search, or "" before Init.
func (e *Engine[S]) RunID() string { return e.runID }

// Current returns the state of the most recently extracted node.
func (e *Engine[S]) Current() (S, bool) {
	if e.current == noParent {
		var zero S
		return zero, false
	}
	return e.arena.get(e.current).state, true
}

// Stats returns counters for the current search.
func (e *Engine[S]) Stats() Stats {
	s := e.stats
	s.Frontier = e.open.len()
	s.Visited = e.visited.len()
	return s
}

// First returns the start state of the solution path and positions the
// cursor on the following state. Calling First again rewinds the cursor.
//
// Errors wrap ErrInvalidCursor unless the last search found the goal; after
// an exhausted search they also wrap ErrNoSolution.
func (e *Engine[S]) First() (S, error) {
	var zero S
	if err := e.cursorErr(); err != nil {
		return zero, err
	}
	e.cursor = 1
	return e.path[0], nil
}

// Next returns the next state on the solution path. After the goal has
// been returned it reports ErrPathEnd.
func (e *Engine[S]) Next() (S, error) {
	var zero S
	if err := e.cursorErr(); err != nil {
		return zero, err
	}
	if e.cursor < 0 {
		return zero, fmt.Errorf("%w: Next called before First", ErrInvalidCursor)
	}
	if e.cursor >= len(e.path) {
		return zero, ErrPathEnd
	}
	s := e.path[e.cursor]
	e.cursor++
	return s, nil
}

// Path returns a copy of the solution, start first and goal last.
func (e *Engine[S]) Path() ([]S, error) {
	if err := e.cursorErr(); err != nil {
		return nil, err
	}
	out := make([]S, len(e.path))
	copy(out, e.path)
	return out, nil
}

// States iterates the solution path start to goal. It yields nothing unless
// the last search found the goal.
func (e *Engine[S]) States() iter.Seq[S] {
	path := e.path
	if e.phase != PhaseFound {
		path = nil
	}
	return func(yield func(S) bool) {
		for _, s := range path {
			if !yield(s) {
				return
			}
		}
	}
}

// Result summarises the current search. Before Init it returns an
// EngineError with code NOT_INITIALIZED.
func (e *Engine[S]) Result() (Result[S], error) {
	if e.phase == PhaseReady {
		return Result[S]{}, &EngineError{
			Message: "no search loaded",
			Code:    "NOT_INITIALIZED",
			Cause:   ErrNotInitialized,
		}
	}

	r := Result[S]{
		RunID:     e.runID,
		Algorithm: e.cfg.algorithm,
		Found:     e.phase == PhaseFound,
		Stats:     e.Stats(),
		Duration:  e.elapsed,
	}
	if e.phase == PhaseStepping {
		r.Duration = time.Since(e.began)
	}
	if r.Found {
		r.Path, _ = e.Path()
		r.Cost = e.arena.get(e.terminus).g
	}
	return r, nil
}

// Cleanup releases all nodes, visited entries and frontier entries and
// returns the engine to PhaseReady. Init may be called again afterwards.
func (e *Engine[S]) Cleanup() {
	if e.phase != PhaseReady {
		e.emit(-1, "search_cleanup", nil)
	}

	e.arena.release()
	e.open.release()
	e.visited = newVisitedStore(e.policy)
	e.succ = NewSuccessors[S](e.cfg.successorLimit)
	e.clearRun()
	e.runID = ""
	e.cfg.metrics.UpdateSizes(0, 0)
}

func (e *Engine[S]) cursorErr() error {
	switch e.phase {
	case PhaseFound:
		return nil
	case PhaseExhausted:
		return fmt.Errorf("%w: %w", ErrInvalidCursor, ErrNoSolution)
	case PhaseStepping:
		return fmt.Errorf("%w: search still running", ErrInvalidCursor)
	default:
		return fmt.Errorf("%w: no search loaded", ErrInvalidCursor)
	}
}

func (e *Engine[S]) reset() {
	e.arena.reset()
	e.open.reset()
	e.visited.reset()
	e.succ.Clear()
	e.clearRun()
}

func (e *Engine[S]) clearRun() {
	var zero S
	e.start, e.goal = zero, zero
	e.phase = PhaseReady
	e.current = noParent
	e.terminus = noParent
	e.stats = Stats{}
	e.elapsed = 0
	e.path = nil
	e.cursor = -1
}

// nextLive pops frontier entries until one still owns its state.
func (e *Engine[S]) nextLive() (openEntry, bool) {
	for {
		entry, ok := e.open.extractMin()
		if !ok {
			return entry, false
		}
		if e.visited.owner(e.arena.get(entry.node).state) == entry.node {
			return entry, true
		}

		e.stats.Stale++
		e.cfg.metrics.IncStale(e.cfg.algorithm.String())
		e.emit(int(entry.node), "stale_discarded", nil)
	}
}

func (e *Engine[S]) failExpansion(entry openEntry, cause error) error {
	e.open.restore(entry)
	e.stats.Steps--
	e.emit(int(entry.node), "expansion_failed", func() map[string]interface{} {
		return map[string]interface{}{"error": cause.Error()}
	})
	return &EngineError{Message: "successor generation failed", Code: "EXPANSION_FAILED", Cause: cause}
}

func (e *Engine[S]) finish(ctx context.Context, found bool) (Status, error) {
	e.elapsed = time.Since(e.began)
	alg := e.cfg.algorithm.String()

	status, outcome, msg, node := StatusExhausted, "exhausted", "frontier_exhausted", -1
	if found {
		e.phase = PhaseFound
		e.path = e.arena.path(e.terminus)
		status, outcome, msg, node = StatusFound, "found", "goal_found", int(e.terminus)
		e.cfg.metrics.ObservePathLength(alg, len(e.path))
	} else {
		e.phase = PhaseExhausted
	}

	e.cfg.metrics.RecordRun(alg, outcome)
	e.cfg.metrics.UpdateSizes(e.open.len(), e.visited.len())
	e.emit(node, msg, func() map[string]interface{} {
		meta := map[string]interface{}{
			"algorithm": alg,
			"expanded":  e.stats.Expanded,
			"generated": e.stats.Generated,
			"visited":   e.visited.len(),
			"duration":  e.elapsed,
		}
		if found {
			meta["g"] = e.arena.get(e.terminus).g
			meta["path_length"] = len(e.path)
		}
		return meta
	})

	if e.recorder != nil {
		if err := e.recorder.SaveRun(ctx, e.record()); err != nil {
			return status, &EngineError{Message: "failed to record run", Code: "RECORD_FAILED", Cause: err}
		}
	}
	return status, nil
}

func (e *Engine[S]) record() store.Run[S] {
	run := store.Run[S]{
		ID:         e.runID,
		Algorithm:  e.cfg.algorithm.String(),
		Found:      e.phase == PhaseFound,
		Start:      e.start,
		Goal:       e.goal,
		Expanded:   e.stats.Expanded,
		Generated:  e.stats.Generated,
		Reopened:   e.stats.Reopened,
		DurationMS: e.elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if run.Found {
		run.Path, _ = e.Path()
		run.Cost = e.arena.get(e.terminus).g
	}
	return run
}

func (e *Engine[S]) heuristic(s S) float64 {
	if !e.cfg.algorithm.usesHeuristic() {
		return 0
	}
	return e.policy.Heuristic(s, e.goal)
}

// emit sends an event. meta is only evaluated when the emitter keeps events.
func (e *Engine[S]) emit(node int, msg string, meta func() map[string]interface{}) {
	if e.quiet {
		return
	}
	var m map[string]interface{}
	if meta != nil {
		m = meta()
	}
	e.cfg.emitter.Emit(emit.Event{
		RunID: e.runID,
		Step:  e.stats.Steps,
		Node:  node,
		Msg:   msg,
		Meta:  m,
	})
}
