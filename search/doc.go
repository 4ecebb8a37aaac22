// Package search provides a generic informed graph-search engine.
//
// One parameterised loop implements three algorithms that differ only in
// the frontier priority key:
//
//	Algorithm   Key      Optimal
//	BestFirst   h        no
//	Dijkstra    g        yes, for non-negative costs
//	AStar       g + h    yes, if h never overestimates
//
// A problem plugs in through Policy (or PolicyFuncs): state comparison,
// hashing, heuristic, edge cost and successor generation. The engine owns
// every node it creates in an index-addressed arena, deduplicates states in
// a hash-bucketed visited store, and reopens a state whenever a strictly
// cheaper path to it appears. Superseded frontier entries are discarded
// lazily when they surface. Equal keys are served first-in first-out, so
// runs are reproducible.
//
// Run to completion:
//
//	engine, _ := search.New[Board](policy)
//	found, err := engine.Find(ctx, start, goal)
//
// Or drive it one step at a time:
//
//	_ = engine.Init(start, goal)
//	for !engine.IsDone() {
//	    if _, err := engine.Step(ctx); err != nil {
//	        return err
//	    }
//	    drawProgress(engine.Stats())
//	}
//
// The solution is read start-first with First/Next, Path or States.
// Cleanup releases everything the engine allocated.
//
// Observability hooks: WithEmitter (see package emit), WithMetrics
// (Prometheus) and WithRecorder (run history, see package store).
package search
