package treesearch

import (
	"time"
)

// newSeededPool builds the solution pool each algorithm starts from: seeded
// with the root as the placeholder worst, then optionally re-seeded with a
// caller-supplied incumbent, which only strengthens the initial pruning
// bound since Add only accepts strict improvements once the pool is full.
func newSeededPool[N any](scheme Scheme[N], params Params[N]) *SolutionPool[N] {
	pool := NewSolutionPool[N](scheme, params.MaxPoolSize, scheme.Root())
	if params.Incumbent != nil {
		pool.Add(*params.Incumbent)
	}
	return pool
}

// prunedByBound reports whether node can be discarded against the pool's
// worst and, if supplied, the auxiliary cutoff bound.
func prunedByBound[N any](scheme Scheme[N], params Params[N], node N, pool *SolutionPool[N]) bool {
	if scheme.Bound(node, pool.Worst()) {
		return true
	}
	if params.Cutoff != nil && scheme.Bound(node, *params.Cutoff) {
		return true
	}
	return false
}

// goalReached reports whether the configured goal node means the search
// should stop: the goal is no longer an improvement over the pool's best.
func goalReached[N any](scheme Scheme[N], params Params[N], pool *SolutionPool[N]) bool {
	if params.Goal == nil {
		return false
	}
	return !scheme.Better(*params.Goal, pool.Best())
}

// runState accumulates the pieces every algorithm needs to build its final
// Output: start time, counters, the anytime log, and the reporter to notify.
type runState[N any] struct {
	scheme   Scheme[N]
	params   Params[N]
	pool     *SolutionPool[N]
	counters *Counters
	start    time.Time
	reporter Reporter[N]
	anytime  []IntermediaryOutput[N]
}

func newRunState[N any](scheme Scheme[N], params Params[N]) *runState[N] {
	return &runState[N]{
		scheme:   scheme,
		params:   params,
		pool:     newSeededPool(scheme, params),
		counters: &Counters{},
		start:    time.Now(),
		reporter: reporterFor(params),
	}
}

func reporterFor[N any](params Params[N]) Reporter[N] {
	if params.Verbosity == Silent || params.Reporter == nil {
		return NopReporter[N]{}
	}
	if params.Verbosity == Summary {
		return summaryOnly[N]{inner: params.Reporter}
	}
	return params.Reporter
}

// summaryOnly suppresses per-improvement events for Verbosity == Summary,
// passing through only the final record.
type summaryOnly[N any] struct{ inner Reporter[N] }

func (s summaryOnly[N]) NewBest(Output[N])      {}
func (s summaryOnly[N]) Finished(out Output[N]) { s.inner.Finished(out) }

// offerChild is the shared "child arrives" step of every algorithm: if
// child improves on the pool's worst, add it (firing the new-best callback
// on strict improvement); if it is not a leaf and not bound-pruned, the
// caller should insert it into the relevant open set.
func (rs *runState[N]) offerChild(child N) (shouldExpand bool) {
	rs.counters.recordGenerated()

	if rs.scheme.Better(child, rs.pool.Worst()) {
		result := rs.pool.Add(child)
		if result != Rejected {
			rs.counters.recordAdded()
		}
		if result == AddedNewBest {
			out := rs.buildOutput(Unterminated, false)
			rs.anytime = append(rs.anytime, IntermediaryOutput[N]{
				Node:         child,
				Value:        rs.scheme.Display(child),
				Counters:     rs.counters.snapshot(),
				ElapsedSince: time.Since(rs.start),
			})
			rs.reporter.NewBest(out)
			if rs.params.NewSolutionCallback != nil {
				rs.params.NewSolutionCallback(out)
			}
		}
	}

	if rs.scheme.Leaf(child) {
		return false
	}
	if prunedByBound(rs.scheme, rs.params, child, rs.pool) {
		return false
	}
	return true
}

// buildOutput snapshots the current run state into an Output.
func (rs *runState[N]) buildOutput(reason TerminationReason, exhaustive bool) Output[N] {
	best := rs.pool.Best()
	return Output[N]{
		Pool:                rs.pool,
		Best:                best,
		BestDisplay:         rs.scheme.Display(best),
		Elapsed:             time.Since(rs.start),
		Counters:            rs.counters.snapshot(),
		IntermediaryOutputs: rs.anytime,
		Reason:              reason,
		Exhaustive:          exhaustive,
	}
}

// finish builds the final Output and notifies the reporter.
func (rs *runState[N]) finish(reason TerminationReason, exhaustive bool) Output[N] {
	out := rs.buildOutput(reason, exhaustive)
	rs.reporter.Finished(out)
	return out
}

// asStreaming asserts that scheme implements Streaming, the style BFS* and
// IMBBFS require. Each algorithm declares which style it expects; no
// compatibility layer is synthesized for the other style.
func asStreaming[N any](scheme Scheme[N]) (Streaming[N], bool) {
	s, ok := scheme.(Streaming[N])
	return s, ok
}

// asBatch asserts that scheme implements Batch.
func asBatch[N any](scheme Scheme[N]) (Batch[N], bool) {
	b, ok := scheme.(Batch[N])
	return b, ok
}

// drainOpenSet runs the BFS* inner loop against a single open set until it
// empties or a configured limit fires. It is
// shared by BestFirstSearch and each IMBBFS outer iteration, which differ
// only in whether the open set is capped and reseeded between calls.
func drainOpenSet[N any](scheme Scheme[N], params Params[N], rs *runState[N], open *History[N], streaming Streaming[N], dl *deadlineChecker) TerminationReason {
	for {
		current, ok := open.Min()
		if !ok {
			return Exhausted
		}
		if dl.expired() {
			return TimeLimitReached
		}
		if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
			return NodeLimitReached
		}
		if goalReached(scheme, params, rs.pool) {
			return GoalReached
		}

		current, _ = open.PopMin()
		rs.counters.recordProcessed()
		rs.counters.recordQueueSize(open.Len())

		if prunedByBound(scheme, params, current, rs.pool) {
			continue
		}

		if child, hasChild := streaming.NextChild(current); hasChild {
			if rs.offerChild(child) {
				open.Insert(child)
				rs.counters.recordExpanded()
			}
		}

		if !streaming.Infertile(current) {
			open.Insert(current)
		}
	}
}

// childrenOf dispatches to whichever style scheme implements, for
// algorithms (IBS, ACS) that accept either: a Batch scheme yields its full
// child set in one round, a Streaming scheme yields at most one child per
// round. It returns the children produced and whether the parent remains
// fertile afterward.
func childrenOf[N any](scheme Scheme[N], parent N) (children []N, fertile bool, err error) {
	if b, ok := asBatch[N](scheme); ok {
		return b.Children(parent), false, nil
	}
	if s, ok := asStreaming[N](scheme); ok {
		child, ok := s.NextChild(parent)
		if ok {
			children = append(children, child)
		}
		return children, !s.Infertile(parent), nil
	}
	return nil, false, ErrContractViolation
}
