package treesearch

// IMBBFS is iterative memory-bounded best-first search: BFS* restarted
// from the root against a growing queue cap. Each outer iteration reseeds a
// fresh capped open
// set; if the iteration drains without any at-cap eviction, the explored
// tree was searched exhaustively within the current cap and the result is
// final. Otherwise the cap grows (WithGrowthFactor, minimum increment of 1,
// per nextWidth) and the whole tree is explored again from scratch with the
// larger cap.
func IMBBFS[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}
	streaming, ok := asStreaming[N](scheme)
	if !ok {
		return Output[N]{}, wrapContract("IMBBFS requires a Streaming scheme")
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	width := params.MinQueueSize

	for {
		rs.counters.recordIteration()

		open := NewHistory[N](scheme, width)
		open.Insert(scheme.Root())

		reason := drainOpenSet(scheme, params, rs, open, streaming, &dl)
		if reason != Exhausted {
			return rs.finish(reason, false), nil
		}
		if !open.AtCapEviction() {
			return rs.finish(Exhausted, true), nil
		}

		if params.MaxIterations > 0 && int(rs.counters.Iterations) >= params.MaxIterations {
			return rs.finish(IterationLimitReached, false), nil
		}
		if params.MaxQueueSize > 0 && width >= params.MaxQueueSize {
			return rs.finish(QueueCapReached, false), nil
		}

		width = nextWidth(width, params.GrowthFactor)
		if params.MaxQueueSize > 0 && width > params.MaxQueueSize {
			width = params.MaxQueueSize
		}
	}
}
