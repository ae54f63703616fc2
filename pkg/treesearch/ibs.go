package treesearch

// IBS is iterative beam search: a per-depth family of capped (open-set,
// history) layers. Each outer iteration drains layer 0, then layer 1, and
// so on, creating layers lazily as children target deeper (or, rarely,
// shallower-or-equal) depths; a layer is capped at the iteration's beam
// width W using History's capped-queue policy. An iteration that never
// overflowed any layer proves the explored tree was searched exhaustively
// at width W; otherwise W grows and the whole pass restarts from the root.
//
// Layer storage here is a plain map[int]*History[N] keyed by absolute
// depth rather than a recycled ring buffer: simpler, and for this
// framework's node counts the extra map entries are not a material cost.
// One consequence: a child whose target depth is below the depth currently
// being drained lands in a layer that the outer depth loop has already
// passed for this width iteration, and so is never expanded; the next
// (wider) iteration starts again from fresh layers. A child at the current
// depth joins the layer being drained and is processed in this pass.
func IBS[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	depthScheme, hasDepth := scheme.(DepthScheme[N])
	width := params.MinQueueSize

	for {
		rs.counters.recordIteration()

		layers := map[int]*History[N]{0: NewHistory[N](scheme, width)}
		layers[0].Insert(scheme.Root())
		maxDepth := 0
		overflow := false

		var stopReason TerminationReason
		stopped := false

	depthLoop:
		for d := 0; d <= maxDepth; d++ {
			layer, ok := layers[d]
			if !ok {
				continue
			}
			for layer.Len() > 0 {
				if dl.expired() {
					stopReason, stopped = TimeLimitReached, true
					break depthLoop
				}
				if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
					stopReason, stopped = NodeLimitReached, true
					break depthLoop
				}
				if goalReached(scheme, params, rs.pool) {
					stopReason, stopped = GoalReached, true
					break depthLoop
				}

				current, _ := layer.PopMin()
				rs.counters.recordProcessed()
				rs.counters.recordQueueSize(layer.Len())

				if prunedByBound(scheme, params, current, rs.pool) {
					continue
				}

				children, fertile, err := childrenOf[N](scheme, current)
				if err != nil {
					return Output[N]{}, err
				}

				for _, child := range children {
					if !rs.offerChild(child) {
						continue
					}
					target := d + 1
					if hasDepth {
						target = depthScheme.Depth(child)
					}
					if target > maxDepth {
						maxDepth = target
					}
					tl, ok := layers[target]
					if !ok {
						tl = NewHistory[N](scheme, width)
						layers[target] = tl
					}
					if tl.Insert(child) {
						rs.counters.recordExpanded()
					}
					if tl.AtCapEviction() {
						overflow = true
					}
				}

				if fertile {
					layer.Insert(current)
					if layer.AtCapEviction() {
						overflow = true
					}
				}
			}
			layer.Clear()
		}

		if stopped {
			return rs.finish(stopReason, false), nil
		}
		if !overflow {
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
