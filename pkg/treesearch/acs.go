package treesearch

import "math"

// ACS is anytime column search: iteration t allows each node at most
// C_t = initial_column_size * growth_factor^t children per visit. Unlike
// IBS, layers are never discarded between iterations: each outer iteration
// walks the layers in depth order and pops from each as many nodes as it
// held when the walk reached it (a fixed-size pass, not a drain-to-empty
// loop). Each popped node generates up to its quota of new children and is
// reinserted if it still has unexplored children left; a reinserted node
// that is still the layer minimum is popped again in the same pass.
// Children land in deeper layers, which the same iteration's walk reaches
// later. An iteration that produces zero new children anywhere ends the
// run as Exhausted.
func ACS[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	depthScheme, hasDepth := scheme.(DepthScheme[N])

	layers := map[int]*History[N]{0: NewHistory[N](scheme, 0)}
	layers[0].Insert(scheme.Root())
	maxDepth := 0

	for iteration := 0; ; iteration++ {
		rs.counters.recordIteration()
		quota := columnQuota(params.InitialColumnSize, params.ColumnSizeGrowthFactor, iteration)
		newChildren := 0

		var stopReason TerminationReason
		stopped := false

	depthLoop:
		for d := 0; d <= maxDepth; d++ {
			layer, ok := layers[d]
			if !ok {
				continue
			}
			visits := layer.Len()
			for i := 0; i < visits && layer.Len() > 0; i++ {
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

				children, fertile, err := acsExpand[N](scheme, current, quota)
				if err != nil {
					return Output[N]{}, err
				}
				newChildren += len(children)

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
						tl = NewHistory[N](scheme, 0)
						layers[target] = tl
					}
					if tl.Insert(child) {
						rs.counters.recordExpanded()
					}
				}

				if fertile {
					layer.Insert(current)
				}
			}
		}

		if stopped {
			return rs.finish(stopReason, false), nil
		}
		if newChildren == 0 {
			return rs.finish(Exhausted, true), nil
		}
		if params.MaxIterations > 0 && int(rs.counters.Iterations) >= params.MaxIterations {
			return rs.finish(IterationLimitReached, false), nil
		}
	}
}

// columnQuota computes C_t = initial * growth^t, floored, with a minimum of
// one child per visit.
func columnQuota(initial int, growth float64, t int) int {
	q := int(float64(initial) * math.Pow(growth, float64(t)))
	if q < 1 {
		return 1
	}
	return q
}

// acsExpand generates up to quota children of node for one ACS visit. For a
// Batch scheme the quota cannot be enforced mid-call (there is no cursor to
// resume), so the full Children(node) result is returned in one shot and
// the node is treated as immediately infertile, same as IBS; only Streaming
// schemes get true per-visit throttling.
func acsExpand[N any](scheme Scheme[N], node N, quota int) (children []N, fertile bool, err error) {
	if b, ok := asBatch[N](scheme); ok {
		return b.Children(node), false, nil
	}
	s, ok := asStreaming[N](scheme)
	if !ok {
		return nil, false, ErrContractViolation
	}
	for i := 0; i < quota && !s.Infertile(node); i++ {
		if child, ok := s.NextChild(node); ok {
			children = append(children, child)
		}
	}
	return children, !s.Infertile(node), nil
}
