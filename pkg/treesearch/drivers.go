package treesearch

import "sort"

// allChildren fully drains a node's children regardless of branching style:
// for Batch schemes this is one Children call; for Streaming schemes this
// calls NextChild repeatedly until Infertile, since the auxiliary drivers
// below (unlike BFS*/IMBBFS/IBS/ACS) always fully expand a visited node in
// one step rather than interleaving partial expansion with re-insertion.
func allChildren[N any](scheme Scheme[N], node N) ([]N, error) {
	if b, ok := asBatch[N](scheme); ok {
		return b.Children(node), nil
	}
	if s, ok := asStreaming[N](scheme); ok {
		var out []N
		for !s.Infertile(node) {
			if child, ok := s.NextChild(node); ok {
				out = append(out, child)
			}
		}
		return out, nil
	}
	return nil, ErrContractViolation
}

// Greedy descends the tree once: from the root, materialize the current
// node's children, follow the single
// child ranked best by Less (ignoring the rest), and stop at a leaf. The
// pool is updated on every child offered along the way, so a strictly
// improving node discovered off the greedy path is still retained even
// though it is never visited again.
func Greedy[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	current := scheme.Root()

	for {
		if dl.expired() {
			return rs.finish(TimeLimitReached, false), nil
		}
		if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
			return rs.finish(NodeLimitReached, false), nil
		}
		if goalReached(scheme, params, rs.pool) {
			return rs.finish(GoalReached, false), nil
		}
		rs.counters.recordProcessed()

		if scheme.Leaf(current) {
			rs.offerChild(current)
			return rs.finish(Exhausted, false), nil
		}

		children, err := allChildren(scheme, current)
		if err != nil {
			return Output[N]{}, err
		}
		if len(children) == 0 {
			return rs.finish(Exhausted, false), nil
		}

		best := children[0]
		rs.offerChild(best)
		for _, child := range children[1:] {
			rs.offerChild(child)
			if scheme.Less(child, best) {
				best = child
			}
		}
		rs.counters.recordExpanded()
		current = best
	}
}

// DepthFirstSearch is LIFO expansion:
// a node's children are materialized, bound-pruned, and
// sorted by Less before being pushed so the most promising child is popped
// (and so explored) first.
func DepthFirstSearch[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	stack := []N{scheme.Root()}

	for len(stack) > 0 {
		if dl.expired() {
			return rs.finish(TimeLimitReached, false), nil
		}
		if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
			return rs.finish(NodeLimitReached, false), nil
		}
		if goalReached(scheme, params, rs.pool) {
			return rs.finish(GoalReached, false), nil
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rs.counters.recordProcessed()

		if prunedByBound(scheme, params, current, rs.pool) {
			continue
		}

		children, err := allChildren(scheme, current)
		if err != nil {
			return Output[N]{}, err
		}

		expandable := children[:0]
		for _, child := range children {
			if rs.offerChild(child) {
				expandable = append(expandable, child)
			}
		}
		sort.Slice(expandable, func(i, j int) bool {
			return scheme.Less(expandable[i], expandable[j])
		})
		for range expandable {
			rs.counters.recordExpanded()
		}
		for i := len(expandable) - 1; i >= 0; i-- {
			stack = append(stack, expandable[i])
		}
	}

	return rs.finish(Exhausted, true), nil
}

// nestedLocalSweepBudget bounds the local breadth sweep inside
// NestedBestFirstSearch.
const nestedLocalSweepBudget = 100000

// NestedBestFirstSearch is an outer best-first search over promising
// subtrees where, instead of
// expanding the outer minimum by one child, each chosen subtree receives a
// bounded breadth-first sweep (nestedLocalSweepBudget nodes) before any
// nodes left over from that sweep are folded back into the outer open set
// and the outer search resumes. This combines the outer search's global
// direction with thorough local exploration of whichever subtree looks
// best at the moment.
func NestedBestFirstSearch[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}

	rs := newRunState(scheme, params)
	dl := newDeadlineChecker(params.TimeLimit)
	outer := NewHistory[N](scheme, 0)
	outer.Insert(scheme.Root())

	drainLocalIntoOuter := func(local []N) {
		for _, n := range local {
			outer.Insert(n)
		}
	}

	for {
		if _, ok := outer.Min(); !ok {
			return rs.finish(Exhausted, true), nil
		}
		if dl.expired() {
			return rs.finish(TimeLimitReached, false), nil
		}
		if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
			return rs.finish(NodeLimitReached, false), nil
		}
		if goalReached(scheme, params, rs.pool) {
			return rs.finish(GoalReached, false), nil
		}

		subtreeRoot, _ := outer.PopMin()
		local := []N{subtreeRoot}

		for visited := 0; visited < nestedLocalSweepBudget && len(local) > 0; visited++ {
			if dl.expired() {
				drainLocalIntoOuter(local)
				return rs.finish(TimeLimitReached, false), nil
			}
			if params.MaxNodes >= 0 && rs.counters.NodesProcessed >= int64(params.MaxNodes) {
				drainLocalIntoOuter(local)
				return rs.finish(NodeLimitReached, false), nil
			}
			if goalReached(scheme, params, rs.pool) {
				drainLocalIntoOuter(local)
				return rs.finish(GoalReached, false), nil
			}

			node := local[0]
			local = local[1:]
			rs.counters.recordProcessed()

			if prunedByBound(scheme, params, node, rs.pool) {
				continue
			}

			children, err := allChildren(scheme, node)
			if err != nil {
				return Output[N]{}, err
			}
			for _, child := range children {
				if rs.offerChild(child) {
					local = append(local, child)
					rs.counters.recordExpanded()
				}
			}
		}

		drainLocalIntoOuter(local)
	}
}
