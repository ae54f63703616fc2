package treesearch

import (
	"sync/atomic"

	"github.com/google/btree"
)

// AddResult reports what SolutionPool.Add did with a node.
type AddResult int

const (
	// Rejected means the pool was already full and the node was no
	// better than the current worst.
	Rejected AddResult = iota
	// AddedNotBest means the node was inserted (possibly evicting the
	// previous worst) but did not become the new best.
	AddedNotBest
	// AddedNewBest means the node was inserted and strictly improved the
	// pool's best. This is the trigger for "new best" callbacks.
	AddedNewBest
)

// poolItem wraps a node with a monotonic sequence number so that nodes
// which tie under Better/Equals but differ as handles can still coexist as
// distinct btree keys.
type poolItem[N any] struct {
	node N
	seq  uint64
}

// SolutionPool is a bounded, Better-ordered set of nodes: the k best
// complete (or any) nodes seen so far. It is always seeded with at least
// one node (ordinarily the branching scheme's root) so Best/Worst are never
// called on an empty structure.
//
// Ordering is backed by a google/btree generic B-tree keyed by a strict
// total order derived from the scheme's Better predicate with a sequence
// tiebreak; this gives O(log n) insert/evict while still supporting
// arbitrary-position erase of the current worst.
type SolutionPool[N any] struct {
	scheme  Scheme[N]
	maxSize int
	tree    *btree.BTreeG[poolItem[N]]
	size    int
	nextSeq uint64

	best  poolItem[N]
	worst poolItem[N]
}

// NewSolutionPool creates a pool bounded at maxSize, seeded with seed (the
// placeholder "worst" so bound comparisons are well-defined from the very
// first expansion).
func NewSolutionPool[N any](scheme Scheme[N], maxSize int, seed N) *SolutionPool[N] {
	p := &SolutionPool[N]{
		scheme:  scheme,
		maxSize: maxSize,
	}
	p.tree = btree.NewG(32, p.less)
	p.insert(seed)
	return p
}

func (p *SolutionPool[N]) less(a, b poolItem[N]) bool {
	if p.scheme.Better(a.node, b.node) {
		return true
	}
	if p.scheme.Better(b.node, a.node) {
		return false
	}
	return a.seq < b.seq
}

func (p *SolutionPool[N]) insert(n N) poolItem[N] {
	item := poolItem[N]{node: n, seq: p.nextSeq}
	p.nextSeq++
	p.tree.ReplaceOrInsert(item)
	p.size++
	if p.size == 1 {
		p.best, p.worst = item, item
	} else {
		if p.less(item, p.best) {
			p.best = item
		}
		if p.less(p.worst, item) {
			p.worst = item
		}
	}
	return item
}

// Add inserts n: if the pool is below maxSize, n is always inserted;
// otherwise it is inserted only if it is a strict improvement over the
// current worst, evicting the worst.
func (p *SolutionPool[N]) Add(n N) AddResult {
	wasBest := p.best

	if p.size < p.maxSize {
		p.insert(n)
	} else {
		if !p.scheme.Better(n, p.worst.node) {
			return Rejected
		}
		p.tree.Delete(p.worst)
		p.size--
		p.insert(n)
		p.recomputeWorst()
	}

	if p.best.seq != wasBest.seq && p.less(p.best, wasBest) {
		return AddedNewBest
	}
	return AddedNotBest
}

// recomputeWorst re-derives the cached worst pointer from the backing tree.
// Called after an eviction, since the evicted item may have been the unique
// maximum and a different surviving item is now the worst.
func (p *SolutionPool[N]) recomputeWorst() {
	if max, ok := p.tree.Max(); ok {
		p.worst = max
	}
}

// Best returns the minimum under Better among all nodes currently retained.
func (p *SolutionPool[N]) Best() N {
	return p.best.node
}

// Worst returns the maximum under Better among all nodes currently
// retained; this is the pruning bound algorithms compare candidate children
// against.
func (p *SolutionPool[N]) Worst() N {
	return p.worst.node
}

// Size returns the number of nodes currently retained.
func (p *SolutionPool[N]) Size() int {
	return p.size
}

// Ascend visits every retained node in Better order (best first), calling fn
// until it returns false or every node has been visited.
func (p *SolutionPool[N]) Ascend(fn func(N) bool) {
	p.tree.Ascend(func(item poolItem[N]) bool {
		return fn(item.node)
	})
}

// globalSeq is a process-wide fallback sequence source used by nodes that
// need a stable creation order but aren't otherwise tracked by a pool or
// open set (e.g. branching schemes assigning ids to freshly built nodes).
var globalSeq atomic.Uint64

// NextSeq returns a monotonically increasing sequence number, useful for
// branching schemes that want a creation-order tiebreak key so ties under
// their comparators stay deterministic.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}
