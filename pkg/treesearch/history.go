package treesearch

import (
	"github.com/google/btree"
)

// openItem wraps a node held in an open set with a monotonic sequence
// number, giving the scheme's (possibly non-strict) Less relation a strict
// total order to key the backing btree on, the open-set analogue of
// poolItem.
type openItem[N any] struct {
	node N
	seq  uint64
}

// History pairs a dominance history (a hash map grouping nodes by
// signature, for pruning) with a best-first ordered open set (a sorted set
// keyed by the scheme's Less). The two structures are updated atomically by
// Insert and evictRbegin/PopMin so that, at the end of every public method
// call:
//
//  1. no two nodes in the same history bucket dominate each other,
//  2. every comparable node in the open set is in exactly one bucket, and
//  3. the open-set order is a strict weak order under Less.
//
// A zero cap means uncapped (used by BFS*, ACS and the nested best-first
// outer set); a positive cap (IMBBFS, IBS) makes Insert follow the
// capped-queue policy: once the set is at capacity, insertion is rejected
// outright if the incoming node is strictly worse than the current rbegin, and
// otherwise the rbegin is evicted if the insert pushed the set over
// capacity.
type History[N any] struct {
	scheme  Scheme[N]
	tree    *btree.BTreeG[openItem[N]]
	buckets map[uint64][]openItem[N]
	size    int
	nextSeq uint64

	cap int

	// atCapEviction is set whenever a capped insert drops or evicts a
	// node, signalling to enclosing iterative drivers that the current
	// bound is not proven optimal.
	atCapEviction bool
}

// NewHistory creates an empty history+open-set pair. cap <= 0 means
// uncapped.
func NewHistory[N any](scheme Scheme[N], cap int) *History[N] {
	h := &History[N]{
		scheme:  scheme,
		buckets: make(map[uint64][]openItem[N]),
		cap:     cap,
	}
	h.tree = btree.NewG(32, h.less)
	return h
}

func (h *History[N]) less(a, b openItem[N]) bool {
	if h.scheme.Less(a.node, b.node) {
		return true
	}
	if h.scheme.Less(b.node, a.node) {
		return false
	}
	return a.seq < b.seq
}

// Len returns the number of nodes currently in the open set.
func (h *History[N]) Len() int { return h.size }

// AtCapEviction reports whether a capped insert has dropped or evicted a
// node since the last call to ResetAtCapEviction.
func (h *History[N]) AtCapEviction() bool { return h.atCapEviction }

// ResetAtCapEviction clears the at-cap-eviction flag, typically at the start
// of a new outer iteration.
func (h *History[N]) ResetAtCapEviction() { h.atCapEviction = false }

// Insert adds node to the history and the open set together, honoring the
// capped-queue policy when h.cap > 0. It returns true if node ended up in
// the open set (after any dominance-driven or capacity-driven eviction).
func (h *History[N]) Insert(node N) bool {
	if h.cap > 0 && h.size >= h.cap {
		if maxItem, ok := h.tree.Max(); ok && h.scheme.Less(maxItem.node, node) {
			h.atCapEviction = true
			return false
		}
	}

	added := h.insert(node)
	if !added {
		return false
	}

	if h.cap > 0 && h.size > h.cap {
		evicted, _ := h.tree.Max()
		h.evictRbegin()
		h.atCapEviction = true
		// A node tied with the rbegin under Less sorts after it by
		// sequence, so it may be the one just evicted.
		return evicted.seq != h.nextSeq-1
	}
	return true
}

// insert is Insert without the capacity policy: dominance checks,
// multi-eviction of dominated incumbents, then insertion into both
// structures.
func (h *History[N]) insert(node N) bool {
	if !h.scheme.Comparable(node) {
		item := h.newItem(node)
		h.tree.ReplaceOrInsert(item)
		h.size++
		return true
	}

	sig := h.scheme.Signature(node)
	bucket := h.buckets[sig]

	for _, existing := range bucket {
		if h.scheme.SignatureEqual(existing.node, node) && h.scheme.Dominates(existing.node, node) {
			return false
		}
	}

	kept := bucket[:0]
	for _, existing := range bucket {
		if h.scheme.SignatureEqual(existing.node, node) && h.scheme.Dominates(node, existing.node) {
			h.tree.Delete(existing)
			h.size--
			continue
		}
		kept = append(kept, existing)
	}

	item := h.newItem(node)
	kept = append(kept, item)
	h.buckets[sig] = kept
	h.tree.ReplaceOrInsert(item)
	h.size++
	return true
}

func (h *History[N]) newItem(node N) openItem[N] {
	item := openItem[N]{node: node, seq: h.nextSeq}
	h.nextSeq++
	return item
}

// evictRbegin removes the current maximum (the eviction candidate when
// capped) from the open set and, if comparable, its signature bucket,
// dropping the bucket if it becomes empty.
func (h *History[N]) evictRbegin() {
	item, ok := h.tree.Max()
	if !ok {
		return
	}
	h.removeItem(item)
}

func (h *History[N]) removeItem(item openItem[N]) {
	h.tree.Delete(item)
	h.size--
	if !h.scheme.Comparable(item.node) {
		return
	}
	sig := h.scheme.Signature(item.node)
	bucket := h.buckets[sig]
	for i, existing := range bucket {
		if existing.seq == item.seq {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(h.buckets, sig)
	} else {
		h.buckets[sig] = bucket
	}
}

// PopMin removes and returns the open-set minimum, the next node to expand,
// cleaning its history bucket alongside. ok is false if the open set is
// empty.
func (h *History[N]) PopMin() (node N, ok bool) {
	item, found := h.tree.Min()
	if !found {
		return node, false
	}
	h.removeItem(item)
	return item.node, true
}

// Min returns the open-set minimum without removing it.
func (h *History[N]) Min() (node N, ok bool) {
	item, found := h.tree.Min()
	if !found {
		return node, false
	}
	return item.node, true
}

// Clear empties both the open set and the history buckets, releasing all
// references (used by IBS once a layer has been drained).
func (h *History[N]) Clear() {
	h.tree.Clear(false)
	h.buckets = make(map[uint64][]openItem[N])
	h.size = 0
}
