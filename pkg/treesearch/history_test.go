package treesearch

import "testing"

// domNode is a tiny node used to exercise dominance: two nodes with the
// same sig are comparable, and the one with the lower cost dominates.
type domNode struct {
	sig  uint64
	cost int
	id   int
}

type domScheme struct{}

func (domScheme) Root() domNode                    { return domNode{} }
func (domScheme) Infertile(domNode) bool           { return true }
func (domScheme) Leaf(domNode) bool                { return true }
func (domScheme) Bound(a, b domNode) bool          { return a.cost >= b.cost }
func (domScheme) Better(a, b domNode) bool         { return a.cost < b.cost }
func (domScheme) Equals(a, b domNode) bool         { return a == b }
func (domScheme) Less(a, b domNode) bool           { return a.cost < b.cost }
func (domScheme) Comparable(domNode) bool          { return true }
func (domScheme) Dominates(a, b domNode) bool      { return a.cost < b.cost }
func (domScheme) Signature(n domNode) uint64       { return n.sig }
func (domScheme) SignatureEqual(a, b domNode) bool { return a.sig == b.sig }
func (domScheme) Display(domNode) string           { return "" }

func TestHistory_DominanceEviction(t *testing.T) {
	// N1 dominates N2 (same signature, lower cost).
	t.Run("inserting the dominator after the dominated removes it", func(t *testing.T) {
		h := NewHistory[domNode](domScheme{}, 0)
		n2 := domNode{sig: 1, cost: 10, id: 2}
		n1 := domNode{sig: 1, cost: 5, id: 1}

		h.Insert(n2)
		h.Insert(n1)

		if h.Len() != 1 {
			t.Fatalf("Len() = %d, want 1 (N2 should have been evicted)", h.Len())
		}
		min, ok := h.Min()
		if !ok || min.id != 1 {
			t.Fatalf("remaining node = %+v, want N1", min)
		}
	})

	t.Run("inserting the dominated after the dominator is discarded", func(t *testing.T) {
		h := NewHistory[domNode](domScheme{}, 0)
		n1 := domNode{sig: 1, cost: 5, id: 1}
		n2 := domNode{sig: 1, cost: 10, id: 2}

		h.Insert(n1)
		added := h.Insert(n2)

		if added {
			t.Fatalf("N2 should have been discarded as dominated")
		}
		if h.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", h.Len())
		}
	})
}

func TestHistory_MultiEviction(t *testing.T) {
	h := NewHistory[domNode](domScheme{}, 0)
	// Equal costs: none of the four incumbents dominates another.
	for i, cost := range []int{10, 10, 10, 10} {
		h.Insert(domNode{sig: 7, cost: cost, id: i + 1})
	}
	if h.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 before the dominator arrives", h.Len())
	}

	// A single node with cost 5 dominates all four incumbents at once.
	h.Insert(domNode{sig: 7, cost: 5, id: 99})

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after multi-eviction", h.Len())
	}
	min, _ := h.Min()
	if min.id != 99 {
		t.Fatalf("surviving node id = %d, want 99", min.id)
	}
}

func TestHistory_CappedQueueMonotonicity(t *testing.T) {
	// With capacity 3, inserting 10 strictly increasing-cost, distinct-
	// signature nodes (so no dominance interferes) should leave exactly
	// the 3 cheapest resident, since Less/Bound favor lower cost.
	h := NewHistory[domNode](domScheme{}, 3)
	for i := 0; i < 10; i++ {
		h.Insert(domNode{sig: uint64(i + 1), cost: i, id: i})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if !h.AtCapEviction() {
		t.Fatalf("expected at-cap eviction to have occurred")
	}

	var costs []int
	for {
		n, ok := h.PopMin()
		if !ok {
			break
		}
		costs = append(costs, n.cost)
	}
	want := []int{0, 1, 2}
	if len(costs) != len(want) {
		t.Fatalf("resident costs = %v, want %v", costs, want)
	}
	for i := range want {
		if costs[i] != want[i] {
			t.Fatalf("resident costs = %v, want %v", costs, want)
		}
	}
}

func TestHistory_DistinctSignaturesNeverDominate(t *testing.T) {
	h := NewHistory[domNode](domScheme{}, 0)
	// Nodes with distinct signatures never interact through dominance even
	// with identical costs.
	h.Insert(domNode{sig: 1, cost: 5, id: 1})
	h.Insert(domNode{sig: 2, cost: 5, id: 2})
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (distinct signatures never dominate each other)", h.Len())
	}
}
