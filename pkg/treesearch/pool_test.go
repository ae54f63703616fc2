package treesearch

import "testing"

// intScheme is a minimal Scheme[int] used only to exercise pool/history
// machinery directly, without a full branching-scheme implementation:
// lower int is better, Less orders ascending, every node is comparable and
// dominates a strictly larger one with the same signature (itself, since
// ints carry no extra state).
type intScheme struct{}

func (intScheme) Root() int                    { return 1 << 30 }
func (intScheme) Infertile(int) bool           { return true }
func (intScheme) Leaf(int) bool                { return true }
func (intScheme) Bound(a, b int) bool          { return a >= b }
func (intScheme) Better(a, b int) bool         { return a < b }
func (intScheme) Equals(a, b int) bool         { return a == b }
func (intScheme) Less(a, b int) bool           { return a < b }
func (intScheme) Comparable(int) bool          { return true }
func (intScheme) Dominates(a, b int) bool      { return a < b }
func (intScheme) Signature(n int) uint64       { return 0 }
func (intScheme) SignatureEqual(a, b int) bool { return true }
func (intScheme) Display(n int) string         { return "" }

func TestSolutionPool_EvictsWorstAndTracksBest(t *testing.T) {
	// Pool max = 2, insert 7, 5, 9, 5 in order.
	t.Run("sequence 7,5,9,5 leaves best=5 size=2", func(t *testing.T) {
		p := NewSolutionPool[int](intScheme{}, 2, 1<<30)

		results := []AddResult{}
		for _, v := range []int{7, 5, 9, 5} {
			results = append(results, p.Add(v))
		}

		if p.Best() != 5 {
			t.Fatalf("Best() = %d, want 5", p.Best())
		}
		if p.Size() != 2 {
			t.Fatalf("Size() = %d, want 2", p.Size())
		}
		if results[0] != AddedNewBest {
			t.Fatalf("first insert (below max) should report AddedNewBest, got %v", results[0])
		}
		if results[1] != AddedNewBest {
			t.Fatalf("second insert (5, strictly better) should report AddedNewBest, got %v", results[1])
		}
		if results[2] != Rejected {
			t.Fatalf("9 should be rejected once pool is full of {7,5}, got %v", results[2])
		}
	})

	t.Run("rejects values no better than worst once full", func(t *testing.T) {
		p := NewSolutionPool[int](intScheme{}, 1, 1<<30)
		p.Add(10)
		if r := p.Add(10); r != Rejected {
			t.Fatalf("equal value should be rejected, got %v", r)
		}
		if r := p.Add(11); r != Rejected {
			t.Fatalf("worse value should be rejected, got %v", r)
		}
		if r := p.Add(9); r != AddedNewBest {
			t.Fatalf("strictly better value should be accepted as new best, got %v", r)
		}
		if p.Best() != 9 || p.Worst() != 9 {
			t.Fatalf("pool of size 1 should have Best()==Worst()==9, got best=%d worst=%d", p.Best(), p.Worst())
		}
	})
}

func TestSolutionPool_AscendVisitsInBetterOrder(t *testing.T) {
	p := NewSolutionPool[int](intScheme{}, 5, 1<<30)
	for _, v := range []int{30, 10, 20, 40} {
		p.Add(v)
	}
	var seen []int
	p.Ascend(func(n int) bool {
		seen = append(seen, n)
		return true
	})
	for i := 1; i < len(seen); i++ {
		if seen[i-1] > seen[i] {
			t.Fatalf("Ascend did not visit in non-decreasing order: %v", seen)
		}
	}
}
