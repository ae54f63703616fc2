package tsp

import (
	"math"
	"testing"

	"github.com/gitrdm/anysearch/pkg/treesearch"
)

// scenarioMatrix builds a symmetric 5x5 instance with a known optimum:
// d(0,1)=1, d(0,2)=2, d(0,3)=3, d(0,4)=4, d(1,2)=2, d(1,3)=4, d(1,4)=5,
// d(2,3)=1, d(2,4)=3, d(3,4)=2; the optimal tour cost is 10
// (0->1->2->3->4->0).
func scenarioMatrix() [][]float64 {
	inf := math.Inf(1)
	d := [][]float64{
		{inf, 1, 2, 3, 4},
		{1, inf, 2, 4, 5},
		{2, 2, inf, 1, 3},
		{3, 4, 1, inf, 2},
		{4, 5, 3, 2, inf},
	}
	return d
}

func TestBestFirstSearch_ExhaustsTinyTree(t *testing.T) {
	// A tiny exact instance: the exhaustive search must return cost 10.
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := treesearch.BestFirstSearch[*Node](scheme, treesearch.New[*Node]())
	if err != nil {
		t.Fatalf("BestFirstSearch: %v", err)
	}
	if !out.Exhaustive {
		t.Fatalf("expected an exhaustive result, got reason=%v", out.Reason)
	}
	if got := out.Best.Cost(); got != 10 {
		t.Fatalf("best cost = %v, want 10 (path=%v)", got, out.Best.Path())
	}
}

func TestIBS_MinimumWidthOneIsGreedy(t *testing.T) {
	// Minimum width 1, growth factor 2: the first iteration
	// degenerates to a pure greedy sweep, and later iterations must not
	// worsen the best found.
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var costsAtNewBest []float64
	params := treesearch.New[*Node](
		treesearch.WithQueueSize[*Node](1, 8),
		treesearch.WithGrowthFactor[*Node](2),
		treesearch.WithNewSolutionCallback[*Node](func(out treesearch.Output[*Node]) {
			costsAtNewBest = append(costsAtNewBest, out.Best.Cost())
		}),
	)

	out, err := treesearch.IBS[*Node](scheme, params)
	if err != nil {
		t.Fatalf("IBS: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("final best cost = %v, want 10", out.Best.Cost())
	}
	for i := 1; i < len(costsAtNewBest); i++ {
		if costsAtNewBest[i] > costsAtNewBest[i-1] {
			t.Fatalf("anytime best worsened across iterations: %v", costsAtNewBest)
		}
	}
}

func TestGreedy_FollowsBestChildToALeaf(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.Greedy[*Node](scheme, treesearch.New[*Node]())
	if err != nil {
		t.Fatalf("Greedy: %v", err)
	}
	if !scheme.Leaf(out.Best) {
		t.Fatalf("greedy search should terminate at a leaf, got cost=%v path=%v", out.Best.Cost(), out.Best.Path())
	}
}

func TestZeroTimeLimit_ReturnsRootOnly(t *testing.T) {
	// With a time limit of zero the budget is already spent, so the
	// search returns immediately with a pool containing only the root
	// (it never gets a chance to improve on the non-leaf placeholder).
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	params := treesearch.New[*Node](treesearch.WithTimeLimit[*Node](0))

	out, err := treesearch.BestFirstSearch[*Node](scheme, params)
	if err != nil {
		t.Fatalf("BestFirstSearch: %v", err)
	}
	if out.Reason != treesearch.TimeLimitReached {
		t.Fatalf("termination reason = %v, want TimeLimitReached", out.Reason)
	}
	if out.Pool.Size() != 1 {
		t.Fatalf("pool size = %d, want 1 (only the root placeholder)", out.Pool.Size())
	}
}

func TestSolutionWrite_PersistsTourPermutation(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.BestFirstSearch[*Node](scheme, treesearch.New[*Node]())
	if err != nil {
		t.Fatalf("BestFirstSearch: %v", err)
	}

	path := t.TempDir() + "/tour.txt"
	if err := scheme.SolutionWrite(out.Best, path); err != nil {
		t.Fatalf("SolutionWrite: %v", err)
	}
}
