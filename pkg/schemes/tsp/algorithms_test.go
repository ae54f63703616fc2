package tsp

import (
	"testing"

	"github.com/gitrdm/anysearch/pkg/treesearch"
)

func TestIMBBFS_FindsOptimalTour(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.IMBBFS[*Node](scheme, treesearch.New[*Node](
		treesearch.WithQueueSize[*Node](1, 32),
		treesearch.WithGrowthFactor[*Node](2),
	))
	if err != nil {
		t.Fatalf("IMBBFS: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("best cost = %v, want 10", out.Best.Cost())
	}
}

func TestACS_FindsOptimalTour(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.ACS[*Node](scheme, treesearch.New[*Node](
		treesearch.WithColumnSize[*Node](1, 2),
	))
	if err != nil {
		t.Fatalf("ACS: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("best cost = %v, want 10", out.Best.Cost())
	}
}

func TestDepthFirstSearch_FindsOptimalTour(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.DepthFirstSearch[*Node](scheme, treesearch.New[*Node]())
	if err != nil {
		t.Fatalf("DepthFirstSearch: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("best cost = %v, want 10", out.Best.Cost())
	}
}

func TestNestedBestFirstSearch_FindsOptimalTour(t *testing.T) {
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := treesearch.NestedBestFirstSearch[*Node](scheme, treesearch.New[*Node]())
	if err != nil {
		t.Fatalf("NestedBestFirstSearch: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("best cost = %v, want 10", out.Best.Cost())
	}
}

// TestAllAlgorithms_AgreeOnTheOptimum is a termination/soundness property
// test: every complete, unbounded algorithm run over the same finite
// instance must terminate and converge on the same optimal cost. None may
// report a better-than-optimal (unsound) or worse-than-optimal
// (incomplete, given no resource limits) result.
func TestAllAlgorithms_AgreeOnTheOptimum(t *testing.T) {
	const want = 10.0

	run := func(name string, f func(treesearch.Scheme[*Node], treesearch.Params[*Node]) (treesearch.Output[*Node], error), params treesearch.Params[*Node]) {
		t.Run(name, func(t *testing.T) {
			scheme, err := New(scenarioMatrix(), 0, 0)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			out, err := f(scheme, params)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if out.Best.Cost() != want {
				t.Fatalf("%s best cost = %v, want %v", name, out.Best.Cost(), want)
			}
		})
	}

	run("BestFirstSearch", treesearch.BestFirstSearch[*Node], treesearch.New[*Node]())
	run("IMBBFS", treesearch.IMBBFS[*Node], treesearch.New[*Node](treesearch.WithQueueSize[*Node](1, 32)))
	run("IBS", treesearch.IBS[*Node], treesearch.New[*Node](treesearch.WithQueueSize[*Node](1, 32)))
	run("ACS", treesearch.ACS[*Node], treesearch.New[*Node](treesearch.WithColumnSize[*Node](1, 2)))
	run("DepthFirstSearch", treesearch.DepthFirstSearch[*Node], treesearch.New[*Node]())
	run("NestedBestFirstSearch", treesearch.NestedBestFirstSearch[*Node], treesearch.New[*Node]())
}

func TestBound_NeverPrunesTheEventualOptimum(t *testing.T) {
	// Bound-prune soundness: running with a cutoff strictly above the known
	// optimum must still find it, since Bound should only discard nodes
	// that cannot possibly beat the cutoff/worst-in-pool.
	scheme, err := New(scenarioMatrix(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cutoff := scheme.GoalNode(11)
	out, err := treesearch.BestFirstSearch[*Node](scheme, treesearch.New[*Node](
		treesearch.WithCutoff[*Node](cutoff),
	))
	if err != nil {
		t.Fatalf("BestFirstSearch: %v", err)
	}
	if out.Best.Cost() != 10 {
		t.Fatalf("best cost = %v, want 10 (cutoff of 11 must not prune the optimum)", out.Best.Cost())
	}
}
