// Package tsp is an example branching scheme for the travelling salesman
// problem, implementing the treesearch.Scheme contract (plus
// DepthScheme/GoalScheme/WriterScheme) over a dense distance matrix. It
// branches in the branch-and-bound style: a degree-1 relaxation lower
// bound, a deterministic ascending-weight neighbor ordering, and a
// Streaming cursor so the generic treesearch algorithms can interleave
// partial expansions.
package tsp

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gitrdm/anysearch/pkg/treesearch"
)

// Node is a partial (or complete) tour: the sequence of cities visited so
// far, the set of visited cities as a bitmask (limiting instances to at
// most 64 cities, a practical bound for this branch-and-bound style of
// exact search), the accumulated cost, and a streaming cursor into the
// scheme's precomputed neighbor order for the last visited city.
//
// Node is owned by the scheme: only NextChild ever advances cursor, and
// only on the exact node the framework is currently calling NextChild on.
type Node struct {
	path    []int
	visited uint64
	cost    float64
	last    int
	depth   int // number of cities placed so far, including the start
	cursor  int
	lb      float64
	seq     uint64
}

// Scheme implements treesearch.Scheme[*Node] for a single TSP instance.
type Scheme struct {
	n     int
	start int
	eps   float64

	w      []float64 // dense n*n matrix, row-major
	minOut []float64
	minIn  []float64
	order  [][]int // order[u] = neighbors of u sorted by ascending w[u][v], index tiebreak
}

// New builds a Scheme from a dense, square, non-negative distance matrix.
// math.Inf(1) entries mean "no edge". start is the depot city. eps is the
// tolerance used by Bound/Better (0 is fine for integer or well-scaled
// costs).
func New(dist [][]float64, start int, eps float64) (*Scheme, error) {
	n := len(dist)
	if n < 2 || n > 64 {
		return nil, fmt.Errorf("tsp: instance size %d out of supported range [2,64]", n)
	}
	if start < 0 || start >= n {
		return nil, fmt.Errorf("tsp: start vertex %d out of range", start)
	}

	s := &Scheme{n: n, start: start, eps: eps}
	s.w = make([]float64, n*n)
	for i, row := range dist {
		if len(row) != n {
			return nil, fmt.Errorf("tsp: distance matrix row %d has length %d, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("tsp: distance[%d][%d] is NaN", i, j)
			}
			if v < 0 {
				return nil, fmt.Errorf("tsp: distance[%d][%d] is negative", i, j)
			}
			s.w[i*n+j] = v
		}
	}

	if err := s.precomputeMinima(); err != nil {
		return nil, err
	}
	s.buildNeighborOrder()
	return s, nil
}

func (s *Scheme) at(u, v int) float64 { return s.w[u*s.n+v] }

// precomputeMinima computes, per vertex, the minimum outgoing and incoming
// edge weight excluding self-loops, the quantities the degree-1 relaxation
// bound sums over unfixed vertices.
func (s *Scheme) precomputeMinima() error {
	inf := math.Inf(1)
	s.minOut = make([]float64, s.n)
	s.minIn = make([]float64, s.n)
	for v := 0; v < s.n; v++ {
		mo, mi := inf, inf
		for u := 0; u < s.n; u++ {
			if u == v {
				continue
			}
			if c := s.at(v, u); c < mo {
				mo = c
			}
			if c := s.at(u, v); c < mi {
				mi = c
			}
		}
		s.minOut[v], s.minIn[v] = mo, mi
		if math.IsInf(mo, 0) || math.IsInf(mi, 0) {
			return fmt.Errorf("tsp: vertex %d has no finite incident edge; no Hamiltonian cycle possible", v)
		}
	}
	return nil
}

// buildNeighborOrder precomputes, for each u, the list of v != u sorted by
// ascending w[u][v] (index tiebreak), giving deterministic branching order.
func (s *Scheme) buildNeighborOrder() {
	s.order = make([][]int, s.n)
	for u := 0; u < s.n; u++ {
		row := make([]int, 0, s.n-1)
		for v := 0; v < s.n; v++ {
			if v != u {
				row = append(row, v)
			}
		}
		sort.Slice(row, func(i, j int) bool {
			vi, vj := row[i], row[j]
			wi, wj := s.at(u, vi), s.at(u, vj)
			if wi == wj {
				return vi < vj
			}
			return wi < wj
		})
		s.order[u] = row
	}
}

// Root implements treesearch.Scheme.
func (s *Scheme) Root() *Node {
	n := &Node{
		path:    []int{s.start},
		visited: 1 << uint(s.start),
		last:    s.start,
		depth:   1,
		seq:     treesearch.NextSeq(),
	}
	n.lb = s.lowerBound(n)
	return n
}

// Infertile implements treesearch.Scheme.
func (s *Scheme) Infertile(n *Node) bool {
	if s.Leaf(n) {
		return true
	}
	if n.depth == s.n {
		return n.cursor >= 1
	}
	return n.cursor >= len(s.order[n.last])
}

// NextChild implements treesearch.Streaming.
func (s *Scheme) NextChild(parent *Node) (*Node, bool) {
	if parent.depth == s.n {
		if parent.cursor > 0 {
			return nil, false
		}
		parent.cursor++
		c := s.at(parent.last, s.start)
		if math.IsInf(c, 0) {
			return nil, false
		}
		path := append(append([]int(nil), parent.path...), s.start)
		child := &Node{
			path:    path,
			visited: parent.visited,
			cost:    parent.cost + c,
			last:    s.start,
			depth:   s.n + 1,
			seq:     treesearch.NextSeq(),
		}
		child.lb = child.cost
		return child, true
	}

	row := s.order[parent.last]
	for parent.cursor < len(row) {
		v := row[parent.cursor]
		parent.cursor++
		if parent.visited&(1<<uint(v)) != 0 {
			continue
		}
		c := s.at(parent.last, v)
		if math.IsInf(c, 0) {
			continue
		}
		child := &Node{
			path:    append(append([]int(nil), parent.path...), v),
			visited: parent.visited | (1 << uint(v)),
			cost:    parent.cost + c,
			last:    v,
			depth:   parent.depth + 1,
			seq:     treesearch.NextSeq(),
		}
		child.lb = s.lowerBound(child)
		return child, true
	}
	return nil, false
}

// Leaf implements treesearch.Scheme: a node is a complete tour once it
// carries the closing edge back to the start.
func (s *Scheme) Leaf(n *Node) bool { return n.depth == s.n+1 }

// lowerBound is the degree-1 relaxation bound: for vertices whose outgoing
// (incoming) edge is not yet fixed by the partial tour, the eventual edge
// cost is at least minOut[v] (minIn[v]); the bound is cost-so-far plus the
// larger of the two sums.
func (s *Scheme) lowerBound(n *Node) float64 {
	var sumOut, sumIn float64
	for v := 0; v < s.n; v++ {
		visited := n.visited&(1<<uint(v)) != 0
		if visited {
			if v == n.last {
				sumOut += s.minOut[v]
			}
			if v == s.start {
				sumIn += s.minIn[v]
			}
		} else {
			sumOut += s.minOut[v]
			sumIn += s.minIn[v]
		}
	}
	extra := sumOut
	if sumIn > extra {
		extra = sumIn
	}
	return n.cost + extra
}

// Bound implements treesearch.Scheme. Until the pool holds a real complete
// tour, b is still the non-leaf root placeholder and nothing is pruned.
func (s *Scheme) Bound(a, b *Node) bool {
	if !s.Leaf(b) {
		return false
	}
	return a.lb >= b.cost-s.eps
}

// Better implements treesearch.Scheme: only complete tours participate in
// pool ordering; any complete tour improves on the non-leaf root
// placeholder, and among complete tours lower cost wins.
func (s *Scheme) Better(a, b *Node) bool {
	if !s.Leaf(a) {
		return false
	}
	if !s.Leaf(b) {
		return true
	}
	return a.cost < b.cost-s.eps
}

// Equals implements treesearch.Scheme: two complete tours are the same
// solution if they visit cities in the same cyclic order.
func (s *Scheme) Equals(a, b *Node) bool {
	if !s.Leaf(a) || !s.Leaf(b) || len(a.path) != len(b.path) {
		return false
	}
	for i := range a.path {
		if a.path[i] != b.path[i] {
			return false
		}
	}
	return true
}

// Less implements treesearch.Scheme: best-first order by lower bound, deeper
// nodes preferred on ties (they are closer to yielding a complete tour),
// then a stable creation-order tiebreak.
func (s *Scheme) Less(a, b *Node) bool {
	if a.lb != b.lb {
		return a.lb < b.lb
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.seq < b.seq
}

// Comparable implements treesearch.Scheme: dominance pruning applies to
// every node, keyed by (last visited city, visited-set).
func (s *Scheme) Comparable(*Node) bool { return true }

// Dominates implements treesearch.Scheme: among two partial tours visiting
// the same set of cities and ending at the same city, the cheaper one
// strictly dominates (any completion of the costlier one is no better).
func (s *Scheme) Dominates(a, b *Node) bool {
	return a.cost < b.cost-s.eps
}

// Signature implements treesearch.Scheme.
func (s *Scheme) Signature(n *Node) uint64 {
	return n.visited*uint64(s.n+1) + uint64(n.last)
}

// SignatureEqual implements treesearch.Scheme.
func (s *Scheme) SignatureEqual(a, b *Node) bool {
	return a.visited == b.visited && a.last == b.last
}

// Display implements treesearch.Scheme.
func (s *Scheme) Display(n *Node) string {
	parts := make([]string, len(n.path))
	for i, v := range n.path {
		parts[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("cost=%.4f path=%s", n.cost, strings.Join(parts, "->"))
}

// Depth implements treesearch.DepthScheme. TSP children always sit one
// level below their parent, so this is the same answer the framework's
// "parent depth + 1" default would give; it is implemented anyway to
// exercise the optional contract end-to-end.
func (s *Scheme) Depth(n *Node) int { return n.depth }

// GoalNode implements treesearch.GoalScheme: synthesizes a leaf-shaped
// sentinel carrying the target cost, for early termination once the pool's
// best is no longer an improvement over it.
func (s *Scheme) GoalNode(value float64) *Node {
	return &Node{cost: value, depth: s.n + 1, seq: treesearch.NextSeq()}
}

// SolutionWrite implements treesearch.WriterScheme: persists a complete
// tour as a newline-separated city-index permutation.
func (s *Scheme) SolutionWrite(n *Node, path string) error {
	if !s.Leaf(n) {
		return fmt.Errorf("tsp: cannot write certificate for an incomplete tour")
	}
	var b strings.Builder
	for _, v := range n.path {
		fmt.Fprintln(&b, v)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Cost returns n's accumulated objective value, for callers (tests, the
// CLI) that want the raw number rather than Display's formatted string.
func (n *Node) Cost() float64 { return n.cost }

// Path returns n's city-visit order including the closing return to start
// for a leaf node.
func (n *Node) Path() []int { return append([]int(nil), n.path...) }
