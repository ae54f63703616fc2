// Package treesearch is a generic, anytime tree-search framework for
// combinatorial optimization. Callers supply a branching scheme describing
// the search tree for their problem (TSP, scheduling, knapsack, assembly-line
// balancing, ...); the package provides a family of search algorithms
// (best-first, iterative memory-bounded best-first, iterative beam search,
// anytime column search, and a handful of auxiliary drivers) that explore
// that tree and return the best feasible leaf found within a time or node
// budget, plus a bounded pool of near-best leaves.
//
// The framework never inspects a node's internal representation: every
// operation it performs on a node goes through the Scheme contract. This is
// what lets the same algorithm code drive forward enumeration, insertion
// branching, and bidirectional branching schemes unchanged.
package treesearch

// Scheme is the abstract contract a branching scheme must satisfy. N is the
// node type, owned entirely by the scheme; the framework holds only handles
// to it (ordinarily a pointer) and never mutates what they point to. Mutation
// of a node's internal state (e.g. advancing a partially expanded parent's
// "next child" cursor) happens exclusively inside the scheme's own
// NextChild/Children implementation.
//
// Schemes come in two branching styles, declared by implementing either
// Streaming or Batch in addition to Scheme. Both styles are first-class;
// the framework does not auto-wrap one as the other.
type Scheme[N any] interface {
	// Root returns the initial node, representing the empty partial
	// solution. Must never fail.
	Root() N

	// Infertile reports whether NextChild will never produce another
	// child for this node (the streaming cursor is exhausted). Batch
	// schemes may always return true once Children has been called once,
	// since Children returns the full set of children in one call.
	Infertile(n N) bool

	// Leaf reports whether n represents a complete, feasible solution.
	Leaf(n N) bool

	// Bound reports whether a's optimistic bound is already no better
	// than b's achieved value, i.e. whether a (and everything below it)
	// can be pruned against the incumbent b.
	Bound(a, b N) bool

	// Better is the strict-improvement predicate over complete solutions
	// (or partial ones, for anytime display) that defines solution-pool
	// ordering: Better(a, b) means a is a strict improvement over b.
	Better(a, b N) bool

	// Equals is a solution-identity predicate. May always return false
	// if identity is not meaningful for the scheme.
	Equals(a, b N) bool

	// Less is the strict weak ordering used by the open set to choose
	// which node to expand next. Typically lexicographic on depth, then
	// a guide heuristic, then a stable tiebreak.
	Less(a, b N) bool

	// Comparable reports whether dominance-based pruning applies to n.
	Comparable(n N) bool

	// Dominates reports whether a strictly dominates b: same signature
	// class, a is at least as good as b on every axis and strictly
	// better on at least one.
	Dominates(a, b N) bool

	// Signature returns a hash grouping nodes that are candidates for
	// dominance comparison against each other. Two nodes with different
	// signatures are never compared by Dominates.
	Signature(n N) uint64

	// SignatureEqual reports whether a and b belong to the same
	// dominance-signature class. Used, together with Signature, to group
	// nodes into history buckets; nodes may share a Signature hash but
	// fail SignatureEqual (hash collision), in which case they share a
	// bucket but are never compared by Dominates.
	SignatureEqual(a, b N) bool

	// Display renders a one-line, human-readable value for n.
	Display(n N) string
}

// DepthScheme is implemented by schemes whose children may live at a depth
// other than parent depth + 1, e.g. bidirectional branching, where the
// first two levels encode a forward/backward choice that does not advance
// the "jobs placed" dimension. Algorithms that are depth-sensitive (IBS, ACS)
// consult Depth when a scheme provides it and fall back to "parent depth + 1"
// otherwise.
type DepthScheme[N any] interface {
	Scheme[N]
	Depth(n N) int
}

// GoalScheme is implemented by schemes that can synthesize a sentinel node
// carrying a target objective value, for early termination once the pool's
// best is no longer an improvement over the goal.
type GoalScheme[N any] interface {
	Scheme[N]
	GoalNode(value float64) N
}

// WriterScheme is implemented by schemes that can persist a complete
// solution to a caller-chosen path. The format is entirely scheme-defined
// (a permutation, a list of item ids, a list of station assignments, ...).
type WriterScheme[N any] interface {
	Scheme[N]
	SolutionWrite(n N, path string) error
}

// Streaming is implemented by schemes using the single-child cursor style:
// the parent node carries a mutable, scheme-internal cursor, and NextChild
// advances it and returns one child per call. The framework calls NextChild
// repeatedly until Infertile(parent) becomes true. A scheme may return ok ==
// false ("this branching slot is pruned, keep asking") any number of times
// before becoming infertile.
type Streaming[N any] interface {
	Scheme[N]
	NextChild(parent N) (child N, ok bool)
}

// Batch is implemented by schemes that compute all children of a node in one
// call, returning a (possibly empty) finite ordered collection.
type Batch[N any] interface {
	Scheme[N]
	Children(parent N) []N
}
