package treesearch

import (
	"time"
)

// Verbosity controls how much an algorithm reports while it runs.
type Verbosity int

const (
	// Silent disables all reporting.
	Silent Verbosity = iota
	// Summary reports only the final Output.
	Summary
	// Detailed reports every new-best event in addition to the final Output.
	Detailed
)

// Params configures a single algorithm run. It is built with New and a
// chain of Option values: New fills in every default, including the
// queue/column knobs that only some algorithms read (a BFS* run never
// looks at GrowthFactor), and the options then override them.
type Params[N any] struct {
	// MaxPoolSize is the maximum number of solutions the SolutionPool
	// retains. Must be >= 1.
	MaxPoolSize int

	// TimeLimit is the soft wall-clock budget for the run. NoTimeLimit
	// (the default installed by New) means unbounded; an explicit zero
	// means the budget is already spent, so the run stops at its first
	// loop head with only the seeded pool.
	TimeLimit time.Duration

	// MaxNodes is the maximum number of nodes processed (popped from an
	// open set and examined). Negative means unbounded.
	MaxNodes int

	// Goal, if non-nil, is an early-termination sentinel: the run stops
	// as soon as !Better(*Goal, pool.Best()).
	Goal *N

	// Cutoff, if non-nil, is an auxiliary pruning bound applied
	// alongside the solution pool's worst, independent of it.
	Cutoff *N

	// Incumbent, if non-nil, is added to the solution pool right after
	// the placeholder root. With MaxPoolSize 1 it replaces the root (if
	// Better), so the very first bound check already prunes against it;
	// with a larger pool the root stays the worst until the pool fills.
	Incumbent *N

	// NewSolutionCallback is invoked synchronously, on the search thread,
	// every time the pool's best strictly improves. Implementations must
	// not assume it is cheap, and must not mutate the Output it is
	// passed.
	NewSolutionCallback func(Output[N])

	// Verbosity controls reporting detail.
	Verbosity Verbosity

	// MinQueueSize is IMBBFS's/IBS's starting queue or beam width.
	MinQueueSize int
	// MaxQueueSize caps how large the queue/beam width is allowed to
	// grow across outer iterations. Zero means unbounded growth.
	MaxQueueSize int
	// GrowthFactor is the multiplicative growth applied to the
	// queue/beam width each outer iteration, with a minimum increment of
	// 1 (see nextWidth).
	GrowthFactor float64

	// InitialColumnSize is ACS's starting per-node child quota.
	InitialColumnSize int
	// ColumnSizeGrowthFactor is the multiplicative growth applied to the
	// per-node child quota each iteration.
	ColumnSizeGrowthFactor float64

	// MaxIterations bounds the outer iteration count for IMBBFS/IBS/ACS.
	// Zero means unbounded.
	MaxIterations int

	// Reporter, if set, receives lifecycle events (new-best, finished) as
	// the run progresses. Nil means no reporter regardless of Verbosity;
	// Verbosity selects which events reach it: none for Silent, only
	// Finished for Summary, both for Detailed (see reporterFor in
	// engine.go).
	Reporter Reporter[N]
}

// NoTimeLimit is the TimeLimit value meaning "no wall-clock budget". It is
// the default, so a zero TimeLimit set explicitly keeps its literal
// meaning of an already-exhausted budget.
const NoTimeLimit time.Duration = 1<<63 - 1

// Option configures a Params value.
type Option[N any] func(*Params[N])

// New builds a Params with the algorithm-neutral defaults applied, then
// applies opts in order.
func New[N any](opts ...Option[N]) Params[N] {
	p := Params[N]{
		MaxPoolSize:            1,
		TimeLimit:              NoTimeLimit,
		MaxNodes:               -1,
		Verbosity:              Silent,
		MinQueueSize:           1,
		GrowthFactor:           2.0,
		InitialColumnSize:      1,
		ColumnSizeGrowthFactor: 2.0,
	}
	for _, o := range opts {
		if o != nil {
			o(&p)
		}
	}
	return p
}

// Validate checks Params for invalid values (negative pool size and the
// like). Algorithm entry points call this first and fail fast with
// ErrInvalidParameter.
func (p Params[N]) Validate() error {
	if p.MaxPoolSize < 1 {
		return wrapInvalid("maximum_size_of_the_solution_pool must be >= 1")
	}
	if p.TimeLimit < 0 {
		return wrapInvalid("time_limit must be >= 0")
	}
	if p.MinQueueSize < 1 {
		return wrapInvalid("minimum_size_of_the_queue must be >= 1")
	}
	if p.MaxQueueSize != 0 && p.MaxQueueSize < p.MinQueueSize {
		return wrapInvalid("maximum_size_of_the_queue must be >= minimum_size_of_the_queue")
	}
	if p.GrowthFactor < 1 {
		return wrapInvalid("growth_factor must be >= 1")
	}
	if p.InitialColumnSize < 1 {
		return wrapInvalid("initial_column_size must be >= 1")
	}
	if p.ColumnSizeGrowthFactor < 1 {
		return wrapInvalid("column_size_growth_factor must be >= 1")
	}
	return nil
}

func wrapInvalid(msg string) error {
	return &paramError{msg: msg}
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return "treesearch: " + e.msg }
func (e *paramError) Unwrap() error { return ErrInvalidParameter }

// WithMaxPoolSize sets maximum_size_of_the_solution_pool.
func WithMaxPoolSize[N any](n int) Option[N] {
	return func(p *Params[N]) { p.MaxPoolSize = n }
}

// WithTimeLimit sets time_limit. Pass NoTimeLimit for an unbounded run; a
// zero duration stops the run at its first loop head.
func WithTimeLimit[N any](d time.Duration) Option[N] {
	return func(p *Params[N]) { p.TimeLimit = d }
}

// WithMaxNodes sets maximum_number_of_nodes. Negative means unbounded.
func WithMaxNodes[N any](n int) Option[N] {
	return func(p *Params[N]) { p.MaxNodes = n }
}

// WithGoal sets the early-termination goal node.
func WithGoal[N any](goal N) Option[N] {
	return func(p *Params[N]) { p.Goal = &goal }
}

// WithCutoff sets the auxiliary pruning bound node.
func WithCutoff[N any](cutoff N) Option[N] {
	return func(p *Params[N]) { p.Cutoff = &cutoff }
}

// WithIncumbent seeds the solution pool with a node before search starts.
func WithIncumbent[N any](incumbent N) Option[N] {
	return func(p *Params[N]) { p.Incumbent = &incumbent }
}

// WithNewSolutionCallback sets the anytime callback.
func WithNewSolutionCallback[N any](cb func(Output[N])) Option[N] {
	return func(p *Params[N]) { p.NewSolutionCallback = cb }
}

// WithVerbosity sets the verbosity level.
func WithVerbosity[N any](v Verbosity) Option[N] {
	return func(p *Params[N]) { p.Verbosity = v }
}

// WithQueueSize sets minimum_size_of_the_queue and maximum_size_of_the_queue
// for IMBBFS/IBS.
func WithQueueSize[N any](min, max int) Option[N] {
	return func(p *Params[N]) { p.MinQueueSize = min; p.MaxQueueSize = max }
}

// WithGrowthFactor sets growth_factor for IMBBFS/IBS.
func WithGrowthFactor[N any](f float64) Option[N] {
	return func(p *Params[N]) { p.GrowthFactor = f }
}

// WithColumnSize sets initial_column_size and column_size_growth_factor for
// ACS.
func WithColumnSize[N any](initial int, growth float64) Option[N] {
	return func(p *Params[N]) { p.InitialColumnSize = initial; p.ColumnSizeGrowthFactor = growth }
}

// WithMaxIterations bounds the outer iteration count for IMBBFS/IBS/ACS.
func WithMaxIterations[N any](n int) Option[N] {
	return func(p *Params[N]) { p.MaxIterations = n }
}

// WithReporter attaches a Reporter to receive lifecycle events.
func WithReporter[N any](r Reporter[N]) Option[N] {
	return func(p *Params[N]) { p.Reporter = r }
}

// nextWidth computes the next queue/beam width given the previous one:
// max(prev+1, floor(prev*growth)), so the width always advances even for
// growth factors close to 1.
func nextWidth(prev int, growth float64) int {
	grown := int(float64(prev) * growth)
	if prev+1 > grown {
		return prev + 1
	}
	return grown
}
