package treesearch

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// TerminationReason records why an algorithm stopped, threaded through
// every algorithm's Output rather than encoded as an error value.
type TerminationReason int

const (
	// Unterminated is the zero value; never observed in a returned Output.
	Unterminated TerminationReason = iota
	// Exhausted means the open set emptied: the search is exhaustive over
	// the explored region (optimal, if the scheme's bound is admissible).
	Exhausted
	// TimeLimitReached means the configured time budget was exceeded.
	TimeLimitReached
	// NodeLimitReached means the configured node budget was exceeded.
	NodeLimitReached
	// GoalReached means the configured goal node was reached.
	GoalReached
	// QueueCapReached means a capped iterative algorithm (IMBBFS, IBS)
	// hit its maximum queue/beam width without becoming exhaustive.
	QueueCapReached
	// IterationLimitReached means MaxIterations was hit.
	IterationLimitReached
)

// String renders the termination reason for logs and JSON output.
func (r TerminationReason) String() string {
	switch r {
	case Exhausted:
		return "exhausted"
	case TimeLimitReached:
		return "time_limit"
	case NodeLimitReached:
		return "node_limit"
	case GoalReached:
		return "goal_reached"
	case QueueCapReached:
		return "queue_cap_reached"
	case IterationLimitReached:
		return "iteration_limit"
	default:
		return "unterminated"
	}
}

// MarshalJSON renders the reason as its String form so the
// termination_reason field is self-describing.
func (r TerminationReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Counters holds per-run node and queue statistics. All fields are updated
// with atomic operations so a Counters value can be read consistently while
// the search that owns it is still running (e.g. from a reporting
// goroutine), and every record method is safe on a nil receiver.
type Counters struct {
	NodesGenerated int64
	NodesAdded     int64
	NodesProcessed int64
	NodesExpanded  int64
	MaxQueueSize   int64
	Iterations     int64
}

func (c *Counters) recordGenerated() {
	if c == nil {
		return
	}
	atomic.AddInt64(&c.NodesGenerated, 1)
}

func (c *Counters) recordAdded() {
	if c == nil {
		return
	}
	atomic.AddInt64(&c.NodesAdded, 1)
}

func (c *Counters) recordProcessed() {
	if c == nil {
		return
	}
	atomic.AddInt64(&c.NodesProcessed, 1)
}

func (c *Counters) recordExpanded() {
	if c == nil {
		return
	}
	atomic.AddInt64(&c.NodesExpanded, 1)
}

func (c *Counters) recordIteration() {
	if c == nil {
		return
	}
	atomic.AddInt64(&c.Iterations, 1)
}

func (c *Counters) recordQueueSize(size int) {
	if c == nil {
		return
	}
	size64 := int64(size)
	for {
		old := atomic.LoadInt64(&c.MaxQueueSize)
		if size64 <= old {
			return
		}
		if atomic.CompareAndSwapInt64(&c.MaxQueueSize, old, size64) {
			return
		}
	}
}

// snapshot returns a copy safe to embed in an Output or log without racing
// the algorithm that is still updating c.
func (c *Counters) snapshot() Counters {
	if c == nil {
		return Counters{}
	}
	return Counters{
		NodesGenerated: atomic.LoadInt64(&c.NodesGenerated),
		NodesAdded:     atomic.LoadInt64(&c.NodesAdded),
		NodesProcessed: atomic.LoadInt64(&c.NodesProcessed),
		NodesExpanded:  atomic.LoadInt64(&c.NodesExpanded),
		MaxQueueSize:   atomic.LoadInt64(&c.MaxQueueSize),
		Iterations:     atomic.LoadInt64(&c.Iterations),
	}
}

// IntermediaryOutput is one entry in the anytime log: a record of a strict
// improvement of the pool's best, emitted the instant it happens.
type IntermediaryOutput[N any] struct {
	Node         N             `json:"-"`
	Value        string        `json:"value"`
	Counters     Counters      `json:"counters"`
	ElapsedSince time.Duration `json:"elapsed"`
}

// Output is the final record an algorithm returns: the solution pool, total
// elapsed time, counters, the anytime log, and the reason the run stopped.
type Output[N any] struct {
	Pool                *SolutionPool[N]        `json:"-"`
	Best                N                       `json:"-"`
	BestDisplay         string                  `json:"best"`
	Elapsed             time.Duration           `json:"elapsed"`
	Counters            Counters                `json:"counters"`
	IntermediaryOutputs []IntermediaryOutput[N] `json:"intermediary_outputs"`
	Reason              TerminationReason       `json:"termination_reason"`
	Exhaustive          bool                    `json:"exhaustive"`
}

// Reporter receives algorithm lifecycle events. Implementations must be
// cheap or internally asynchronous since NewBest runs synchronously on the
// search thread.
type Reporter[N any] interface {
	NewBest(Output[N])
	Finished(Output[N])
}

// NopReporter implements Reporter by doing nothing. It is the default when
// Params.Verbosity == Silent.
type NopReporter[N any] struct{}

// NewBest implements Reporter.
func (NopReporter[N]) NewBest(Output[N]) {}

// Finished implements Reporter.
func (NopReporter[N]) Finished(Output[N]) {}
