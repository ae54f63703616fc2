package treesearch

import "github.com/sirupsen/logrus"

// LogReporter reports algorithm lifecycle events through a structured
// logrus.FieldLogger. Algorithm is included on every line so a driver
// running several algorithms (e.g. comparing BFS* against IBS) can filter
// by it.
type LogReporter[N any] struct {
	Logger    logrus.FieldLogger
	Algorithm string
}

// NewLogReporter returns a LogReporter writing through logger, labeled with
// algorithm.
func NewLogReporter[N any](logger logrus.FieldLogger, algorithm string) *LogReporter[N] {
	return &LogReporter[N]{Logger: logger, Algorithm: algorithm}
}

func (l *LogReporter[N]) fields(out Output[N]) logrus.Fields {
	return logrus.Fields{
		"algorithm":       l.Algorithm,
		"nodes_generated": out.Counters.NodesGenerated,
		"nodes_processed": out.Counters.NodesProcessed,
		"nodes_expanded":  out.Counters.NodesExpanded,
		"objective":       out.BestDisplay,
		"elapsed":         out.Elapsed.String(),
	}
}

// NewBest implements Reporter.
func (l *LogReporter[N]) NewBest(out Output[N]) {
	l.Logger.WithFields(l.fields(out)).Info("new best solution found")
}

// Finished implements Reporter.
func (l *LogReporter[N]) Finished(out Output[N]) {
	l.Logger.WithFields(l.fields(out)).WithFields(logrus.Fields{
		"termination_reason": out.Reason.String(),
		"exhaustive":         out.Exhaustive,
		"iterations":         out.Counters.Iterations,
		"max_queue_size":     out.Counters.MaxQueueSize,
	}).Info("search finished")
}
