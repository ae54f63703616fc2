package treesearch

import "time"

// deadlineChecker performs rare, sparse wall-clock checks instead of
// calling time.Now() on every loop iteration. Timeouts are soft: control
// returns "soon" after the deadline, not at any particular instruction.
type deadlineChecker struct {
	enabled  bool
	deadline time.Time
	steps    uint32
}

func newDeadlineChecker(limit time.Duration) deadlineChecker {
	if limit == NoTimeLimit {
		return deadlineChecker{}
	}
	return deadlineChecker{enabled: true, deadline: time.Now().Add(limit)}
}

// expired increments the sparse step counter and only actually checks the
// clock on the first call and every 4096 calls after that, so a deadline
// already in the past is observed before any expansion happens.
func (d *deadlineChecker) expired() bool {
	if !d.enabled {
		return false
	}
	d.steps++
	if d.steps != 1 && d.steps&4095 != 0 {
		return false
	}
	return !time.Now().Before(d.deadline)
}
