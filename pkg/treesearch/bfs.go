package treesearch

// BestFirstSearch is an uncapped best-first search over a Streaming
// scheme. Each iteration pops the open-set minimum,
// prunes it against the pool's worst, asks the scheme for one more
// child, offers that child to the pool/open set, and reinserts the parent
// unless it has become infertile. This is BFS* in its purest form, with no
// queue cap and no outer iteration, and is what IMBBFS's inner loop
// generalizes with a capped open set.
func BestFirstSearch[N any](scheme Scheme[N], params Params[N]) (Output[N], error) {
	if err := params.Validate(); err != nil {
		return Output[N]{}, err
	}
	streaming, ok := asStreaming[N](scheme)
	if !ok {
		return Output[N]{}, wrapContract("BestFirstSearch requires a Streaming scheme")
	}

	rs := newRunState(scheme, params)
	open := NewHistory[N](scheme, 0)
	open.Insert(scheme.Root())
	dl := newDeadlineChecker(params.TimeLimit)

	reason := drainOpenSet(scheme, params, rs, open, streaming, &dl)
	return rs.finish(reason, reason == Exhausted), nil
}

func wrapContract(msg string) error {
	return &contractError{msg: msg}
}

type contractError struct{ msg string }

func (e *contractError) Error() string { return "treesearch: " + e.msg }
func (e *contractError) Unwrap() error { return ErrContractViolation }
