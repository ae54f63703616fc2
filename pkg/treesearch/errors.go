package treesearch

import "errors"

// Sentinel errors returned by algorithm entry points and the shared pool/
// history machinery. Callers should use errors.Is to check these.
var (
	// ErrInvalidParameter is returned when a Params value fails validation
	// at algorithm entry (negative pool size, zero growth factor, ...).
	ErrInvalidParameter = errors.New("treesearch: invalid parameter")

	// ErrContractViolation is returned when a branching scheme breaks its
	// contract in a way the framework can detect (e.g. it implements
	// neither Streaming nor Batch, or only Batch where an algorithm needs
	// Streaming). The framework does not
	// attempt to recover from this; it surfaces immediately.
	ErrContractViolation = errors.New("treesearch: branching scheme contract violation")

	// ErrEmptyPool marks attempts to use a SolutionPool that holds no
	// nodes. The algorithms in this package never produce it, since every
	// pool they build is seeded with the root at construction; it exists
	// for callers constructing and draining a pool directly.
	ErrEmptyPool = errors.New("treesearch: solution pool is empty")

	// ErrSearchLimitReached names the case of a run stopped by a
	// configured search limit (time or node budget). The algorithms in
	// this package do not return it: they report a limit through
	// Output.Reason with a nil error, and the Output still carries a
	// valid, if unproven, incumbent.
	ErrSearchLimitReached = errors.New("treesearch: search limit reached")
)
