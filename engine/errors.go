package engine

import "errors"

// Failure taxonomy. All of these are reported to the caller, never retried
// internally; user-visible messages carry the reason string.
var (
	// ErrNoLegalMove means the position is terminal (checkmate or stalemate).
	ErrNoLegalMove = errors.New("no move available")

	// ErrIllegalMove means a move candidate failed rules validation. It is
	// surfaced as-is, never coerced into some other legal move.
	ErrIllegalMove = errors.New("move rejected: illegal")

	// ErrMalformedExternalMove wraps a rejected proposal from an alternate
	// move source; callers fall back to RequestMove on it.
	ErrMalformedExternalMove = errors.New("external move rejected")

	// ErrTierOutOfRange means the requested difficulty tier is outside
	// [MinTier, MaxTier].
	ErrTierOutOfRange = errors.New("difficulty tier out of range")
)
