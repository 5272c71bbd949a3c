package entities

import "errors"

var (
	// ErrInvalidAmount is returned when a stock mutation asks for fewer than one unit
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientStock is returned when a removal exceeds the stored count
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrMalformedInput is returned when a design or part line does not match the wire grammar
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnsupportedSize is returned for size tokens outside {S, L}
	ErrUnsupportedSize = errors.New("unsupported size class")
	// ErrInvariantViolation marks a consumption failure after a successful satisfiability check
	ErrInvariantViolation = errors.New("stock invariant violated")
)
