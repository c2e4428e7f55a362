package equation

import "errors"

var (
	// ErrInvalidMode is returned for a selector outside A/B (or V/I).
	ErrInvalidMode = errors.New("equation: invalid mode selector")

	// ErrMalformedEquation is fatal for the whole solve: the line has no
	// '=' or its right-hand side is not a number.
	ErrMalformedEquation = errors.New("equation: malformed equation")

	// ErrUnrecognizedTerm marks a term that was dropped from its row.
	// ParseLine records these in the rejection list and never returns them.
	ErrUnrecognizedTerm = errors.New("equation: unrecognized term")

	ErrWrongKind  = errors.New("equation: variable kind does not match mode")
	ErrIndexRange = errors.New("equation: unknown index out of range")
)
