package automaton

import "errors"

var (
	// ErrMalformedRule indicates a rule list entry that is not a non-negative integer.
	ErrMalformedRule = errors.New("automaton: malformed rule")
	// ErrNegativeCount indicates a negative population size was requested.
	ErrNegativeCount = errors.New("automaton: population count must not be negative")
)
