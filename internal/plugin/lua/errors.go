package lua

import "errors"

// Errors for Lua state and provider operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoProvider is returned when a script does not define the provider table.
	ErrNoProvider = errors.New("script does not define a provider table")

	// ErrNoComplete is returned when the provider table lacks a complete function.
	ErrNoComplete = errors.New("provider table has no complete function")
)
