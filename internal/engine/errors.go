package engine

import "errors"

// Errors returned by engine construction and commands.
var (
	// ErrMissingModule indicates a command needs a module the engine was
	// not built with.
	ErrMissingModule = errors.New("engine: capability module not registered")

	// ErrReadOnly indicates a mutation on a non-editable engine.
	ErrReadOnly = errors.New("engine: engine is read-only")

	// ErrInvalidContent indicates content that cannot be parsed.
	ErrInvalidContent = errors.New("engine: invalid content")

	// ErrInvalidCommand indicates a command whose arguments are rejected
	// by the configured modules.
	ErrInvalidCommand = errors.New("engine: invalid command")

	// ErrLimitExceeded indicates an insertion beyond the character limit.
	ErrLimitExceeded = errors.New("engine: character limit exceeded")
)
