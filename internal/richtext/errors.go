package richtext

import "errors"

// Errors returned while binding a field.
var (
	// ErrNoWrapper indicates a textarea outside any richtext wrapper.
	ErrNoWrapper = errors.New("richtext: textarea is not inside a .dj-richtext-wrapper")

	// ErrNoTextarea indicates a wrapper without textarea.
	ErrNoTextarea = errors.New("richtext: wrapper holds no textarea")

	// ErrInvalidJSON indicates an unparsable JSON payload.
	ErrInvalidJSON = errors.New("richtext: invalid JSON content")
)
