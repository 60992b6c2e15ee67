package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOML decodes TOML files. Unknown keys are errors.
type TOML struct{}

// Decode parses data into v.
func (TOML) Decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytesReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var sm *toml.StrictMissingError
		if errors.As(err, &sm) {
			pe.Message = sm.String()
		}
		return pe
	}
	return nil
}
