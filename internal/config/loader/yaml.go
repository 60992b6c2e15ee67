package loader

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML decodes YAML files. Unknown keys are errors.
type YAML struct{}

// Decode parses data into v. An empty document leaves v untouched.
func (YAML) Decode(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytesReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
