package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Script is a recorded interaction with one field.
//
//	field: body
//	steps:
//	  - select: [0, 5]
//	  - click: bold
//	  - click: link
//	  - fill: {url: "https://example.com"}
//	  - click: save
//	  - blur: true
type Script struct {
	// Field is the textarea name. Empty selects the first field.
	Field string `yaml:"field"`
	Steps []Step `yaml:"steps"`
}

// Step is one interaction. Exactly one action is set.
type Step struct {
	// Select moves the selection to [from, to].
	Select []int `yaml:"select,omitempty"`
	// Click dispatches a click on the element with that id, else the
	// toolbar control with that identifier, else the button of that name
	// in the open dialog.
	Click string `yaml:"click,omitempty"`
	// Type inserts text at the selection.
	Type string `yaml:"type,omitempty"`
	// Fill sets fields of the open dialog by name.
	Fill  map[string]string `yaml:"fill,omitempty"`
	Focus bool              `yaml:"focus,omitempty"`
	Blur  bool              `yaml:"blur,omitempty"`
	Reset bool              `yaml:"reset,omitempty"`
}

// Step kinds.
const (
	OpSelect = "select"
	OpClick  = "click"
	OpType   = "type"
	OpFill   = "fill"
	OpFocus  = "focus"
	OpBlur   = "blur"
	OpReset  = "reset"
)

// Kind returns the action of s, or ErrInvalidStep.
func (s Step) Kind() (string, error) {
	var kinds []string
	if s.Select != nil {
		kinds = append(kinds, OpSelect)
	}
	if s.Click != "" {
		kinds = append(kinds, OpClick)
	}
	if s.Type != "" {
		kinds = append(kinds, OpType)
	}
	if s.Fill != nil {
		kinds = append(kinds, OpFill)
	}
	if s.Focus {
		kinds = append(kinds, OpFocus)
	}
	if s.Blur {
		kinds = append(kinds, OpBlur)
	}
	if s.Reset {
		kinds = append(kinds, OpReset)
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("%w (got %d)", ErrInvalidStep, len(kinds))
	}
	if kinds[0] == OpSelect && len(s.Select) != 2 {
		return "", fmt.Errorf("%w: select takes [from, to]", ErrInvalidStep)
	}
	return kinds[0], nil
}

// Target describes what s acts on, for error messages.
func (s Step) Target() string {
	switch {
	case s.Select != nil:
		return fmt.Sprint(s.Select)
	case s.Click != "":
		return s.Click
	case s.Type != "":
		return strconv.Quote(s.Type)
	}
	return ""
}

// ParseScript decodes a YAML script and checks every step.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("app: parse script: %w", err)
	}
	for i, step := range s.Steps {
		if _, err := step.Kind(); err != nil {
			return nil, NewOperationError(i, "parse", "", err)
		}
	}
	return &s, nil
}
