package dialog

import "errors"

// Errors returned by dialog lookup and display.
var (
	// ErrNoDialog indicates no <dialog> element matches the opener.
	ErrNoDialog = errors.New("dialog: no dialog element for opener")

	// ErrNoForm indicates the dialog lacks a <form method="dialog">.
	ErrNoForm = errors.New("dialog: dialog requires a <form method=\"dialog\">")

	// ErrMissingField indicates the form lacks a required named field.
	ErrMissingField = errors.New("dialog: form requires field")

	// ErrAlreadyOpen indicates Show on a dialog that is showing.
	ErrAlreadyOpen = errors.New("dialog: dialog already open")
)
