// Package dialog models the modal form dialogs toolbar actions open.
//
// # Structure
//
// A Modal wraps a <dialog> element and the <form method="dialog"> inside
// it. The form's named input, textarea and select elements become Fields
// with a pristine default value, a current value and HTML constraint
// validation (required, type=url, type=email, pattern, minlength,
// maxlength).
//
// # Outcomes
//
// Every Show returns a Request that resolves exactly once, when the
// dialog closes. The close return value maps to an Outcome: "save" is
// OutcomeSave, "remove" is OutcomeRemove, anything else is OutcomeCancel.
// Request.Wait blocks until then or until the context ends.
package dialog
