package toolbar

import (
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/dialog"
	"github.com/dshills/richtextarea/internal/markup"
)

// Dialog is the modal form behavior of an action. Its close button
// cancels, its save button saves when the form is valid and its remove
// button, when revealed, removes.
type Dialog struct {
	modal  *dialog.Modal
	remove bool
}

// FindDialog locates the dialog opened by identifier below wrapper and
// checks that its form holds fields.
func FindDialog(wrapper *html.Node, identifier string, fields ...string) (*Dialog, error) {
	m, err := dialog.Find(wrapper, identifier)
	if err != nil {
		return nil, err
	}
	if err := m.Form().Require(fields...); err != nil {
		return nil, NewConfigError(m.Node(), err)
	}
	d := &Dialog{modal: m}
	d.ShowRemove(false)
	return d, nil
}

// Modal returns the dialog element model.
func (d *Dialog) Modal() *dialog.Modal { return d.modal }

// Form returns the dialog form.
func (d *Dialog) Form() *dialog.Form { return d.modal.Form() }

// Field returns the named form field.
func (d *Dialog) Field(name string) *dialog.Field { return d.modal.Form().Field(name) }

// Value returns the current value of the named field.
func (d *Dialog) Value(name string) string {
	if f := d.Field(name); f != nil {
		return f.Value()
	}
	return ""
}

// IsOpen reports whether the dialog is showing.
func (d *Dialog) IsOpen() bool { return d.modal.IsOpen() }

// Install wires the form buttons.
func (d *Dialog) Install(s *Session) {
	form := d.modal.Form()
	s.OnClick(form.Button("close"), func(*ClickEvent) {
		d.modal.Close("close")
	})
	s.OnClick(form.Button("save"), func(*ClickEvent) {
		if !d.modal.IsOpen() {
			return
		}
		if !form.Valid() {
			s.Logger().Debug("dialog form invalid", "fields", form.Invalid())
			return
		}
		d.modal.Close("save")
	})
	s.OnClick(form.Button("remove"), func(*ClickEvent) {
		if d.remove {
			d.modal.Close("remove")
		}
	})
}

// ShowRemove reveals or hides the remove button.
func (d *Dialog) ShowRemove(on bool) {
	d.remove = on
	btn := d.modal.Form().Button("remove")
	if btn == nil {
		return
	}
	if on {
		markup.RemoveAttr(btn, "hidden")
	} else {
		markup.SetAttr(btn, "hidden", "hidden")
	}
}

// Open shows the dialog and arranges for then to run with the outcome.
// The form is reset afterwards whatever the outcome. Opening a dialog
// that is showing does nothing and reports false.
func (d *Dialog) Open(s *Session, then func(s *Session, o dialog.Outcome)) bool {
	req, err := d.modal.Show()
	if err != nil {
		s.Logger().Debug("dialog not opened", "error", err)
		return false
	}
	s.Logger().Debug("dialog opened", "request", req.ID, "opener", markup.GetAttr(d.modal.Node(), dialog.OpenerAttr))
	s.hold(d.modal)
	s.Await(req, func(o dialog.Outcome) {
		s.release(d.modal)
		d.modal.Close("")
		if then != nil {
			then(s, o)
		}
		d.modal.Form().Reset()
		d.ShowRemove(false)
	})
	return true
}
