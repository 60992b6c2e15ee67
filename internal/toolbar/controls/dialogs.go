package controls

import (
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/dialog"
	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// formAction opens a dialog form on click.
type formAction struct {
	toolbar.Base
	dialog *toolbar.Dialog
}

func newFormAction(wrapper *html.Node, name string, control *html.Node, m *extension.Module, fields ...string) (formAction, error) {
	d, err := toolbar.FindDialog(wrapper, name, fields...)
	if err != nil {
		return formAction{}, err
	}
	return formAction{Base: toolbar.NewBase(name, control, m), dialog: d}, nil
}

func (a *formAction) Install(s *toolbar.Session) {
	a.dialog.Install(s)
}

// Contribute adds the module unless one of the same name exists, so
// several controls may open the same kind of dialog.
func (a *formAction) Contribute(set *extension.Set) error {
	for _, m := range a.Modules() {
		set.AddOnce(m)
	}
	return nil
}

// Dialog returns the dialog behavior.
func (a *formAction) Dialog() *toolbar.Dialog {
	return a.dialog
}

// ============================================================================
// Link
// ============================================================================

type link struct {
	formAction
}

func newLink(wrapper *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	f, err := newFormAction(wrapper, name, control, extension.Link(false), "text", "url")
	if err != nil {
		return nil, err
	}
	return &link{formAction: f}, nil
}

// Clicked edits the link over a non-empty selection.
func (a *link) Clicked(s *toolbar.Session) {
	if a.dialog.IsOpen() {
		return
	}
	eng := s.Engine()
	sel := eng.Selection()
	if sel.Empty() {
		s.Logger().Debug("link needs a selection")
		return
	}
	href := eng.Attributes(extension.NameLink)["href"]
	a.dialog.Field("text").SetValue(eng.TextBetween(sel.From, sel.To, ""))
	a.dialog.Field("url").SetValue(href)
	a.dialog.ShowRemove(href != "")
	a.dialog.Open(s, a.closed)
}

func (a *link) closed(s *toolbar.Session, o dialog.Outcome) {
	switch o {
	case dialog.OutcomeSave:
		sel := s.Engine().Selection()
		href, text := a.dialog.Value("url"), a.dialog.Value("text")
		a.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().
				ExtendMarkRange(extension.NameLink).
				SetMark(extension.NameLink, engine.Attrs{"href": href}).
				InsertContentAt(sel.From, sel.To, text)
		})
	case dialog.OutcomeRemove:
		a.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().ExtendMarkRange(extension.NameLink).UnsetMark(extension.NameLink)
		})
	default:
		return
	}
	a.Activate(s)
}

// ============================================================================
// Placeholder
// ============================================================================

type placeholder struct {
	formAction
}

func newPlaceholder(wrapper *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	f, err := newFormAction(wrapper, name, control, extension.Procurator(), "variable", "sample")
	if err != nil {
		return nil, err
	}
	f.ActiveName = extension.NameProcurator
	return &placeholder{formAction: f}, nil
}

// Clicked edits the placeholder variable over a non-empty selection.
func (a *placeholder) Clicked(s *toolbar.Session) {
	if a.dialog.IsOpen() {
		return
	}
	eng := s.Engine()
	sel := eng.Selection()
	if sel.Empty() {
		s.Logger().Debug("placeholder needs a selection")
		return
	}
	variable := eng.Attributes(extension.NameProcurator)["variable"]
	a.dialog.Field("variable").SetValue(variable)
	a.dialog.Field("sample").SetValue(eng.TextBetween(sel.From, sel.To, ""))
	a.dialog.ShowRemove(variable != "")
	a.dialog.Open(s, a.closed)
}

func (a *placeholder) closed(s *toolbar.Session, o dialog.Outcome) {
	switch o {
	case dialog.OutcomeSave:
		sel := s.Engine().Selection()
		variable, sample := a.dialog.Value("variable"), a.dialog.Value("sample")
		if sample == "" {
			sample = variable
		}
		a.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().
				ExtendMarkRange(extension.NameProcurator).
				SetMark(extension.NameProcurator, engine.Attrs{"variable": variable}).
				InsertContentAt(sel.From, sel.To, sample)
		})
	case dialog.OutcomeRemove:
		a.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().ExtendMarkRange(extension.NameProcurator).UnsetMark(extension.NameProcurator)
		})
	default:
		return
	}
	a.Activate(s)
}

// ============================================================================
// Image
// ============================================================================

// image inserts a block image. An uploaded preview inside the dialog's
// drop box wins over the typed source.
type image struct {
	formAction
}

func newImage(wrapper *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	f, err := newFormAction(wrapper, name, control, extension.Image(false), "image")
	if err != nil {
		return nil, err
	}
	return &image{formAction: f}, nil
}

func (a *image) Clicked(s *toolbar.Session) {
	if a.dialog.IsOpen() {
		return
	}
	a.dialog.ShowRemove(false)
	a.dialog.Open(s, a.closed)
}

var isPreview = func(n *html.Node) bool {
	return markup.IsElement(n, "img") && n.Parent != nil && markup.HasClass(n.Parent, "dj-dropbox")
}

func (a *image) source() string {
	if img := markup.Find(a.dialog.Modal().Node(), isPreview); img != nil {
		if src := markup.GetAttr(img, "src"); src != "" {
			return src
		}
	}
	return a.dialog.Value("image")
}

func (a *image) closed(s *toolbar.Session, o dialog.Outcome) {
	if o != dialog.OutcomeSave {
		return
	}
	src := a.source()
	if src == "" {
		s.Logger().Debug("image without source")
		return
	}
	a.Run(s, func(c engine.Chain) engine.Chain {
		return c.Focus().InsertNode(extension.NameImage, engine.Attrs{"src": src})
	})
}
