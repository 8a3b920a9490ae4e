package render

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMissingID is returned by item builders for items without an identifier
var ErrMissingID = errors.New("item has no id")

// Action is a declarative interaction attached to a rendered item
type Action struct {
	Label  string
	Href   string
	Method string
}

// Actions holds the affordances of a rendered item. View is always set;
// Edit and Delete only for owners and admins. Delete points at a
// confirmation view, never at the destructive request itself.
type Actions struct {
	View   *Action
	Edit   *Action
	Delete *Action
}

// List returns the non-nil actions in display order
func (a Actions) List() []*Action {
	out := make([]*Action, 0, 3)
	for _, act := range []*Action{a.View, a.Edit, a.Delete} {
		if act != nil {
			out = append(out, act)
		}
	}
	return out
}

// Fragment is the rendering of a single item
type Fragment struct {
	Node    *html.Node
	Actions Actions
}

// ItemFunc maps an item to its fragment
type ItemFunc[T any] func(T) (Fragment, error)

// Failure records an item that could not be rendered
type Failure struct {
	Index int
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("item %d: %v", f.Index, f.Err)
}

// Result summarizes a Render call
type Result struct {
	Fragments []Fragment
	Failures  []Failure
}

// Err joins the item failures, nil when every item rendered
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Render replaces the children of container with one fragment per item, in
// the given order. An item that fails to render is recorded and skipped.
func Render[T any](container *html.Node, items []T, itemToFragment ItemFunc[T]) Result {
	Clear(container)

	res := Result{Fragments: make([]Fragment, 0, len(items))}
	for i, item := range items {
		frag, err := itemToFragment(item)
		if err == nil && frag.Node == nil {
			err = errors.New("empty fragment")
		}
		if err != nil {
			res.Failures = append(res.Failures, Failure{Index: i, Err: err})
			continue
		}

		if acts := frag.Actions.List(); len(acts) > 0 {
			frag.Node.AppendChild(actionBar(acts))
		}
		container.AppendChild(frag.Node)
		res.Fragments = append(res.Fragments, frag)
	}
	return res
}

func actionBar(acts []*Action) *html.Node {
	bar := Element(atom.Div, Attr("class", "actions"))
	for _, act := range acts {
		bar.AppendChild(actionNode(act))
	}
	return bar
}

// Non-GET actions are rendered as a single-button form.
func actionNode(act *Action) *html.Node {
	if act.Method == "" || act.Method == http.MethodGet {
		return TextEl(atom.A, act.Label, Attr("href", act.Href))
	}
	return El(atom.Form,
		[]html.Attribute{Attr("method", "post"), Attr("action", act.Href)},
		TextEl(atom.Button, act.Label, Attr("type", "submit")),
	)
}
