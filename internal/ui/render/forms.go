package render

import (
	"net/url"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zatekoja/hbnb-web/internal/application/filter"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// Field is a labelled form input
type Field struct {
	Label    string
	Name     string
	Type     string
	Value    string
	Required bool
	// Step is set on number inputs; "any" accepts decimals.
	Step string
}

// Option is a select entry
type Option struct {
	Label string
	Value string
}

// Form builds a POST form with the given fields and extra nodes
func Form(action, submit string, fields []Field, extra ...*html.Node) *html.Node {
	form := Element(atom.Form, Attr("method", "post"), Attr("action", action))
	for _, f := range fields {
		form.AppendChild(input(f))
	}
	Append(form, extra...)
	form.AppendChild(TextEl(atom.Button, submit, Attr("type", "submit")))
	return form
}

func input(f Field) *html.Node {
	typ := f.Type
	if typ == "" {
		typ = "text"
	}
	attrs := []html.Attribute{Attr("type", typ), Attr("name", f.Name), Attr("id", f.Name)}
	// Password values are never echoed back.
	if f.Value != "" && typ != "password" {
		attrs = append(attrs, Attr("value", f.Value))
	}
	if f.Step != "" {
		attrs = append(attrs, Attr("step", f.Step))
	}
	if f.Required {
		attrs = append(attrs, Attr("required", ""))
	}
	return El(atom.Label, nil, Text(f.Label+" "), Element(atom.Input, attrs...))
}

// Hidden builds a hidden input
func Hidden(name, value string) *html.Node {
	return Element(atom.Input, Attr("type", "hidden"), Attr("name", name), Attr("value", value))
}

// Select builds a select control with selected preselected
func Select(name, label string, options []Option, selected string) *html.Node {
	sel := Element(atom.Select, Attr("name", name), Attr("id", name))
	for _, o := range options {
		attrs := []html.Attribute{Attr("value", o.Value)}
		if o.Value == selected {
			attrs = append(attrs, Attr("selected", ""))
		}
		sel.AppendChild(TextEl(atom.Option, o.Label, attrs...))
	}
	return El(atom.Label, nil, Text(label+" "), sel)
}

// FilterControls renders the place filter form. It submits the view id so
// the list is recomputed from that view's snapshot.
func FilterControls(viewID string, current filter.Places, locations []string) *html.Node {
	prices := make([]Option, 0, len(filter.PricePresets))
	for _, p := range filter.PricePresets {
		if p == 0 {
			prices = append(prices, Option{Label: "All", Value: ""})
			continue
		}
		v := strconv.Itoa(p)
		prices = append(prices, Option{Label: "$" + v, Value: v})
	}

	locs := []Option{{Label: "All", Value: ""}}
	for _, l := range locations {
		locs = append(locs, Option{Label: l, Value: l})
	}

	return El(atom.Form,
		[]html.Attribute{Attr("method", "get"), Attr("action", "/"), Attr("id", "filter")},
		Hidden("view", viewID),
		Select(filter.ParamMaxPrice, "Max price", prices, current.MaxPrice),
		Select(filter.ParamLocation, "Location", locs, current.Location),
		TextEl(atom.Button, "Filter", Attr("type", "submit")),
	)
}

// Confirm renders the confirmation step of a destructive action. Only the
// confirm button carries confirm=yes.
func Confirm(prompt, action, cancelHref string, hidden ...*html.Node) *html.Node {
	form := Element(atom.Form, Attr("method", "post"), Attr("action", action), Attr("id", "confirm"))
	form.AppendChild(TextEl(atom.P, prompt))
	Append(form, hidden...)
	form.AppendChild(TextEl(atom.Button, "Confirm", Attr("type", "submit"), Attr("name", "confirm"), Attr("value", "yes")))
	form.AppendChild(TextEl(atom.A, "Cancel", Attr("href", cancelHref)))
	return form
}

// LoginForm renders the login form
func LoginForm(email string) *html.Node {
	return Form("/login", "Login", []Field{
		{Label: "Email", Name: "email", Type: "email", Value: email, Required: true},
		{Label: "Password", Name: "password", Type: "password", Required: true},
	})
}

// UserForm renders the user creation or update form
func UserForm(action, submit string, u entities.User, passwordRequired bool) *html.Node {
	return Form(action, submit, []Field{
		{Label: "First name", Name: "first_name", Value: u.FirstName, Required: true},
		{Label: "Last name", Name: "last_name", Value: u.LastName, Required: true},
		{Label: "Email", Name: "email", Type: "email", Value: u.Email, Required: true},
		{Label: "Password", Name: "password", Type: "password", Required: passwordRequired},
		{Label: "Confirm password", Name: "confirm_password", Type: "password", Required: passwordRequired},
	})
}

// PlaceForm renders the place creation or update form. Numbers are left
// blank only on a fresh form; an existing or resubmitted place shows 0.
func PlaceForm(action, submit string, p entities.Place) *html.Node {
	fresh := p.ID == "" && p.Title == "" && p.Description == ""
	num := func(v float64) string {
		if fresh && v == 0 {
			return ""
		}
		return Price(v)
	}
	return Form(action, submit, []Field{
		{Label: "Title", Name: "title", Value: p.Title, Required: true},
		{Label: "Description", Name: "description", Value: p.Description, Required: true},
		{Label: "Price", Name: "price", Type: "number", Step: "any", Value: num(p.Price), Required: true},
		{Label: "Latitude", Name: "latitude", Type: "number", Step: "any", Value: num(p.Latitude)},
		{Label: "Longitude", Name: "longitude", Type: "number", Step: "any", Value: num(p.Longitude)},
		{Label: "Location", Name: "city_id", Value: p.CityID},
	})
}

// ReviewForm renders the review creation or update form. The rating input
// has no bounds so the API decides what is acceptable.
func ReviewForm(action, submit string, r entities.Review) *html.Node {
	rating := ""
	if r.Rating != 0 {
		rating = strconv.Itoa(r.Rating)
	}
	return Form(action, submit, []Field{
		{Label: "Review", Name: "text", Value: r.Text, Required: true},
		{Label: "Rating", Name: "rating", Type: "number", Value: rating, Required: true},
	}, Hidden("place_id", r.PlaceID.String()))
}

// AmenityForm renders the add-amenity form of a place, suggesting known names
func AmenityForm(placeID entities.ID, known []entities.Amenity) *html.Node {
	list := Element(atom.Datalist, Attr("id", "amenity-names"))
	for _, a := range known {
		list.AppendChild(Element(atom.Option, Attr("value", a.Name)))
	}
	name := Element(atom.Input, Attr("type", "text"), Attr("name", "name"), Attr("list", "amenity-names"), Attr("required", ""))
	return El(atom.Form,
		[]html.Attribute{Attr("method", "post"), Attr("action", "/places/"+url.PathEscape(placeID.String())+"/amenities"), Attr("id", "add-amenity")},
		El(atom.Label, nil, Text("Amenity "), name),
		list,
		TextEl(atom.Button, "Add amenity", Attr("type", "submit")),
	)
}
