package render

import (
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// Page holds the shell of a full page
type Page struct {
	Title string
	Nav   []entities.NavLink
	// Flash is an informational message, Error a failure banner.
	Flash string
	Error string
}

// Document builds a complete HTML document around content
func Document(p Page, content ...*html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := El(atom.Head, nil,
		Element(atom.Meta, Attr("charset", "utf-8")),
		TextEl(atom.Title, p.Title),
	)

	main := El(atom.Main, []html.Attribute{Attr("id", "content")}, content...)
	body := El(atom.Body, nil,
		El(atom.Header, nil,
			TextEl(atom.A, "HBnB", Attr("href", "/"), Attr("class", "logo")),
			Nav(p.Nav),
		),
		banner("flash", p.Flash),
		banner("error", p.Error),
		main,
	)

	doc.AppendChild(El(atom.Html, []html.Attribute{Attr("lang", "en")}, head, body))
	return doc
}

func banner(class, msg string) *html.Node {
	if msg == "" {
		return nil
	}
	return TextEl(atom.Div, msg, Attr("class", class), Attr("role", "alert"))
}

// Nav renders the navigation affordances in order
func Nav(links []entities.NavLink) *html.Node {
	ul := Element(atom.Ul, Attr("id", "nav"))
	for _, l := range links {
		act := &Action{Label: l.Label, Href: l.Href, Method: l.Method}
		if act.Method == "" {
			act.Method = http.MethodGet
		}
		ul.AppendChild(El(atom.Li,
			[]html.Attribute{Attr("data-nav", string(l.Key))},
			actionNode(act),
		))
	}
	return ul
}

// Section wraps children in a titled section
func Section(id, title string, children ...*html.Node) *html.Node {
	sec := Element(atom.Section, Attr("id", id))
	if title != "" {
		sec.AppendChild(TextEl(atom.H2, title))
	}
	return Append(sec, children...)
}

// Container creates an empty list container for Render
func Container(id string) *html.Node {
	return Element(atom.Div, Attr("id", id), Attr("class", "list"))
}

// Empty renders a placeholder shown when a list has no items
func Empty(msg string) *html.Node {
	return TextEl(atom.P, msg, Attr("class", "empty"))
}
