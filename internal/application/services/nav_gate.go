package services

import (
	"net/http"
	"net/url"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// NavGate decides which navigation affordances a session sees
type NavGate struct{}

// NewNavGate creates a new nav gate
func NewNavGate() *NavGate {
	return &NavGate{}
}

// Links returns the ordered navigation for s
func (g *NavGate) Links(s entities.Session) []entities.NavLink {
	if !s.Authenticated() {
		return []entities.NavLink{
			{Key: entities.NavLogin, Label: "Login", Href: "/login", Method: http.MethodGet},
		}
	}

	links := []entities.NavLink{
		{Key: entities.NavAddListing, Label: "Add listing", Href: "/register_place", Method: http.MethodGet},
	}
	if s.IsAdmin {
		links = append(links, entities.NavLink{Key: entities.NavAddUser, Label: "Add user", Href: "/register_user", Method: http.MethodGet})
	}
	return append(links,
		entities.NavLink{Key: entities.NavMyAccount, Label: "My account", Href: AccountHref(s), Method: http.MethodGet},
		entities.NavLink{Key: entities.NavLogout, Label: "Logout", Href: "/logout", Method: http.MethodPost},
	)
}

// AccountHref is the my-account view of the session's subject
func AccountHref(s entities.Session) string {
	id := s.SubjectID
	if id == "" {
		id = "me"
	}
	return "/" + url.PathEscape(id) + "/my_account"
}
