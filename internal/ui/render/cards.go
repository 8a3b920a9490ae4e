package render

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

const maxStars = 5

// Stars renders a rating on a five symbol scale. Out of range values are
// clamped for display only.
func Stars(rating int) string {
	switch {
	case rating < 0:
		rating = 0
	case rating > maxStars:
		rating = maxStars
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", maxStars-rating)
}

// Price formats a nightly price without trailing zeros
func Price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// PlaceHref is the details view of a place
func PlaceHref(id entities.ID) string {
	return "/place?id=" + url.QueryEscape(id.String())
}

// PlaceCard renders places for viewer
func PlaceCard(viewer entities.Session) ItemFunc[entities.Place] {
	return func(p entities.Place) (Fragment, error) {
		if p.ID.Empty() {
			return Fragment{}, ErrMissingID
		}
		id := url.PathEscape(p.ID.String())

		node := El(atom.Article,
			[]html.Attribute{Attr("class", "place-card"), Attr("data-id", p.ID.String())},
			TextEl(atom.H2, p.Title),
			TextEl(atom.P, "Price per night: $"+Price(p.Price), Attr("class", "price")),
			TextEl(atom.P, p.CityID, Attr("class", "location")),
			TextEl(atom.P, p.OwnerFirstName, Attr("class", "owner")),
		)

		acts := Actions{View: &Action{Label: "View Details", Href: PlaceHref(p.ID)}}
		if viewer.CanEdit(p.OwnerID) {
			acts.Edit = &Action{Label: "Edit", Href: "/places/" + id + "/update_place"}
			acts.Delete = &Action{Label: "Delete", Href: "/places/" + id + "/delete"}
		}
		return Fragment{Node: node, Actions: acts}, nil
	}
}

// ReviewCard renders reviews for viewer
func ReviewCard(viewer entities.Session) ItemFunc[entities.Review] {
	return func(r entities.Review) (Fragment, error) {
		if r.ID.Empty() {
			return Fragment{}, ErrMissingID
		}
		id := url.PathEscape(r.ID.String())
		placeID := url.PathEscape(r.PlaceID.String())

		node := El(atom.Article,
			[]html.Attribute{Attr("class", "review-card"), Attr("data-id", r.ID.String())},
			TextEl(atom.H3, r.UserFirstName, Attr("class", "reviewer")),
			TextEl(atom.P, r.PlaceName, Attr("class", "place-name")),
			TextEl(atom.P, r.Text, Attr("class", "text")),
			TextEl(atom.P, Stars(r.Rating), Attr("class", "rating"), Attr("data-rating", strconv.Itoa(r.Rating))),
		)

		acts := Actions{View: &Action{Label: "View Place", Href: PlaceHref(r.PlaceID)}}
		if viewer.CanEdit(r.UserID) {
			acts.Edit = &Action{Label: "Edit", Href: "/reviews/" + placeID + "/" + id + "/update_review"}
			acts.Delete = &Action{Label: "Delete", Href: "/reviews/" + id + "/delete?place_id=" + url.QueryEscape(r.PlaceID.String())}
		}
		return Fragment{Node: node, Actions: acts}, nil
	}
}

// AmenityItem renders an amenity as a list entry
func AmenityItem(a entities.Amenity) (Fragment, error) {
	if a.ID.Empty() && a.Name == "" {
		return Fragment{}, ErrMissingID
	}
	return Fragment{Node: TextEl(atom.Li, a.Name, Attr("class", "amenity"))}, nil
}
