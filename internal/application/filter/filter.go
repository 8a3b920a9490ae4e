// Package filter derives filtered views of cached collections. Filters are
// pure and never chained: every call starts from the full snapshot.
package filter

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// Query parameter names of the filter controls
const (
	ParamMaxPrice = "max_price"
	ParamLocation = "location"
)

// PricePresets are the ceilings offered by the price control. Zero stands
// for "all".
var PricePresets = []int{10, 50, 100, 200, 500, 0}

// Predicate reports whether an item is kept
type Predicate[T any] func(T) bool

// Identity keeps every item
func Identity[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Apply returns the items satisfying every predicate, in their original
// order. The input slice is never modified.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func keep[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// PriceCeiling keeps items priced at or below raw. A blank, unparseable or
// "all" value keeps everything.
func PriceCeiling[T any](raw string, price func(T) float64) Predicate[T] {
	ceiling, ok := parseCeiling(raw)
	if !ok {
		return Identity[T]()
	}
	return func(item T) bool {
		return price(item) <= ceiling
	}
}

// LocationMatch keeps items whose location equals raw. A blank value keeps
// everything.
func LocationMatch[T any](raw string, location func(T) string) Predicate[T] {
	want := strings.TrimSpace(raw)
	if want == "" {
		return Identity[T]()
	}
	return func(item T) bool {
		return location(item) == want
	}
}

func parseCeiling(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Places holds the current values of the place list controls
type Places struct {
	MaxPrice string
	Location string
}

// FromQuery reads the place filter controls from a request query
func FromQuery(q url.Values) Places {
	return Places{
		MaxPrice: q.Get(ParamMaxPrice),
		Location: q.Get(ParamLocation),
	}
}

// Active reports whether any control narrows the list
func (f Places) Active() bool {
	_, priced := parseCeiling(f.MaxPrice)
	return priced || strings.TrimSpace(f.Location) != ""
}

// Predicates builds the place predicates for the current controls
func (f Places) Predicates() []Predicate[entities.Place] {
	return []Predicate[entities.Place]{
		PriceCeiling(f.MaxPrice, func(p entities.Place) float64 { return p.Price }),
		LocationMatch(f.Location, func(p entities.Place) string { return p.Location() }),
	}
}

// Apply filters places with the current controls
func (f Places) Apply(places []entities.Place) []entities.Place {
	return Apply(places, f.Predicates()...)
}

// Locations returns the distinct non-empty locations of places, sorted
func Locations(places []entities.Place) []string {
	seen := make(map[string]struct{}, len(places))
	out := make([]string, 0, len(places))
	for _, p := range places {
		loc := p.Location()
		if loc == "" {
			continue
		}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}
