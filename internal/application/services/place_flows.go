package services

import (
	"context"
	"net/http"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
)

// PlaceFlows creates, updates and deletes listings
type PlaceFlows struct {
	mutator
}

// NewPlaceFlows creates place flows. A nil validator uses the default one.
func NewPlaceFlows(v *Validator) *PlaceFlows {
	f := &PlaceFlows{}
	f.validator = orDefault(v)
	return f
}

// Create submits a new listing owned by the viewer
func (f *PlaceFlows) Create(ctx context.Context, s entities.Session, api hbnbapi.API, in entities.PlaceInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	in.OwnerID = s.SubjectID
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPost, "places", in, func(ctx context.Context) (Outcome, error) {
		created, err := api.CreatePlace(ctx, in)
		if err != nil {
			return Outcome{}, err
		}
		out := Outcome{Redirect: "/", Message: "Place created", Refresh: cache.KindPlaces}
		if created != nil && !created.ID.Empty() {
			out.Redirect = placeHref(created.ID.String())
		}
		return out, nil
	})
}

// Update replaces the editable fields of a listing. The owner defaults to
// the viewer when the form does not carry one.
func (f *PlaceFlows) Update(ctx context.Context, s entities.Session, api hbnbapi.API, placeID string, in entities.PlaceInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("place id", placeID); err != nil {
		return Outcome{}, err
	}
	if in.OwnerID == "" {
		in.OwnerID = s.SubjectID
	}
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPut, "places/"+placeID, in, func(ctx context.Context) (Outcome, error) {
		if _, err := api.UpdatePlace(ctx, placeID, in); err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Redirect: placeHref(placeID),
			Message:  "Place updated",
			Refresh:  cache.KindPlaces,
		}, nil
	})
}

// Delete removes a listing once confirmed. The redirect only happens after
// the API accepted the delete.
func (f *PlaceFlows) Delete(ctx context.Context, s entities.Session, api hbnbapi.API, placeID string, ok ConfirmFunc) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("place id", placeID); err != nil {
		return Outcome{}, err
	}
	if !confirm(ok, "Are you sure you want to delete this place?") {
		return Outcome{}, nil
	}

	return f.once(ctx, s, http.MethodDelete, "places/"+placeID, nil, func(ctx context.Context) (Outcome, error) {
		if err := api.DeletePlace(ctx, placeID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: "/", Message: "Place deleted", Refresh: cache.KindPlaces}, nil
	})
}
