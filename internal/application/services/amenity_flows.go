package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

// AmenityFlows attaches amenities to places
type AmenityFlows struct {
	mutator
}

// NewAmenityFlows creates amenity flows. A nil validator uses the default one.
func NewAmenityFlows(v *Validator) *AmenityFlows {
	f := &AmenityFlows{}
	f.validator = orDefault(v)
	return f
}

// Add attaches the named amenity to a place, creating it on the API side
// when it does not exist yet.
func (f *AmenityFlows) Add(ctx context.Context, s entities.Session, api hbnbapi.API, placeID, name string) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("place id", placeID); err != nil {
		return Outcome{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Outcome{}, apperrors.NewValidationError("amenity name is required")
	}

	return f.once(ctx, s, http.MethodPost, "places/"+placeID+"/amenities/"+name, nil, func(ctx context.Context) (Outcome, error) {
		if _, err := api.AddPlaceAmenity(ctx, placeID, name); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: placeHref(placeID), Message: "Amenity added", Refresh: cache.KindAmenities}, nil
	})
}
