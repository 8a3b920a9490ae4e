package services

import (
	"context"
	"net/http"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/application/filter"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
)

// ReviewFlows posts, edits and deletes reviews
type ReviewFlows struct {
	mutator
}

// NewReviewFlows creates review flows. A nil validator uses the default one.
func NewReviewFlows(v *Validator) *ReviewFlows {
	f := &ReviewFlows{}
	f.validator = orDefault(v)
	return f
}

// Create posts a review by the viewer. The rating is forwarded unchanged.
func (f *ReviewFlows) Create(ctx context.Context, s entities.Session, api hbnbapi.API, in entities.ReviewInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("place id", in.PlaceID); err != nil {
		return Outcome{}, err
	}
	in.UserID = s.SubjectID
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPost, "reviews/"+in.PlaceID, in, func(ctx context.Context) (Outcome, error) {
		if _, err := api.CreateReview(ctx, in); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: placeHref(in.PlaceID), Message: "Review added", Refresh: cache.KindReviews}, nil
	})
}

// Update edits a review
func (f *ReviewFlows) Update(ctx context.Context, s entities.Session, api hbnbapi.API, reviewID string, in entities.ReviewInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("review id", reviewID); err != nil {
		return Outcome{}, err
	}
	if in.UserID == "" {
		in.UserID = s.SubjectID
	}
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPut, "reviews/"+reviewID, in, func(ctx context.Context) (Outcome, error) {
		if _, err := api.UpdateReview(ctx, reviewID, in); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: placeHref(in.PlaceID), Message: "Review updated", Refresh: cache.KindReviews}, nil
	})
}

// Delete removes a review once confirmed and returns to its place
func (f *ReviewFlows) Delete(ctx context.Context, s entities.Session, api hbnbapi.API, reviewID, placeID string, ok ConfirmFunc) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("review id", reviewID); err != nil {
		return Outcome{}, err
	}
	if !confirm(ok, "Are you sure you want to delete this review?") {
		return Outcome{}, nil
	}

	return f.once(ctx, s, http.MethodDelete, "reviews/"+reviewID, nil, func(ctx context.Context) (Outcome, error) {
		if err := api.DeleteReview(ctx, reviewID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: placeHref(placeID), Message: "Review deleted", Refresh: cache.KindReviews}, nil
	})
}

// Mine returns the viewer's reviews
func (f *ReviewFlows) Mine(ctx context.Context, s entities.Session, api hbnbapi.API) ([]entities.Review, error) {
	return f.ByUser(ctx, s, api, s.SubjectID)
}

// ByUser returns the reviews written by userID. The API serves every
// review, so the list is narrowed here whether or not the API scoped it.
func (f *ReviewFlows) ByUser(ctx context.Context, s entities.Session, api hbnbapi.API, userID string) ([]entities.Review, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}

	all, err := api.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	mine := filter.Apply(all, func(r entities.Review) bool {
		return userID != "" && r.UserID.String() == userID
	})

	if dropped := len(all) - len(mine); dropped > 0 {
		observability.LoggerFromContext(ctx).Debug().
			Int("fetched", len(all)).
			Int("dropped", dropped).
			Msg("review listing was not scoped to the user")
	}
	return mine, nil
}
