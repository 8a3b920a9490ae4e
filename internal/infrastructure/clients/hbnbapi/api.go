package hbnbapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// API is the REST surface consumed by the frontend
type API interface {
	Login(ctx context.Context, creds entities.Credentials) (*entities.LoginResult, error)
	Logout(ctx context.Context) error

	ListPlaces(ctx context.Context) ([]entities.Place, error)
	GetPlace(ctx context.Context, id string) (*entities.Place, error)
	CreatePlace(ctx context.Context, in entities.PlaceInput) (*entities.Place, error)
	UpdatePlace(ctx context.Context, id string, in entities.PlaceInput) (*entities.Place, error)
	DeletePlace(ctx context.Context, id string) error
	ListUserPlaces(ctx context.Context, userID string) ([]entities.Place, error)

	ListPlaceReviews(ctx context.Context, placeID string) ([]entities.Review, error)
	ListReviews(ctx context.Context) ([]entities.Review, error)
	GetReview(ctx context.Context, id string) (*entities.Review, error)
	CreateReview(ctx context.Context, in entities.ReviewInput) (*entities.Review, error)
	UpdateReview(ctx context.Context, id string, in entities.ReviewInput) (*entities.Review, error)
	DeleteReview(ctx context.Context, id string) error

	ListAmenities(ctx context.Context) ([]entities.Amenity, error)
	AddPlaceAmenity(ctx context.Context, placeID, name string) (*entities.Amenity, error)

	GetUser(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, in entities.UserInput) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ API = (*HTTPClient)(nil)

func pathID(id string) string {
	return url.PathEscape(id)
}

// Login exchanges credentials for an access token. No credential is attached.
func (c *HTTPClient) Login(ctx context.Context, creds entities.Credentials) (*entities.LoginResult, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/auth/login", RequestOptions{Body: creds})
	if err != nil {
		return nil, err
	}
	out := &entities.LoginResult{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout ends the session on the API side
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodPost, "/auth/logout", RequestOptions{Auth: true})
	return err
}

// ListPlaces fetches the public listing
func (c *HTTPClient) ListPlaces(ctx context.Context) ([]entities.Place, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/places/", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Place](raw, "places")
}

// GetPlace fetches a single place
func (c *HTTPClient) GetPlace(ctx context.Context, id string) (*entities.Place, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/places/"+pathID(id), RequestOptions{})
	if err != nil {
		return nil, err
	}
	out := &entities.Place{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlace creates a listing
func (c *HTTPClient) CreatePlace(ctx context.Context, in entities.PlaceInput) (*entities.Place, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/places/", RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.Place{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePlace replaces a listing's editable fields
func (c *HTTPClient) UpdatePlace(ctx context.Context, id string, in entities.PlaceInput) (*entities.Place, error) {
	raw, err := c.Request(ctx, http.MethodPut, "/places/"+pathID(id), RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.Place{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePlace deletes a listing
func (c *HTTPClient) DeletePlace(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/places/"+pathID(id), RequestOptions{Auth: true})
	return err
}

// ListUserPlaces fetches the places owned by a user
func (c *HTTPClient) ListUserPlaces(ctx context.Context, userID string) ([]entities.Place, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/users/"+pathID(userID)+"/places", RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Place](raw, "places")
}

// ListPlaceReviews fetches the public reviews of a place
func (c *HTTPClient) ListPlaceReviews(ctx context.Context, placeID string) ([]entities.Review, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/places/"+pathID(placeID)+"/reviews", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Review](raw, "reviews")
}

// ListReviews fetches every review visible to the caller
func (c *HTTPClient) ListReviews(ctx context.Context) ([]entities.Review, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/reviews", RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Review](raw, "reviews")
}

// GetReview fetches a single review
func (c *HTTPClient) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/reviews/"+pathID(id), RequestOptions{})
	if err != nil {
		return nil, err
	}
	out := &entities.Review{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview posts a review
func (c *HTTPClient) CreateReview(ctx context.Context, in entities.ReviewInput) (*entities.Review, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/reviews/", RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.Review{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReview edits a review
func (c *HTTPClient) UpdateReview(ctx context.Context, id string, in entities.ReviewInput) (*entities.Review, error) {
	raw, err := c.Request(ctx, http.MethodPut, "/reviews/"+pathID(id), RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.Review{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReview deletes a review
func (c *HTTPClient) DeleteReview(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/reviews/"+pathID(id), RequestOptions{Auth: true})
	return err
}

// ListAmenities fetches the amenity catalogue
func (c *HTTPClient) ListAmenities(ctx context.Context) ([]entities.Amenity, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/amenities", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeList[entities.Amenity](raw, "amenities")
}

// AddPlaceAmenity attaches an amenity to a place, creating it if needed
func (c *HTTPClient) AddPlaceAmenity(ctx context.Context, placeID, name string) (*entities.Amenity, error) {
	body := map[string]string{"name": name}
	raw, err := c.Request(ctx, http.MethodPost, "/places/"+pathID(placeID)+"/amenities", RequestOptions{Body: body, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.Amenity{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a user profile
func (c *HTTPClient) GetUser(ctx context.Context, id string) (*entities.User, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/users/"+pathID(id), RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.User{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser registers a user
func (c *HTTPClient) CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/users/", RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.User{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser edits a user
func (c *HTTPClient) UpdateUser(ctx context.Context, id string, in entities.UserInput) (*entities.User, error) {
	raw, err := c.Request(ctx, http.MethodPut, "/users/"+pathID(id), RequestOptions{Body: in, Auth: true})
	if err != nil {
		return nil, err
	}
	out := &entities.User{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser deletes a user; the API cascades to the user's places and reviews
func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/users/"+pathID(id), RequestOptions{Auth: true})
	return err
}
