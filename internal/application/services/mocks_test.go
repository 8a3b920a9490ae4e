package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

// Mocks

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, creds entities.Credentials) (*entities.LoginResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoginResult), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAPI) ListPlaces(ctx context.Context) ([]entities.Place, error) {
	args := m.Called(ctx)
	places, _ := args.Get(0).([]entities.Place)
	return places, args.Error(1)
}

func (m *MockAPI) GetPlace(ctx context.Context, id string) (*entities.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockAPI) CreatePlace(ctx context.Context, in entities.PlaceInput) (*entities.Place, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockAPI) UpdatePlace(ctx context.Context, id string, in entities.PlaceInput) (*entities.Place, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockAPI) DeletePlace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListUserPlaces(ctx context.Context, userID string) ([]entities.Place, error) {
	args := m.Called(ctx, userID)
	places, _ := args.Get(0).([]entities.Place)
	return places, args.Error(1)
}

func (m *MockAPI) ListPlaceReviews(ctx context.Context, placeID string) ([]entities.Review, error) {
	args := m.Called(ctx, placeID)
	reviews, _ := args.Get(0).([]entities.Review)
	return reviews, args.Error(1)
}

func (m *MockAPI) ListReviews(ctx context.Context) ([]entities.Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]entities.Review)
	return reviews, args.Error(1)
}

func (m *MockAPI) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockAPI) CreateReview(ctx context.Context, in entities.ReviewInput) (*entities.Review, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockAPI) UpdateReview(ctx context.Context, id string, in entities.ReviewInput) (*entities.Review, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockAPI) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListAmenities(ctx context.Context) ([]entities.Amenity, error) {
	args := m.Called(ctx)
	amenities, _ := args.Get(0).([]entities.Amenity)
	return amenities, args.Error(1)
}

func (m *MockAPI) AddPlaceAmenity(ctx context.Context, placeID, name string) (*entities.Amenity, error) {
	args := m.Called(ctx, placeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Amenity), args.Error(1)
}

func (m *MockAPI) GetUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAPI) CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAPI) UpdateUser(ctx context.Context, id string, in entities.UserInput) (*entities.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAPI) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// memoryJar is an in-memory CookieJar
type memoryJar map[string]string

func (j memoryJar) Get(name string) (string, bool) {
	v, ok := j[name]
	return v, ok && v != ""
}

func (j memoryJar) Set(name, value string) { j[name] = value }

func (j memoryJar) Clear(name string) { delete(j, name) }
