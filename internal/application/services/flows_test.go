package services_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/application/services"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

var viewer = entities.Session{Token: "t", SubjectID: "42"}

func TestMutations_WithoutTokenNeverCallAPI(t *testing.T) {
	ctx := context.Background()
	anon := entities.Session{SubjectID: "42"}

	places := services.NewPlaceFlows(nil)
	reviews := services.NewReviewFlows(nil)
	users := services.NewUserFlows(nil)
	amenities := services.NewAmenityFlows(nil)

	tests := []struct {
		name string
		run  func(api *MockAPI) error
	}{
		{"create place", func(api *MockAPI) error {
			_, err := places.Create(ctx, anon, api, entities.PlaceInput{Title: "t", Description: "d"})
			return err
		}},
		{"update place", func(api *MockAPI) error {
			_, err := places.Update(ctx, anon, api, "p1", entities.PlaceInput{Title: "t", Description: "d"})
			return err
		}},
		{"delete place", func(api *MockAPI) error {
			_, err := places.Delete(ctx, anon, api, "p1", services.Confirmed)
			return err
		}},
		{"create review", func(api *MockAPI) error {
			_, err := reviews.Create(ctx, anon, api, entities.ReviewInput{Text: "x", Rating: 4, PlaceID: "p1"})
			return err
		}},
		{"update review", func(api *MockAPI) error {
			_, err := reviews.Update(ctx, anon, api, "r1", entities.ReviewInput{Text: "x", Rating: 4})
			return err
		}},
		{"delete review", func(api *MockAPI) error {
			_, err := reviews.Delete(ctx, anon, api, "r1", "p1", services.Confirmed)
			return err
		}},
		{"my reviews", func(api *MockAPI) error {
			_, err := reviews.Mine(ctx, anon, api)
			return err
		}},
		{"register user", func(api *MockAPI) error {
			_, err := users.Register(ctx, anon, api, entities.UserInput{FirstName: "a", LastName: "b", Email: "a@b.com", Password: "x", ConfirmPassword: "x"})
			return err
		}},
		{"update user", func(api *MockAPI) error {
			_, err := users.Update(ctx, anon, api, entities.UserInput{FirstName: "a", LastName: "b", Email: "a@b.com"})
			return err
		}},
		{"delete user", func(api *MockAPI) error {
			_, err := users.Delete(ctx, anon, api, "42", services.Confirmed)
			return err
		}},
		{"add amenity", func(api *MockAPI) error {
			_, err := amenities.Add(ctx, anon, api, "p1", "Sauna")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			err := tt.run(api)

			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthMissing))
			assert.Empty(t, api.Calls)
		})
	}
}

func TestPlaceDelete_RequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	flows := services.NewPlaceFlows(nil)

	api := new(MockAPI)
	var prompt string
	out, err := flows.Delete(ctx, viewer, api, "p1", func(p string) bool {
		prompt = p
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, services.Outcome{}, out)
	assert.NotEmpty(t, prompt)
	assert.Empty(t, api.Calls)

	out, err = flows.Delete(ctx, viewer, api, "p1", nil)
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	assert.Empty(t, api.Calls)

	api.On("DeletePlace", mock.Anything, "p1").Return(nil).Once()
	out, err = flows.Delete(ctx, viewer, api, "p1", services.Confirmed)
	require.NoError(t, err)
	assert.Equal(t, "/", out.Redirect)
	assert.Equal(t, cache.KindPlaces, out.Refresh)
	api.AssertNumberOfCalls(t, "DeletePlace", 1)
	api.AssertExpectations(t)
}

func TestPlaceDelete_FailureDoesNotRedirect(t *testing.T) {
	api := new(MockAPI)
	api.On("DeletePlace", mock.Anything, "p1").Return(apperrors.NewAPIError(http.StatusForbidden, "Unauthorized action")).Once()

	out, err := services.NewPlaceFlows(nil).Delete(context.Background(), viewer, api, "p1", services.Confirmed)

	require.Error(t, err)
	assert.Equal(t, "Unauthorized action", apperrors.MessageOf(err))
	assert.Empty(t, out.Redirect)
}

func TestPlaceDelete_CollapsesDuplicateTriggers(t *testing.T) {
	ctx := context.Background()
	flows := services.NewPlaceFlows(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	api := new(MockAPI)
	api.On("DeletePlace", mock.Anything, "p1").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	var wg sync.WaitGroup
	outcomes := make([]services.Outcome, 2)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := flows.Delete(ctx, viewer, api, "p1", services.Confirmed)
			assert.NoError(t, err)
			outcomes[i] = out
		}(i)
		if i == 0 {
			<-started
		}
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	api.AssertNumberOfCalls(t, "DeletePlace", 1)
	assert.Equal(t, "/", outcomes[0].Redirect)
	assert.Equal(t, "/", outcomes[1].Redirect)
}

func TestPlaceCreate_DistinctSubmissionsEachReachAPI(t *testing.T) {
	ctx := context.Background()
	flows := services.NewPlaceFlows(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	api := new(MockAPI)
	api.On("CreatePlace", mock.Anything, mock.MatchedBy(func(in entities.PlaceInput) bool {
		return in.Title == "Beach house"
	})).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(&entities.Place{ID: "beach"}, nil).Once()
	api.On("CreatePlace", mock.Anything, mock.MatchedBy(func(in entities.PlaceInput) bool {
		return in.Title == "Mountain cabin"
	})).Return(&entities.Place{ID: "cabin"}, nil).Once()

	first := make(chan services.Outcome, 1)
	go func() {
		out, err := flows.Create(ctx, viewer, api, entities.PlaceInput{Title: "Beach house", Description: "Sand", Price: 90})
		assert.NoError(t, err)
		first <- out
	}()
	<-started

	second := make(chan services.Outcome, 1)
	go func() {
		out, err := flows.Create(ctx, viewer, api, entities.PlaceInput{Title: "Mountain cabin", Description: "Snow", Price: 70})
		assert.NoError(t, err)
		second <- out
	}()

	select {
	case out := <-second:
		assert.Equal(t, "/place?id=cabin", out.Redirect)
	case <-time.After(time.Second):
		t.Fatal("second submission waited on the first one")
	}

	close(release)
	assert.Equal(t, "/place?id=beach", (<-first).Redirect)
	api.AssertNumberOfCalls(t, "CreatePlace", 2)
}

func TestPlaceDelete_SharedCallOutlivesFirstCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	flows := services.NewPlaceFlows(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var apiCtxErr error
	api := new(MockAPI)
	api.On("DeletePlace", mock.Anything, "p1").Run(func(args mock.Arguments) {
		close(started)
		<-release
		apiCtxErr = args.Get(0).(context.Context).Err()
	}).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := flows.Delete(ctx, viewer, api, "p1", services.Confirmed)
		done <- err
	}()
	<-started

	cancel()
	close(release)

	require.NoError(t, <-done)
	assert.NoError(t, apiCtxErr)
}

func TestPlaceCreate_OwnedByViewer(t *testing.T) {
	api := new(MockAPI)
	api.On("CreatePlace", mock.Anything, mock.MatchedBy(func(in entities.PlaceInput) bool {
		return in.OwnerID == "42" && in.Title == "Loft"
	})).Return(&entities.Place{ID: "new-id"}, nil).Once()

	out, err := services.NewPlaceFlows(nil).Create(context.Background(), viewer, api, entities.PlaceInput{
		Title: "Loft", Description: "Nice", Price: 100, OwnerID: "someone-else",
	})

	require.NoError(t, err)
	assert.Equal(t, "/place?id=new-id", out.Redirect)
	api.AssertExpectations(t)
}

func TestPlaceCreate_ValidationBlocksSubmission(t *testing.T) {
	api := new(MockAPI)

	_, err := services.NewPlaceFlows(nil).Create(context.Background(), viewer, api, entities.PlaceInput{Description: "no title"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, "title is required", apperrors.MessageOf(err))
	assert.Empty(t, api.Calls)
}

func TestPlaceCreate_UnresolvableOwnerBlocksSubmission(t *testing.T) {
	api := new(MockAPI)
	noSubject := entities.Session{Token: "opaque"}

	_, err := services.NewPlaceFlows(nil).Create(context.Background(), noSubject, api, entities.PlaceInput{Title: "t", Description: "d"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, api.Calls)
}

func TestPlaceUpdate_DefaultsOwnerToViewer(t *testing.T) {
	api := new(MockAPI)
	api.On("UpdatePlace", mock.Anything, "p1", mock.MatchedBy(func(in entities.PlaceInput) bool {
		return in.OwnerID == "42"
	})).Return(&entities.Place{ID: "p1"}, nil).Once()

	out, err := services.NewPlaceFlows(nil).Update(context.Background(), viewer, api, "p1", entities.PlaceInput{Title: "t", Description: "d"})

	require.NoError(t, err)
	assert.Equal(t, "/place?id=p1", out.Redirect)
	api.AssertExpectations(t)
}

func TestReviewCreate_PassesRatingThroughAndSurfacesServerMessage(t *testing.T) {
	api := new(MockAPI)
	api.On("CreateReview", mock.Anything, entities.ReviewInput{
		Text: "Too good", Rating: 6, PlaceID: "p1", UserID: "42",
	}).Return(nil, apperrors.NewAPIError(http.StatusBadRequest, "Rating must be between 1 and 5")).Once()

	out, err := services.NewReviewFlows(nil).Create(context.Background(), viewer, api, entities.ReviewInput{
		Text: "Too good", Rating: 6, PlaceID: "p1",
	})

	require.Error(t, err)
	assert.Equal(t, "Rating must be between 1 and 5", apperrors.MessageOf(err))
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, services.Outcome{}, out)
	api.AssertExpectations(t)
}

func TestReviewCreate_RequiresPlace(t *testing.T) {
	api := new(MockAPI)

	_, err := services.NewReviewFlows(nil).Create(context.Background(), viewer, api, entities.ReviewInput{Text: "x", Rating: 3})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, api.Calls)
}

func TestReviewDelete_ReturnsToPlace(t *testing.T) {
	api := new(MockAPI)
	api.On("DeleteReview", mock.Anything, "r1").Return(nil).Once()

	out, err := services.NewReviewFlows(nil).Delete(context.Background(), viewer, api, "r1", "p1", services.Confirmed)

	require.NoError(t, err)
	assert.Equal(t, "/place?id=p1", out.Redirect)
	assert.Equal(t, cache.KindReviews, out.Refresh)
}

func TestReviewMine_FiltersToViewer(t *testing.T) {
	api := new(MockAPI)
	api.On("ListReviews", mock.Anything).Return([]entities.Review{
		{ID: "r1", UserID: "42"},
		{ID: "r2", UserID: "7"},
		{ID: "r3", UserID: "42"},
	}, nil).Once()

	mine, err := services.NewReviewFlows(nil).Mine(context.Background(), viewer, api)

	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, entities.ID("r1"), mine[0].ID)
	assert.Equal(t, entities.ID("r3"), mine[1].ID)
}

func TestUserRegister_PasswordMismatchBlocksSubmission(t *testing.T) {
	api := new(MockAPI)

	_, err := services.NewUserFlows(nil).Register(context.Background(), viewer, api, entities.UserInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Password: "one", ConfirmPassword: "two",
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, "passwords do not match", apperrors.MessageOf(err))
	assert.Empty(t, api.Calls)
}

func TestUserRegister_RequiresPassword(t *testing.T) {
	api := new(MockAPI)

	_, err := services.NewUserFlows(nil).Register(context.Background(), viewer, api, entities.UserInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
	})

	assert.Equal(t, "password is required", apperrors.MessageOf(err))
	assert.Empty(t, api.Calls)
}

func TestUserUpdate_BlankPasswordKeepsCurrent(t *testing.T) {
	api := new(MockAPI)
	api.On("UpdateUser", mock.Anything, "42", mock.MatchedBy(func(in entities.UserInput) bool {
		return in.Password == "" && in.Email == "ann@example.com"
	})).Return(&entities.User{ID: "42"}, nil).Once()

	out, err := services.NewUserFlows(nil).Update(context.Background(), viewer, api, entities.UserInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "/42/my_account", out.Redirect)
	api.AssertExpectations(t)
}

func TestUserDelete_SelfEndsSession(t *testing.T) {
	api := new(MockAPI)
	api.On("DeleteUser", mock.Anything, "42").Return(nil).Once()
	api.On("DeleteUser", mock.Anything, "7").Return(nil).Once()
	flows := services.NewUserFlows(nil)

	out, err := flows.Delete(context.Background(), viewer, api, "42", services.Confirmed)
	require.NoError(t, err)
	assert.True(t, out.SignOut)

	out, err = flows.Delete(context.Background(), viewer, api, "7", services.Confirmed)
	require.NoError(t, err)
	assert.False(t, out.SignOut)
}

func TestAmenityAdd(t *testing.T) {
	api := new(MockAPI)
	api.On("AddPlaceAmenity", mock.Anything, "p1", "Sauna").Return(&entities.Amenity{ID: "a1", Name: "Sauna"}, nil).Once()
	flows := services.NewAmenityFlows(nil)

	_, err := flows.Add(context.Background(), viewer, api, "p1", "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	out, err := flows.Add(context.Background(), viewer, api, "p1", " Sauna ")
	require.NoError(t, err)
	assert.Equal(t, "/place?id=p1", out.Redirect)
	api.AssertExpectations(t)
}

func TestLogin_StoresTokenAndSubject(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	api.On("Login", mock.Anything, entities.Credentials{Email: "a@b.com", Password: "x"}).
		Return(&entities.LoginResult{AccessToken: "t", UserID: "42"}, nil).Once()

	jar := memoryJar{}
	out, err := services.NewAuthFlows(nil).Login(ctx, jar, api, entities.Credentials{Email: "a@b.com", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "/", out.Redirect)
	assert.Equal(t, memoryJar{"jwt_token": "t", "user_id": "42"}, jar)

	s := services.NewSessionService().Current(ctx, jar)
	links := services.NewNavGate().Links(s)
	require.Len(t, links, 3)
	assert.Equal(t, entities.NavAddListing, links[0].Key)
	assert.Equal(t, entities.NavLogout, links[2].Key)
}

func TestLogin_FailureLeavesCookiesUntouched(t *testing.T) {
	api := new(MockAPI)
	api.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAPIError(http.StatusUnauthorized, "Invalid credentials")).Once()

	jar := memoryJar{}
	_, err := services.NewAuthFlows(nil).Login(context.Background(), jar, api, entities.Credentials{Email: "a@b.com", Password: "bad"})

	assert.Equal(t, "Invalid credentials", apperrors.MessageOf(err))
	assert.Empty(t, jar)
}

func TestLogin_MissingFieldsNeverCallAPI(t *testing.T) {
	api := new(MockAPI)

	_, err := services.NewAuthFlows(nil).Login(context.Background(), memoryJar{}, api, entities.Credentials{Email: " "})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, api.Calls)
}

func TestLogout_ClearsCookiesEvenWhenAPIFails(t *testing.T) {
	api := new(MockAPI)
	api.On("Logout", mock.Anything).Return(apperrors.NewTransportError("api unreachable", errors.New("refused"))).Once()

	jar := memoryJar{"jwt_token": "t", "user_id": "42"}
	out := services.NewAuthFlows(nil).Logout(context.Background(), viewer, jar, api)

	assert.Equal(t, "/", out.Redirect)
	assert.Empty(t, jar)
	api.AssertExpectations(t)
}

func TestLogout_AnonymousSkipsAPI(t *testing.T) {
	api := new(MockAPI)

	out := services.NewAuthFlows(nil).Logout(context.Background(), entities.Session{}, memoryJar{}, api)

	assert.True(t, out.SignOut)
	assert.Empty(t, api.Calls)
}
