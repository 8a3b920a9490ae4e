package services

import (
	"context"
	"net/http"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
)

// UserFlows registers, updates and deletes accounts
type UserFlows struct {
	mutator
}

// NewUserFlows creates user flows. A nil validator uses the default one.
func NewUserFlows(v *Validator) *UserFlows {
	f := &UserFlows{}
	f.validator = orDefault(v)
	return f
}

// Register creates an account. Password confirmation is checked before
// anything is sent.
func (f *UserFlows) Register(ctx context.Context, s entities.Session, api hbnbapi.API, in entities.UserInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	in.ID = ""
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPost, "users/"+in.Email, in, func(ctx context.Context) (Outcome, error) {
		if _, err := api.CreateUser(ctx, in); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: "/", Message: "User created", Refresh: cache.KindUsers}, nil
	})
}

// Update edits the viewer's own account. A blank password keeps the
// current one.
func (f *UserFlows) Update(ctx context.Context, s entities.Session, api hbnbapi.API, in entities.UserInput) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("user id", s.SubjectID); err != nil {
		return Outcome{}, err
	}
	in.ID = s.SubjectID
	if err := f.validator.Validate(in); err != nil {
		return Outcome{}, err
	}

	return f.once(ctx, s, http.MethodPut, "users/"+s.SubjectID, in, func(ctx context.Context) (Outcome, error) {
		if _, err := api.UpdateUser(ctx, s.SubjectID, in); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: AccountHref(s), Message: "Account updated", Refresh: cache.KindUsers}, nil
	})
}

// Delete removes an account once confirmed. Deleting one's own account
// also ends the session.
func (f *UserFlows) Delete(ctx context.Context, s entities.Session, api hbnbapi.API, userID string, ok ConfirmFunc) (Outcome, error) {
	if err := requireSession(s); err != nil {
		return Outcome{}, err
	}
	if err := requireID("user id", userID); err != nil {
		return Outcome{}, err
	}
	if !confirm(ok, "Are you sure you want to delete this account?") {
		return Outcome{}, nil
	}

	return f.once(ctx, s, http.MethodDelete, "users/"+userID, nil, func(ctx context.Context) (Outcome, error) {
		if err := api.DeleteUser(ctx, userID); err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Redirect: "/",
			Message:  "Account deleted",
			Refresh:  cache.KindUsers,
			SignOut:  userID == s.SubjectID,
		}, nil
	})
}
