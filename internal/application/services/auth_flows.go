package services

import (
	"context"
	"strings"

	"github.com/zatekoja/hbnb-web/internal/adapters/cookies"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

// AuthFlows establishes and ends sessions
type AuthFlows struct {
	mutator
}

// NewAuthFlows creates auth flows. A nil validator uses the default one.
func NewAuthFlows(v *Validator) *AuthFlows {
	f := &AuthFlows{}
	f.validator = orDefault(v)
	return f
}

// Login exchanges credentials for a token and stores it with the subject
// id in the cookie jar.
func (f *AuthFlows) Login(ctx context.Context, jar CookieJar, api hbnbapi.API, creds entities.Credentials) (Outcome, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := f.validator.Validate(creds); err != nil {
		return Outcome{}, err
	}

	res, err := api.Login(ctx, creds)
	if err != nil {
		return Outcome{}, err
	}
	if res.AccessToken == "" {
		return Outcome{}, apperrors.NewDecodeError("login response carried no access token", nil)
	}

	jar.Set(cookies.TokenCookie, res.AccessToken)
	jar.Set(cookies.UserCookie, res.UserID.String())

	observability.LoggerFromContext(ctx).Info().
		Str("user_id", res.UserID.String()).
		Msg("user logged in")

	return Outcome{Redirect: "/"}, nil
}

// Logout ends the API session and always clears both cookies. An API
// failure is logged and otherwise ignored.
func (f *AuthFlows) Logout(ctx context.Context, s entities.Session, jar CookieJar, api hbnbapi.API) Outcome {
	if s.Authenticated() {
		if err := api.Logout(ctx); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("user_id", s.SubjectID).
				Msg("API logout failed, clearing session anyway")
		}
	}

	jar.Clear(cookies.TokenCookie)
	jar.Clear(cookies.UserCookie)

	return Outcome{Redirect: "/", SignOut: true}
}
