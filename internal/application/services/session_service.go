package services

import (
	"context"

	"github.com/zatekoja/hbnb-web/internal/adapters/cookies"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	"github.com/zatekoja/hbnb-web/pkg/claims"
)

// CookieJar is the session cookie surface used by the flows
type CookieJar interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Clear(name string)
}

// SessionService composes the cookie jar and token claims into a Session
type SessionService struct{}

// NewSessionService creates a new session service
func NewSessionService() *SessionService {
	return &SessionService{}
}

// Current returns the viewer's session. A token whose claims cannot be read
// degrades to the anonymous session.
func (s *SessionService) Current(ctx context.Context, jar CookieJar) entities.Session {
	token, ok := jar.Get(cookies.TokenCookie)
	if !ok {
		return entities.Session{}
	}

	c, ok := claims.Decode(token)
	if !ok {
		observability.LoggerFromContext(ctx).Debug().Msg("session token has no readable claims, treating as anonymous")
		return entities.Session{}
	}

	sub := c.Subject()
	session := entities.Session{Token: token, SubjectID: sub.ID, IsAdmin: sub.IsAdmin}

	if session.SubjectID == "" {
		if id, ok := jar.Get(cookies.UserCookie); ok {
			session.SubjectID = id
		}
	}
	return session
}
