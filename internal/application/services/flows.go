package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

// Outcome tells the caller what to do after a successful flow
type Outcome struct {
	// Redirect is the follow-up view, empty to stay in place.
	Redirect string
	Message  string
	// Refresh names the collection to refetch before re-rendering.
	Refresh cache.Kind
	// SignOut asks the caller to drop the session cookies.
	SignOut bool
}

// ConfirmFunc gates destructive flows. Returning false cancels the flow
// before any network call.
type ConfirmFunc func(prompt string) bool

// Confirmed approves every prompt
func Confirmed(string) bool { return true }

// mutator holds what every mutation flow shares
type mutator struct {
	validator *Validator
	inflight  singleflight.Group
}

func orDefault(v *Validator) *Validator {
	if v == nil {
		return NewValidator()
	}
	return v
}

// once collapses concurrent calls carrying the same subject, method, resource
// and payload into a single execution. Submissions with different payloads
// always run separately. fn gets a context that outlives the cancellation of
// whichever caller started it, so a collapsed caller never inherits another
// request's disconnect.
func (m *mutator) once(ctx context.Context, s entities.Session, method, resource string, payload interface{}, fn func(context.Context) (Outcome, error)) (Outcome, error) {
	digest, err := payloadDigest(payload)
	if err != nil {
		return fn(ctx)
	}

	key := strings.Join([]string{s.SubjectID, s.Token, method, resource, digest}, "\x00")
	shared := context.WithoutCancel(ctx)
	v, err, _ := m.inflight.Do(key, func() (interface{}, error) {
		return fn(shared)
	})
	out, _ := v.(Outcome)
	return out, err
}

func payloadDigest(payload interface{}) (string, error) {
	if payload == nil {
		return "", nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func requireSession(s entities.Session) error {
	if !s.Authenticated() {
		return apperrors.NewAuthMissingError("please log in to continue")
	}
	return nil
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError(name + " is required")
	}
	return nil
}

func confirm(fn ConfirmFunc, prompt string) bool {
	return fn != nil && fn(prompt)
}

func placeHref(placeID string) string {
	if placeID == "" {
		return "/"
	}
	return "/place?id=" + url.QueryEscape(placeID)
}
