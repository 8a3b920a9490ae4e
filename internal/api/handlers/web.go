package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/zatekoja/hbnb-web/internal/adapters/cookies"
	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/application/services"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/clients/hbnbapi"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	"github.com/zatekoja/hbnb-web/internal/ui/render"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

const unavailableMessage = "The service is unavailable, please try again later."

// Flows groups the mutation flows used by the web handler
type Flows struct {
	Auth      *services.AuthFlows
	Places    *services.PlaceFlows
	Reviews   *services.ReviewFlows
	Users     *services.UserFlows
	Amenities *services.AmenityFlows
}

// DefaultFlows builds every flow around a shared validator
func DefaultFlows() Flows {
	v := services.NewValidator()
	return Flows{
		Auth:      services.NewAuthFlows(v),
		Places:    services.NewPlaceFlows(v),
		Reviews:   services.NewReviewFlows(v),
		Users:     services.NewUserFlows(v),
		Amenities: services.NewAmenityFlows(v),
	}
}

// WebHandler serves the HBnB pages and form submissions
type WebHandler struct {
	client   *hbnbapi.HTTPClient
	pages    *cache.PageStore
	sessions *services.SessionService
	nav      *services.NavGate
	flows    Flows
	cookies  cookies.Options
	metrics  *observability.Metrics
}

// NewWebHandler creates a new web handler
func NewWebHandler(
	client *hbnbapi.HTTPClient,
	pages *cache.PageStore,
	flows Flows,
	cookieOpts cookies.Options,
	metrics *observability.Metrics,
) *WebHandler {
	return &WebHandler{
		client:   client,
		pages:    pages,
		sessions: services.NewSessionService(),
		nav:      services.NewNavGate(),
		flows:    flows,
		cookies:  cookieOpts,
		metrics:  metrics,
	}
}

// visit is the per-request state shared by every page
type visit struct {
	jar     *cookies.Store
	session entities.Session
	api     *hbnbapi.HTTPClient
}

func (h *WebHandler) begin(w http.ResponseWriter, r *http.Request) *visit {
	jar := cookies.New(w, r, h.cookies)
	v := &visit{
		jar:     jar,
		session: h.sessions.Current(r.Context(), jar),
	}
	v.api = h.client.WithTokens(v)
	return v
}

// Token supplies the session's bearer credential. A cookie that did not
// yield a session is never sent.
func (v *visit) Token() (string, bool) {
	return v.session.Token, v.session.Authenticated()
}

// refresh re-reads the session after the jar changed
func (h *WebHandler) refresh(ctx context.Context, v *visit) {
	v.session = h.sessions.Current(ctx, v.jar)
}

func (h *WebHandler) page(v *visit, title string) render.Page {
	return render.Page{Title: title + " - HBnB", Nav: h.nav.Links(v.session)}
}

func writePage(w http.ResponseWriter, status int, doc *html.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.Write(w, doc); err != nil {
		return
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// failure maps a flow error onto a response status and the message shown
// to the viewer. ok is false when the viewer must be sent to login instead.
func failure(err error) (status int, msg string, ok bool) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeAuthMissing:
		return http.StatusSeeOther, "", false
	case apperrors.ErrorTypeValidation:
		return http.StatusUnprocessableEntity, apperrors.MessageOf(err), true
	case apperrors.ErrorTypeExternal:
		status = apperrors.StatusOf(err)
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, apperrors.MessageOf(err), true
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound, apperrors.MessageOf(err), true
	case apperrors.ErrorTypeTransport, apperrors.ErrorTypeDecode:
		return http.StatusBadGateway, unavailableMessage, true
	default:
		return http.StatusInternalServerError, "Something went wrong.", true
	}
}

// fail resolves err at the flow boundary: missing credentials go to login,
// anything else re-renders through show.
func (h *WebHandler) fail(w http.ResponseWriter, r *http.Request, err error, show func(status int, msg string)) {
	status, msg, ok := failure(err)
	if !ok {
		redirect(w, r, "/login")
		return
	}
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	show(status, msg)
}

// finish applies a successful outcome. fallback is used when the flow was
// cancelled and produced no redirect.
func (h *WebHandler) finish(w http.ResponseWriter, r *http.Request, v *visit, out services.Outcome, fallback string) {
	if out.SignOut {
		v.jar.Clear(cookies.TokenCookie)
		v.jar.Clear(cookies.UserCookie)
	}
	if out.Refresh != "" {
		if viewID := r.PostFormValue("view"); viewID != "" {
			if err := h.pages.Discard(r.Context(), viewID); err != nil {
				observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("failed to discard page view")
			}
		}
	}
	if out.Message != "" {
		observability.LoggerFromContext(r.Context()).Info().
			Str("user_id", v.session.SubjectID).
			Str("refresh", string(out.Refresh)).
			Msg(out.Message)
	}

	to := out.Redirect
	if to == "" {
		to = fallback
	}
	redirect(w, r, to)
}

// requireLogin redirects anonymous viewers to the login page
func requireLogin(w http.ResponseWriter, r *http.Request, v *visit) bool {
	if v.session.Authenticated() {
		return true
	}
	redirect(w, r, "/login")
	return false
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formFloat reads an optional number. Blank reads as zero.
func formFloat(r *http.Request, key string) (float64, error) {
	raw := formValue(r, key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(strings.ReplaceAll(key, "_", " ") + " must be a number")
	}
	return v, nil
}

func formInt(r *http.Request, key string) (int, error) {
	raw := formValue(r, key)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(strings.ReplaceAll(key, "_", " ") + " must be a whole number")
	}
	return v, nil
}

func confirmed(r *http.Request) services.ConfirmFunc {
	ok := r.PostFormValue("confirm") == "yes"
	return func(string) bool { return ok }
}
