package routes

import (
	"net/http"

	"github.com/zatekoja/hbnb-web/internal/api/handlers"
	"github.com/zatekoja/hbnb-web/internal/api/middleware"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	web          *handlers.WebHandler
	loginLimiter *middleware.KeyedLimiter
	metrics      *observability.Metrics
}

// NewRouter creates a new router. A nil limiter leaves login unthrottled.
func NewRouter(web *handlers.WebHandler, loginLimiter *middleware.KeyedLimiter, metrics *observability.Metrics) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		web:          web,
		loginLimiter: loginLimiter,
		metrics:      metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Listing
	r.mux.HandleFunc("GET /{$}", r.web.Index)
	r.mux.HandleFunc("GET /places/list", r.web.PlacesList)
	r.mux.HandleFunc("GET /place", r.web.PlaceDetails)

	// Session
	r.mux.HandleFunc("GET /login", r.web.LoginForm)
	var login http.Handler = http.HandlerFunc(r.web.Login)
	if r.loginLimiter != nil {
		login = middleware.Throttle(r.loginLimiter)(login)
	}
	r.mux.Handle("POST /login", login)
	r.mux.HandleFunc("POST /logout", r.web.Logout)

	// Places
	r.mux.HandleFunc("GET /register_place", r.web.RegisterPlaceForm)
	r.mux.HandleFunc("POST /register_place", r.web.RegisterPlace)
	r.mux.HandleFunc("GET /places/{id}/update_place", r.web.UpdatePlaceForm)
	r.mux.HandleFunc("POST /places/{id}/update_place", r.web.UpdatePlace)
	r.mux.HandleFunc("GET /places/{id}/delete", r.web.DeletePlaceConfirm)
	r.mux.HandleFunc("POST /places/{id}/delete", r.web.DeletePlace)
	r.mux.HandleFunc("POST /places/{id}/amenities", r.web.AddAmenity)

	// Reviews
	r.mux.HandleFunc("POST /reviews", r.web.CreateReview)
	r.mux.HandleFunc("GET /reviews/{place_id}/{review_id}/update_review", r.web.UpdateReviewForm)
	r.mux.HandleFunc("POST /reviews/{place_id}/{review_id}/update_review", r.web.UpdateReview)
	r.mux.HandleFunc("GET /reviews/{id}/delete", r.web.DeleteReviewConfirm)
	r.mux.HandleFunc("POST /reviews/{id}/delete", r.web.DeleteReview)

	// Users
	r.mux.HandleFunc("GET /register_user", r.web.RegisterUserForm)
	r.mux.HandleFunc("POST /register_user", r.web.RegisterUser)
	r.mux.HandleFunc("GET /update_user_datas", r.web.UpdateUserForm)
	r.mux.HandleFunc("POST /update_user_datas", r.web.UpdateUser)
	r.mux.HandleFunc("GET /users/{id}/delete", r.web.DeleteUserConfirm)
	r.mux.HandleFunc("POST /users/{id}/delete", r.web.DeleteUser)
	r.mux.HandleFunc("GET /{user_id}/my_account", r.web.MyAccount)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.NoStore(handler)
	handler = middleware.Compression(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	return handler
}
