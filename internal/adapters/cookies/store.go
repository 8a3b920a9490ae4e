// Package cookies is the only place that reads or writes the session cookies.
package cookies

import (
	"net/http"
	"net/url"
	"time"
)

const (
	// TokenCookie holds the API access token
	TokenCookie = "jwt_token"
	// UserCookie holds the subject identifier returned at login
	UserCookie = "user_id"
)

// Options holds the attributes applied to every cookie the store writes
type Options struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// DefaultOptions scopes cookies to the app root, secure and same-site strict
func DefaultOptions() Options {
	return Options{
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// Store reads cookies from a request and writes them to its response.
// Writes are visible to later reads on the same Store.
type Store struct {
	w    http.ResponseWriter
	r    *http.Request
	opts Options

	// pending holds values written during this request; nil marks a cleared cookie.
	pending map[string]*string
}

// New creates a cookie store for one request/response pair
func New(w http.ResponseWriter, r *http.Request, opts Options) *Store {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteStrictMode
	}
	return &Store{
		w:       w,
		r:       r,
		opts:    opts,
		pending: make(map[string]*string),
	}
}

// Get returns the named cookie value. A missing Cookie header, a missing
// pair and an empty value all report false.
func (s *Store) Get(name string) (string, bool) {
	if v, ok := s.pending[name]; ok {
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	}

	if s.r == nil {
		return "", false
	}
	c, err := s.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		value = c.Value
	}
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes a session-lived cookie
func (s *Store) Set(name, value string) {
	v := value
	s.pending[name] = &v
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     s.opts.Path,
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: s.opts.SameSite,
	})
}

// Clear expires the named cookie immediately
func (s *Store) Clear(name string) {
	s.pending[name] = nil
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     s.opts.Path,
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: s.opts.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Token returns the access token, if any
func (s *Store) Token() (string, bool) {
	return s.Get(TokenCookie)
}
