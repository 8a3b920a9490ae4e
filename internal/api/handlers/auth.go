package handlers

import (
	"net/http"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/ui/render"
)

func (h *WebHandler) showLogin(w http.ResponseWriter, v *visit, email string, status int, msg string) {
	page := h.page(v, "Login")
	page.Error = msg
	writePage(w, status, render.Document(page, render.Section("login", "Login", render.LoginForm(email))))
}

// LoginForm handles GET /login
func (h *WebHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if v.session.Authenticated() {
		redirect(w, r, "/")
		return
	}
	h.showLogin(w, v, "", http.StatusOK, "")
}

// Login handles POST /login
func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	creds := entities.Credentials{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}

	out, err := h.flows.Auth.Login(r.Context(), v.jar, v.api, creds)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) {
			h.showLogin(w, v, creds.Email, status, msg)
		})
		return
	}
	h.refresh(r.Context(), v)
	h.finish(w, r, v, out, "/")
}

// Logout handles POST /logout
func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	out := h.flows.Auth.Logout(r.Context(), v.session, v.jar, v.api)
	h.finish(w, r, v, out, "/")
}
