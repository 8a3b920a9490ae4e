package handlers

import (
	"net/http"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/ui/render"
)

func userInput(r *http.Request) entities.UserInput {
	return entities.UserInput{
		FirstName:       formValue(r, "first_name"),
		LastName:        formValue(r, "last_name"),
		Email:           formValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

func userFromInput(in entities.UserInput) entities.User {
	return entities.User{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
}

func (h *WebHandler) showUserForm(w http.ResponseWriter, v *visit, title, action string, u entities.User, create bool, status int, msg string) {
	page := h.page(v, title)
	page.Error = msg
	writePage(w, status, render.Document(page,
		render.Section("user-form", title, render.UserForm(action, title, u, create)),
	))
}

// RegisterUserForm handles GET /register_user
func (h *WebHandler) RegisterUserForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	h.showUserForm(w, v, "Add user", "/register_user", entities.User{}, true, http.StatusOK, "")
}

// RegisterUser handles POST /register_user
func (h *WebHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	in := userInput(r)

	out, err := h.flows.Users.Register(r.Context(), v.session, v.api, in)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) {
			h.showUserForm(w, v, "Add user", "/register_user", userFromInput(in), true, status, msg)
		})
		return
	}
	h.finish(w, r, v, out, "/")
}

// UpdateUserForm handles GET /update_user_datas
func (h *WebHandler) UpdateUserForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}

	user, err := v.api.GetUser(r.Context(), v.session.SubjectID)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showError(w, v, status, msg) })
		return
	}
	h.showUserForm(w, v, "Update account", "/update_user_datas", *user, false, http.StatusOK, "")
}

// UpdateUser handles POST /update_user_datas
func (h *WebHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	in := userInput(r)

	out, err := h.flows.Users.Update(r.Context(), v.session, v.api, in)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) {
			h.showUserForm(w, v, "Update account", "/update_user_datas", userFromInput(in), false, status, msg)
		})
		return
	}
	h.finish(w, r, v, out, "/")
}

// DeleteUserConfirm handles GET /users/{id}/delete
func (h *WebHandler) DeleteUserConfirm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	id := r.PathValue("id")
	form := render.Confirm("Are you sure you want to delete this account?",
		"/users/"+url.PathEscape(id)+"/delete",
		"/"+url.PathEscape(id)+"/my_account",
	)
	writePage(w, http.StatusOK, render.Document(h.page(v, "Delete account"), form))
}

// DeleteUser handles POST /users/{id}/delete
func (h *WebHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.PathValue("id")

	out, err := h.flows.Users.Delete(r.Context(), v.session, v.api, id, confirmed(r))
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showError(w, v, status, msg) })
		return
	}
	h.finish(w, r, v, out, "/"+url.PathEscape(id)+"/my_account")
}

// MyAccount handles GET /{user_id}/my_account. Only admins may look at
// another user's account; everyone else sees their own.
func (h *WebHandler) MyAccount(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	ctx := r.Context()

	userID := v.session.SubjectID
	if requested := r.PathValue("user_id"); v.session.IsAdmin && requested != "" && requested != "me" {
		userID = requested
	}

	user, err := v.api.GetUser(ctx, userID)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showError(w, v, status, msg) })
		return
	}

	page := h.page(v, "My account")

	placeList := render.Container("my-places")
	places, err := v.api.ListUserPlaces(ctx, userID)
	if err != nil {
		_, page.Error, _ = failure(err)
	}
	render.Render(placeList, places, render.PlaceCard(v.session))
	if placeList.FirstChild == nil {
		placeList.AppendChild(render.Empty("No places yet."))
	}

	reviewList := render.Container("my-reviews")
	reviews, err := h.flows.Reviews.ByUser(ctx, v.session, v.api, userID)
	if err != nil && page.Error == "" {
		_, page.Error, _ = failure(err)
	}
	render.Render(reviewList, reviews, render.ReviewCard(v.session))
	if reviewList.FirstChild == nil {
		reviewList.AppendChild(render.Empty("No reviews yet."))
	}

	uid := url.PathEscape(user.ID.String())
	profile := render.El(atom.Article, []html.Attribute{render.Attr("class", "account"), render.Attr("data-id", user.ID.String())},
		render.TextEl(atom.H1, user.FirstName+" "+user.LastName),
		render.TextEl(atom.P, user.Email, render.Attr("class", "email")),
		render.El(atom.Div, []html.Attribute{render.Attr("class", "actions")},
			render.TextEl(atom.A, "Edit account", render.Attr("href", "/update_user_datas")),
			render.TextEl(atom.A, "Delete account", render.Attr("href", "/users/"+uid+"/delete")),
		),
	)

	writePage(w, http.StatusOK, render.Document(page,
		profile,
		render.Section("places", "My places", placeList),
		render.Section("reviews", "My reviews", reviewList),
	))
}
