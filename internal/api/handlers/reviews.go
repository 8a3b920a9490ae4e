package handlers

import (
	"net/http"
	"net/url"

	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/ui/render"
)

func reviewInput(r *http.Request) (entities.ReviewInput, error) {
	in := entities.ReviewInput{
		Text:    formValue(r, "text"),
		PlaceID: formValue(r, "place_id"),
	}
	var err error
	in.Rating, err = formInt(r, "rating")
	return in, err
}

// CreateReview handles POST /reviews
func (h *WebHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	in, err := reviewInput(r)
	if err == nil {
		out, ferr := h.flows.Reviews.Create(r.Context(), v.session, v.api, in)
		if ferr == nil {
			h.finish(w, r, v, out, "/")
			return
		}
		err = ferr
	}
	h.fail(w, r, err, func(status int, msg string) {
		if in.PlaceID == "" {
			h.showError(w, v, status, msg)
			return
		}
		h.showPlace(w, r, v, in.PlaceID, status, msg)
	})
}

func (h *WebHandler) showReviewForm(w http.ResponseWriter, v *visit, action string, review entities.Review, status int, msg string) {
	page := h.page(v, "Update review")
	page.Error = msg
	writePage(w, status, render.Document(page,
		render.Section("review-form", "Update review", render.ReviewForm(action, "Update", review)),
	))
}

func reviewAction(placeID, reviewID string) string {
	return "/reviews/" + url.PathEscape(placeID) + "/" + url.PathEscape(reviewID) + "/update_review"
}

// UpdateReviewForm handles GET /reviews/{place_id}/{review_id}/update_review
func (h *WebHandler) UpdateReviewForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	placeID, reviewID := r.PathValue("place_id"), r.PathValue("review_id")

	review, err := v.api.GetReview(r.Context(), reviewID)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showError(w, v, status, msg) })
		return
	}
	if review.PlaceID.Empty() {
		review.PlaceID = entities.ID(placeID)
	}
	h.showReviewForm(w, v, reviewAction(placeID, reviewID), *review, http.StatusOK, "")
}

// UpdateReview handles POST /reviews/{place_id}/{review_id}/update_review
func (h *WebHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	placeID, reviewID := r.PathValue("place_id"), r.PathValue("review_id")

	in, err := reviewInput(r)
	if in.PlaceID == "" {
		in.PlaceID = placeID
	}
	if err == nil {
		out, ferr := h.flows.Reviews.Update(r.Context(), v.session, v.api, reviewID, in)
		if ferr == nil {
			h.finish(w, r, v, out, "/place?id="+url.QueryEscape(placeID))
			return
		}
		err = ferr
	}
	h.fail(w, r, err, func(status int, msg string) {
		review := entities.Review{ID: entities.ID(reviewID), Text: in.Text, Rating: in.Rating, PlaceID: entities.ID(in.PlaceID)}
		h.showReviewForm(w, v, reviewAction(placeID, reviewID), review, status, msg)
	})
}

// DeleteReviewConfirm handles GET /reviews/{id}/delete
func (h *WebHandler) DeleteReviewConfirm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	id := r.PathValue("id")
	placeID := r.URL.Query().Get("place_id")

	cancel := "/"
	if placeID != "" {
		cancel = "/place?id=" + url.QueryEscape(placeID)
	}
	form := render.Confirm("Are you sure you want to delete this review?",
		"/reviews/"+url.PathEscape(id)+"/delete",
		cancel,
		render.Hidden("place_id", placeID),
	)
	writePage(w, http.StatusOK, render.Document(h.page(v, "Delete review"), form))
}

// DeleteReview handles POST /reviews/{id}/delete
func (h *WebHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.PathValue("id")
	placeID := formValue(r, "place_id")

	back := "/"
	if placeID != "" {
		back = "/place?id=" + url.QueryEscape(placeID)
	}

	out, err := h.flows.Reviews.Delete(r.Context(), v.session, v.api, id, placeID, confirmed(r))
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) {
			if placeID == "" {
				h.showError(w, v, status, msg)
				return
			}
			h.showPlace(w, r, v, placeID, status, msg)
		})
		return
	}
	h.finish(w, r, v, out, back)
}
