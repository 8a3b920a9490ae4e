package handlers

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zatekoja/hbnb-web/internal/application/cache"
	"github.com/zatekoja/hbnb-web/internal/application/filter"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	"github.com/zatekoja/hbnb-web/internal/ui/render"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

// ViewHeader carries the page view id of a fragment response
const ViewHeader = "X-View-ID"

// placesView returns the places snapshot of viewID, fetching into a new
// view when viewID is unknown. Filtering never touches the API.
func (h *WebHandler) placesView(ctx context.Context, v *visit, viewID string) (string, []entities.Place, error) {
	log := observability.LoggerFromContext(ctx)

	if viewID != "" {
		c, found, err := h.pages.Load(ctx, viewID)
		if err != nil {
			log.Warn().Err(err).Str("view", viewID).Msg("failed to load page view")
		}
		if found && c.Has(cache.KindPlaces) {
			observability.RecordViewCacheHit(ctx, h.metrics, string(cache.KindPlaces))
			places, err := cache.Get[entities.Place](c, cache.KindPlaces)
			return viewID, places, err
		}
		observability.RecordViewCacheMiss(ctx, h.metrics, string(cache.KindPlaces))
	}

	id, c := h.pages.NewView()
	places, err := v.api.ListPlaces(ctx)
	if err != nil {
		return id, h.stalePlaces(ctx), err
	}
	if err := cache.Put(c, cache.KindPlaces, places); err != nil {
		return id, nil, err
	}
	if err := h.pages.Save(ctx, id, c); err != nil {
		// The list is still rendered; filtering will refetch.
		log.Warn().Err(err).Str("view", id).Msg("failed to save page view")
	}
	if err := h.pages.SaveLatest(ctx, c); err != nil {
		log.Warn().Err(err).Msg("failed to save latest places snapshot")
	}
	return id, places, nil
}

// stalePlaces returns the last listing fetched successfully, or nil
func (h *WebHandler) stalePlaces(ctx context.Context) []entities.Place {
	c, found, err := h.pages.Latest(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to load latest places snapshot")
	}
	if !found {
		return nil
	}
	places, err := cache.Get[entities.Place](c, cache.KindPlaces)
	if err != nil {
		return nil
	}
	return places
}

func (h *WebHandler) placeList(ctx context.Context, v *visit, places []entities.Place, f filter.Places) *html.Node {
	container := render.Container("places-list")
	res := render.Render(container, f.Apply(places), render.PlaceCard(v.session))
	if err := res.Err(); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("some places could not be rendered")
	}
	if container.FirstChild == nil {
		container.AppendChild(render.Empty("No places match."))
	}
	return container
}

// Index handles GET /. A view query parameter reuses that view's snapshot.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	q := r.URL.Query()
	f := filter.FromQuery(q)

	viewID, places, err := h.placesView(r.Context(), v, q.Get("view"))

	page := h.page(v, "Places")
	status := http.StatusOK
	if err != nil {
		// places holds the last good listing, if any, shown under the banner.
		status, page.Error, _ = failure(err)
	}

	doc := render.Document(page,
		render.Section("filters", "", render.FilterControls(viewID, f, filter.Locations(places))),
		render.Section("places", "Places", h.placeList(r.Context(), v, places, f)),
	)
	writePage(w, status, doc)
}

// PlacesList handles GET /places/list, returning only the list container
func (h *WebHandler) PlacesList(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	q := r.URL.Query()

	viewID, places, err := h.placesView(r.Context(), v, q.Get("view"))
	w.Header().Set(ViewHeader, viewID)
	if err != nil {
		status, msg, _ := failure(err)
		if places == nil {
			writePage(w, status, render.TextEl(atom.Div, msg, render.Attr("class", "error"), render.Attr("id", "places-list")))
			return
		}
		list := h.placeList(r.Context(), v, places, filter.FromQuery(q))
		list.InsertBefore(render.TextEl(atom.P, msg, render.Attr("class", "error"), render.Attr("role", "alert")), list.FirstChild)
		writePage(w, status, list)
		return
	}
	writePage(w, http.StatusOK, h.placeList(r.Context(), v, places, filter.FromQuery(q)))
}

// PlaceDetails handles GET /place?id=
func (h *WebHandler) PlaceDetails(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.URL.Query().Get("id")
	if id == "" {
		h.showError(w, v, http.StatusNotFound, "Place not found.")
		return
	}
	h.showPlace(w, r, v, id, http.StatusOK, "")
}

// showPlace renders the details page with an optional error banner
func (h *WebHandler) showPlace(w http.ResponseWriter, r *http.Request, v *visit, id string, status int, msg string) {
	ctx := r.Context()

	place, err := v.api.GetPlace(ctx, id)
	if err != nil {
		st, m, _ := failure(err)
		if apperrors.StatusOf(err) == http.StatusNotFound {
			m = "Place not found."
		}
		h.showError(w, v, st, m)
		return
	}

	page := h.page(v, place.Title)
	page.Error = msg

	viewID, c := h.pages.NewView()
	reviews, err := v.api.ListPlaceReviews(ctx, id)
	if err != nil {
		if page.Error == "" {
			_, page.Error, _ = failure(err)
		}
	} else if err := cache.Put(c, cache.KindReviews, reviews); err == nil {
		if err := h.pages.Save(ctx, viewID, c); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to save page view")
		}
	}

	reviewList := render.Container("reviews-list")
	if res := render.Render(reviewList, reviews, render.ReviewCard(v.session)); res.Err() != nil {
		observability.LoggerFromContext(ctx).Warn().Err(res.Err()).Msg("some reviews could not be rendered")
	}
	if reviewList.FirstChild == nil {
		reviewList.AppendChild(render.Empty("No reviews yet."))
	}

	amenities := render.Element(atom.Ul, render.Attr("id", "amenities"))
	for _, name := range place.Amenities {
		amenities.AppendChild(render.TextEl(atom.Li, name, render.Attr("class", "amenity")))
	}

	details := render.El(atom.Article,
		[]html.Attribute{render.Attr("class", "place-details"), render.Attr("data-id", place.ID.String())},
		render.TextEl(atom.H1, place.Title),
		render.TextEl(atom.P, place.Description, render.Attr("class", "description")),
		render.TextEl(atom.P, "Price per night: $"+render.Price(place.Price), render.Attr("class", "price")),
		render.TextEl(atom.P, place.CityID, render.Attr("class", "location")),
		render.TextEl(atom.P, place.OwnerFirstName, render.Attr("class", "owner")),
		amenities,
	)

	content := []*html.Node{details}
	if v.session.CanEdit(place.OwnerID) {
		pid := url.PathEscape(place.ID.String())
		content = append(content,
			render.El(atom.Div, []html.Attribute{render.Attr("class", "actions")},
				render.TextEl(atom.A, "Edit", render.Attr("href", "/places/"+pid+"/update_place")),
				render.TextEl(atom.A, "Delete", render.Attr("href", "/places/"+pid+"/delete")),
			),
			h.amenityForm(ctx, v, place.ID),
		)
	}
	content = append(content, render.Section("reviews", "Reviews", reviewList))
	if v.session.Authenticated() {
		content = append(content, render.Section("add-review", "Add a review",
			render.ReviewForm("/reviews", "Submit review", entities.Review{PlaceID: place.ID}),
		))
	}

	writePage(w, status, render.Document(page, content...))
}

// amenityForm suggests the known amenity names. A failed lookup only loses
// the suggestions.
func (h *WebHandler) amenityForm(ctx context.Context, v *visit, placeID entities.ID) *html.Node {
	known, err := v.api.ListAmenities(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to list amenities")
	}
	return render.AmenityForm(placeID, known)
}

func (h *WebHandler) showError(w http.ResponseWriter, v *visit, status int, msg string) {
	page := h.page(v, "Error")
	page.Error = msg
	writePage(w, status, render.Document(page, render.TextEl(atom.A, "Back to places", render.Attr("href", "/"))))
}

func placeInput(r *http.Request) (entities.PlaceInput, error) {
	in := entities.PlaceInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		CityID:      formValue(r, "city_id"),
		OwnerID:     formValue(r, "owner_id"),
	}
	var err error
	if in.Price, err = formFloat(r, "price"); err != nil {
		return in, err
	}
	if in.Latitude, err = formFloat(r, "latitude"); err != nil {
		return in, err
	}
	if in.Longitude, err = formFloat(r, "longitude"); err != nil {
		return in, err
	}
	return in, nil
}

func placeFromInput(in entities.PlaceInput) entities.Place {
	return entities.Place{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		CityID:      in.CityID,
	}
}

func (h *WebHandler) showPlaceForm(w http.ResponseWriter, v *visit, title, action, submit string, p entities.Place, status int, msg string) {
	page := h.page(v, title)
	page.Error = msg
	writePage(w, status, render.Document(page, render.Section("place-form", title, render.PlaceForm(action, submit, p))))
}

// RegisterPlaceForm handles GET /register_place
func (h *WebHandler) RegisterPlaceForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	h.showPlaceForm(w, v, "Add a listing", "/register_place", "Create", entities.Place{}, http.StatusOK, "")
}

// RegisterPlace handles POST /register_place
func (h *WebHandler) RegisterPlace(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	in, err := placeInput(r)
	if err == nil {
		out, ferr := h.flows.Places.Create(r.Context(), v.session, v.api, in)
		if ferr == nil {
			h.finish(w, r, v, out, "/")
			return
		}
		err = ferr
	}
	h.fail(w, r, err, func(status int, msg string) {
		h.showPlaceForm(w, v, "Add a listing", "/register_place", "Create", placeFromInput(in), status, msg)
	})
}

// UpdatePlaceForm handles GET /places/{id}/update_place
func (h *WebHandler) UpdatePlaceForm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	id := r.PathValue("id")
	action := "/places/" + url.PathEscape(id) + "/update_place"

	place, err := v.api.GetPlace(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showError(w, v, status, msg) })
		return
	}
	h.showPlaceForm(w, v, "Update listing", action, "Update", *place, http.StatusOK, "")
}

// UpdatePlace handles POST /places/{id}/update_place
func (h *WebHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.PathValue("id")
	action := "/places/" + url.PathEscape(id) + "/update_place"

	in, err := placeInput(r)
	if err == nil {
		out, ferr := h.flows.Places.Update(r.Context(), v.session, v.api, id, in)
		if ferr == nil {
			h.finish(w, r, v, out, "/place?id="+url.QueryEscape(id))
			return
		}
		err = ferr
	}
	h.fail(w, r, err, func(status int, msg string) {
		h.showPlaceForm(w, v, "Update listing", action, "Update", placeFromInput(in), status, msg)
	})
}

// DeletePlaceConfirm handles GET /places/{id}/delete
func (h *WebHandler) DeletePlaceConfirm(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	if !requireLogin(w, r, v) {
		return
	}
	id := r.PathValue("id")
	form := render.Confirm("Are you sure you want to delete this place?",
		"/places/"+url.PathEscape(id)+"/delete",
		"/place?id="+url.QueryEscape(id),
		render.Hidden("view", r.URL.Query().Get("view")),
	)
	writePage(w, http.StatusOK, render.Document(h.page(v, "Delete listing"), form))
}

// DeletePlace handles POST /places/{id}/delete
func (h *WebHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.PathValue("id")

	out, err := h.flows.Places.Delete(r.Context(), v.session, v.api, id, confirmed(r))
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showPlace(w, r, v, id, status, msg) })
		return
	}
	h.finish(w, r, v, out, "/place?id="+url.QueryEscape(id))
}

// AddAmenity handles POST /places/{id}/amenities
func (h *WebHandler) AddAmenity(w http.ResponseWriter, r *http.Request) {
	v := h.begin(w, r)
	id := r.PathValue("id")

	out, err := h.flows.Amenities.Add(r.Context(), v.session, v.api, id, formValue(r, "name"))
	if err != nil {
		h.fail(w, r, err, func(status int, msg string) { h.showPlace(w, r, v, id, status, msg) })
		return
	}
	h.finish(w, r, v, out, "/place?id="+url.QueryEscape(id))
}
