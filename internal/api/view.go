package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/tracker"
)

// Event types pushed by the view handlers.
const (
	eventSearchApplied = "search.applied"
	eventScrolled      = "scroll.updated"
	eventLayoutChanged = "layout.changed"
)

func (h *Handler) buildView() ViewResponse {
	cats := h.d.Service.Document().Categories()
	sv := h.d.Search.Evaluate(cats)
	active := h.d.Tracker.Active()

	out := ViewResponse{
		Active:     active,
		Term:       sv.Term,
		NoResults:  sv.NoResults,
		Matches:    sv.Matches,
		Progress:   h.d.Tracker.Progress(),
		Sidebar:    h.sidebar(cats, active),
		Categories: make([]CategoryView, len(cats)),
	}
	for i, c := range cats {
		fv := sv.Categories[i]
		cv := CategoryView{
			ID:                    c.ID,
			Title:                 c.Title,
			Subcategories:         nonNil(c.Subcategories),
			Subcategory:           fv.Subcategory,
			Visible:               fv.Visible,
			SubcategoryBarVisible: fv.SubcategoryBarVisible,
			Cards:                 make([]CardView, len(c.Cards)),
		}
		for j, card := range c.Cards {
			cv.Cards[j] = CardView{
				Card:      card,
				Visible:   fv.Cards[j].Visible,
				Clickable: card.Clickable(),
				IconURL:   iconURL(card.Favicon),
			}
		}
		out.Categories[i] = cv
	}
	return out
}

func (h *Handler) sidebar(cats []models.Category, active string) SidebarResponse {
	entries := make([]SidebarItem, len(cats))
	for i, c := range cats {
		entries[i] = SidebarItem{ID: c.ID, Label: c.Title, Active: c.ID == active}
	}
	return SidebarResponse{
		Entries: entries,
		Visible: h.d.Layout.SidebarVisible(),
		Mobile:  h.d.Layout.Mobile(),
		Active:  active,
	}
}

func iconURL(st models.FaviconState) string {
	if st.Phase != models.FaviconResolved || st.IconRef == "" {
		return ""
	}
	return "/api/icons/" + url.PathEscape(st.IconRef)
}

// View handles GET /api/view.
//
//	@Summary		Get the full render projection
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Security		BearerAuth
//	@Router			/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.buildView())
}

// Sidebar handles GET /api/sidebar.
//
//	@Summary		Get sidebar entries and visibility
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	SidebarResponse
//	@Security		BearerAuth
//	@Router			/sidebar [get]
func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	cats := h.d.Service.Document().Categories()
	writeJSON(w, http.StatusOK, h.sidebar(cats, h.d.Tracker.Active()))
}

// Search handles GET /api/search. An empty query resets the filter.
//
//	@Summary		Apply a search term immediately
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	false	"Search term"
//	@Success		200	{object}	ViewResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.searchInput.Stop()
	h.d.Search.Apply(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, h.buildView())
}

// SearchInput handles POST /api/search/input. Keystrokes are coalesced; only
// the last term within the debounce window is applied.
//
//	@Summary		Feed the search box (debounced)
//	@Tags			search
//	@Accept			json
//	@Param			body	body	SearchInputRequest	true	"Current input value"
//	@Success		202		"Accepted"
//	@Security		BearerAuth
//	@Router			/search/input [post]
func (h *Handler) SearchInput(w http.ResponseWriter, r *http.Request) {
	var req SearchInputRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.searchInput.Trigger(func() {
		v := h.d.Search.Apply(req.Q)
		h.publish(eventSearchApplied, v)
	})
	w.WriteHeader(http.StatusAccepted)
}

// SelectSubcategory handles POST /api/subcategory.
//
//	@Summary		Select a subcategory tab
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubcategoryRequest	true	"Selection"
//	@Success		200		{object}	ViewResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/subcategory [post]
func (h *Handler) SelectSubcategory(w http.ResponseWriter, r *http.Request) {
	var req SubcategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !h.d.Service.Document().HasCategory(req.CategoryID) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.d.Search.SelectSubcategory(req.CategoryID, req.Subcategory)
	writeJSON(w, http.StatusOK, h.buildView())
}

// Scroll handles POST /api/scroll. Samples are throttled; the latest sample
// in a window is the one evaluated.
//
//	@Summary		Report a scroll sample (throttled)
//	@Tags			view
//	@Accept			json
//	@Param			body	body	ScrollRequest	true	"Viewport geometry"
//	@Success		202		"Accepted"
//	@Security		BearerAuth
//	@Router			/scroll [post]
func (h *Handler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req ScrollRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.scroll.Do(func() {
		active, _ := h.d.Tracker.OnScroll(req)
		h.publish(eventScrolled, struct {
			Active   string           `json:"active"`
			Progress tracker.Progress `json:"progress"`
		}{active, h.d.Tracker.Progress()})
	})
	w.WriteHeader(http.StatusAccepted)
}

// Resize handles POST /api/layout.
//
//	@Summary		Report the viewport width (debounced)
//	@Tags			view
//	@Accept			json
//	@Param			body	body	LayoutRequest	true	"Viewport width"
//	@Success		202		"Accepted"
//	@Security		BearerAuth
//	@Router			/layout [post]
func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Width <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("width must be positive"))
		return
	}
	h.resize.Trigger(func() {
		h.d.Layout.Resize(req.Width)
		h.publish(eventLayoutChanged, map[string]bool{
			"sidebarVisible": h.d.Layout.SidebarVisible(),
			"mobile":         h.d.Layout.Mobile(),
		})
	})
	w.WriteHeader(http.StatusAccepted)
}

// ToggleSidebar handles POST /api/sidebar/toggle.
//
//	@Summary		Toggle the desktop sidebar
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	SidebarResponse
//	@Security		BearerAuth
//	@Router			/sidebar/toggle [post]
func (h *Handler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.d.Layout.Toggle()
	cats := h.d.Service.Document().Categories()
	writeJSON(w, http.StatusOK, h.sidebar(cats, h.d.Tracker.Active()))
}

// SelectCategory handles POST /api/categories/{id}/select.
//
//	@Summary		Navigate to a category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Category id or all"
//	@Success		200	{object}	SelectResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id}/select [post]
func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target, err := h.d.Tracker.OnManualSelect(id)
	if err != nil {
		writeError(w, "select category", err)
		return
	}
	writeJSON(w, http.StatusOK, SelectResponse{Active: h.d.Tracker.Active(), ScrollTo: target})
}

// Icon handles GET /api/icons/{ref}.
//
//	@Summary		Get a cached favicon
//	@Tags			icons
//	@Produce		image/png
//	@Param			ref	path	string	true	"Icon reference"
//	@Success		200	"Icon bytes"
//	@Failure		404	{object}	errResponse
//	@Router			/icons/{ref} [get]
func (h *Handler) Icon(w http.ResponseWriter, r *http.Request) {
	if h.d.Icons == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	data, contentType, err := h.d.Icons.Icon(chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, "icon", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
