package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/navboard/internal/navservice"
	"github.com/starford/navboard/internal/prefs"
	"github.com/starford/navboard/internal/search"
	"github.com/starford/navboard/internal/sse"
	"github.com/starford/navboard/internal/timing"
	"github.com/starford/navboard/internal/tracker"
)

// IconSource serves cached favicon bytes.
type IconSource interface {
	Icon(ref string) ([]byte, string, error)
}

// Publisher pushes events to connected clients.
type Publisher interface {
	Publish(event sse.Event)
}

// Deps are the components the handlers drive.
type Deps struct {
	Service *navservice.Service
	Search  *search.Engine
	Tracker *tracker.Tracker
	Layout  *prefs.Layout
	Icons   IconSource
	Events  Publisher

	SearchDebounce time.Duration
	ScrollThrottle time.Duration
	ResizeDebounce time.Duration
}

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(d Deps, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(d)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Render projection.
	r.Get("/view", h.View)
	r.Get("/sidebar", h.Sidebar)

	// Filters.
	r.Get("/search", h.Search)
	r.Post("/search/input", h.SearchInput)
	r.Post("/subcategory", h.SelectSubcategory)

	// Scroll and layout.
	r.Post("/scroll", h.Scroll)
	r.Post("/layout", h.Resize)
	r.Post("/sidebar/toggle", h.ToggleSidebar)

	// Categories.
	r.Post("/categories/{id}/select", h.SelectCategory)
	r.Put("/categories/{id}", h.RenameCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)
	r.Get("/categories/{id}/export", h.ExportCategory)
	r.Get("/categories/{id}/options", h.CategoryOptions)

	// Cards.
	r.Post("/cards", h.AddCard)
	r.Put("/cards/{id}", h.EditCard)
	r.Delete("/cards/{id}", h.DeleteCard)
	r.Get("/cards/{id}/options", h.CardOptions)

	// Icons.
	r.Get("/icons/{ref}", h.Icon)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

// Handler holds API route handlers.
type Handler struct {
	d Deps

	searchInput *timing.Debouncer
	scroll      *timing.Throttler
	resize      *timing.Debouncer
}

// NewHandler creates a new Handler.
func NewHandler(d Deps) *Handler {
	if d.SearchDebounce <= 0 {
		d.SearchDebounce = 200 * time.Millisecond
	}
	if d.ScrollThrottle <= 0 {
		d.ScrollThrottle = 100 * time.Millisecond
	}
	if d.ResizeDebounce <= 0 {
		d.ResizeDebounce = 250 * time.Millisecond
	}
	return &Handler{
		d:           d,
		searchInput: timing.NewDebouncer(d.SearchDebounce),
		scroll:      timing.NewThrottler(d.ScrollThrottle),
		resize:      timing.NewDebouncer(d.ResizeDebounce),
	}
}

func (h *Handler) publish(typ string, data any) {
	if h.d.Events != nil {
		h.d.Events.Publish(sse.Event{Type: typ, Data: data})
	}
}
