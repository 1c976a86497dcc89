package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/favicon"
	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/navservice"
	"github.com/starford/navboard/internal/prefs"
	"github.com/starford/navboard/internal/search"
	"github.com/starford/navboard/internal/sse"
	"github.com/starford/navboard/internal/storage"
	"github.com/starford/navboard/internal/tracker"
)

// Event types published by the wiring layer.
const (
	EventActiveChanged  = "active.changed"
	EventFaviconUpdated = "favicon.updated"
)

// Components is the assembled navigation page. Run serves it over HTTP;
// the CLI commands drive it directly.
type Components struct {
	Config *Config
	Logger *slog.Logger

	Content     storage.Provider
	ContentFile string
	Checksum    string

	Document *content.Document
	Prefs    *prefs.Store
	Broker   *sse.Broker
	Icons    *favicon.Resolver
	Search   *search.Engine
	Tracker  *tracker.Tracker
	Layout   *prefs.Layout
	Service  *navservice.Service
}

// Build loads the bookmarks file and wires every component around it.
func Build(cfg *Config, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir, file := filepath.Split(cfg.Content.Path)
	if dir == "" {
		dir = "."
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		return nil, fmt.Errorf("init content storage: %w", err)
	}
	snap, err := content.Load(store, file)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}

	c := &Components{
		Config:      cfg,
		Logger:      logger,
		Content:     store,
		ContentFile: file,
		Checksum:    snap.Checksum,
		Document:    content.New(snap.Categories),
		Prefs:       prefs.Open(cfg.Prefs.Path, logger),
		Broker:      sse.NewBroker(0),
	}

	if err := os.MkdirAll(cfg.Favicon.CacheDir, 0o755); err != nil {
		logger.Warn("favicon cache dir unavailable", slog.String("error", err.Error()))
	}
	c.Icons = favicon.New(c.Document, favicon.NewCache(cfg.Favicon.CacheDir),
		favicon.WithSources(cfg.Favicon.Sources),
		favicon.WithTimeout(cfg.Favicon.Timeout),
		favicon.WithLogger(logger),
		favicon.WithListener(func(id string, st models.FaviconState) {
			if st.Phase == models.FaviconResolved || st.Phase == models.FaviconFallback {
				c.Broker.PublishChange(EventFaviconUpdated, id)
			}
		}),
	)

	c.Search = search.New(c.Document)
	c.Tracker = tracker.New(c.Document,
		tracker.WithConfig(cfg.TrackerOptions()),
		tracker.WithPersister(c.Prefs),
		tracker.WithLogger(logger),
		tracker.WithListener(func(active string) {
			c.Broker.Publish(sse.Event{Type: EventActiveChanged, Data: map[string]string{"active": active}})
		}),
	)
	c.Layout = prefs.NewLayout(c.Prefs, cfg.Layout.MobileBreakpoint)
	c.Service = navservice.New(c.Document, c.Icons,
		navservice.WithNotifier(c.Broker),
		navservice.WithForgetters(c.Search, c.Tracker),
		navservice.WithLogger(logger),
	)

	logger.Info("Bookmarks loaded",
		slog.String("path", cfg.Content.Path),
		slog.Int("categories", len(snap.Categories)))
	return c, nil
}

// ResolveIcons runs the favicon chain for every loaded card.
func (c *Components) ResolveIcons(ctx context.Context) error {
	var cards []models.Card
	for _, cat := range c.Document.Categories() {
		cards = append(cards, cat.Cards...)
	}
	return c.Icons.ResolveAll(ctx, cards)
}

// ExportStore returns the directory exports are written to, creating it
// when needed.
func (c *Components) ExportStore() (storage.Provider, error) {
	if err := os.MkdirAll(c.Config.Content.ExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return storage.NewFS(c.Config.Content.ExportDir)
}

// Close releases the broker and the preference store.
func (c *Components) Close() {
	c.Broker.Close()
	if err := c.Prefs.Close(); err != nil {
		c.Logger.Warn("prefs close failed", slog.String("error", err.Error()))
	}
}
