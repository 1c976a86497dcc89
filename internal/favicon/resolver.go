// Package favicon resolves card icons through an ordered chain of sources.
//
// Each card runs its own chain as a small state machine:
//
//	Unresolved → Probing(0) → Probing(1) → … → Resolved(ref) | Fallback(letter)
//
// A source is accepted only when it answers 200 with an image whose both
// dimensions exceed one pixel; 1×1 placeholders count as failures.
package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/navboard/internal/models"
)

const maxIconBytes = 1 << 20

// Target receives state transitions. It returns false when the card is gone,
// which ends the chain.
type Target interface {
	SetFavicon(cardID string, state models.FaviconState) bool
}

// Listener observes applied transitions.
type Listener func(cardID string, state models.FaviconState)

// Option configures a Resolver.
type Option func(*Resolver)

// WithSources overrides the ordered source templates.
func WithSources(templates []string) Option {
	return func(r *Resolver) {
		if len(templates) > 0 {
			r.templates = templates
		}
	}
}

// WithTimeout bounds a single source probe.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClient sets the HTTP client used for probes.
func WithClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithListener registers a transition observer.
func WithListener(fn Listener) Option {
	return func(r *Resolver) {
		r.listener = fn
	}
}

// Resolver runs favicon chains. Chains are independent; there is no global
// concurrency cap.
type Resolver struct {
	target    Target
	cache     *Cache
	templates []string
	timeout   time.Duration
	client    *http.Client
	logger    *slog.Logger
	listener  Listener

	wg sync.WaitGroup
}

// New creates a resolver that reports to target and stores icons in cache.
func New(target Target, cache *Cache, opts ...Option) *Resolver {
	r := &Resolver{
		target:    target,
		cache:     cache,
		templates: DefaultSources,
		timeout:   5 * time.Second,
		client:    http.DefaultClient,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve starts the chain for card in the background and returns at once.
func (r *Resolver) Resolve(card models.Card) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Run(context.Background(), card)
	}()
}

// Wait blocks until every chain started by Resolve has finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// ResolveAll runs chains for every card concurrently and waits for them.
func (r *Resolver) ResolveAll(ctx context.Context, cards []models.Card) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, card := range cards {
		g.Go(func() error {
			r.Run(gCtx, card)
			return nil
		})
	}
	return g.Wait()
}

// Run drives one card's chain to a terminal state and returns it.
func (r *Resolver) Run(ctx context.Context, card models.Card) models.FaviconState {
	fallback := models.Fallback(card.Name)

	origin, ok := Origin(card.URL)
	if !ok {
		r.apply(card.ID, fallback)
		return fallback
	}

	for i, src := range expand(r.templates, origin) {
		if !r.apply(card.ID, models.FaviconState{Phase: models.FaviconProbing, SourceIndex: i}) {
			return fallback
		}
		data, err := r.probe(ctx, src)
		if err != nil {
			r.logger.Debug("favicon: source rejected",
				slog.String("card", card.ID),
				slog.Int("source", i),
				slog.String("error", err.Error()))
			continue
		}
		ref, err := r.cache.Put(data)
		if err != nil {
			r.logger.Warn("favicon: cache failed", slog.String("card", card.ID), slog.String("error", err.Error()))
			continue
		}
		resolved := models.FaviconState{Phase: models.FaviconResolved, IconRef: ref}
		r.apply(card.ID, resolved)
		resolved.Letter = fallback.Letter
		return resolved
	}

	r.apply(card.ID, fallback)
	return fallback
}

// Icon returns a cached icon by reference.
func (r *Resolver) Icon(ref string) ([]byte, string, error) {
	return r.cache.Get(ref)
}

func (r *Resolver) apply(cardID string, state models.FaviconState) bool {
	if !r.target.SetFavicon(cardID, state) {
		return false
	}
	if r.listener != nil {
		r.listener(cardID, state)
	}
	return true
}

// probe fetches one source and validates it as a usable icon.
func (r *Resolver) probe(ctx context.Context, src string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxIconBytes {
		return nil, errors.New("icon too large")
	}
	w, h, err := dimensions(data)
	if err != nil {
		return nil, err
	}
	if w <= 1 || h <= 1 {
		return nil, fmt.Errorf("placeholder image %dx%d", w, h)
	}
	return data, nil
}
