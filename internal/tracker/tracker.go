// Package tracker maps the reported scroll position to the single active
// category and handles explicit navigation to a category.
package tracker

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/models"
)

// Source lists category ids in document order.
type Source interface {
	CategoryIDs() []string
}

// Persister stores the last explicitly selected category.
type Persister interface {
	SetLastCategory(id string)
}

// Section is the document-relative top edge of one category section.
type Section struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// Viewport is one scroll sample. Sections, when present, replace the
// geometry recorded so far.
type Viewport struct {
	ScrollTop    float64   `json:"scrollTop"`
	HeaderHeight float64   `json:"headerHeight"`
	ScrollHeight float64   `json:"scrollHeight"`
	ClientHeight float64   `json:"clientHeight"`
	Sections     []Section `json:"sections,omitempty"`
}

// Progress is the back-to-top indicator state.
type Progress struct {
	Ratio            float64 `json:"ratio"`
	BackToTopVisible bool    `json:"backToTopVisible"`
}

// ScrollTarget is where the client should scroll after a manual selection.
// Known is false when no geometry has been reported for the section.
type ScrollTarget struct {
	Top   float64 `json:"top"`
	Known bool    `json:"known"`
}

// Config holds the layout constants used by the detector.
type Config struct {
	HeaderHeight       float64
	Lookahead          float64
	TopThreshold       float64
	SelectMargin       float64
	BackToTopThreshold float64
}

// DefaultConfig returns the stock page layout constants.
func DefaultConfig() Config {
	return Config{
		HeaderHeight:       60,
		Lookahead:          100,
		TopThreshold:       200,
		SelectMargin:       20,
		BackToTopThreshold: 300,
	}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithConfig overrides the layout constants.
func WithConfig(c Config) Option {
	return func(t *Tracker) {
		t.cfg = c
	}
}

// WithPersister records manual selections.
func WithPersister(p Persister) Option {
	return func(t *Tracker) {
		t.store = p
	}
}

// WithListener is called after the active category changes.
func WithListener(fn func(active string)) Option {
	return func(t *Tracker) {
		t.listener = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// Tracker holds the active category. The initial state is "all".
type Tracker struct {
	src      Source
	cfg      Config
	store    Persister
	listener func(string)
	logger   *slog.Logger

	mu       sync.Mutex
	active   string
	tops     map[string]float64
	header   float64
	progress Progress
}

// New creates a tracker over the categories of src.
func New(src Source, opts ...Option) *Tracker {
	t := &Tracker{
		src:    src,
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		active: models.AllCategories,
		tops:   make(map[string]float64),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.header = t.cfg.HeaderHeight
	return t
}

// Geometry replaces the recorded section tops.
func (t *Tracker) Geometry(sections []Section) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setGeometry(sections)
}

func (t *Tracker) setGeometry(sections []Section) {
	t.tops = make(map[string]float64, len(sections))
	for _, s := range sections {
		t.tops[s.ID] = s.Top
	}
}

// OnScroll recomputes the active category from v. It returns the active
// category and whether it changed.
func (t *Tracker) OnScroll(v Viewport) (string, bool) {
	ids := t.src.CategoryIDs()

	t.mu.Lock()
	if v.Sections != nil {
		t.setGeometry(v.Sections)
	}
	if v.HeaderHeight > 0 {
		t.header = v.HeaderHeight
	}
	t.progress = t.computeProgress(v)

	winner := models.AllCategories
	if v.ScrollTop >= t.cfg.TopThreshold {
		center := v.ScrollTop + t.header + t.cfg.Lookahead
		for _, id := range ids {
			top, ok := t.tops[id]
			if ok && center >= top {
				winner = id
			}
		}
	}
	changed := t.setActive(winner, ids)
	active := t.active
	t.mu.Unlock()

	if changed {
		t.notify(active)
	}
	return active, changed
}

// OnManualSelect makes id active, persists it and returns the scroll target
// that puts the section just below the header.
func (t *Tracker) OnManualSelect(id string) (ScrollTarget, error) {
	ids := t.src.CategoryIDs()
	if id != models.AllCategories && !slices.Contains(ids, id) {
		return ScrollTarget{}, fmt.Errorf("category %q: %w", id, apperr.ErrNotFound)
	}

	t.mu.Lock()
	changed := t.setActive(id, ids)
	target := ScrollTarget{Known: true}
	if id != models.AllCategories {
		top, ok := t.tops[id]
		target = ScrollTarget{Top: max(top-t.header-t.cfg.SelectMargin, 0), Known: ok}
	}
	t.mu.Unlock()

	if t.store != nil {
		t.store.SetLastCategory(id)
	}
	if changed {
		t.notify(id)
	}
	return target, nil
}

// Active returns the active category, falling back to "all" when the
// category no longer exists.
func (t *Tracker) Active() string {
	ids := t.src.CategoryIDs()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != models.AllCategories && !slices.Contains(ids, t.active) {
		t.active = models.AllCategories
	}
	return t.active
}

// Progress returns the indicator state from the last scroll sample.
func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Forget drops geometry for a removed category and resets the active
// category if it pointed there.
func (t *Tracker) Forget(id string) {
	t.mu.Lock()
	delete(t.tops, id)
	changed := false
	if t.active == id {
		t.active = models.AllCategories
		changed = true
	}
	t.mu.Unlock()
	if changed {
		t.notify(models.AllCategories)
	}
}

// setActive must be called with mu held.
func (t *Tracker) setActive(id string, ids []string) bool {
	if id != models.AllCategories && !slices.Contains(ids, id) {
		id = models.AllCategories
	}
	if id == t.active {
		return false
	}
	t.active = id
	return true
}

func (t *Tracker) computeProgress(v Viewport) Progress {
	p := Progress{BackToTopVisible: v.ScrollTop > t.cfg.BackToTopThreshold}
	if d := v.ScrollHeight - v.ClientHeight; d > 0 {
		p.Ratio = min(max(v.ScrollTop/d, 0), 1)
	}
	return p
}

func (t *Tracker) notify(active string) {
	t.logger.Debug("tracker: active category changed", slog.String("active", active))
	if t.listener != nil {
		t.listener(active)
	}
}
