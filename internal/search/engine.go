// Package search computes card and category visibility from the active
// search term and the per-category subcategory selection.
//
// Visibility is never stored: it is a pure function of the content and the
// two filter states, evaluated on every read. Applying a term therefore
// always starts from the full set, and clearing it restores the previous
// picture exactly.
package search

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/starford/navboard/internal/models"
)

// AllSubcategories selects every card of a category.
const AllSubcategories = "all"

// Source provides the current content.
type Source interface {
	Categories() []models.Category
}

// CardView is the visibility of one card.
type CardView struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// CategoryView is the visibility of one category section.
type CategoryView struct {
	ID                    string     `json:"id"`
	Visible               bool       `json:"visible"`
	SubcategoryBarVisible bool       `json:"subcategory_bar_visible"`
	Subcategory           string     `json:"subcategory"`
	Cards                 []CardView `json:"cards"`
}

// View is the filter result across the whole document.
type View struct {
	Term       string         `json:"term"`
	Active     bool           `json:"active"`
	Matches    int            `json:"matches"`
	NoResults  bool           `json:"no_results"`
	Categories []CategoryView `json:"categories"`
}

// CardVisible reports the visibility of card id, and whether it exists.
func (v View) CardVisible(id string) (bool, bool) {
	for _, c := range v.Categories {
		for _, card := range c.Cards {
			if card.ID == id {
				return card.Visible, true
			}
		}
	}
	return false, false
}

// Engine holds the process-wide search term and subcategory selections.
type Engine struct {
	src Source

	mu          sync.RWMutex
	term        string
	subcategory map[string]string
}

// New creates an engine over src with no filter applied.
func New(src Source) *Engine {
	return &Engine{src: src, subcategory: make(map[string]string)}
}

// Normalize trims and case-folds a term.
func Normalize(term string) string {
	return cases.Fold().String(strings.TrimSpace(term))
}

// Apply sets the search term and returns the resulting view. An empty term
// after normalisation resets the filter.
func (e *Engine) Apply(term string) View {
	e.mu.Lock()
	e.term = Normalize(term)
	e.mu.Unlock()
	return e.View()
}

// Reset clears the search term.
func (e *Engine) Reset() View {
	return e.Apply("")
}

// Term returns the normalised active term.
func (e *Engine) Term() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term
}

// SelectSubcategory narrows one category to a subcategory tag. "all" or an
// empty tag clears the selection.
func (e *Engine) SelectSubcategory(categoryID, tag string) View {
	e.mu.Lock()
	if tag == "" || tag == AllSubcategories {
		delete(e.subcategory, categoryID)
	} else {
		e.subcategory[categoryID] = tag
	}
	e.mu.Unlock()
	return e.View()
}

// Forget drops filter state kept for a removed category.
func (e *Engine) Forget(categoryID string) {
	e.mu.Lock()
	delete(e.subcategory, categoryID)
	e.mu.Unlock()
}

// Matches reports whether card passes the term alone.
func Matches(card models.Card, normalizedTerm string) bool {
	if normalizedTerm == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(card.Name), normalizedTerm) ||
		strings.Contains(fold.String(card.Description), normalizedTerm)
}

// View evaluates visibility for the current content and filters.
func (e *Engine) View() View {
	return e.Evaluate(e.src.Categories())
}

// Evaluate computes visibility of cats under the current filters. Callers
// that render a snapshot pass it here so both agree on the card set.
func (e *Engine) Evaluate(cats []models.Category) View {
	e.mu.RLock()
	term := e.term
	selected := make(map[string]string, len(e.subcategory))
	for k, v := range e.subcategory {
		selected[k] = v
	}
	e.mu.RUnlock()

	v := View{Term: term, Active: term != "", Categories: make([]CategoryView, 0, len(cats))}
	for _, c := range cats {
		sub := selected[c.ID]
		cv := CategoryView{ID: c.ID, Subcategory: sub, Cards: make([]CardView, 0, len(c.Cards))}
		if cv.Subcategory == "" {
			cv.Subcategory = AllSubcategories
		}
		visible := 0
		for _, card := range c.Cards {
			ok := Matches(card, term) && (sub == "" || card.Subcategory == sub)
			if ok {
				visible++
			}
			cv.Cards = append(cv.Cards, CardView{ID: card.ID, Visible: ok})
		}
		v.Matches += visible
		cv.Visible = !v.Active || visible > 0
		cv.SubcategoryBarVisible = cv.Visible && len(c.Subcategories) > 0
		v.Categories = append(v.Categories, cv)
	}
	v.NoResults = v.Active && v.Matches == 0
	return v
}
