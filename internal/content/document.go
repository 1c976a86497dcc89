// Package content holds the authoritative in-memory navigation model.
package content

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/navboard/internal/models"
)

// CardFields are the user-editable fields of a card.
type CardFields struct {
	Name        string
	URL         string
	Description string
}

// Document owns every category and card on the page. All other components
// read it or mutate it through the methods below; none keeps a private copy.
//
// Mutations are serialised by a single lock, so a favicon probe finishing for
// a card that was removed meanwhile simply finds nothing to update.
type Document struct {
	mu         sync.RWMutex
	categories []*models.Category
}

// New creates a document from categories, copying them.
func New(categories []models.Category) *Document {
	d := &Document{}
	d.categories = cloneAll(categories)
	return d
}

// NewCard builds a card with a fresh id and an unresolved icon.
func NewCard(name, url, description, subcategory string) models.Card {
	return models.Card{
		ID:          uuid.NewString(),
		Name:        name,
		URL:         url,
		Description: description,
		Subcategory: subcategory,
		Favicon:     models.Unresolved(name),
	}
}

// Categories returns a snapshot of all categories in display order.
func (d *Document) Categories() []models.Category {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Category, len(d.categories))
	for i, c := range d.categories {
		out[i] = cloneCategory(c)
	}
	return out
}

// CategoryIDs returns category ids in display order.
func (d *Document) CategoryIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, len(d.categories))
	for i, c := range d.categories {
		ids[i] = c.ID
	}
	return ids
}

// Category returns a snapshot of one category.
func (d *Document) Category(id string) (models.Category, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c := d.category(id)
	if c == nil {
		return models.Category{}, false
	}
	return cloneCategory(c), true
}

// HasCategory reports whether id names an existing category.
func (d *Document) HasCategory(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.category(id) != nil
}

// Card returns a card and the id of the category that owns it.
func (d *Document) Card(id string) (models.Card, string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, i := d.findCard(id)
	if c == nil {
		return models.Card{}, "", false
	}
	return c.Cards[i], c.ID, true
}

// Sidebar returns the sidebar projection: one entry per category, same order,
// labels equal to the category titles.
func (d *Document) Sidebar() []models.SidebarEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.SidebarEntry, len(d.categories))
	for i, c := range d.categories {
		out[i] = models.SidebarEntry{ID: c.ID, Label: c.Title}
	}
	return out
}

// AddCard appends card to the category. It returns false if the category
// does not exist.
func (d *Document) AddCard(categoryID string, card models.Card) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.category(categoryID)
	if c == nil {
		return false
	}
	c.Cards = append(c.Cards, card)
	return true
}

// RemoveCard deletes a card wherever it lives.
func (d *Document) RemoveCard(cardID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, i := d.findCard(cardID)
	if c == nil {
		return false
	}
	c.Cards = slices.Delete(c.Cards, i, i+1)
	return true
}

// MoveCard detaches a card and appends it to the target category. Moving to
// an unknown category is a no-op that returns false; the card stays put.
func (d *Document) MoveCard(cardID, targetCategoryID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	target := d.category(targetCategoryID)
	if target == nil {
		return false
	}
	src, i := d.findCard(cardID)
	if src == nil {
		return false
	}
	if src == target {
		return true
	}
	card := src.Cards[i]
	src.Cards = slices.Delete(src.Cards, i, i+1)
	target.Cards = append(target.Cards, card)
	return true
}

// UpdateCard replaces the editable fields of a card in place. The fallback
// letter follows the new name.
func (d *Document) UpdateCard(cardID string, f CardFields) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, i := d.findCard(cardID)
	if c == nil {
		return false
	}
	card := &c.Cards[i]
	card.Name = f.Name
	card.URL = f.URL
	card.Description = f.Description
	card.Favicon.Letter = models.InitialLetter(f.Name)
	return true
}

// SetFavicon records a new icon state. It returns false when the card no
// longer exists.
func (d *Document) SetFavicon(cardID string, state models.FaviconState) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, i := d.findCard(cardID)
	if c == nil {
		return false
	}
	state.Letter = models.InitialLetter(c.Cards[i].Name)
	c.Cards[i].Favicon = state
	return true
}

// RenameCategory sets a new title. The sidebar label is derived from the
// title, so both change together.
func (d *Document) RenameCategory(categoryID, title string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.category(categoryID)
	if c == nil {
		return false
	}
	c.Title = title
	return true
}

// RemoveCategory deletes the category together with its cards and its
// sidebar entry. It returns the ids of the removed cards.
func (d *Document) RemoveCategory(categoryID string) ([]string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range d.categories {
		if c.ID != categoryID {
			continue
		}
		ids := make([]string, len(c.Cards))
		for j, card := range c.Cards {
			ids[j] = card.ID
		}
		d.categories = slices.Delete(d.categories, i, i+1)
		return ids, true
	}
	return nil, false
}

// Replace swaps the whole content, as a page reload would.
func (d *Document) Replace(categories []models.Category) {
	next := cloneAll(categories)
	d.mu.Lock()
	d.categories = next
	d.mu.Unlock()
}

func (d *Document) category(id string) *models.Category {
	for _, c := range d.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (d *Document) findCard(id string) (*models.Category, int) {
	for _, c := range d.categories {
		for i := range c.Cards {
			if c.Cards[i].ID == id {
				return c, i
			}
		}
	}
	return nil, -1
}

func cloneAll(in []models.Category) []*models.Category {
	out := make([]*models.Category, len(in))
	for i := range in {
		c := cloneCategory(&in[i])
		out[i] = &c
	}
	return out
}

func cloneCategory(c *models.Category) models.Category {
	out := *c
	out.Cards = slices.Clone(c.Cards)
	out.Subcategories = slices.Clone(c.Subcategories)
	if out.Cards == nil {
		out.Cards = []models.Card{}
	}
	return out
}
