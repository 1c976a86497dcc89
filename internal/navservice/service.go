// Package navservice applies card and category mutations to the content
// document and keeps the dependent views in step with it.
package navservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/models"
)

// Change kinds published after a mutation.
const (
	CardCreated     = "card.created"
	CardUpdated     = "card.updated"
	CardDeleted     = "card.deleted"
	CategoryUpdated = "category.updated"
	CategoryDeleted = "category.deleted"
	ContentReloaded = "content.reloaded"
)

// Toast levels.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Resolver starts favicon resolution for a new card.
type Resolver interface {
	Resolve(card models.Card)
}

// Notifier receives change and toast notifications.
type Notifier interface {
	PublishChange(kind, id string)
	Toast(level, message string)
}

// Forgetter drops per-category state held outside the document.
type Forgetter interface {
	Forget(categoryID string)
}

// CardInput is the data collected by the add/edit dialog.
type CardInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
}

func (in *CardInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
}

// Validate checks the required dialog fields.
func (in CardInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.URL, validation.Required),
		validation.Field(&in.CategoryID, validation.Required),
	)
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the change and toast sink.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notify = n
	}
}

// WithForgetters registers components that keep per-category state.
func WithForgetters(f ...Forgetter) Option {
	return func(s *Service) {
		s.forgetters = append(s.forgetters, f...)
	}
}

// WithClock overrides the time source used for exports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// Service coordinates document mutations.
type Service struct {
	doc        *content.Document
	resolver   Resolver
	notify     Notifier
	forgetters []Forgetter
	now        func() time.Time
	logger     *slog.Logger
}

// New creates a service over doc. resolver may be nil, in which case new
// cards keep their letter placeholder.
func New(doc *content.Document, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		doc:      doc,
		resolver: resolver,
		notify:   nopNotifier{},
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the document the service mutates.
func (s *Service) Document() *content.Document {
	return s.doc
}

// AddCard appends a new card to the chosen category and starts resolving
// its favicon.
func (s *Service) AddCard(_ context.Context, in CardInput) (models.Card, error) {
	in.normalize()
	if err := s.validate(in); err != nil {
		return models.Card{}, err
	}
	card := content.NewCard(in.Name, in.URL, in.Description, "")
	if !s.doc.AddCard(in.CategoryID, card) {
		return models.Card{}, fmt.Errorf("category %q: %w", in.CategoryID, apperr.ErrNotFound)
	}
	if s.resolver != nil {
		s.resolver.Resolve(card)
	}
	s.logger.Info("card added", slog.String("id", card.ID), slog.String("category", in.CategoryID))
	s.notify.PublishChange(CardCreated, card.ID)
	s.notify.Toast(ToastSuccess, fmt.Sprintf("%q added", card.Name))
	return card, nil
}

// EditCard updates a card's fields in place and moves it when a different
// category is chosen. The favicon is not re-resolved.
func (s *Service) EditCard(_ context.Context, id string, in CardInput) (models.Card, error) {
	in.normalize()
	if err := s.validate(in); err != nil {
		return models.Card{}, err
	}
	_, current, ok := s.doc.Card(id)
	if !ok {
		return models.Card{}, fmt.Errorf("card %q: %w", id, apperr.ErrNotFound)
	}
	if in.CategoryID != current && !s.doc.HasCategory(in.CategoryID) {
		return models.Card{}, fmt.Errorf("category %q: %w", in.CategoryID, apperr.ErrNotFound)
	}
	if !s.doc.UpdateCard(id, content.CardFields{Name: in.Name, URL: in.URL, Description: in.Description}) {
		return models.Card{}, fmt.Errorf("card %q: %w", id, apperr.ErrNotFound)
	}
	if in.CategoryID != current {
		s.doc.MoveCard(id, in.CategoryID)
	}
	card, _, ok := s.doc.Card(id)
	if !ok {
		return models.Card{}, fmt.Errorf("card %q: %w", id, apperr.ErrNotFound)
	}
	s.notify.PublishChange(CardUpdated, id)
	s.notify.Toast(ToastSuccess, "Site updated")
	return card, nil
}

// DeleteCard removes a card. An in-flight favicon chain for it becomes a
// no-op.
func (s *Service) DeleteCard(_ context.Context, id string) error {
	card, _, ok := s.doc.Card(id)
	if !ok || !s.doc.RemoveCard(id) {
		return fmt.Errorf("card %q: %w", id, apperr.ErrNotFound)
	}
	s.notify.PublishChange(CardDeleted, id)
	s.notify.Toast(ToastSuccess, fmt.Sprintf("%q deleted", card.Name))
	return nil
}

// RenameCategory changes a category title. Blank titles are rejected without
// touching the document.
func (s *Service) RenameCategory(_ context.Context, id, title string) (models.Category, error) {
	title = strings.TrimSpace(title)
	if err := validation.Validate(title, validation.Required); err != nil {
		return models.Category{}, fmt.Errorf("%w: title %v", apperr.ErrInvalid, err)
	}
	if !s.doc.RenameCategory(id, title) {
		return models.Category{}, fmt.Errorf("category %q: %w", id, apperr.ErrNotFound)
	}
	c, _ := s.doc.Category(id)
	s.notify.PublishChange(CategoryUpdated, id)
	s.notify.Toast(ToastSuccess, "Title updated")
	return c, nil
}

// DeleteCategory removes a category with all of its cards and its sidebar
// entry, then clears state other components hold for it.
func (s *Service) DeleteCategory(_ context.Context, id string) error {
	removed, ok := s.doc.RemoveCategory(id)
	if !ok {
		return fmt.Errorf("category %q: %w", id, apperr.ErrNotFound)
	}
	for _, f := range s.forgetters {
		f.Forget(id)
	}
	s.logger.Info("category deleted", slog.String("id", id), slog.Int("cards", len(removed)))
	for _, cardID := range removed {
		s.notify.PublishChange(CardDeleted, cardID)
	}
	s.notify.PublishChange(CategoryDeleted, id)
	s.notify.Toast(ToastSuccess, "Category deleted")
	return nil
}

// Reload replaces the whole document, as a page reload would. State held
// for categories that no longer exist is dropped and every card's favicon
// is resolved again.
func (s *Service) Reload(categories []models.Category) {
	before := s.doc.CategoryIDs()
	s.doc.Replace(categories)

	kept := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		kept[c.ID] = struct{}{}
	}
	for _, id := range before {
		if _, ok := kept[id]; ok {
			continue
		}
		for _, f := range s.forgetters {
			f.Forget(id)
		}
	}
	if s.resolver != nil {
		for _, c := range s.doc.Categories() {
			for _, card := range c.Cards {
				s.resolver.Resolve(card)
			}
		}
	}
	s.notify.PublishChange(ContentReloaded, "")
}

// ExportCategory snapshots every card of a category regardless of the
// current filter state.
func (s *Service) ExportCategory(_ context.Context, id string) (*Export, error) {
	c, ok := s.doc.Category(id)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", id, apperr.ErrNotFound)
	}
	exp := newExport(c, s.now())
	s.notify.Toast(ToastSuccess, fmt.Sprintf("Exported %q (%d sites)", exp.CategoryName, len(exp.Cards)))
	return exp, nil
}

// CategoryOptions lists all categories with selected pre-selected, as the
// add dialog shows them.
func (s *Service) CategoryOptions(selected string) []models.CategoryOption {
	cats := s.doc.Categories()
	out := make([]models.CategoryOption, len(cats))
	for i, c := range cats {
		out[i] = models.CategoryOption{ID: c.ID, Title: c.Title, Selected: c.ID == selected}
	}
	return out
}

// CardOptions lists all categories with the card's own category selected.
func (s *Service) CardOptions(_ context.Context, cardID string) ([]models.CategoryOption, error) {
	_, categoryID, ok := s.doc.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("card %q: %w", cardID, apperr.ErrNotFound)
	}
	return s.CategoryOptions(categoryID), nil
}

func (s *Service) validate(in CardInput) error {
	if err := in.Validate(); err != nil {
		s.notify.Toast(ToastError, "Name and URL are required")
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	return nil
}

type nopNotifier struct{}

func (nopNotifier) PublishChange(string, string) {}
func (nopNotifier) Toast(string, string)         {}
