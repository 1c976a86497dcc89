package navservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/models"
)

type fakeResolver struct {
	mu    sync.Mutex
	cards []models.Card
}

func (f *fakeResolver) Resolve(c models.Card) {
	f.mu.Lock()
	f.cards = append(f.cards, c)
	f.mu.Unlock()
}

type event struct{ kind, id string }

type fakeNotifier struct {
	changes []event
	toasts  []event
}

func (f *fakeNotifier) PublishChange(kind, id string) { f.changes = append(f.changes, event{kind, id}) }
func (f *fakeNotifier) Toast(level, msg string)       { f.toasts = append(f.toasts, event{level, msg}) }

type fakeForgetter struct{ ids []string }

func (f *fakeForgetter) Forget(id string) { f.ids = append(f.ids, id) }

func fixture() *content.Document {
	return content.New([]models.Category{
		{ID: "tools", Title: "Tools", Cards: []models.Card{
			{ID: "gh", Name: "GitHub", URL: "https://github.com", Description: "code", Subcategory: "dev"},
		}},
		{ID: "news", Title: "News"},
	})
}

func newService(opts ...Option) (*Service, *fakeResolver, *fakeNotifier) {
	r := &fakeResolver{}
	n := &fakeNotifier{}
	opts = append([]Option{WithNotifier(n)}, opts...)
	return New(fixture(), r, opts...), r, n
}

func TestAddCard(t *testing.T) {
	svc, res, n := newService()
	card, err := svc.AddCard(context.Background(), CardInput{Name: " bing ", URL: "https://bing.com", CategoryID: "news"})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if card.Name != "bing" || card.Favicon.Letter != "B" || card.Favicon.Phase != models.FaviconUnresolved {
		t.Errorf("card = %+v", card)
	}
	c, _ := svc.Document().Category("news")
	if len(c.Cards) != 1 || c.Cards[0].ID != card.ID {
		t.Errorf("news cards = %+v", c.Cards)
	}
	if len(res.cards) != 1 || res.cards[0].ID != card.ID {
		t.Errorf("resolver calls = %+v, want exactly one for the new card", res.cards)
	}
	if len(n.changes) != 1 || n.changes[0] != (event{CardCreated, card.ID}) {
		t.Errorf("changes = %+v", n.changes)
	}
}

func TestAddCard_Validation(t *testing.T) {
	svc, res, n := newService()
	_, err := svc.AddCard(context.Background(), CardInput{Name: "  ", URL: "https://x", CategoryID: "news"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if len(res.cards) != 0 {
		t.Error("resolver must not run for rejected input")
	}
	if len(n.toasts) != 1 || n.toasts[0].kind != ToastError {
		t.Errorf("toasts = %+v, want one error toast", n.toasts)
	}
}

func TestAddCard_UnknownCategory(t *testing.T) {
	svc, res, _ := newService()
	_, err := svc.AddCard(context.Background(), CardInput{Name: "x", URL: "https://x", CategoryID: "nope"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(res.cards) != 0 {
		t.Error("resolver must not run when the card was not added")
	}
}

func TestEditCard_MovesAndKeepsSubcategory(t *testing.T) {
	svc, res, _ := newService()
	card, err := svc.EditCard(context.Background(), "gh", CardInput{
		Name: "gitHub", URL: "https://github.com/x", Description: "repos", CategoryID: "news",
	})
	if err != nil {
		t.Fatalf("EditCard: %v", err)
	}
	if card.Subcategory != "dev" {
		t.Errorf("subcategory = %q, want preserved", card.Subcategory)
	}
	if card.Favicon.Letter != "G" || card.URL != "https://github.com/x" {
		t.Errorf("card = %+v", card)
	}
	if _, cat, _ := svc.Document().Card("gh"); cat != "news" {
		t.Errorf("card category = %q, want news", cat)
	}
	if len(res.cards) != 0 {
		t.Error("edit must not re-resolve the favicon")
	}
}

func TestEditCard_UnknownTargetLeavesCard(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.EditCard(context.Background(), "gh", CardInput{Name: "Changed", URL: "https://x", CategoryID: "ghost"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	card, cat, _ := svc.Document().Card("gh")
	if cat != "tools" || card.Name != "GitHub" {
		t.Errorf("card changed despite failure: %+v in %s", card, cat)
	}
}

func TestDeleteCard(t *testing.T) {
	svc, _, n := newService()
	if err := svc.DeleteCard(context.Background(), "gh"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if _, _, ok := svc.Document().Card("gh"); ok {
		t.Error("card still present")
	}
	if err := svc.DeleteCard(context.Background(), "gh"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if len(n.toasts) != 1 || !strings.Contains(n.toasts[0].id, "GitHub") {
		t.Errorf("toasts = %+v", n.toasts)
	}
}

func TestRenameCategory(t *testing.T) {
	svc, _, _ := newService()
	if _, err := svc.RenameCategory(context.Background(), "tools", "   "); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("blank rename err = %v", err)
	}
	if c, _ := svc.Document().Category("tools"); c.Title != "Tools" {
		t.Errorf("title changed on blank rename: %q", c.Title)
	}

	c, err := svc.RenameCategory(context.Background(), "tools", " Dev Tools ")
	if err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if c.Title != "Dev Tools" {
		t.Errorf("title = %q", c.Title)
	}
	for _, e := range svc.Document().Sidebar() {
		if e.ID == "tools" && e.Label != "Dev Tools" {
			t.Errorf("sidebar label = %q, want synced", e.Label)
		}
	}
}

func TestDeleteCategory(t *testing.T) {
	f := &fakeForgetter{}
	svc, _, n := newService(WithForgetters(f))
	if err := svc.DeleteCategory(context.Background(), "tools"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	for _, e := range svc.Document().Sidebar() {
		if e.ID == "tools" {
			t.Error("sidebar entry survived")
		}
	}
	if _, _, ok := svc.Document().Card("gh"); ok {
		t.Error("contained card survived")
	}
	if len(f.ids) != 1 || f.ids[0] != "tools" {
		t.Errorf("forgotten = %v", f.ids)
	}
	last := n.changes[len(n.changes)-1]
	if last != (event{CategoryDeleted, "tools"}) {
		t.Errorf("last change = %+v", last)
	}
	if err := svc.DeleteCategory(context.Background(), "tools"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestExportCategory(t *testing.T) {
	at := time.Date(2024, time.March, 5, 9, 7, 3, 120*int(time.Millisecond), time.UTC)
	svc, _, n := newService(WithClock(func() time.Time { return at }))

	exp, err := svc.ExportCategory(context.Background(), "tools")
	if err != nil {
		t.Fatalf("ExportCategory: %v", err)
	}
	if exp.ExportTime != "2024-03-05T09:07:03.120Z" {
		t.Errorf("exportTime = %q", exp.ExportTime)
	}
	if got := exp.Filename(); got != "Tools_2024-3-5.json" {
		t.Errorf("filename = %q", got)
	}

	data, err := exp.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	cards, _ := decoded["cards"].([]any)
	if decoded["categoryName"] != "Tools" || len(cards) != 1 {
		t.Errorf("export = %s", data)
	}
	if !strings.Contains(string(data), "\n  \"categoryName\"") {
		t.Errorf("export not indented with two spaces: %s", data)
	}
	if len(n.toasts) != 1 || !strings.Contains(n.toasts[0].id, "1 sites") {
		t.Errorf("toasts = %+v", n.toasts)
	}

	if _, err := svc.ExportCategory(context.Background(), "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown export err = %v", err)
	}
}

func TestExportFilenameSanitized(t *testing.T) {
	exp := newExport(models.Category{Title: "A/B\\C"}, time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local))
	if got := exp.Filename(); got != "A-B-C_2024-12-25.json" {
		t.Errorf("filename = %q", got)
	}
	if exp.Cards == nil {
		t.Error("cards should encode as [] for an empty category")
	}
}

func TestCardOptions(t *testing.T) {
	svc, _, _ := newService()
	opts, err := svc.CardOptions(context.Background(), "gh")
	if err != nil {
		t.Fatalf("CardOptions: %v", err)
	}
	want := []models.CategoryOption{{ID: "tools", Title: "Tools", Selected: true}, {ID: "news", Title: "News"}}
	if len(opts) != len(want) {
		t.Fatalf("options = %+v", opts)
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Errorf("option %d = %+v, want %+v", i, opts[i], want[i])
		}
	}
	if _, err := svc.CardOptions(context.Background(), "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestReload(t *testing.T) {
	f := &fakeForgetter{}
	svc, res, n := newService(WithForgetters(f))
	svc.Reload([]models.Category{
		{ID: "news", Title: "Headlines", Cards: []models.Card{{ID: "hn", Name: "HN", URL: "https://news.ycombinator.com"}}},
	})

	if ids := svc.Document().CategoryIDs(); len(ids) != 1 || ids[0] != "news" {
		t.Errorf("ids = %v", ids)
	}
	if len(f.ids) != 1 || f.ids[0] != "tools" {
		t.Errorf("forgotten = %v, want [tools]", f.ids)
	}
	if len(res.cards) != 1 || res.cards[0].ID != "hn" {
		t.Errorf("resolved = %+v", res.cards)
	}
	if last := n.changes[len(n.changes)-1]; last.kind != ContentReloaded {
		t.Errorf("last change = %+v", last)
	}
}
