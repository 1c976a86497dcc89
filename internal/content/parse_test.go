package content

import (
	"errors"
	"testing"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/models"
)

func TestParse_DerivesIDs(t *testing.T) {
	input := []byte(`
categories:
  - title: Dev Tools
    cards:
      - name: github
        url: https://github.com
        description: code hosting
        subcategory: git
  - title: Dev Tools
  - id: search
    title: Search Engines
`)
	cats, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("len = %d, want 3", len(cats))
	}
	if cats[0].ID != "dev-tools" || cats[1].ID != "dev-tools-2" || cats[2].ID != "search" {
		t.Errorf("ids = %q %q %q", cats[0].ID, cats[1].ID, cats[2].ID)
	}
	card := cats[0].Cards[0]
	if card.ID == "" {
		t.Error("card id should be assigned")
	}
	if card.Favicon.Phase != models.FaviconUnresolved || card.Favicon.Letter != "G" {
		t.Errorf("favicon = %+v", card.Favicon)
	}
	if len(cats[0].Subcategories) != 1 || cats[0].Subcategories[0] != "git" {
		t.Errorf("subcategories = %v", cats[0].Subcategories)
	}
}

func TestParse_DuplicateExplicitID(t *testing.T) {
	input := []byte(`
categories:
  - id: x
    title: One
  - id: x
    title: Two
`)
	_, err := Parse(input)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestParse_TitleRequired(t *testing.T) {
	_, err := Parse([]byte("categories:\n  - title: '  '\n"))
	if err == nil {
		t.Fatal("expected validation error for blank title")
	}
}

func TestParse_AllIsReserved(t *testing.T) {
	cats, err := Parse([]byte("categories:\n  - title: All\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cats[0].ID == models.AllCategories {
		t.Errorf("derived id collides with sentinel")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Dev Tools":     "dev-tools",
		"  AI / ML  ":   "ai-ml",
		"常用工具":          "常用工具",
		"!!!":           "category",
		"Design&Assets": "design-assets",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
