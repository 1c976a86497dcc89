package content

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/models"
)

// File is the on-disk bookmarks layout.
type File struct {
	Categories []FileCategory `yaml:"categories"`
}

// FileCategory is one category as written in the bookmarks file.
type FileCategory struct {
	ID            string     `yaml:"id"`
	Title         string     `yaml:"title"`
	Subcategories []string   `yaml:"subcategories"`
	Cards         []FileCard `yaml:"cards"`
}

// Validate validates the category entry.
func (c FileCategory) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
	)
}

// FileCard is one card as written in the bookmarks file.
type FileCard struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Subcategory string `yaml:"subcategory"`
}

// Parse decodes a bookmarks file into categories. Category ids are taken
// from the file when given, otherwise derived once from the title.
func Parse(data []byte) ([]models.Category, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}

	taken := map[string]struct{}{models.AllCategories: {}}
	for _, fc := range f.Categories {
		if fc.ID == "" {
			continue
		}
		if _, dup := taken[fc.ID]; dup {
			return nil, fmt.Errorf("content: category id %q: %w", fc.ID, apperr.ErrAlreadyExists)
		}
		taken[fc.ID] = struct{}{}
	}

	out := make([]models.Category, 0, len(f.Categories))
	for i, fc := range f.Categories {
		fc.Title = strings.TrimSpace(fc.Title)
		if err := fc.Validate(); err != nil {
			return nil, fmt.Errorf("content: category #%d: %w", i+1, err)
		}
		id := fc.ID
		if id == "" {
			id = uniqueID(Slug(fc.Title), taken)
			taken[id] = struct{}{}
		}

		cat := models.Category{
			ID:            id,
			Title:         fc.Title,
			Subcategories: subcategories(fc),
			Cards:         make([]models.Card, 0, len(fc.Cards)),
		}
		for _, card := range fc.Cards {
			cat.Cards = append(cat.Cards, NewCard(
				strings.TrimSpace(card.Name),
				strings.TrimSpace(card.URL),
				strings.TrimSpace(card.Description),
				strings.TrimSpace(card.Subcategory),
			))
		}
		out = append(out, cat)
	}
	return out, nil
}

// Slug turns a title into an id fragment: lower-case letters and digits
// joined by single dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "category"
	}
	return b.String()
}

func uniqueID(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// subcategories keeps the declared order and appends any tag that only
// appears on cards.
func subcategories(fc FileCategory) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range fc.Subcategories {
		add(s)
	}
	for _, c := range fc.Cards {
		add(c.Subcategory)
	}
	return out
}
