package navservice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/starford/navboard/internal/models"
)

// ExportCard is one card in an exported category.
type ExportCard struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Subcategory string `json:"subcategory"`
}

// Export is the downloadable snapshot of one category.
type Export struct {
	CategoryName string       `json:"categoryName"`
	ExportTime   string       `json:"exportTime"`
	Cards        []ExportCard `json:"cards"`

	at time.Time
}

func newExport(c models.Category, at time.Time) *Export {
	exp := &Export{
		CategoryName: c.Title,
		ExportTime:   at.UTC().Format("2006-01-02T15:04:05.000Z"),
		Cards:        make([]ExportCard, len(c.Cards)),
		at:           at,
	}
	for i, card := range c.Cards {
		exp.Cards[i] = ExportCard{
			Name:        card.Name,
			URL:         card.URL,
			Description: card.Description,
			Subcategory: card.Subcategory,
		}
	}
	return exp
}

// Filename is "<category>_<year>-<month>-<day>.json" with unpadded local date
// parts. Path separators in the title become dashes.
func (e *Export) Filename() string {
	name := strings.NewReplacer("/", "-", `\`, "-").Replace(e.CategoryName)
	y, m, d := e.at.Date()
	return fmt.Sprintf("%s_%d-%d-%d.json", name, y, int(m), d)
}

// JSON renders the export with two-space indentation.
func (e *Export) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
