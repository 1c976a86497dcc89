// Package printer renders the navigation page for the terminal.
package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/search"
)

// Pretty prints categories as titled card tables.
type Pretty struct {
	Out    io.Writer
	ShowID bool
}

// New returns a printer writing to the colour-aware stdout.
func New(showID bool) *Pretty {
	return &Pretty{Out: color.Output, ShowID: showID}
}

// Page prints every category visible in view. last marks the category the
// page was most recently scrolled to.
func (p *Pretty) Page(cats []models.Category, view search.View, last string) {
	if view.Active && view.NoResults {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(p.Out, "no bookmarks match %q\n", view.Term)
		return
	}
	for i, c := range cats {
		cv := view.Categories[i]
		if !cv.Visible {
			continue
		}
		cards := make([]models.Card, 0, len(c.Cards))
		for j, card := range c.Cards {
			if cv.Cards[j].Visible {
				cards = append(cards, card)
			}
		}
		p.Category(c, cards, c.ID == last)
		_, _ = fmt.Fprintln(p.Out)
	}
}

// Category prints one category title followed by its cards.
func (p *Pretty) Category(c models.Category, cards []models.Card, current bool) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprint(p.Out, c.Title)
	_, _ = f.Fprintf(p.Out, " - %d", len(cards))
	if len(cards) == 1 {
		_, _ = f.Fprint(p.Out, " card")
	} else {
		_, _ = f.Fprint(p.Out, " cards")
	}
	if current {
		_, _ = color.New(color.FgHiYellow).Fprint(p.Out, " *")
	}
	_, _ = fmt.Fprintln(p.Out)

	if len(cards) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(p.Out, "  none")
		return
	}

	sub := color.New(color.FgCyan)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, card := range cards {
		row := []interface{}{card.Favicon.Letter, card.Name, card.URL, sub.Sprint(card.Subcategory)}
		if p.ShowID {
			row = append([]interface{}{f.Sprint(card.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}
