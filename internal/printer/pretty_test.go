package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/search"
	"github.com/starford/navboard/internal/testutil"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func viewOf(t *testing.T, term string) ([]models.Category, search.View) {
	t.Helper()
	doc := testutil.SampleDocument(t)
	eng := search.New(doc)
	eng.Apply(term)
	cats := doc.Categories()
	return cats, eng.Evaluate(cats)
}

func TestPage_All(t *testing.T) {
	cats, view := viewOf(t, "")
	var buf bytes.Buffer
	p := &Pretty{Out: &buf}
	p.Page(cats, view, "reading")

	out := buf.String()
	for _, want := range []string{"Dev Tools - 2 cards", "Reading - 1 card *", "GitHub", "Hacker News"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPage_Filtered(t *testing.T) {
	cats, view := viewOf(t, "github")
	var buf bytes.Buffer
	p := &Pretty{Out: &buf, ShowID: true}
	p.Page(cats, view, "")

	out := buf.String()
	if !strings.Contains(out, "GitHub") || strings.Contains(out, "Travis") || strings.Contains(out, "Reading") {
		t.Errorf("filtered output:\n%s", out)
	}
	if !strings.Contains(out, cats[0].Cards[0].ID) {
		t.Errorf("card id not shown:\n%s", out)
	}
}

func TestPage_NoResults(t *testing.T) {
	cats, view := viewOf(t, "zzz")
	var buf bytes.Buffer
	p := &Pretty{Out: &buf}
	p.Page(cats, view, "")
	if !strings.Contains(buf.String(), `no bookmarks match "zzz"`) {
		t.Errorf("output = %q", buf.String())
	}
}
