// Package testutil provides shared test fixtures: a sample bookmarks
// document, temporary storage roots and preference databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/prefs"
	"github.com/starford/navboard/internal/storage"
)

// SampleYAML is a small bookmarks file with two categories.
const SampleYAML = `categories:
  - id: dev
    title: Dev Tools
    subcategories: [git, ci]
    cards:
      - name: GitHub
        url: https://github.com
        description: Code hosting
        subcategory: git
      - name: Travis
        url: https://travis-ci.com
        description: Continuous integration
        subcategory: ci
  - title: Reading
    cards:
      - name: Hacker News
        url: https://news.ycombinator.com
        description: Tech news
`

// SampleCategories parses SampleYAML.
func SampleCategories(t *testing.T) []models.Category {
	t.Helper()
	cats, err := content.Parse([]byte(SampleYAML))
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return cats
}

// SampleDocument returns a document built from SampleYAML.
func SampleDocument(t *testing.T) *content.Document {
	t.Helper()
	return content.New(SampleCategories(t))
}

// TestPrefs creates a sqlite-backed preference store that is automatically
// cleaned up.
func TestPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "navboard-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := prefs.OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	s := prefs.NewStore(db, nil)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestStore creates a temporary storage root with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
