package content

import (
	"fmt"

	"github.com/starford/navboard/internal/checksum"
	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/storage"
)

// Snapshot is a parsed bookmarks file plus the checksum of its bytes.
type Snapshot struct {
	Categories []models.Category
	Checksum   string
}

// Load reads and parses the bookmarks file at path.
func Load(store storage.Provider, path string) (*Snapshot, error) {
	data, err := store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("content: load: %w", err)
	}
	cats, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Categories: cats, Checksum: checksum.Sum(data)}, nil
}
