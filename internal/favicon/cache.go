package favicon

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/peterbourgon/diskv/v3"

	"github.com/starford/navboard/internal/apperr"
	"github.com/starford/navboard/internal/checksum"
)

// Cache stores validated icon payloads addressed by their checksum.
type Cache struct {
	d *diskv.Diskv
}

// NewCache opens (or creates) a flat icon store under dir.
func NewCache(dir string) *Cache {
	return &Cache{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 4 << 20,
	})}
}

// Put stores data and returns its reference.
func (c *Cache) Put(data []byte) (string, error) {
	ref := checksum.Sum(data)
	if c.d.Has(ref) {
		return ref, nil
	}
	if err := c.d.Write(ref, data); err != nil {
		return "", fmt.Errorf("favicon: cache write: %w", err)
	}
	return ref, nil
}

// Get returns the payload for ref and its sniffed content type.
func (c *Cache) Get(ref string) ([]byte, string, error) {
	if !checksum.Valid(ref) {
		return nil, "", fmt.Errorf("favicon: ref %q: %w", ref, apperr.ErrNotFound)
	}
	data, err := c.d.Read(ref)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("favicon: ref %q: %w", ref, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("favicon: cache read: %w", err)
	}
	return data, http.DetectContentType(data), nil
}
