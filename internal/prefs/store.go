// Package prefs persists advisory client state: the last selected category
// and the sidebar visibility. Every read falls back to a default when the
// value is absent, malformed or the backend fails; no error escapes.
package prefs

import (
	"log/slog"
	"strconv"

	"github.com/starford/navboard/internal/models"
)

const (
	keyLastCategory   = "lastCategory"
	keySidebarVisible = "sidebarVisible"
)

// Store reads and writes preferences over a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// NewStore wraps backend. A nil backend behaves as an empty memory store.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if backend == nil {
		backend = NewMemory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Open opens the sqlite backend at dsn, falling back to memory when it is
// unavailable.
func Open(dsn string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if dsn == "" {
		return NewStore(NewMemory(), logger)
	}
	db, err := OpenSQLite(dsn)
	if err != nil {
		logger.Warn("prefs: storage unavailable, using memory", slog.String("error", err.Error()))
		return NewStore(NewMemory(), logger)
	}
	return NewStore(db, logger)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// LastCategory returns the persisted category id, or "all".
func (s *Store) LastCategory() string {
	v, ok := s.get(keyLastCategory)
	if !ok || v == "" {
		return models.AllCategories
	}
	return v
}

// SetLastCategory persists id.
func (s *Store) SetLastCategory(id string) {
	s.set(keyLastCategory, id)
}

// SidebarVisible returns the persisted sidebar preference, default true.
func (s *Store) SidebarVisible() bool {
	v, ok := s.get(keySidebarVisible)
	if !ok {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		s.logger.Warn("prefs: malformed value", slog.String("key", keySidebarVisible), slog.String("value", v))
		return true
	}
	return b
}

// SetSidebarVisible persists the sidebar preference.
func (s *Store) SetSidebarVisible(visible bool) {
	s.set(keySidebarVisible, strconv.FormatBool(visible))
}

func (s *Store) get(key string) (string, bool) {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("prefs: read failed", slog.String("key", key), slog.String("error", err.Error()))
		return "", false
	}
	return v, ok
}

func (s *Store) set(key, value string) {
	if err := s.backend.Set(key, value); err != nil {
		s.logger.Warn("prefs: write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
