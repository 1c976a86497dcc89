// Package watch reloads the bookmarks file when it changes on disk.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/storage"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc receives each successfully parsed new version of the file.
type ReloadFunc func(snap *content.Snapshot)

// Watch observes the directory holding rel and calls onReload after the
// file settles with different content. checksum is the checksum of the
// version already loaded. Unparseable versions are logged and skipped,
// leaving the current content in place. Watch returns when ctx is
// cancelled.
func Watch(ctx context.Context, store storage.Provider, rel, checksum string, debounce time.Duration, logger *slog.Logger, onReload ReloadFunc) error {
	abs, err := store.Resolve(rel)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace the file by rename, so watch its directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("path", abs))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(debounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			snap, loadErr := content.Load(store, rel)
			if loadErr != nil {
				logger.Warn("watcher: reload failed", slog.String("path", rel), slog.String("error", loadErr.Error()))
				continue
			}
			if snap.Checksum == checksum {
				logger.Debug("watcher: content unchanged", slog.String("path", rel))
				continue
			}
			checksum = snap.Checksum
			logger.Info("watcher: content reloaded",
				slog.String("path", rel),
				slog.Int("categories", len(snap.Categories)))
			onReload(snap)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
