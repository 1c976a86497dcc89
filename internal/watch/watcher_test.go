package watch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/starford/navboard/internal/content"
	"github.com/starford/navboard/internal/testutil"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	_, store := testutil.TestStore(t)
	if err := store.Write("bookmarks.yaml", []byte(testutil.SampleYAML)); err != nil {
		t.Fatal(err)
	}
	snap, err := content.Load(store, "bookmarks.yaml")
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var reloads []*content.Snapshot
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, store, "bookmarks.yaml", snap.Checksum, 30*time.Millisecond, logger, func(s *content.Snapshot) {
			mu.Lock()
			reloads = append(reloads, s)
			mu.Unlock()
		})
	}()
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(reloads)
	}

	time.Sleep(100 * time.Millisecond)

	// Same bytes: checksum matches, no reload.
	_ = store.Write("bookmarks.yaml", []byte(testutil.SampleYAML))
	// Broken YAML: skipped.
	time.Sleep(100 * time.Millisecond)
	_ = store.Write("bookmarks.yaml", []byte("categories: [\n"))
	time.Sleep(100 * time.Millisecond)
	if n := count(); n != 0 {
		t.Fatalf("reloads = %d before a real change, want 0", n)
	}

	_ = store.Write("bookmarks.yaml", []byte("categories:\n  - title: Only\n"))
	eventually(t, 5*time.Second, 20*time.Millisecond, func() bool { return count() == 1 }, "change not reloaded")

	mu.Lock()
	got := reloads[0].Categories
	mu.Unlock()
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("reloaded categories = %+v", got)
	}

	// Unrelated files in the same directory are ignored.
	_ = store.Write("other.yaml", []byte("x: 1"))
	time.Sleep(100 * time.Millisecond)
	if n := count(); n != 1 {
		t.Errorf("reloads = %d after unrelated write, want 1", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_RejectsEscapingPath(t *testing.T) {
	_, store := testutil.TestStore(t)
	err := Watch(context.Background(), store, "../outside.yaml", "", 0, slog.Default(), func(*content.Snapshot) {})
	if err == nil {
		t.Error("expected error for path outside the root")
	}
}
