package prefs

import "sync"

// DefaultMobileBreakpoint is the widest viewport treated as mobile.
const DefaultMobileBreakpoint = 768

// Layout tracks sidebar visibility for the current viewport width.
// On mobile the sidebar is always collapsed; on desktop it follows the
// persisted preference.
type Layout struct {
	store      *Store
	breakpoint int

	mu     sync.Mutex
	width  int
	mobile bool
}

// NewLayout creates a layout assuming a desktop viewport.
func NewLayout(store *Store, breakpoint int) *Layout {
	if breakpoint <= 0 {
		breakpoint = DefaultMobileBreakpoint
	}
	return &Layout{store: store, breakpoint: breakpoint}
}

// Resize records a new viewport width.
func (l *Layout) Resize(width int) {
	l.mu.Lock()
	l.width = width
	l.mobile = width > 0 && width <= l.breakpoint
	l.mu.Unlock()
}

// Mobile reports whether the last width was at or below the breakpoint.
func (l *Layout) Mobile() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mobile
}

// SidebarVisible reports whether the sidebar is shown.
func (l *Layout) SidebarVisible() bool {
	if l.Mobile() {
		return false
	}
	return l.store.SidebarVisible()
}

// Toggle flips and persists the desktop sidebar preference and returns the
// resulting visibility. It is a no-op on mobile.
func (l *Layout) Toggle() bool {
	if l.Mobile() {
		return false
	}
	next := !l.store.SidebarVisible()
	l.store.SetSidebarVisible(next)
	return next
}
