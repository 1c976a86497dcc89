// Package models defines the domain types for Navboard.
package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AllCategories is the sentinel active-category id meaning "top of page".
const AllCategories = "all"

// FaviconPhase is the stage of a card's icon resolution.
type FaviconPhase string

const (
	FaviconUnresolved FaviconPhase = "unresolved"
	FaviconProbing    FaviconPhase = "probing"
	FaviconResolved   FaviconPhase = "resolved"
	FaviconFallback   FaviconPhase = "fallback"
)

// FaviconState is the icon state of a single card.
//
// SourceIndex is meaningful only while Probing, IconRef only when Resolved.
// Letter is always populated so a view can fall back at any time.
type FaviconState struct {
	Phase       FaviconPhase `json:"phase"`
	SourceIndex int          `json:"source_index,omitempty"`
	IconRef     string       `json:"icon_ref,omitempty"`
	Letter      string       `json:"letter"`
}

// Unresolved returns the initial state for a card named name.
func Unresolved(name string) FaviconState {
	return FaviconState{Phase: FaviconUnresolved, Letter: InitialLetter(name)}
}

// Fallback returns the terminal letter-only state.
func Fallback(name string) FaviconState {
	return FaviconState{Phase: FaviconFallback, Letter: InitialLetter(name)}
}

// Card is a single linked site entry.
type Card struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Subcategory string       `json:"subcategory,omitempty"`
	Favicon     FaviconState `json:"favicon"`
}

// Clickable reports whether the card opens a link when clicked.
func (c Card) Clickable() bool {
	return c.URL != ""
}

// Category is a named, ordered group of cards.
type Category struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subcategories []string `json:"subcategories,omitempty"`
	Cards         []Card   `json:"cards"`
}

// SidebarEntry mirrors one category in the navigation sidebar.
type SidebarEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryOption is one selectable target in the card edit dialog.
type CategoryOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

// InitialLetter returns the upper-cased first character of name.
func InitialLetter(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
