package api

import (
	"github.com/starford/navboard/internal/models"
	"github.com/starford/navboard/internal/navservice"
	"github.com/starford/navboard/internal/tracker"
)

// CardRequest is the request body for adding or editing a card.
type CardRequest = navservice.CardInput

// ScrollRequest is one scroll sample reported by the page.
type ScrollRequest = tracker.Viewport

// SearchInputRequest carries the raw search box value.
type SearchInputRequest struct {
	Q string `json:"q" example:"git"`
}

// SubcategoryRequest selects a subcategory tab within a category.
type SubcategoryRequest struct {
	CategoryID  string `json:"categoryId" example:"dev-tools" validate:"required"`
	Subcategory string `json:"subcategory" example:"all"`
}

// LayoutRequest reports the viewport width.
type LayoutRequest struct {
	Width int `json:"width" example:"1280" validate:"required"`
}

// RenameCategoryRequest is the request body for renaming a category.
type RenameCategoryRequest struct {
	Title string `json:"title" example:"Dev Tools" validate:"required"`
}

// SelectResponse is returned after a manual category selection.
type SelectResponse struct {
	Active   string               `json:"active" example:"all" validate:"required"`
	ScrollTo tracker.ScrollTarget `json:"scrollTo"`
}

// CardView is a card as rendered, with its current visibility.
type CardView struct {
	models.Card
	Visible   bool   `json:"visible"`
	Clickable bool   `json:"clickable"`
	IconURL   string `json:"iconUrl,omitempty" example:"/api/icons/3a7bd3e2..."`
}

// CategoryView is a category section as rendered.
type CategoryView struct {
	ID                    string     `json:"id" example:"dev-tools"`
	Title                 string     `json:"title" example:"Dev Tools"`
	Subcategories         []string   `json:"subcategories"`
	Subcategory           string     `json:"subcategory" example:"all"`
	Visible               bool       `json:"visible"`
	SubcategoryBarVisible bool       `json:"subcategoryBarVisible"`
	Cards                 []CardView `json:"cards"`
}

// SidebarItem is one sidebar link.
type SidebarItem struct {
	ID     string `json:"id" example:"dev-tools"`
	Label  string `json:"label" example:"Dev Tools"`
	Active bool   `json:"active"`
}

// SidebarResponse is the sidebar state.
type SidebarResponse struct {
	Entries []SidebarItem `json:"entries"`
	Visible bool          `json:"visible"`
	Mobile  bool          `json:"mobile"`
	Active  string        `json:"active" example:"all"`
}

// ViewResponse is the full render projection of the page.
type ViewResponse struct {
	Active     string           `json:"active" example:"all"`
	Term       string           `json:"term"`
	NoResults  bool             `json:"noResults"`
	Matches    int              `json:"matches"`
	Progress   tracker.Progress `json:"progress"`
	Sidebar    SidebarResponse  `json:"sidebar"`
	Categories []CategoryView   `json:"categories"`
}

// OptionsResponse lists the categories a card can be placed in.
type OptionsResponse struct {
	Options []models.CategoryOption `json:"options"`
}
