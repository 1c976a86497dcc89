// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the navigation board to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/navboard/internal/navservice"
	"github.com/starford/navboard/internal/search"
	"github.com/starford/navboard/internal/storage"
	"github.com/starford/navboard/internal/tracker"
)

const formatURI = "navboard://bookmarks-format"

// Server wraps the MCP server with navboard tools.
type Server struct {
	mcp     *server.MCPServer
	svc     *navservice.Service
	tracker *tracker.Tracker
	store   storage.Provider
}

// New creates a new MCP server with all tools registered. store receives
// exports saved by export_category.
func New(svc *navservice.Service, tr *tracker.Tracker, store storage.Provider) *Server {
	s := &Server{svc: svc, tracker: tr, store: store}

	s.mcp = server.NewMCPServer(
		"Navboard",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List all categories with their ids, titles and card counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("search_cards",
		mcp.WithDescription("Find cards whose name or description contains the query (case-insensitive)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to look for")),
	), s.searchCards)

	s.mcp.AddTool(mcp.NewTool("add_card",
		mcp.WithDescription("Add a site card to a category. Name and URL are required."),
		mcp.WithString("category_id", mcp.Required(), mcp.Description("Target category id (see list_categories)")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Site URL (http or https)")),
		mcp.WithString("description", mcp.Description("Optional one-line description")),
	), s.addCard)

	s.mcp.AddTool(mcp.NewTool("delete_card",
		mcp.WithDescription("Delete a card by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Card id")),
	), s.deleteCard)

	s.mcp.AddTool(mcp.NewTool("export_category",
		mcp.WithDescription("Export a category as JSON. With save=true the file is also written to the export directory."),
		mcp.WithString("category_id", mcp.Required(), mcp.Description("Category id")),
		mcp.WithBoolean("save", mcp.Description("Write the export file to disk")),
	), s.exportCategory)

	s.mcp.AddTool(mcp.NewTool("select_category",
		mcp.WithDescription("Make a category (or \"all\") the active one."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Category id or all")),
	), s.selectCategory)

	s.mcp.AddTool(mcp.NewTool("get_bookmarks_format",
		mcp.WithDescription("Returns the bookmarks file format. Read it before editing the content file by hand."),
	), s.getFormat)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Bookmarks File Format",
			mcp.WithResourceDescription("YAML layout of the bookmarks content file."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type categoryItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subcategories []string `json:"subcategories,omitempty"`
	Cards         int      `json:"cards"`
}

type cardHit struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats := s.svc.Document().Categories()
	items := make([]categoryItem, len(cats))
	for i, c := range cats {
		items[i] = categoryItem{ID: c.ID, Title: c.Title, Subcategories: c.Subcategories, Cards: len(c.Cards)}
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	term := search.Normalize(query)
	if term == "" {
		return mcp.NewToolResultError("query must not be blank"), nil
	}

	var hits []cardHit
	for _, c := range s.svc.Document().Categories() {
		for _, card := range c.Cards {
			if search.Matches(card, term) {
				hits = append(hits, cardHit{ID: card.ID, Category: c.ID, Name: card.Name, URL: card.URL, Description: card.Description})
			}
		}
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("no matching cards"), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := navservice.CardInput{
		CategoryID:  req.GetString("category_id", ""),
		Name:        req.GetString("name", ""),
		URL:         req.GetString("url", ""),
		Description: req.GetString("description", ""),
	}
	card, err := s.svc.AddCard(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s", card.ID)), nil
}

func (s *Server) deleteCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteCard(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) exportCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("category_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exp, err := s.svc.ExportCategory(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := exp.JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !req.GetBool("save", false) {
		return mcp.NewToolResultText(string(data)), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("no export directory configured"), nil
	}
	name := path.Base(exp.Filename())
	if err := s.store.Write(name, data); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", name)), nil
}

func (s *Server) selectCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id = strings.TrimSpace(id)
	if _, err := s.tracker.OnManualSelect(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("active: %s", s.tracker.Active())), nil
}

func (s *Server) getFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(BookmarksFormat), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     BookmarksFormat,
		},
	}, nil
}
