package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// AddCard handles POST /api/cards.
//
//	@Summary		Add a card to a category
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CardRequest	true	"Card to add"
//	@Success		201		{object}	models.Card
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards [post]
func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	card, err := h.d.Service.AddCard(r.Context(), req)
	if err != nil {
		writeError(w, "add card", err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// EditCard handles PUT /api/cards/{id}.
//
//	@Summary		Edit a card and optionally move it
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Card id"
//	@Param			body	body		CardRequest	true	"New card fields"
//	@Success		200		{object}	models.Card
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards/{id} [put]
func (h *Handler) EditCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	card, err := h.d.Service.EditCard(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, "edit card", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}.
//
//	@Summary		Delete a card
//	@Tags			cards
//	@Param			id	path	string	true	"Card id"
//	@Success		204	"Card deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards/{id} [delete]
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Service.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CardOptions handles GET /api/cards/{id}/options.
//
//	@Summary		List target categories for a card
//	@Tags			cards
//	@Produce		json
//	@Param			id	path		string	true	"Card id"
//	@Success		200	{object}	OptionsResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards/{id}/options [get]
func (h *Handler) CardOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.d.Service.CardOptions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "card options", err)
		return
	}
	writeJSON(w, http.StatusOK, OptionsResponse{Options: opts})
}

// CategoryOptions handles GET /api/categories/{id}/options.
//
//	@Summary		List target categories for a new card
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Pre-selected category id"
//	@Success		200	{object}	OptionsResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id}/options [get]
func (h *Handler) CategoryOptions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.d.Service.Document().HasCategory(id) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, OptionsResponse{Options: h.d.Service.CategoryOptions(id)})
}

// RenameCategory handles PUT /api/categories/{id}.
//
//	@Summary		Rename a category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Category id"
//	@Param			body	body		RenameCategoryRequest	true	"New title"
//	@Success		200		{object}	models.Category
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id} [put]
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req RenameCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.d.Service.RenameCategory(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		writeError(w, "rename category", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory handles DELETE /api/categories/{id}.
//
//	@Summary		Delete a category and all of its cards
//	@Tags			categories
//	@Param			id	path	string	true	"Category id"
//	@Success		204	"Category deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCategory handles GET /api/categories/{id}/export.
//
//	@Summary		Download a category as JSON
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Category id"
//	@Success		200	{object}	navservice.Export
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/categories/{id}/export [get]
func (h *Handler) ExportCategory(w http.ResponseWriter, r *http.Request) {
	exp, err := h.d.Service.ExportCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "export category", err)
		return
	}
	data, err := exp.JSON()
	if err != nil {
		writeError(w, "export category", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.Filename()}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
