package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinstackapp/pinstack-server/internal/http/response"
	"github.com/pinstackapp/pinstack-server/internal/service"
)

// handleCreateItem registers a media item.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var input service.CreateItemInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	item, err := s.itemService.CreateItem(r.Context(), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, item, s.logger)
}

// handleListItems returns all items, newest first.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.itemService.ListItems(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, items, s.logger)
}

// handleGetItem returns a single item.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.itemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, item, s.logger)
}

// handleDeleteItem removes an item and all of its memberships.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.itemService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleListItemBoards returns the IDs of every board holding the item.
func (s *Server) handleListItemBoards(w http.ResponseWriter, r *http.Request) {
	boardIDs, err := s.itemService.ListItemBoards(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, boardIDs, s.logger)
}

// handleItemAnalysis ingests analysis output for an item and runs
// categorization, returning where the item ended up.
func (s *Server) handleItemAnalysis(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	result, err := s.categorizer.ProcessAnalysis(r.Context(), chi.URLParam(r, "id"), body.Description, body.Tags)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleCategorizeItem re-runs categorization for an already analyzed item.
func (s *Server) handleCategorizeItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.itemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.categorizer.Categorize(r.Context(), item)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}
