package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	"github.com/pinstackapp/pinstack-server/internal/http/response"
	"github.com/pinstackapp/pinstack-server/internal/service"
)

// handleCreateBoard creates a board, optionally nested under a parent.
func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBoardInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	board, err := s.boardService.CreateBoard(r.Context(), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, board, s.logger)
}

// handleListBoards returns all boards as a flat list.
func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boardService.ListBoards(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, boards, s.logger)
}

// handleGetTree returns the full board hierarchy as nested nodes.
func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.boardService.GetTree(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nodes, s.logger)
}

// handleGetBoard returns a single board.
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.boardService.GetBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

// handleGetBoardAncestors returns a board's ancestor chain, nearest first.
// A depth-bound hit still returns the partial chain, with a warning set.
func (s *Server) handleGetBoardAncestors(w http.ResponseWriter, r *http.Request) {
	chain, warning, err := s.boardService.GetAncestors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if warning != "" {
		response.SuccessWithWarning(w, chain, warning, s.logger)
		return
	}
	response.Success(w, chain, s.logger)
}

// handleUpdateBoard applies partial updates to a board.
func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateBoardInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	board, err := s.boardService.UpdateBoard(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

// handleDeleteBoard deletes a board. ?descendants=true deletes the whole
// subtree; without it a board that still has children is rejected.
func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	deleteDescendants := r.URL.Query().Get("descendants") == "true"

	if err := s.boardService.DeleteBoard(r.Context(), chi.URLParam(r, "id"), deleteDescendants); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleMoveBoard re-parents a board. An empty or absent parent_id moves it
// to root level.
func (s *Server) handleMoveBoard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParentID string `json:"parent_id"`
	}
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	boardID := chi.URLParam(r, "id")
	if err := s.boardService.MoveBoard(r.Context(), boardID, body.ParentID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	board, err := s.boardService.GetBoard(r.Context(), boardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

// handleMergeBoards merges the board in the path into the destination named
// in the body, then reports what moved.
func (s *Server) handleMergeBoards(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DestinationID string `json:"destination_id"`
	}
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if body.DestinationID == "" {
		response.BadRequest(w, "destination_id is required", s.logger)
		return
	}

	result, err := s.boardService.MergeBoards(r.Context(), chi.URLParam(r, "id"), body.DestinationID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleUpdateBoardRules replaces a board's smart-rule set. A null body
// clears the rules.
func (s *Server) handleUpdateBoardRules(w http.ResponseWriter, r *http.Request) {
	var rules *domain.SmartRules
	if err := json.UnmarshalRead(r.Body, &rules); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	if err := s.boardService.UpdateBoardRules(r.Context(), chi.URLParam(r, "id"), rules); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleListBoardItems returns the items on a board.
func (s *Server) handleListBoardItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.boardService.ListBoardItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, items, s.logger)
}

// handleAddItemToBoard places an item on a board. Placement cascades to
// ancestor boards unless the body sets cascade to false.
func (s *Server) handleAddItemToBoard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID  string `json:"item_id"`
		Cascade *bool  `json:"cascade"`
	}
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if body.ItemID == "" {
		response.BadRequest(w, "item_id is required", s.logger)
		return
	}

	cascade := body.Cascade == nil || *body.Cascade
	if err := s.boardService.AddItemToBoard(r.Context(), chi.URLParam(r, "id"), body.ItemID, cascade); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleRemoveItemFromBoard removes an item from one board, never cascading.
func (s *Server) handleRemoveItemFromBoard(w http.ResponseWriter, r *http.Request) {
	err := s.boardService.RemoveItemFromBoard(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
