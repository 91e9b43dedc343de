// Package api provides the HTTP API server and handlers for the PinStack application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pinstackapp/pinstack-server/internal/http/response"
	"github.com/pinstackapp/pinstack-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	boardService *service.BoardService
	itemService  *service.ItemService
	categorizer  *service.CategorizationService
	router       *chi.Mux
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(boardService *service.BoardService, itemService *service.ItemService, categorizer *service.CategorizationService, logger *slog.Logger) *Server {
	s := &Server{
		boardService: boardService,
		itemService:  itemService,
		categorizer:  categorizer,
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Boards.
		r.Route("/boards", func(r chi.Router) {
			r.Post("/", s.handleCreateBoard)
			r.Get("/", s.handleListBoards)
			r.Get("/tree", s.handleGetTree)
			r.Get("/{id}", s.handleGetBoard)
			r.Patch("/{id}", s.handleUpdateBoard)
			r.Delete("/{id}", s.handleDeleteBoard)
			r.Get("/{id}/ancestors", s.handleGetBoardAncestors)
			r.Post("/{id}/move", s.handleMoveBoard)
			r.Post("/{id}/merge", s.handleMergeBoards)
			r.Put("/{id}/rules", s.handleUpdateBoardRules)
			r.Get("/{id}/items", s.handleListBoardItems)
			r.Post("/{id}/items", s.handleAddItemToBoard)
			r.Delete("/{id}/items/{itemID}", s.handleRemoveItemFromBoard)
		})

		// Items.
		r.Route("/items", func(r chi.Router) {
			r.Post("/", s.handleCreateItem)
			r.Get("/", s.handleListItems)
			r.Get("/{id}", s.handleGetItem)
			r.Delete("/{id}", s.handleDeleteItem)
			r.Get("/{id}/boards", s.handleListItemBoards)
			r.Post("/{id}/analysis", s.handleItemAnalysis)
			r.Post("/{id}/categorize", s.handleCategorizeItem)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
