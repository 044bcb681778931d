package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/services"
)

// SearchHandler handles the problem-search and semantic-search endpoints
type SearchHandler struct {
	problemSearch  *services.ProblemSearchService
	semanticSearch *services.SemanticSearchService
}

// NewSearchHandler creates a new search handler; semanticSearch may be nil
// when no embedding backend is configured
func NewSearchHandler(problemSearch *services.ProblemSearchService, semanticSearch *services.SemanticSearchService) *SearchHandler {
	return &SearchHandler{
		problemSearch:  problemSearch,
		semanticSearch: semanticSearch,
	}
}

// ProblemSearch handles POST /search - classify a described difficulty and
// return ranked verses with guidance
func (h *SearchHandler) ProblemSearch(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ProblemSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
	}

	resp, err := h.problemSearch.Search(ctx, req.Query)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Query is required"})
		}
		c.Logger().Errorf("Problem search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Search failed"})
	}

	return c.JSON(http.StatusOK, resp)
}

// SemanticSearch handles POST /search/semantic - embedding-based verse search
func (h *SearchHandler) SemanticSearch(c echo.Context) error {
	ctx := c.Request().Context()

	if h.semanticSearch == nil {
		return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Semantic search is not configured"})
	}

	var req models.SemanticSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	results, err := h.semanticSearch.SearchVerses(ctx, req.Query, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Query is required"})
		}
		c.Logger().Errorf("Semantic search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Search failed"})
	}

	return c.JSON(http.StatusOK, models.SemanticSearchResponse{
		Query:   req.Query,
		Results: results,
	})
}

// ListProblems handles GET /problems - the taxonomy in display order
func (h *SearchHandler) ListProblems(c echo.Context) error {
	categories, err := h.problemSearch.ListProblems(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("List problems failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list problems"})
	}
	return c.JSON(http.StatusOK, categories)
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.ProblemSearch)
	g.POST("/search/semantic", h.SemanticSearch)
	g.GET("/problems", h.ListProblems)
}
