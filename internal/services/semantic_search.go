package services

import (
	"context"
	"strings"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/repository"
	pkgservices "github.com/gita-guidance-search-api/pkg/schema/services"
)

// SemanticSearchService searches verses by embedding similarity
type SemanticSearchService struct {
	verseRepo     repository.VerseSearchRepository
	embeddingsSvc *pkgservices.EmbeddingsService
}

// NewSemanticSearchService creates a new semantic search service
func NewSemanticSearchService(
	verseRepo repository.VerseSearchRepository,
	embeddingsSvc *pkgservices.EmbeddingsService,
) *SemanticSearchService {
	return &SemanticSearchService{
		verseRepo:     verseRepo,
		embeddingsSvc: embeddingsSvc,
	}
}

// SearchVerses embeds the query and performs vector search
func (s *SemanticSearchService) SearchVerses(ctx context.Context, query string, topK int) ([]models.SemanticVerse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	embedding, err := s.embeddingsSvc.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.verseRepo.SearchVersesByEmbedding(ctx, embedding, topK)
}
