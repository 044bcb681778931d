package repository

import (
	"context"

	"github.com/gita-guidance-search-api/internal/models"
)

// ProblemRepository defines read access to the taxonomy and its weighted
// verse associations. The search pipeline never writes.
type ProblemRepository interface {
	// ResolveSlugs maps category slugs to category IDs; unknown slugs are
	// simply absent from the result
	ResolveSlugs(ctx context.Context, slugs []string) ([]string, error)

	// VersesForCategories returns all verse associations for the given
	// category IDs, ordered by relevance score descending
	VersesForCategories(ctx context.Context, categoryIDs []string) ([]models.ScoredVerse, error)

	// ListCategories returns the taxonomy in display order with
	// association counts
	ListCategories(ctx context.Context) ([]models.ProblemCategory, error)
}

// VerseSearchRepository defines vector similarity search over verses
type VerseSearchRepository interface {
	// SearchVersesByEmbedding performs vector similarity search on verses
	SearchVersesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.SemanticVerse, error)
}
