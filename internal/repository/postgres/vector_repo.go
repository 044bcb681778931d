package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/repository"
)

// VerseSearchRepository implements repository.VerseSearchRepository for
// PostgreSQL with pgvector
type VerseSearchRepository struct {
	db *sqlx.DB
}

// NewVerseSearchRepository creates a new pgvector verse search repository
func NewVerseSearchRepository(db *sqlx.DB) repository.VerseSearchRepository {
	return &VerseSearchRepository{db: db}
}

// SearchVersesByEmbedding performs cosine similarity search over verse
// meaning embeddings
func (r *VerseSearchRepository) SearchVersesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.SemanticVerse, error) {
	vec := pgvector.NewVector(float32Slice(embedding))

	rows, err := r.db.QueryxContext(ctx, `
		SELECT s.id::text, c.chapter_number, s.verse_number,
		       s.english_meaning, s.life_application,
		       1 - (s.embedding <=> $1::vector) AS score
		FROM shloks s
		JOIN chapters c ON c.id = s.chapter_id
		WHERE s.embedding IS NOT NULL
		ORDER BY s.embedding <=> $1::vector
		LIMIT $2
	`, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search verses: %w", err)
	}
	defer rows.Close()

	var results []models.SemanticVerse
	for rows.Next() {
		var v models.SemanticVerse
		if err := rows.Scan(&v.ID, &v.ChapterNumber, &v.VerseNumber,
			&v.EnglishMeaning, &v.LifeApplication, &v.Score); err != nil {
			return nil, fmt.Errorf("scan verse result: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse results: %w", err)
	}

	if results == nil {
		results = []models.SemanticVerse{}
	}
	return results, nil
}

// float32Slice converts []float64 to []float32 for pgvector
func float32Slice(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
