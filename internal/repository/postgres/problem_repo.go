package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/repository"
)

// ProblemRepository implements repository.ProblemRepository for PostgreSQL
type ProblemRepository struct {
	db *sqlx.DB
}

// NewProblemRepository creates a new PostgreSQL problem repository
func NewProblemRepository(db *sqlx.DB) repository.ProblemRepository {
	return &ProblemRepository{db: db}
}

// ResolveSlugs maps category slugs to problem IDs
func (r *ProblemRepository) ResolveSlugs(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return []string{}, nil
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT id::text
		FROM problems
		WHERE slug = ANY($1)
	`, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("resolve problem slugs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan problem id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problem ids: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// VersesForCategories fetches all weighted associations for the given
// problem IDs, highest relevance first. Deduplication happens in the
// service layer so the highest-scored occurrence of a verse wins.
func (r *ProblemRepository) VersesForCategories(ctx context.Context, categoryIDs []string) ([]models.ScoredVerse, error) {
	if len(categoryIDs) == 0 {
		return []models.ScoredVerse{}, nil
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT s.id::text, c.chapter_number, s.verse_number,
		       s.english_meaning, s.life_application, sp.relevance_score
		FROM shlok_problems sp
		JOIN shloks s ON s.id = sp.shlok_id
		JOIN chapters c ON c.id = s.chapter_id
		WHERE sp.problem_id = ANY($1::uuid[])
		ORDER BY sp.relevance_score DESC
	`, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch verse associations: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredVerse
	for rows.Next() {
		var v models.ScoredVerse
		if err := rows.Scan(&v.Verse.ID, &v.Verse.ChapterNumber, &v.Verse.VerseNumber,
			&v.Verse.EnglishMeaning, &v.Verse.LifeApplication, &v.RelevanceScore); err != nil {
			return nil, fmt.Errorf("scan verse association: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse associations: %w", err)
	}

	if results == nil {
		results = []models.ScoredVerse{}
	}
	return results, nil
}

// ListCategories returns the taxonomy in display order with verse counts
func (r *ProblemRepository) ListCategories(ctx context.Context) ([]models.ProblemCategory, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT p.id::text, p.name, p.slug, p.icon, p.color, p.display_order,
		       COUNT(sp.shlok_id) AS verse_count
		FROM problems p
		LEFT JOIN shlok_problems sp ON sp.problem_id = p.id
		GROUP BY p.id, p.name, p.slug, p.icon, p.color, p.display_order
		ORDER BY p.display_order, p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list problem categories: %w", err)
	}
	defer rows.Close()

	var categories []models.ProblemCategory
	for rows.Next() {
		var c models.ProblemCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.DisplayOrder, &c.VerseCount); err != nil {
			return nil, fmt.Errorf("scan problem category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problem categories: %w", err)
	}

	if categories == nil {
		categories = []models.ProblemCategory{}
	}
	return categories, nil
}
