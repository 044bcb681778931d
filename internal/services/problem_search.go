package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gita-guidance-search-api/internal/classifier"
	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/repository"
	"github.com/gita-guidance-search-api/internal/taxonomy"
)

// DefaultResultLimit caps how many verses one search returns
const DefaultResultLimit = 5

// DefaultGuidance is used when the AI classifier contributed no guidance
const DefaultGuidance = "The Gita reminds us that every difficulty is a doorway to steadier wisdom; these verses may speak to what you are carrying."

// ErrInvalidQuery is returned when the query is empty after trimming
var ErrInvalidQuery = errors.New("query must be a non-empty string")

// Classifier maps free text to taxonomy categories with a guidance sentence
type Classifier interface {
	Classify(ctx context.Context, text string) (models.ClassificationResult, error)
}

// ProblemSearchService runs the problem-matching pipeline: classify the
// query (AI first, keyword fallback), then rank verses for the matched
// categories.
type ProblemSearchService struct {
	problemRepo repository.ProblemRepository
	ai          Classifier
}

// NewProblemSearchService creates the search service; ai may be nil to
// disable the AI path entirely
func NewProblemSearchService(problemRepo repository.ProblemRepository, ai Classifier) *ProblemSearchService {
	return &ProblemSearchService{
		problemRepo: problemRepo,
		ai:          ai,
	}
}

// Search classifies the query and returns ranked verses with guidance.
// AI classification failures never surface: the keyword classifier always
// produces a category set. Storage failures are hard errors.
func (s *ProblemSearchService) Search(ctx context.Context, query string) (models.ProblemSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.ProblemSearchResponse{}, ErrInvalidQuery
	}

	var categories []taxonomy.Slug
	var guidance string

	if s.ai != nil {
		result, err := s.ai.Classify(ctx, query)
		switch {
		case err != nil:
			log.Printf("AI classification failed, using keyword fallback: %v", err)
		case len(result.Categories) == 0:
			log.Printf("AI classification returned no usable categories, using keyword fallback")
			guidance = result.Guidance
		default:
			categories = result.Categories
			guidance = result.Guidance
		}
	}

	if len(categories) == 0 {
		categories = classifier.ClassifyKeywords(query)
	}
	if guidance == "" {
		guidance = DefaultGuidance
	}

	results, err := s.Rank(ctx, categories, DefaultResultLimit)
	if err != nil {
		return models.ProblemSearchResponse{}, err
	}

	return models.ProblemSearchResponse{
		Results:  results,
		Guidance: guidance,
	}, nil
}

// Rank resolves category slugs and returns the top verses by stored
// relevance score, deduplicated by verse ID. Unknown slugs drop out; if
// none resolve the result is empty, not an error.
func (s *ProblemSearchService) Rank(ctx context.Context, slugs []taxonomy.Slug, limit int) ([]models.VerseSummary, error) {
	if len(slugs) == 0 {
		return []models.VerseSummary{}, nil
	}

	ids, err := s.problemRepo.ResolveSlugs(ctx, taxonomy.Strings(slugs))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.VerseSummary{}, nil
	}

	scored, err := s.problemRepo.VersesForCategories(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Associations arrive highest-score first; keep the first occurrence
	// of each verse.
	seen := make(map[string]bool, len(scored))
	results := make([]models.VerseSummary, 0, limit)
	for _, sv := range scored {
		if seen[sv.Verse.ID] {
			continue
		}
		seen[sv.Verse.ID] = true
		results = append(results, sv.Verse)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// ListProblems returns the stored taxonomy in display order
func (s *ProblemSearchService) ListProblems(ctx context.Context) ([]models.ProblemCategory, error) {
	return s.problemRepo.ListCategories(ctx)
}
