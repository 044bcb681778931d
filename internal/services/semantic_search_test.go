package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gita-guidance-search-api/internal/models"
	pkgservices "github.com/gita-guidance-search-api/pkg/schema/services"
)

type fakeEmbedder struct {
	embedding []float64
	err       error
	lastText  string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType pkgservices.TaskType) ([]float64, error) {
	f.lastText = text
	return f.embedding, f.err
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType pkgservices.TaskType) ([][]float64, error) {
	return nil, errors.New("not used")
}

type fakeVerseSearchRepo struct {
	results       []models.SemanticVerse
	err           error
	lastEmbedding []float64
	lastTopK      int
}

func (f *fakeVerseSearchRepo) SearchVersesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.SemanticVerse, error) {
	f.lastEmbedding = embedding
	f.lastTopK = topK
	return f.results, f.err
}

func TestSemanticSearchEmbedsAndQueries(t *testing.T) {
	embedder := &fakeEmbedder{embedding: []float64{0.1, 0.2, 0.3}}
	repo := &fakeVerseSearchRepo{results: []models.SemanticVerse{
		{VerseSummary: models.VerseSummary{ID: "v1", ChapterNumber: 2, VerseNumber: 47}, Score: 0.91},
	}}
	svc := NewSemanticSearchService(repo, pkgservices.NewEmbeddingsService(embedder))

	results, err := svc.SearchVerses(context.Background(), "  how do I find peace  ", 5)
	require.NoError(t, err)

	assert.Equal(t, "how do I find peace", embedder.lastText)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, repo.lastEmbedding)
	assert.Equal(t, 5, repo.lastTopK)
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].ID)
}

func TestSemanticSearchEmptyQuery(t *testing.T) {
	svc := NewSemanticSearchService(&fakeVerseSearchRepo{}, pkgservices.NewEmbeddingsService(&fakeEmbedder{}))

	_, err := svc.SearchVerses(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSemanticSearchEmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding service down")}
	repo := &fakeVerseSearchRepo{}
	svc := NewSemanticSearchService(repo, pkgservices.NewEmbeddingsService(embedder))

	_, err := svc.SearchVerses(context.Background(), "peace", 5)
	assert.Error(t, err)
	assert.Nil(t, repo.lastEmbedding)
}
