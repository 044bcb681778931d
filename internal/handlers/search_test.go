package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/services"
)

type stubProblemRepo struct {
	ids    map[string]string
	verses []models.ScoredVerse
	err    error
}

func (s *stubProblemRepo) ResolveSlugs(ctx context.Context, slugs []string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := []string{}
	for _, slug := range slugs {
		if id, ok := s.ids[slug]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *stubProblemRepo) VersesForCategories(ctx context.Context, categoryIDs []string) ([]models.ScoredVerse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.verses, nil
}

func (s *stubProblemRepo) ListCategories(ctx context.Context) ([]models.ProblemCategory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.ProblemCategory{
		{ID: "p1", Name: "Anxiety", Slug: "anxiety", DisplayOrder: 1, VerseCount: 3},
	}, nil
}

func newSearchContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func anxietyHandler(err error) *SearchHandler {
	app := "Let go of the outcome."
	repo := &stubProblemRepo{
		ids: map[string]string{"anxiety": "p1", "confusion": "p2"},
		verses: []models.ScoredVerse{
			{Verse: models.VerseSummary{ID: "v1", ChapterNumber: 2, VerseNumber: 47, EnglishMeaning: "Act without attachment.", LifeApplication: &app}, RelevanceScore: 0.95},
		},
		err: err,
	}
	return NewSearchHandler(services.NewProblemSearchService(repo, nil), nil)
}

func TestProblemSearchSuccess(t *testing.T) {
	e := echo.New()
	c, rec := newSearchContext(e, `{"query": "I'm struggling with anxiety"}`)

	require.NoError(t, anxietyHandler(nil).ProblemSearch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			ID              string  `json:"id"`
			ChapterNumber   int     `json:"chapter_number"`
			VerseNumber     int     `json:"verse_number"`
			EnglishMeaning  string  `json:"english_meaning"`
			LifeApplication *string `json:"life_application"`
		} `json:"results"`
		Guidance string `json:"guidance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "v1", resp.Results[0].ID)
	assert.Equal(t, 2, resp.Results[0].ChapterNumber)
	assert.Equal(t, 47, resp.Results[0].VerseNumber)
	require.NotNil(t, resp.Results[0].LifeApplication)
	assert.NotEmpty(t, resp.Guidance)
}

func TestProblemSearchEmptyQueryIs400(t *testing.T) {
	e := echo.New()
	c, rec := newSearchContext(e, `{"query": "   "}`)

	require.NoError(t, anxietyHandler(nil).ProblemSearch(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestProblemSearchMissingQueryIs400(t *testing.T) {
	e := echo.New()
	c, rec := newSearchContext(e, `{}`)

	require.NoError(t, anxietyHandler(nil).ProblemSearch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProblemSearchStorageFailureIs500(t *testing.T) {
	e := echo.New()
	c, rec := newSearchContext(e, `{"query": "anxiety"}`)

	require.NoError(t, anxietyHandler(errors.New("db down")).ProblemSearch(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestProblemSearchNoKeywordMatchStillSucceeds(t *testing.T) {
	e := echo.New()
	c, rec := newSearchContext(e, `{"query": "xyzzy quux"}`)

	// "xyzzy quux" falls back to the default category, which resolves and
	// returns whatever is stored for it
	require.NoError(t, anxietyHandler(nil).ProblemSearch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProblemSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Results)
	assert.NotEmpty(t, resp.Guidance)
}

func TestSemanticSearchNotConfigured(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/search/semantic", strings.NewReader(`{"query": "peace"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, anxietyHandler(nil).SemanticSearch(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListProblems(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/problems", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, anxietyHandler(nil).ListProblems(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []models.ProblemCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "anxiety", categories[0].Slug)
}
