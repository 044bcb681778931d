package vertex

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	aiplatformpb "cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/jmoiron/sqlx"
	"google.golang.org/api/option"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/repository"
)

var _ repository.VerseSearchRepository = (*VerseSearchRepository)(nil)

// Config holds Vertex AI Vector Search configuration
type Config struct {
	ProjectID            string
	Location             string // e.g., "us-central1"
	IndexEndpointID      string
	DeployedIndexID      string
	PublicEndpointDomain string // e.g., "123.us-central1-456.vdb.vertexai.goog"
}

// VerseSearchRepository implements repository.VerseSearchRepository using
// Vertex AI Vector Search. Neighbor IDs come back from Vertex; the verse
// text is hydrated from PostgreSQL.
type VerseSearchRepository struct {
	config      Config
	matchClient *aiplatform.MatchClient
	db          *sqlx.DB
}

// NewVerseSearchRepository creates a new Vertex AI verse search repository
func NewVerseSearchRepository(ctx context.Context, config Config, db *sqlx.DB) (*VerseSearchRepository, error) {
	var endpoint string
	if config.PublicEndpointDomain != "" {
		endpoint = fmt.Sprintf("%s:443", config.PublicEndpointDomain)
	} else {
		endpoint = fmt.Sprintf("%s-aiplatform.googleapis.com:443", config.Location)
	}

	matchClient, err := aiplatform.NewMatchClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create match client: %w", err)
	}

	return &VerseSearchRepository{
		config:      config,
		matchClient: matchClient,
		db:          db,
	}, nil
}

// Close closes the Vertex AI client
func (r *VerseSearchRepository) Close() error {
	if r.matchClient != nil {
		return r.matchClient.Close()
	}
	return nil
}

// SearchVersesByEmbedding performs vector similarity search via FindNeighbors
func (r *VerseSearchRepository) SearchVersesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.SemanticVerse, error) {
	indexEndpoint := fmt.Sprintf(
		"projects/%s/locations/%s/indexEndpoints/%s",
		r.config.ProjectID,
		r.config.Location,
		r.config.IndexEndpointID,
	)

	featureVector := make([]float32, len(embedding))
	for i, v := range embedding {
		featureVector[i] = float32(v)
	}

	req := &aiplatformpb.FindNeighborsRequest{
		IndexEndpoint:   indexEndpoint,
		DeployedIndexId: r.config.DeployedIndexID,
		Queries: []*aiplatformpb.FindNeighborsRequest_Query{
			{
				Datapoint: &aiplatformpb.IndexDatapoint{
					FeatureVector: featureVector,
				},
				NeighborCount: int32(topK),
			},
		},
	}

	resp, err := r.matchClient.FindNeighbors(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("find neighbors: %w", err)
	}

	if len(resp.NearestNeighbors) == 0 || len(resp.NearestNeighbors[0].Neighbors) == 0 {
		return []models.SemanticVerse{}, nil
	}

	neighbors := resp.NearestNeighbors[0].Neighbors
	verseIDs := make([]string, len(neighbors))
	scoreMap := make(map[string]float64, len(neighbors))
	for i, neighbor := range neighbors {
		verseID := neighbor.Datapoint.DatapointId
		verseIDs[i] = verseID
		// Vertex returns cosine distance; similarity = 1 - distance
		scoreMap[verseID] = float64(1 - neighbor.Distance)
	}

	results, err := r.lookupVerses(ctx, verseIDs, scoreMap)
	if err != nil {
		return nil, fmt.Errorf("lookup verses: %w", err)
	}
	return results, nil
}

// lookupVerses hydrates verse rows from PostgreSQL, preserving the
// relevance order Vertex returned
func (r *VerseSearchRepository) lookupVerses(ctx context.Context, verseIDs []string, scoreMap map[string]float64) ([]models.SemanticVerse, error) {
	if len(verseIDs) == 0 {
		return []models.SemanticVerse{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT s.id::text, c.chapter_number, s.verse_number,
		       s.english_meaning, s.life_application
		FROM shloks s
		JOIN chapters c ON c.id = s.chapter_id
		WHERE s.id::text IN (?)
	`, verseIDs)
	if err != nil {
		return nil, fmt.Errorf("build IN query: %w", err)
	}
	query = r.db.Rebind(query)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verses: %w", err)
	}
	defer rows.Close()

	verseMap := make(map[string]models.SemanticVerse)
	for rows.Next() {
		var v models.SemanticVerse
		if err := rows.Scan(&v.ID, &v.ChapterNumber, &v.VerseNumber,
			&v.EnglishMeaning, &v.LifeApplication); err != nil {
			return nil, fmt.Errorf("scan verse: %w", err)
		}
		v.Score = scoreMap[v.ID]
		verseMap[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verses: %w", err)
	}

	results := make([]models.SemanticVerse, 0, len(verseIDs))
	for _, id := range verseIDs {
		if v, ok := verseMap[id]; ok {
			results = append(results, v)
		}
	}
	return results, nil
}
