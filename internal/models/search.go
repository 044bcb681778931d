package models

import "github.com/gita-guidance-search-api/internal/taxonomy"

// VerseSummary is one ranked verse as returned by problem search
type VerseSummary struct {
	ID              string  `json:"id" db:"id"`
	ChapterNumber   int     `json:"chapter_number" db:"chapter_number"`
	VerseNumber     int     `json:"verse_number" db:"verse_number"`
	EnglishMeaning  string  `json:"english_meaning" db:"english_meaning"`
	LifeApplication *string `json:"life_application" db:"life_application"`
}

// ScoredVerse is a verse association candidate prior to dedup/truncation
type ScoredVerse struct {
	Verse          VerseSummary
	RelevanceScore float64
}

// ProblemCategory is one taxonomy entry as stored
type ProblemCategory struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Slug         string  `json:"slug" db:"slug"`
	Icon         *string `json:"icon,omitempty" db:"icon"`
	Color        *string `json:"color,omitempty" db:"color"`
	DisplayOrder int     `json:"display_order" db:"display_order"`
	VerseCount   int     `json:"verse_count" db:"verse_count"`
}

// ClassificationResult is the ephemeral output of a classifier run. It is
// produced fresh per search request and never persisted.
type ClassificationResult struct {
	Categories []taxonomy.Slug
	Guidance   string
}

// ProblemSearchRequest is the request for problem search
type ProblemSearchRequest struct {
	Query string `json:"query"`
}

// ProblemSearchResponse is the response for problem search. The shape is
// uniform regardless of which classifier path produced the categories.
type ProblemSearchResponse struct {
	Results  []VerseSummary `json:"results"`
	Guidance string         `json:"guidance"`
}

// SemanticSearchRequest is the request for embedding-based verse search
type SemanticSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SemanticVerse is a verse with similarity score from semantic search
type SemanticVerse struct {
	VerseSummary
	Score float64 `json:"score"`
}

// SemanticSearchResponse is the response for semantic search
type SemanticSearchResponse struct {
	Query   string          `json:"query"`
	Results []SemanticVerse `json:"results"`
}

// ErrorResponse is the uniform error body for 4xx/5xx responses
type ErrorResponse struct {
	Error string `json:"error"`
}
