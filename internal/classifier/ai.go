package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gita-guidance-search-api/internal/models"
	"github.com/gita-guidance-search-api/internal/taxonomy"
)

// maxCategories caps how many categories a single classification may carry.
// Over-long lists from the model are truncated after validation.
const maxCategories = 3

// AIClassifier classifies free text against the taxonomy via a hosted
// chat-completions endpoint. Any failure is returned to the caller, which
// is expected to fall back to ClassifyKeywords.
type AIClassifier struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAIClassifier creates a classifier against an OpenAI-compatible
// chat-completions endpoint. The timeout bounds the whole call so a hung
// provider degrades to the keyword path instead of hanging the request.
func NewAIClassifier(apiURL, apiKey, model string, timeout time.Duration) *AIClassifier {
	return &AIClassifier{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// classification is the two-key JSON object the prompt demands of the model
type classification struct {
	Categories []string `json:"categories"`
	Guidance   string   `json:"guidance"`
}

const systemPrompt = "You are a compassionate guide who helps people find Bhagavad Gita verses relevant to their life difficulties."

// Classify sends one completion request and parses the constrained JSON
// reply. Unknown category slugs are discarded rather than failing the
// whole classification.
func (c *AIClassifier) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(text)},
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.ClassificationResult{}, fmt.Errorf("completion endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return models.ClassificationResult{}, fmt.Errorf("decode completion response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return models.ClassificationResult{}, fmt.Errorf("no choices in completion response")
	}

	return parseClassification(chatResp.Choices[0].Message.Content)
}

func buildPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("A person describes their difficulty:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nClassify it into 1-3 of these categories:\n")
	for _, slug := range taxonomy.Order {
		sb.WriteString("- ")
		sb.WriteString(string(slug))
		sb.WriteString("\n")
	}
	sb.WriteString(`
Return a JSON object with exactly two keys:
{
  "categories": ["slug", ...],
  "guidance": "one short empathetic sentence"
}

Rules:
- Use only category slugs from the list above, at most 3
- The guidance must be a single sentence
- Return ONLY the JSON, no other text`)

	return sb.String()
}

// jsonObjectPattern pulls the first { through the last } so JSON wrapped in
// prose or code fences still parses.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func parseClassification(content string) (models.ClassificationResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	raw := jsonObjectPattern.FindString(content)
	if raw == "" {
		return models.ClassificationResult{}, fmt.Errorf("no JSON object in model output")
	}

	var parsed classification
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.ClassificationResult{}, fmt.Errorf("parse classification JSON: %w", err)
	}
	if parsed.Categories == nil && parsed.Guidance == "" {
		return models.ClassificationResult{}, fmt.Errorf("classification JSON has neither categories nor guidance")
	}

	slugs := make([]taxonomy.Slug, len(parsed.Categories))
	for i, s := range parsed.Categories {
		slugs[i] = taxonomy.Slug(strings.ToLower(strings.TrimSpace(s)))
	}
	valid := taxonomy.Filter(slugs)
	if len(valid) > maxCategories {
		valid = valid[:maxCategories]
	}

	return models.ClassificationResult{
		Categories: valid,
		Guidance:   strings.TrimSpace(parsed.Guidance),
	}, nil
}
