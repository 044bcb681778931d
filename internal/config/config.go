package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Settings
	APITitle   string
	APIVersion string
	APIPrefix  string
	Port       string

	// Completion API (AI classifier). The AI path is disabled when the
	// key is empty; search then runs on the keyword classifier alone.
	CompletionAPIURL  string
	CompletionAPIKey  string
	CompletionModel   string
	CompletionTimeout time.Duration

	// Vector Search Backend: "pgvector" or "vertex"
	VectorBackend string

	// Vertex AI Vector Search settings (used when VectorBackend = "vertex")
	VertexProjectID            string
	VertexLocation             string
	VertexIndexEndpointID      string
	VertexDeployedIndexID      string
	VertexPublicEndpointDomain string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

// AIEnabled reports whether the AI classifier path is configured
func (c *Config) AIEnabled() bool {
	return c.CompletionAPIKey != ""
}

func loadConfig() *Config {
	return &Config{
		APITitle:   getEnv("API_TITLE", "Gita Guidance Search API"),
		APIVersion: getEnv("API_VERSION", "1.0.0"),
		APIPrefix:  getEnv("API_PREFIX", "/api/v1"),
		Port:       getEnv("PORT", "8081"),

		CompletionAPIURL:  getEnv("COMPLETION_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		CompletionAPIKey:  getEnv("COMPLETION_API_KEY", ""),
		CompletionModel:   getEnv("COMPLETION_MODEL", "deepseek-chat"),
		CompletionTimeout: getEnvDuration("COMPLETION_TIMEOUT_SECONDS", 15) * time.Second,

		VectorBackend: getEnv("VECTOR_BACKEND", "pgvector"), // "pgvector" or "vertex"

		VertexProjectID:            getEnv("VERTEX_PROJECT_ID", ""),
		VertexLocation:             getEnv("VERTEX_LOCATION", "us-central1"),
		VertexIndexEndpointID:      getEnv("VERTEX_INDEX_ENDPOINT_ID", ""),
		VertexDeployedIndexID:      getEnv("VERTEX_DEPLOYED_INDEX_ID", ""),
		VertexPublicEndpointDomain: getEnv("VERTEX_PUBLIC_ENDPOINT_DOMAIN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return time.Duration(i)
		}
	}
	return time.Duration(defaultValue)
}
