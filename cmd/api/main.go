package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/gita-guidance-search-api/internal/classifier"
	"github.com/gita-guidance-search-api/internal/config"
	"github.com/gita-guidance-search-api/internal/handlers"
	"github.com/gita-guidance-search-api/internal/middleware"
	"github.com/gita-guidance-search-api/internal/repository"
	"github.com/gita-guidance-search-api/internal/repository/postgres"
	"github.com/gita-guidance-search-api/internal/repository/vertex"
	"github.com/gita-guidance-search-api/internal/services"
	pkgconfig "github.com/gita-guidance-search-api/pkg/schema/config"
	"github.com/gita-guidance-search-api/pkg/schema/db"
	pkgservices "github.com/gita-guidance-search-api/pkg/schema/services"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := config.GetConfig()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	// Initialize PostgreSQL
	ctx := context.Background()
	pgDB, err := db.Connect(ctx, pkgconfig.GetConfig().PostgresURI)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	log.Println("Database initialization complete")

	// Create repositories
	problemRepo := postgres.NewProblemRepository(pgDB)

	// Create verse search repository based on configuration
	var verseSearchRepo repository.VerseSearchRepository
	var vertexRepo *vertex.VerseSearchRepository // For cleanup

	switch cfg.VectorBackend {
	case "vertex":
		log.Println("Using Vertex AI Vector Search backend")
		vertexCfg := vertex.Config{
			ProjectID:            cfg.VertexProjectID,
			Location:             cfg.VertexLocation,
			IndexEndpointID:      cfg.VertexIndexEndpointID,
			DeployedIndexID:      cfg.VertexDeployedIndexID,
			PublicEndpointDomain: cfg.VertexPublicEndpointDomain,
		}
		vertexRepo, err = vertex.NewVerseSearchRepository(ctx, vertexCfg, pgDB)
		if err != nil {
			log.Fatalf("Failed to create Vertex AI verse search repository: %v", err)
		}
		verseSearchRepo = vertexRepo
	default:
		log.Println("Using pgvector backend")
		verseSearchRepo = postgres.NewVerseSearchRepository(pgDB)
	}

	// AI classifier is optional; without a key the keyword path serves alone
	var aiClassifier services.Classifier
	if cfg.AIEnabled() {
		log.Println("AI classifier enabled")
		aiClassifier = classifier.NewAIClassifier(
			cfg.CompletionAPIURL, cfg.CompletionAPIKey, cfg.CompletionModel, cfg.CompletionTimeout)
	} else {
		log.Println("AI classifier disabled, keyword classifier only")
	}

	// Create services
	embeddingsSvc := pkgservices.GetEmbeddingsService()
	if err := pkgservices.GetInitError(); err != nil {
		log.Fatalf("Failed to initialize embeddings service: %v", err)
	}

	problemSearchSvc := services.NewProblemSearchService(problemRepo, aiClassifier)
	semanticSearchSvc := services.NewSemanticSearchService(verseSearchRepo, embeddingsSvc)

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Register handlers
	healthHandler := handlers.NewHealthHandler(pgDB)
	healthHandler.RegisterRoutes(api)

	searchHandler := handlers.NewSearchHandler(problemSearchSvc, semanticSearchSvc)
	searchHandler.RegisterRoutes(api)

	// Root health check
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := pgDB.Close(); err != nil {
		log.Printf("Error closing PostgreSQL: %v", err)
	}

	if vertexRepo != nil {
		if err := vertexRepo.Close(); err != nil {
			log.Printf("Error closing Vertex AI client: %v", err)
		}
	}

	log.Println("Server stopped")
}
