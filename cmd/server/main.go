package main

import (
	"context"
	"log"
	"os"

	"nyaya-backend/handlers"
	"nyaya-backend/legaldata"
	"nyaya-backend/repository"
	"nyaya-backend/service"
	"nyaya-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	// Postgres is optional: without DATABASE_URL the server runs with
	// in-memory state only
	db := initPostgres(ctx)
	if db != nil {
		defer db.Close()
	}

	// Initialize dataset storage
	dataStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Load legal datasets
	loader, err := legaldata.NewLoader(ctx, dataStorage)
	if err != nil {
		log.Fatalf("Failed to load legal datasets: %v", err)
	}

	// Initialize repositories (nil when Postgres is unavailable)
	var (
		traceRepo    *repository.TraceRepository
		feedbackRepo *repository.FeedbackRepository
		decisionRepo *repository.DecisionRepository
		apiKeyRepo   *repository.APIKeyRepository
	)
	if db != nil {
		traceRepo = repository.NewTraceRepository(db)
		feedbackRepo = repository.NewFeedbackRepository(db)
		decisionRepo = repository.NewDecisionRepository(db)
		apiKeyRepo = repository.NewAPIKeyRepository(db)
	}

	// Initialize Gemini client (optional, used for response summaries)
	geminiClient := initGemini(ctx)

	// Initialize services
	enforcementService := service.NewEnforcementService(
		service.EnforcementWithDecisionRepository(decisionRepo),
		service.EnforcementWithSigningKey(os.Getenv("NYAYA_SIGNING_KEY")),
	)

	feedbackService := service.NewFeedbackService(
		service.FeedbackWithRepository(feedbackRepo),
		service.FeedbackWithTraceRepository(traceRepo),
		service.FeedbackWithEnforcement(enforcementService),
	)
	if db != nil {
		if err := feedbackService.LoadMemory(ctx); err != nil {
			log.Printf("Warning: Failed to load feedback memory: %v", err)
		}
	}

	queryService := service.NewQueryService(
		service.QueryWithLoader(loader),
		service.QueryWithEnforcement(enforcementService),
		service.QueryWithFeedback(feedbackService),
		service.QueryWithTraceRepository(traceRepo),
		service.QueryWithFeedbackRepository(feedbackRepo),
		service.QueryWithDecisionRepository(decisionRepo),
		service.QueryWithGeminiClient(geminiClient),
	)

	// Initialize handlers
	queryHandler := handlers.NewQueryHandler(queryService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"datasets":     loader.LoadedDatasets(),
			"persistence":  db != nil,
			"summary_mode": geminiClient != nil,
		})
	})

	// API routes
	api := r.Group("/api")
	api.Use(handlers.APIKeyAuth(loadAPIKeyHashes(ctx, apiKeyRepo)))
	{
		// Legal query endpoints
		api.POST("/legal/query", queryHandler.LegalQuery)
		api.POST("/legal/multi-jurisdiction", queryHandler.MultiJurisdiction)

		// Feedback endpoint
		api.POST("/feedback", feedbackHandler.SubmitFeedback)

		// Trace endpoints
		api.GET("/trace/:id", queryHandler.GetTrace)
		api.GET("/traces", queryHandler.ListTraces)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres(ctx context.Context) *pgxpool.Pool {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Println("DATABASE_URL not set, running without persistence")
		return nil
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Printf("Warning: Failed to connect to Postgres, running without persistence: %v", err)
		return nil
	}

	if err := pool.Ping(ctx); err != nil {
		log.Printf("Warning: Postgres unreachable, running without persistence: %v", err)
		pool.Close()
		return nil
	}

	log.Println("Postgres connection established")
	return pool
}

func initGemini(ctx context.Context) *genai.Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, response summaries disabled")
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Warning: Failed to initialize Gemini, response summaries disabled: %v", err)
		return nil
	}

	log.Println("Gemini client initialized")
	return client
}

func loadAPIKeyHashes(ctx context.Context, repo *repository.APIKeyRepository) []string {
	if repo == nil {
		return nil
	}
	hashes, err := repo.ListHashes(ctx)
	if err != nil {
		log.Printf("Warning: Failed to load API key hashes, auth disabled: %v", err)
		return nil
	}
	if len(hashes) > 0 {
		log.Printf("API key auth enabled with %d keys", len(hashes))
	}
	return hashes
}
