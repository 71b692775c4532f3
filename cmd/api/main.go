package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/config"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/handlers"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/services"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/shared/utils"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	// Init logger
	utils.InitLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("🚀 Starting ai-data-analyst API")

	// Init LLM service (multi-provider support)
	llmService, err := llm.NewService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM service")
	}
	log.Info().Str("provider", llmService.GetProviderName()).Msg("🤖 Using LLM provider")

	// Init repositories
	datasetRepo := repositories.NewDatasetRepo(cfg.DatasetTTL)

	// Init services
	analysisService := services.NewAnalysisService(llmService)
	cleanupService := services.NewCleanupService(datasetRepo)
	if err := cleanupService.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start cleanup scheduler")
	}
	defer cleanupService.Stop()

	// Init handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analysisService, cfg.Env)
	datasetHandler := handlers.NewDatasetHandler(datasetRepo, analysisService, cfg.Env)
	healthHandler := handlers.NewHealthHandler(llmService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "AI Data Analyst API",
	})

	// Middleware
	app.Use(cors.New())

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Analysis route (stateless, data di body)
	app.Post("/analyze", analyzeHandler.Analyze)

	// Dataset routes (stored datasets)
	app.Post("/datasets", datasetHandler.Create)
	app.Get("/datasets", datasetHandler.List)
	app.Post("/datasets/:id/analyze", datasetHandler.Analyze)

	// Start server di goroutine supaya bisa graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Msg("✅ ai-data-analyst API running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down ai-data-analyst API...")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
	log.Info().Msg("👋 Goodbye!")
}
