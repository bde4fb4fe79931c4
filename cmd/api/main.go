package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/config"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/handlers"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/repositories"
	"github.com/Banoth-Rajesham/ai-interview-app/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParser()
	reportService := services.NewReportService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Speech engine (pluggable, may be disabled)
	speechService := services.NewSpeechService(cfg.Speech, cfg.Storage.AudioCachePath)
	log.Printf("✅ Speech engine '%s' initialized\n", cfg.Speech.Engine)

	// Static fallback questions for when generation fails
	fallbackQuestions, err := config.LoadStaticQuestions(cfg.Interview.QuestionsPath)
	if err != nil {
		log.Printf("⚠️ Static questions unavailable (%v), using built-in default\n", err)
	} else {
		log.Printf("✅ Loaded %d static fallback questions\n", len(fallbackQuestions))
	}

	// Core interview services
	questionService := services.NewQuestionService(geminiService, fallbackQuestions, 3)
	evaluatorService := services.NewAnswerEvaluator(geminiService, vectorStore, 3)
	summarizerService := services.NewSummarizer(geminiService, 3)

	sessionManager := services.NewSessionManager(
		questionService,
		evaluatorService,
		summarizerService,
		speechService,
		docRepo,
		cfg.Interview.DefaultCount,
		cfg.Interview.TransitionPause,
	)
	log.Println("✅ Session manager initialized")

	// Initialize resume ingestion worker
	worker := services.NewIngestionWorker(
		docRepo,
		geminiService,
		vectorStore,
		cfg.Worker.Concurrency,
	)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Ingestion worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		resumeParser,
		worker,
		vectorStore,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(sessionManager, storageService)
	reportHandler := handlers.NewReportHandler(sessionManager, reportService, interviewRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/resumes", uploadHandler.HandleUpload)
	api.Delete("/resumes/:id", uploadHandler.HandleDelete)
	api.Post("/interviews", interviewHandler.HandleStart)
	api.Post("/interviews/:id/answers", interviewHandler.HandleAnswer)
	api.Get("/interviews/:id", interviewHandler.HandleStatus)
	api.Get("/interviews/:id/report", reportHandler.HandleGetReport)
	api.Get("/reports", reportHandler.HandleListReports)

	// Synthesized question audio
	api.Static("/audio", cfg.Storage.AudioCachePath)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"DELETE /api/v1/resumes/:id",
				"POST /api/v1/interviews",
				"POST /api/v1/interviews/:id/answers",
				"GET /api/v1/interviews/:id",
				"GET /api/v1/interviews/:id/report",
				"GET /api/v1/reports",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
