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

	"jobcompass/related-jobs/internal/config"
	"jobcompass/related-jobs/internal/handlers"
	"jobcompass/related-jobs/internal/repositories"
	"jobcompass/related-jobs/internal/services"
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
	jobRepo := repositories.NewJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	normalizer := services.NewTextNormalizer()
	builder := services.NewDocumentBuilder(normalizer)

	indexStore := services.NewIndexStore(cfg.Index.ModelPath, cfg.Index.ExportPath)
	if err := indexStore.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to create index directories: %v", err)
	}

	// Serve the last published bundle, if any, until the first recompute lands
	if err := indexStore.LoadFromDisk(); err != nil {
		log.Printf("⚠️  Failed to load persisted index: %v\n", err)
	}

	suggester := services.NewSuggester(indexStore, normalizer)
	log.Println("✅ Services initialized successfully")

	// Initialize recompute scheduler
	recompute := services.NewRecomputeService(
		jobRepo,
		builder,
		indexStore,
		cfg.Recompute.Interval,
		cfg.Recompute.RelatedJobs,
	)

	ctx := context.Background()
	recompute.Start(ctx)

	// Initialize handlers
	suggestHandler := handlers.NewSuggestHandler(suggester)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Related Jobs API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
	suggest := api.Group("/suggest")
	suggest.Get("/related-jobs/:id", suggestHandler.HandleRelatedJobs)
	suggest.Post("/job-suggestions", suggestHandler.HandleJobSuggestions)
	suggest.Post("/query", suggestHandler.HandleQuery)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Related Jobs API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/suggest/related-jobs/:id",
				"POST /api/v1/suggest/job-suggestions",
				"POST /api/v1/suggest/query",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		recompute.Stop()
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
