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

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/session"
	"alfredoptarigan/resume-analyzer/internal/views"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	analyzerClient := services.NewAnalyzerClient(cfg.Client.BackendURL, cfg.Client.RequestTimeout)
	log.Printf("✅ Analysis service at %s\n", cfg.Client.BackendURL)

	renderer, err := views.New()
	if err != nil {
		log.Fatalf("❌ Failed to load views: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := session.NewManager(analyzerClient, cfg.Web.SessionTTL)
	sessions.Start(ctx, cfg.Web.SweepPeriod)
	resolver := handlers.NewSessionResolver(sessions, cfg.Web.SessionTTL)

	uploadHandler := handlers.NewUploadHandler(ctx, resolver, renderer)
	resultHandler := handlers.NewResultHandler(resolver, renderer)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Web.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterWebRoutes(app, uploadHandler, resultHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sessions.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Web.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	if cfg.IsDevelopment() {
		log.Printf("📖 Open http://localhost%s\n", addr)
	}

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
