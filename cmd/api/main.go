package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/chat"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/vector"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/handlers"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/utils"
)

// @title AI Assistant Dashboard API
// @version 1.0
// @description API documentation for the AI Assistant Dashboard
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@ai-assistant-dashboard.com
// @license.name MIT
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger()
	log.Printf("🚀 Starting api on port %s", cfg.Port)

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Infrastructure
	bus := events.NewBus()
	auditSvc := audit.NewService(db.GORM)
	emailSvc := email.NewService(cfg)
	llmSvc := llm.NewService(cfg)

	uploadSvc, err := upload.NewService(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload provider: %v", err)
	}

	// Semantic search is optional, the document module degrades to
	// plain storage without it
	var vectorSvc *vector.Service
	if cfg.VectorProvider == "qdrant" && cfg.QdrantURL != "" {
		qdrant, err := vector.NewQdrantProvider(cfg.QdrantURL, cfg.QdrantAPIKey)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Qdrant: %v", err)
		}
		embedding, err := vector.NewOpenAIEmbeddingProvider(cfg.OpenAIKey, "")
		if err != nil {
			log.Fatalf("❌ Failed to create embedding provider: %v", err)
		}
		vectorSvc = vector.NewService(qdrant, embedding)
		if err := vectorSvc.Initialize(context.Background()); err != nil {
			log.Fatalf("❌ Failed to initialize vector DB: %v", err)
		}
	} else {
		log.Println("⚠️ Vector search disabled, document search unavailable")
	}

	gateway, err := payment.NewGateway(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize checkout gateway: %v", err)
	}

	// Repositories
	clientRepo := repositories.NewClientRepo(db.GORM)
	subRepo := repositories.NewSubscriptionRepo(db.GORM)
	taskRepo := repositories.NewTaskRepo(db.GORM)
	apptRepo := repositories.NewAppointmentRepo(db.GORM)
	resRepo := repositories.NewReservationRepo(db.GORM)
	docRepo := repositories.NewDocumentRepo(db.GORM)
	convRepo := repositories.NewConversationRepo(db.GORM)
	notifRepo := repositories.NewNotificationRepo(db.GORM)
	usageRepo := repositories.NewTokenUsageRepo(db.GORM)
	infoRepo := repositories.NewBusinessInfoRepo(db.GORM)
	assistantRepo := repositories.NewAssistantConfigRepo(db.GORM)
	widgetRepo := repositories.NewWidgetConfigRepo(db.GORM)

	// Services
	authService := auth.NewService(db.GORM, cfg.JWTSecret)
	retriever := kb.NewRetriever(db.GORM, vectorSvc)
	chatStore := chat.NewStore()

	clientService := services.NewClientService(clientRepo, subRepo, uploadSvc, auditSvc)
	taskService := services.NewTaskService(taskRepo, auditSvc)
	apptService := services.NewAppointmentService(apptRepo, notifRepo, bus, emailSvc, auditSvc)
	resService := services.NewReservationService(resRepo, notifRepo, bus, auditSvc)
	docService := services.NewDocumentService(docRepo, vectorSvc, uploadSvc, auditSvc)
	chatService := services.NewChatService(convRepo, subRepo, usageRepo, retriever, llmSvc, uploadSvc, chatStore, bus)
	billingService := services.NewBillingService(gateway, subRepo, usageRepo, notifRepo, bus, auditSvc, cfg)
	onboardingService := services.NewOnboardingService(clientRepo, infoRepo, assistantRepo, subRepo, widgetRepo, resRepo, auditSvc)
	notifService := services.NewNotificationService(notifRepo, bus)
	widgetService := services.NewWidgetService(widgetRepo, auditSvc, cfg)
	settingsService := services.NewSettingsService(infoRepo, assistantRepo, auditSvc)

	// Background sweeps
	sweeper := scheduler.NewSweeper(db.GORM, bus, emailSvc)
	sched := scheduler.New(sweeper)
	if err := sched.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Local uploads are served straight from disk
	if cfg.UploadProvider == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	handlers.RegisterRoutes(app, &handlers.Handlers{
		Auth:         auth.NewHandler(authService),
		Health:       handlers.NewHealthHandler(db.GORM),
		Client:       handlers.NewClientHandler(clientService),
		Onboarding:   handlers.NewOnboardingHandler(onboardingService),
		Task:         handlers.NewTaskHandler(taskService),
		Appointment:  handlers.NewAppointmentHandler(apptService),
		Reservation:  handlers.NewReservationHandler(resService),
		Document:     handlers.NewDocumentHandler(docService),
		Chat:         handlers.NewChatHandler(chatService, docService),
		Billing:      handlers.NewBillingHandler(billingService),
		Notification: handlers.NewNotificationHandler(notifService, bus),
		Widget:       handlers.NewWidgetHandler(widgetService),
		Settings:     handlers.NewSettingsHandler(settingsService),
		Export:       handlers.NewExportHandler(taskService, apptService, resService),
		Audit:        handlers.NewAuditHandler(auditSvc),
	}, authService)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 API running at :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
	log.Println("✅ Server stopped")
}
