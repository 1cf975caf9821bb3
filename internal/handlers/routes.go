package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/auth"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler mounted under /api/v1
type Handlers struct {
	Auth         *auth.Handler
	Health       *HealthHandler
	Client       *ClientHandler
	Onboarding   *OnboardingHandler
	Task         *TaskHandler
	Appointment  *AppointmentHandler
	Reservation  *ReservationHandler
	Document     *DocumentHandler
	Chat         *ChatHandler
	Billing      *BillingHandler
	Notification *NotificationHandler
	Widget       *WidgetHandler
	Settings     *SettingsHandler
	Export       *ExportHandler
	Audit        *AuditHandler
}

// RegisterRoutes mounts the full API surface. Webhook and public
// widget lookups skip auth, everything else requires a bearer token.
func RegisterRoutes(app *fiber.App, h *Handlers, authService *auth.Service) {
	api := app.Group("/api/v1")

	api.Get("/health", h.Health.Check)
	h.Auth.RegisterRoutes(api)

	// Provider callbacks and widget bootstrap carry no user token
	api.Post("/billing/webhook", h.Billing.Webhook)
	api.Get("/billing/plans", h.Billing.GetPlans)
	api.Get("/widget/public/:clientId", h.Widget.GetPublicConfig)

	protected := api.Group("", auth.AuthMiddleware(authService))

	clients := protected.Group("/clients")
	clients.Get("/me", h.Client.GetMe)
	clients.Put("/me", h.Client.UpdateProfile)
	clients.Get("/me/route", h.Client.GetRouteState)
	clients.Put("/me/preferences", h.Client.UpdatePreferences)
	clients.Post("/me/image", h.Client.UploadProfileImage)

	onboarding := protected.Group("/onboarding")
	onboarding.Get("/steps", h.Onboarding.GetSteps)
	onboarding.Post("/finalize", h.Onboarding.Finalize)

	tasks := protected.Group("/tasks")
	tasks.Post("/", h.Task.CreateTask)
	tasks.Get("/", h.Task.ListTasks)
	tasks.Get("/board", h.Task.GetTaskBoard)
	tasks.Get("/:id", h.Task.GetTask)
	tasks.Put("/:id", h.Task.UpdateTask)
	tasks.Patch("/:id/move", h.Task.MoveTask)
	tasks.Delete("/:id", h.Task.DeleteTask)

	appointments := protected.Group("/appointments")
	appointments.Post("/", h.Appointment.CreateAppointment)
	appointments.Get("/", h.Appointment.ListAppointments)
	appointments.Get("/board", h.Appointment.GetAppointmentBoard)
	appointments.Get("/:id", h.Appointment.GetAppointment)
	appointments.Put("/:id", h.Appointment.UpdateAppointment)
	appointments.Patch("/:id/move", h.Appointment.MoveAppointment)
	appointments.Delete("/:id", h.Appointment.DeleteAppointment)

	reservations := protected.Group("/reservations")
	reservations.Post("/", h.Reservation.CreateReservation)
	reservations.Get("/", h.Reservation.ListReservations)
	reservations.Get("/board", h.Reservation.GetReservationBoard)
	reservations.Post("/types", h.Reservation.CreateReservationType)
	reservations.Get("/types", h.Reservation.ListReservationTypes)
	reservations.Delete("/types/:id", h.Reservation.DeleteReservationType)
	reservations.Put("/availability", h.Reservation.UpsertAvailability)
	reservations.Get("/availability", h.Reservation.ListAvailability)
	reservations.Get("/:id", h.Reservation.GetReservation)
	reservations.Put("/:id", h.Reservation.UpdateReservation)
	reservations.Patch("/:id/move", h.Reservation.MoveReservation)
	reservations.Delete("/:id", h.Reservation.DeleteReservation)

	documents := protected.Group("/documents")
	documents.Post("/", h.Document.CreateDocument)
	documents.Post("/upload", h.Document.UploadDocument)
	documents.Get("/tree", h.Document.GetDocumentTree)
	documents.Get("/search", h.Document.SearchDocuments)
	documents.Post("/folders", h.Document.CreateFolder)
	documents.Get("/folders/:id", h.Document.ListFolderDocuments)
	documents.Delete("/folders/:id", h.Document.DeleteFolder)
	documents.Get("/:id", h.Document.GetDocument)
	documents.Get("/:id/download", h.Document.DownloadDocument)
	documents.Put("/:id", h.Document.UpdateDocument)
	documents.Delete("/:id", h.Document.DeleteDocument)

	chat := protected.Group("/chat")
	chat.Post("/messages", h.Chat.SendMessage)
	chat.Get("/messages", h.Chat.GetSessionMessages)
	chat.Post("/analyze", h.Chat.AnalyzeFile)
	chat.Post("/save", h.Chat.SaveGenerated)
	chat.Get("/threads", h.Chat.ListThreads)
	chat.Get("/threads/:id", h.Chat.GetHistory)
	chat.Delete("/threads/:id", h.Chat.DeleteThread)

	billing := protected.Group("/billing")
	billing.Get("/subscription", h.Billing.GetSubscription)
	billing.Get("/tokens", h.Billing.GetTokenSummary)
	billing.Post("/checkout/plan", h.Billing.CreatePlanCheckout)
	billing.Post("/checkout/tokens", h.Billing.CreateTokenCheckout)
	billing.Post("/sandbox/:id/complete", h.Billing.CompleteSandbox)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.ListNotifications)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/stream", h.Notification.Stream)
	notifications.Patch("/read-all", h.Notification.MarkAllRead)
	notifications.Patch("/:id/read", h.Notification.MarkRead)
	notifications.Delete("/:id", h.Notification.DeleteNotification)

	widget := protected.Group("/widget")
	widget.Get("/config", h.Widget.GetConfig)
	widget.Put("/config", h.Widget.UpdateConfig)
	widget.Get("/embed", h.Widget.GetEmbedScript)
	widget.Get("/qr", h.Widget.GetShareQR)

	settings := protected.Group("/settings")
	settings.Get("/business", h.Settings.GetBusinessInfo)
	settings.Put("/business", h.Settings.UpdateBusinessInfo)
	settings.Get("/assistant", h.Settings.GetAssistantConfig)
	settings.Put("/assistant", h.Settings.UpdateAssistantConfig)

	protected.Get("/export/:resource", h.Export.Export)
	protected.Get("/audit", h.Audit.ListAuditLogs)
}
