package routes

import (
	"net/http"

	"github.com/freelancehub/freelancehub/internal/app"
	"github.com/freelancehub/freelancehub/internal/handler"
	"github.com/freelancehub/freelancehub/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService, app.InviteService, app.Cfg)
	dashboard := handler.NewDashboardHandler(app.DashboardService, app.ActivityService)
	timer := handler.NewTimerHandler(app.TimerService, app.NotificationService)
	clients := handler.NewClientHandler(app.ClientService)
	projects := handler.NewProjectHandler(app.ProjectService)
	invoices := handler.NewInvoiceHandler(app.InvoiceService)
	quotations := handler.NewQuotationHandler(app.QuotationService)
	expenses := handler.NewExpenseHandler(app.ExpenseService)
	notifications := handler.NewNotificationHandler(app.NotificationService)
	reports := handler.NewReportHandler(app.ReportService)
	settings := handler.NewSettingsHandler(app.SettingsService)
	functions := handler.NewFunctionsHandler(app.InvoiceMailer, app.InviteService)
	webhooks := handler.NewWebhookHandler(app.PaymentService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.Index)
	mux.HandleFunc("GET /health", home.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/signup", rateLimiter(middleware.RequireGuest(auth.Signup)))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/magic-link", rateLimiter(middleware.RequireGuest(auth.RequestMagicLink)))
	mux.HandleFunc("GET /auth/magic", auth.VerifyMagicLink)
	mux.HandleFunc("GET /portal/accept", auth.AcceptInvite)
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app/me", middleware.RequireAuth(auth.Me))

	// Dashboard
	mux.HandleFunc("GET /app/dashboard/stats", middleware.RequireAuth(dashboard.Stats))
	mux.HandleFunc("GET /app/dashboard/activity", middleware.RequireAuth(dashboard.Activity))

	// Timer
	mux.HandleFunc("GET /app/timer", middleware.RequireAuth(timer.Current))
	mux.HandleFunc("GET /app/timer/stream", middleware.RequireAuth(timer.Stream))
	mux.HandleFunc("POST /app/timer/start", middleware.RequireAuth(timer.Start))
	mux.HandleFunc("POST /app/timer/stop", middleware.RequireAuth(timer.Stop))

	// Clients
	mux.HandleFunc("GET /app/clients", middleware.RequireAuth(clients.List))
	mux.HandleFunc("GET /app/clients/{id}", middleware.RequireAuth(clients.Get))
	mux.HandleFunc("POST /app/clients", middleware.RequireAuth(clients.Save))
	mux.HandleFunc("DELETE /app/clients/{id}", middleware.RequireAuth(clients.Delete))

	// Projects
	mux.HandleFunc("GET /app/projects", middleware.RequireAuth(projects.List))
	mux.HandleFunc("GET /app/projects/{id}", middleware.RequireAuth(projects.Get))
	mux.HandleFunc("POST /app/projects", middleware.RequireAuth(projects.Save))
	mux.HandleFunc("POST /app/projects/{id}/archive", middleware.RequireAuth(projects.Archive))
	mux.HandleFunc("DELETE /app/projects/{id}", middleware.RequireAuth(projects.Delete))

	// Invoices
	mux.HandleFunc("GET /app/invoices", middleware.RequireAuth(invoices.List))
	mux.HandleFunc("GET /app/invoices/{id}", middleware.RequireAuth(invoices.Get))
	mux.HandleFunc("POST /app/invoices", middleware.RequireAuth(invoices.Save))
	mux.HandleFunc("POST /app/invoices/{id}/status", middleware.RequireAuth(invoices.Transition))
	mux.HandleFunc("DELETE /app/invoices/{id}", middleware.RequireAuth(invoices.Delete))

	// Quotations
	mux.HandleFunc("GET /app/quotations", middleware.RequireAuth(quotations.List))
	mux.HandleFunc("GET /app/quotations/{id}", middleware.RequireAuth(quotations.Get))
	mux.HandleFunc("POST /app/quotations", middleware.RequireAuth(quotations.Save))
	mux.HandleFunc("POST /app/quotations/{id}/status", middleware.RequireAuth(quotations.Transition))
	mux.HandleFunc("DELETE /app/quotations/{id}", middleware.RequireAuth(quotations.Delete))

	// Expenses
	mux.HandleFunc("GET /app/expenses", middleware.RequireAuth(expenses.List))
	mux.HandleFunc("GET /app/expenses/{id}", middleware.RequireAuth(expenses.Get))
	mux.HandleFunc("POST /app/expenses", middleware.RequireAuth(expenses.Save))
	mux.HandleFunc("POST /app/expenses/{id}/receipt", middleware.RequireAuth(expenses.UploadReceipt))
	mux.HandleFunc("GET /app/expenses/{id}/receipt", middleware.RequireAuth(expenses.ReceiptURL))
	mux.HandleFunc("DELETE /app/expenses/{id}", middleware.RequireAuth(expenses.Delete))

	// Notifications
	mux.HandleFunc("GET /app/notifications", middleware.RequireAuth(notifications.Feed))
	mux.HandleFunc("GET /app/notifications/stream", middleware.RequireAuth(notifications.Stream))
	mux.HandleFunc("POST /app/notifications/{id}/read", middleware.RequireAuth(notifications.MarkRead))
	mux.HandleFunc("POST /app/notifications/read-all", middleware.RequireAuth(notifications.MarkAllRead))

	// Reports
	mux.HandleFunc("GET /app/reports/time", middleware.RequireAuth(reports.Time))
	mux.HandleFunc("GET /app/reports/expenses", middleware.RequireAuth(reports.Expenses))

	// Settings
	mux.HandleFunc("GET /app/settings", middleware.RequireAuth(settings.Get))
	mux.HandleFunc("PUT /app/settings", middleware.RequireAuth(settings.Update))

	// ============================================================================
	// SERVER FUNCTIONS
	// ============================================================================

	mux.HandleFunc("POST /functions/send-invoice-email", middleware.RequireAuth(functions.SendInvoiceEmail))
	mux.HandleFunc("POST /functions/invite-client", middleware.RequireAuth(functions.InviteClient))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/stripe", webhooks.Stripe)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserRepo, app.ProfileRepo, app.Cfg),
		middleware.WithURLPath,
	)
}
