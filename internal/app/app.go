package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/db"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
	"github.com/freelancehub/freelancehub/internal/service/mail"
	"github.com/freelancehub/freelancehub/internal/storage"
)

type App struct {
	Cfg *config.Config
	DB  *sqlx.DB

	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository

	AuthService         *service.AuthService
	TimerService        *service.TimerService
	ActivityService     *service.ActivityService
	DashboardService    *service.DashboardService
	ClientService       *service.ClientService
	ProjectService      *service.ProjectService
	InvoiceService      *service.InvoiceService
	QuotationService    *service.QuotationService
	ExpenseService      *service.ExpenseService
	NotificationService *service.NotificationService
	SettingsService     *service.SettingsService
	ReportService       *service.ReportService
	PaymentService      *service.PaymentService
	InviteService       *service.InviteService
	InvoiceMailer       *service.InvoiceMailer
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	companyRepository := repository.NewCompanyRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	clientRepository := repository.NewClientRepository(database)
	projectRepository := repository.NewProjectRepository(database)
	timeEntryRepository := repository.NewTimeEntryRepository(database)
	invoiceRepository := repository.NewInvoiceRepository(database)
	quotationRepository := repository.NewQuotationRepository(database)
	expenseRepository := repository.NewExpenseRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)
	settingsRepository := repository.NewSettingsRepository(database)

	// Storage
	receiptStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	mailFactory := mail.NewFactory(cfg.ResendAPIKey, cfg.IsDevelopment())

	settingsService := service.NewSettingsService(settingsRepository)
	notificationService := service.NewNotificationService(notificationRepository)
	timerService := service.NewTimerService(timeEntryRepository)
	activityService := service.NewActivityService(timeEntryRepository, invoiceRepository)
	dashboardService := service.NewDashboardService(
		timeEntryRepository,
		invoiceRepository,
		expenseRepository,
		projectRepository,
		clientRepository,
	)
	clientService := service.NewClientService(clientRepository)
	projectService := service.NewProjectService(projectRepository, clientRepository)
	invoiceService := service.NewInvoiceService(invoiceRepository, clientRepository)
	quotationService := service.NewQuotationService(quotationRepository, clientRepository)
	expenseService := service.NewExpenseService(expenseRepository, receiptStorage)
	reportService := service.NewReportService(timeEntryRepository, expenseRepository, projectRepository)
	paymentService := service.NewPaymentService(cfg, invoiceService)
	authService := service.NewAuthService(
		cfg,
		userRepository,
		profileRepository,
		companyRepository,
		settingsRepository,
		tokenRepository,
		mailFactory,
	)
	inviteService := service.NewInviteService(
		cfg,
		clientRepository,
		userRepository,
		tokenRepository,
		companyRepository,
		mailFactory,
	)
	invoiceMailer := service.NewInvoiceMailer(
		cfg,
		invoiceService,
		paymentService,
		notificationService,
		clientRepository,
		companyRepository,
		invoiceRepository,
		settingsService,
		mailFactory,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		UserRepo:            userRepository,
		ProfileRepo:         profileRepository,
		AuthService:         authService,
		TimerService:        timerService,
		ActivityService:     activityService,
		DashboardService:    dashboardService,
		ClientService:       clientService,
		ProjectService:      projectService,
		InvoiceService:      invoiceService,
		QuotationService:    quotationService,
		ExpenseService:      expenseService,
		NotificationService: notificationService,
		SettingsService:     settingsService,
		ReportService:       reportService,
		PaymentService:      paymentService,
		InviteService:       inviteService,
		InvoiceMailer:       invoiceMailer,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
