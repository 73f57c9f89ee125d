package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/avibn/lanten-sub001/internal/app"
	"github.com/avibn/lanten-sub001/internal/config"
	"github.com/avibn/lanten-sub001/internal/controllers"
	"github.com/avibn/lanten-sub001/internal/middleware"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/routes"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)
	sessionRepo := repositories.NewSessionRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	leaseTenantRepo := repositories.NewLeaseTenantRepository(application.DB)
	announcementRepo := repositories.NewAnnouncementRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	reminderRepo := repositories.NewReminderRepository(application.DB)
	documentRepo := repositories.NewDocumentRepository(application.DB)
	messageRepo := repositories.NewMessageRepository(application.DB)

	//----------------------------------------------------------------------
	// Infrastructure services
	//----------------------------------------------------------------------
	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail)

	blobs, err := services.NewS3BlobStore(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize blob storage")
	}

	//----------------------------------------------------------------------
	// Domain services
	//----------------------------------------------------------------------
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	propertyService := services.NewPropertyService(propertyRepo, blobs)
	leaseService := services.NewLeaseService(leaseRepo, propertyRepo, leaseTenantRepo)
	tenantService := services.NewTenantService(
		leaseRepo, leaseTenantRepo, mailer,
		cfg.InviteSigningKey, cfg.InviteTTL, cfg.ClientURL,
	)
	announcementService := services.NewAnnouncementService(announcementRepo, leaseRepo, leaseTenantRepo, mailer)
	paymentService := services.NewPaymentService(paymentRepo, reminderRepo, leaseRepo, leaseTenantRepo)
	reminderService := services.NewReminderService(reminderRepo, paymentRepo, leaseRepo)
	documentService := services.NewDocumentService(documentRepo, leaseRepo, leaseTenantRepo, blobs)
	messageService := services.NewMessageService(messageRepo, userRepo, leaseTenantRepo)
	digestService := services.NewDigestService(reminderRepo, mailer)
	sessionCleanupService := services.NewSessionCleanupService(sessionRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	userController := controllers.NewUserController(authService, cfg.SessionTTL, cfg.SecureCookies)
	propertyController := controllers.NewPropertyController(propertyService)
	leaseController := controllers.NewLeaseController(leaseService)
	tenantController := controllers.NewTenantController(tenantService)
	announcementController := controllers.NewAnnouncementController(announcementService)
	paymentController := controllers.NewPaymentController(paymentService)
	reminderController := controllers.NewReminderController(reminderService)
	documentController := controllers.NewDocumentController(documentService)
	messageController := controllers.NewMessageController(messageService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods("GET")
	router.HandleFunc(routes.SignUp, userController.SignUpHandler).Methods("POST")
	router.HandleFunc(routes.Login, userController.LoginHandler).Methods("POST")

	authMW := middleware.AuthMiddleware(sessionRepo, cfg.SessionTTL, cfg.SecureCookies)

	// Authenticated, any role.
	protected := router.NewRoute().Subrouter()
	protected.Use(authMW)
	protected.HandleFunc(routes.Logout, userController.LogoutHandler).Methods("POST")
	protected.HandleFunc(routes.Me, userController.GetMeHandler).Methods("GET")

	protected.HandleFunc(routes.UserMessages, messageController.ConversationHandler).Methods("GET")
	protected.HandleFunc(routes.UserMessages, messageController.SendHandler).Methods("POST")
	protected.HandleFunc(routes.MessageChannels, messageController.GetChannelsHandler).Methods("GET")
	protected.HandleFunc(routes.Message, messageController.DeleteHandler).Methods("DELETE")

	protected.HandleFunc(routes.Leases, leaseController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.Lease, leaseController.GetHandler).Methods("GET")
	protected.HandleFunc(routes.LeaseTenants, tenantController.ListHandler).Methods("GET")

	protected.HandleFunc(routes.LeaseAnnouncements, announcementController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.Announcement, announcementController.GetHandler).Methods("GET")

	protected.HandleFunc(routes.LeasePayments, paymentController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.Payment, paymentController.GetHandler).Methods("GET")

	protected.HandleFunc(routes.LeaseDocuments, documentController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.LeaseDocuments, documentController.CreateHandler).Methods("POST")
	protected.HandleFunc(routes.Document, documentController.GetHandler).Methods("GET")
	protected.HandleFunc(routes.Document, documentController.RenameHandler).Methods("PUT")
	protected.HandleFunc(routes.Document, documentController.DeleteHandler).Methods("DELETE")

	// Landlord only.
	landlord := router.NewRoute().Subrouter()
	landlord.Use(authMW, middleware.RequireRole(models.UserTypeLandlord))
	landlord.HandleFunc(routes.Properties, propertyController.ListHandler).Methods("GET")
	landlord.HandleFunc(routes.Properties, propertyController.CreateHandler).Methods("POST")
	landlord.HandleFunc(routes.Property, propertyController.GetHandler).Methods("GET")
	landlord.HandleFunc(routes.Property, propertyController.UpdateHandler).Methods("PUT")
	landlord.HandleFunc(routes.Property, propertyController.DeleteHandler).Methods("DELETE")

	landlord.HandleFunc(routes.Leases, leaseController.CreateHandler).Methods("POST")
	landlord.HandleFunc(routes.Lease, leaseController.UpdateHandler).Methods("PUT")
	landlord.HandleFunc(routes.Lease, leaseController.DeleteHandler).Methods("DELETE")
	landlord.HandleFunc(routes.LeaseDescription, leaseController.UpdateDescriptionHandler).Methods("PUT")

	landlord.HandleFunc(routes.LeaseTenantInvites, tenantController.InviteHandler).Methods("POST")
	landlord.HandleFunc(routes.LeaseTenantRemove, tenantController.RemoveHandler).Methods("POST")

	landlord.HandleFunc(routes.LeaseAnnouncements, announcementController.CreateHandler).Methods("POST")
	landlord.HandleFunc(routes.Announcement, announcementController.UpdateHandler).Methods("PUT")
	landlord.HandleFunc(routes.Announcement, announcementController.DeleteHandler).Methods("DELETE")

	landlord.HandleFunc(routes.LeasePayments, paymentController.CreateHandler).Methods("POST")
	landlord.HandleFunc(routes.Payment, paymentController.UpdateHandler).Methods("PUT")
	landlord.HandleFunc(routes.Payment, paymentController.DeleteHandler).Methods("DELETE")

	landlord.HandleFunc(routes.PaymentReminders, reminderController.ListHandler).Methods("GET")
	landlord.HandleFunc(routes.PaymentReminders, reminderController.CreateHandler).Methods("POST")
	landlord.HandleFunc(routes.Reminder, reminderController.UpdateHandler).Methods("PUT")
	landlord.HandleFunc(routes.Reminder, reminderController.DeleteHandler).Methods("DELETE")

	// Tenant only.
	tenant := router.NewRoute().Subrouter()
	tenant.Use(authMW, middleware.RequireRole(models.UserTypeTenant))
	tenant.HandleFunc(routes.LeaseJoin, tenantController.JoinHandler).Methods("POST")
	tenant.HandleFunc(routes.LeaseTenantLeave, tenantController.LeaveHandler).Methods("POST")

	//----------------------------------------------------------------------
	// Scheduled jobs
	//----------------------------------------------------------------------
	scheduler := cron.New()

	_, schErr := scheduler.AddFunc("0 7 * * *", func() {
		if e := digestService.SendDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled reminder digest failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule reminder digest job")
	}

	_, schErr = scheduler.AddFunc("0 3 * * *", func() {
		if e := sessionCleanupService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled session cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule session cleanup job")
	}

	scheduler.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Cache-Tag"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
