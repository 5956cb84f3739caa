package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"
	_ "time/tzdata"

	"github.com/nguyensartoro/property-management-system-backend/internal/app"
	"github.com/nguyensartoro/property-management-system-backend/internal/config"
	"github.com/nguyensartoro/property-management-system-backend/internal/constants"
	"github.com/nguyensartoro/property-management-system-backend/internal/controllers"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/routes"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	store := repositories.NewStore(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), store); err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	// Security
	registry := security.NewRoleRegistry()
	if cfg.RolePermissionsJSON != "" {
		registry, err = security.NewRoleRegistryFromJSON(cfg.RolePermissionsJSON)
		if err != nil {
			utils.Logger.Fatal("Invalid ROLE_PERMISSIONS_JSON:", err)
		}
		utils.Logger.Info("Role grant table loaded from ROLE_PERMISSIONS_JSON")
	}
	resolver := security.NewOwnershipResolver(store)
	evaluator := security.NewPermissionEvaluator(registry, resolver, store)
	tokens := security.NewTokenManager(cfg.RSAPrivateKey, cfg.RSAPublicKey, constants.AppName, cfg.TokenExpiry)

	// Notifications
	notifier := services.NewNotificationService(
		services.NotifierConfig{
			OrganizationName: cfg.OrganizationName,
			FromEmail:        cfg.LDFlag_SendgridFromEmail,
			TwilioFromNumber: cfg.LDFlag_TwilioFromPhone,
			SandboxMode:      cfg.LDFlag_SendgridSandboxMode,
		},
		sendgrid.NewSendClient(cfg.SendGridAPIKey),
		twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
	)

	// Services
	authService := services.NewAuthService(store, tokens)
	propertyService := services.NewPropertyService(store, evaluator)
	roomService := services.NewRoomService(store, evaluator)
	renterService := services.NewRenterService(store, evaluator)
	contractService := services.NewContractService(store, evaluator, notifier, cfg.LDFlag_ReleaseRoomAnyActiveContract)
	paymentService := services.NewPaymentService(store, evaluator, notifier)
	maintenanceService := services.NewMaintenanceService(store, evaluator)
	documentService := services.NewDocumentService(store, evaluator)
	sweepService := services.NewSweepService(store, contractService, notifier)

	// Controllers
	healthController := controllers.NewHealthController()
	authController := controllers.NewAuthController(authService)
	propertyController := controllers.NewPropertyController(propertyService, roomService)
	roomController := controllers.NewRoomController(roomService, contractService, maintenanceService)
	renterController := controllers.NewRenterController(renterService, paymentService, documentService)
	contractController := controllers.NewContractController(contractService)
	paymentController := controllers.NewPaymentController(paymentService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	documentController := controllers.NewDocumentController(documentService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthRegister, authController.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	// Secured routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(tokens))

	secured.HandleFunc(routes.AuthProfile, authController.ProfileHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Properties, propertyController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Properties, propertyController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyRooms, propertyController.ListRoomsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Rooms, roomController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.RoomByID, roomController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RoomByID, roomController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.RoomByID, roomController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.RoomContracts, roomController.ListContractsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RoomMaintenance, roomController.ListMaintenanceHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Renters, renterController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.RenterByID, renterController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RenterByID, renterController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.RenterByID, renterController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.RenterPayments, renterController.ListPaymentsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RenterDocuments, renterController.ListDocumentsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Contracts, contractController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractByID, contractController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ContractByID, contractController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.ContractByID, contractController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ContractTerminate, contractController.TerminateHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Payments, paymentController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentByID, paymentController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentByID, paymentController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.PaymentByID, paymentController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PaymentMarkPaid, paymentController.MarkPaidHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Maintenance, maintenanceController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.MaintenanceByID, maintenanceController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.MaintenanceByID, maintenanceController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.MaintenanceByID, maintenanceController.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Documents, documentController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DocumentByID, documentController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DocumentByID, documentController.DeleteHandler).Methods(http.MethodDelete)

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))

	expirySpec := constants.ContractExpiryCronSpec
	overdueSpec := constants.OverduePaymentCronSpec
	if cfg.LDFlag_ShortTokenTTL {
		expirySpec = constants.ShortSweepCronSpec
		overdueSpec = constants.ShortSweepCronSpec
		utils.Logger.Warnf("Using short sweep cron spec: '%s'", constants.ShortSweepCronSpec)
	}

	_, err = c.AddFunc(expirySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ContractExpiryJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting contract expiry sweep...")
		sweepService.ExpireContracts(ctx)
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule contract expiry sweep")
	}

	_, err = c.AddFunc(overdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.OverduePaymentJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting overdue payment sweep...")
		sweepService.MarkOverduePayments(ctx)
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule overdue payment sweep")
	}

	c.Start()
	utils.Logger.Info("Scheduled lifecycle sweep cron jobs")

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, constants.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Server failed to start:", err)
	}
}
