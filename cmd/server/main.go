// @title Campus Parties API
// @version 1.0
// @description Weekend party listing for campus, with moderation and attendance tracking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusparties/config"
	"campusparties/internal/adapters/auth"
	"campusparties/internal/adapters/email"
	"campusparties/internal/adapters/identity"
	"campusparties/internal/database"
	deliveryhttp "campusparties/internal/delivery/http"
	"campusparties/internal/delivery/http/controllers"
	"campusparties/internal/delivery/http/middleware"
	"campusparties/internal/repository/postgres"
	"campusparties/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	// Database
	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	logger.Info("connected to database")

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	partyRepo := postgres.NewPartyRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)

	// Adapters
	verifier := auth.NewJWTVerifier(cfg.IdentityJWTSecret)
	identityProvider := identity.NewHTTPProvider(nil, cfg.IdentityBaseURL, cfg.IdentityAPIKey)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	profileService := services.NewProfileService(profileRepo, identityProvider, cfg.AllowedEmailDomain)
	partyService := services.NewPartyService(partyRepo, emailService, cfg.ModerationInbox)
	attendanceService := services.NewAttendanceService(partyRepo, attendanceRepo)
	moderationService := services.NewModerationService(partyRepo)

	// Controllers
	authController := controllers.NewAuthController(logger, profileService)
	partyController := controllers.NewPartyController(logger, partyService, attendanceService)
	adminController := controllers.NewAdminController(logger, moderationService)

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig(), logger)
	defer rl.Stop()

	mux := deliveryhttp.NewRouter(logger, verifier, profileService, rl, authController, partyController, adminController)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
