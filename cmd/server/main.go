package main

import (
	"fmt"
	"log"

	"taxsage/internal/config"
	"taxsage/internal/email/noop"
	"taxsage/internal/email/ses"
	"taxsage/internal/handler"
	"taxsage/internal/port"
	"taxsage/internal/repository/postgres"
	"taxsage/internal/router"
	"taxsage/internal/service"
	s3storage "taxsage/internal/storage/s3"
	"taxsage/internal/validator"
)

// @title           TaxSage API
// @version         1.0
// @description     ITR filing assistant: guided ITR-1 preparation, tax computation under both regimes, CA reviews, and e-filing exports.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	profileRepo := postgres.NewCAProfileRepo(db)
	filingRepo := postgres.NewFilingRepo(db)
	reviewRepo := postgres.NewReviewRequestRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Validation rules are fixed at startup
	engine := validator.NewEngine(validator.DefaultRegistry())

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	caSvc := service.NewCAService(profileRepo, userRepo)
	filingSvc := service.NewFilingService(filingRepo, engine)
	reviewSvc := service.NewReviewService(reviewRepo, filingRepo, userRepo, profileRepo, emailSender)
	fileSvc := service.NewFileService(fileRepo, filingRepo, s3Client, &cfg.S3)
	reportSvc := service.NewReportService(filingRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	caH := handler.NewCAHandler(caSvc)
	filingH := handler.NewFilingHandler(filingSvc, reportSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, userH, caH, filingH, reviewH, fileH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
