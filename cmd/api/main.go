package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentmatch-backend/config"
	_ "talentmatch-backend/docs" // Important for Swagger
	"talentmatch-backend/internal/cv"
	v1 "talentmatch-backend/internal/delivery/http/v1"
	"talentmatch-backend/internal/repository/postgres"
	"talentmatch-backend/internal/repository/redisstore"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/database"
	"talentmatch-backend/pkg/logger"
	"talentmatch-backend/pkg/redis"
	"talentmatch-backend/pkg/storage"
	"talentmatch-backend/pkg/upload"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           TalentMatch Backend API
// @version         1.0
// @description     Talent-creation wizard and consultant management backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentmatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (wizard session store, in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, wizard sessions are process-local", "error", err)
	}
	defer redis.Close()

	// 5. Setup Object Storage
	var store *storage.Client
	if cfg.S3AccessKey != "" {
		store, err = storage.NewClient(context.Background(), storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Log.Error("Failed to init object storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("Object storage not configured - photo uploads will be unavailable")
	}

	// 6. Setup Repositories
	consultantRepo := postgres.NewConsultantRepository(dbPool)
	sessionTTL := time.Duration(cfg.WizardSessionTTL) * time.Minute
	wizardRepo := redisstore.NewWizardRepository(redis.Client(), sessionTTL)

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	photoValidator := upload.NewValidator(cfg.UploadMaxSizeMB, cfg.UploadExtensions)
	cvParser := cv.NewParser(os.TempDir())

	consultantUC := usecase.NewConsultantUsecase(consultantRepo, validate)
	cvAnalysisUC := usecase.NewCvAnalysisUsecase(cvParser)
	healthUC := usecase.NewHealthUsecase(dbPool, store)

	var uploader usecase.PhotoUploader
	if store != nil {
		uploader = store
	}
	wizardUC := usecase.NewWizardUsecase(
		wizardRepo,
		consultantRepo,
		uploader,
		photoValidator,
		validate,
		usecase.Options{StrictSteps: cfg.WizardStrictSteps},
	)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		WizardUC:       wizardUC,
		ConsultantUC:   consultantUC,
		CvAnalysisUC:   cvAnalysisUC,
		HealthUC:       healthUC,
		Storage:        store,
		PhotoValidator: photoValidator,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
