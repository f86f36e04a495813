package main

import (
	"alcyxob/liftlog/internal/api"
	"alcyxob/liftlog/internal/config"
	"alcyxob/liftlog/internal/logging"
	"alcyxob/liftlog/internal/repository/mongo"
	"alcyxob/liftlog/internal/service"
	"alcyxob/liftlog/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// @title LiftLog API
// @version 1.0
// @description Live workout logging: sessions, sets, timers and set videos.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logFile := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Info("starting liftlog server")

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be set")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	go func() { // Index creation must not delay startup
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.WithError(err).Error("failed to ensure indexes")
			return
		}
		log.Debug("indexes ensured")
	}()

	// --- Initialize Storage ---
	storageCtx, cancelStorage := context.WithTimeout(context.Background(), 30*time.Second)
	fileStorage, err := storage.NewS3Storage(storageCtx, cfg.S3)
	cancelStorage()
	if err != nil {
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- Repositories and Services ---
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	uploadRepo := mongo.NewMongoVideoUploadRepository(appDB)
	catalogRepo := mongo.NewMongoCatalogRepository(appDB)

	workoutService := service.NewWorkoutService(workoutLogRepo, service.SessionSettings{
		DefaultRestSeconds: cfg.Session.DefaultRestSeconds(),
		TickInterval:       cfg.Session.TickInterval,
		IdleTimeout:        cfg.Session.IdleTimeout,
		MaxPerAthlete:      cfg.Session.MaxPerAthlete,
	})
	videoService := service.NewVideoService(workoutService, uploadRepo, fileStorage)
	exerciseService := service.NewExerciseService(catalogRepo)

	// --- Initialize Gin Engine ---
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, workoutService, videoService, exerciseService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	err = server.Shutdown(ctxShutdown)
	// Unsaved sessions are lost; their timers must still stop before exit.
	workoutService.Shutdown()
	err = multierr.Append(err, mongo.DisconnectDB(dbClient))
	if err != nil {
		log.WithError(err).Error("unclean shutdown")
	} else {
		log.Info("server exited")
	}
	if logFile != nil {
		err = multierr.Append(err, logFile.Close())
	}
	if err != nil {
		os.Exit(1)
	}
}
