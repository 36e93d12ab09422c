package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/derya/frtutor/internal/api"
	"github.com/derya/frtutor/internal/config"
	"github.com/derya/frtutor/internal/curriculum"
	"github.com/derya/frtutor/internal/db"
	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/repository/sqlite"
	"github.com/derya/frtutor/internal/services"
	"github.com/derya/frtutor/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FrTutor Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("curriculum_dir=%s", cfg.CurriculumDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	placementRepo := sqlite.NewPlacementRepository(database.DB)

	// Initialize the review-history worker pool
	historyPool := worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)
	historyQueue := worker.NewHistoryQueue(historyPool, progressRepo)

	// Initialize curriculum and services
	loader := curriculum.NewLoader(cfg.CurriculumDir)
	profileService := services.NewProfileService(profileRepo)
	lessonService := services.NewLessonService(loader, progressRepo, historyQueue)
	placementService := services.NewPlacementService(loader, placementRepo)

	srv := &api.Server{
		DB:               database,
		Curriculum:       loader,
		ProfileService:   profileService,
		LessonService:    lessonService,
		PlacementService: placementService,
		HistoryPool:      historyPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	historyPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	log.Debug("stopping history pool")
	historyPool.Stop()

	log.Info("===========================================")
	log.Info("FrTutor Server Stopped")
	log.Info("===========================================")
}
