package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/euchre-tournament/config"
	"github.com/Dosada05/euchre-tournament/db"
	"github.com/Dosada05/euchre-tournament/handlers"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	api "github.com/Dosada05/euchre-tournament/routes"
	"github.com/Dosada05/euchre-tournament/services"
	"github.com/Dosada05/euchre-tournament/standings"
	"github.com/Dosada05/euchre-tournament/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("game_points", cfg.GamePoints),
		slog.Int("playoff_best_of", cfg.PlayoffBestOf))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 5*time.Second)
	dbConn, err := db.Connect(connectCtx, cfg.DatabaseURL, db.DefaultPool)
	cancelConnect()
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database ready")

	var reports services.ReportPublisher
	if cfg.R2.Enabled() {
		store, err := storage.NewR2Store(ctx, storage.R2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 store", slog.Any("error", err))
			os.Exit(1)
		}
		reports = storage.NewReportPublisher(store)
		logger.Info("standings reports will be published to R2", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Info("R2 not configured, standings reports disabled")
	}

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)

	tx := services.NewSQLTxRunner(dbConn, logger)
	ranker := standings.NewRanker(standings.Options{
		GamePoints:    cfg.GamePoints,
		MaxCohortSize: cfg.MaxCohortSize,
	})

	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo, playerRepo, teamRepo, logger)
	scheduleService := services.NewScheduleService(tx, tournamentRepo, playerRepo, teamRepo, gameRepo, standingRepo,
		hub, cfg.PlayoffBestOf, cfg.GamePoints, logger)
	gameService := services.NewGameService(gameRepo, hub, cfg.GamePoints, logger)
	standingsService := services.NewStandingsService(tx, tournamentRepo, playerRepo, teamRepo, gameRepo, standingRepo,
		ranker, reports, hub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{JWTSecret: cfg.JWTSecretKey, CORSOrigins: cfg.CORSOrigins},
		handlers.NewAuthHandler(authService),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewScheduleHandler(scheduleService),
		handlers.NewGameHandler(gameService),
		handlers.NewStandingsHandler(standingsService),
		handlers.NewWebSocketHandler(hub, tournamentService, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
