package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/libertysafety/liberty-server-go/internal/auth"
	"github.com/libertysafety/liberty-server-go/internal/config"
	"github.com/libertysafety/liberty-server-go/internal/database"
	"github.com/libertysafety/liberty-server-go/internal/handler"
	"github.com/libertysafety/liberty-server-go/internal/jobs"
	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/redis"
	"github.com/libertysafety/liberty-server-go/internal/repository"
	"github.com/libertysafety/liberty-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	incidentRepo := repository.NewIncidentRepository(db.DB)
	roomRepo := repository.NewChatRoomRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)
	stationRepo := repository.NewPoliceStationRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL())
	authority := auth.NewAuthority(userRepo, tokens)

	incidentService := service.NewIncidentService(incidentRepo, stationRepo, userRepo, notificationRepo)
	chatService := service.NewChatService(roomRepo, messageRepo, userRepo, stationRepo, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	stationService := service.NewStationService(stationRepo)
	adminService := service.NewAdminService(userRepo, incidentRepo, roomRepo)

	authMiddleware := middleware.NewAuthMiddleware(authority)
	loginLimiter := middleware.NewLoginRateLimiter(redisClient.Client)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	authHandler := handler.NewAuthHandler(authority, authMiddleware, loginLimiter, isProduction)
	incidentHandler := handler.NewIncidentHandler(incidentService, authMiddleware)
	chatHandler := handler.NewChatHandler(chatService, authMiddleware)
	notificationHandler := handler.NewNotificationHandler(notificationService, authMiddleware)
	stationHandler := handler.NewStationHandler(stationService)
	adminHandler := handler.NewAdminHandler(
		adminService, incidentService, authority, authMiddleware, loginLimiter,
		cfg.AdminSecretKey, isProduction,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(csrfMiddleware.Handler)

		r.Mount("/auth", authHandler.Routes())
		r.Mount("/incidents", incidentHandler.Routes())
		r.Mount("/chat", chatHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
		r.Mount("/police-stations", stationHandler.Routes())
		r.Mount("/admin", adminHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(notificationRepo, roomRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
