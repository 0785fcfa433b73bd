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

	"github.com/hackforge/portal-server-go/internal/config"
	"github.com/hackforge/portal-server-go/internal/database"
	"github.com/hackforge/portal-server-go/internal/handler"
	"github.com/hackforge/portal-server-go/internal/jobs"
	"github.com/hackforge/portal-server-go/internal/middleware"
	"github.com/hackforge/portal-server-go/internal/redis"
	"github.com/hackforge/portal-server-go/internal/repository"
	"github.com/hackforge/portal-server-go/internal/service"
	"github.com/hackforge/portal-server-go/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
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

	teamRepo := repository.NewTeamRepository(db.DB)
	teamSessionRepo := repository.NewTeamSessionRepository(db.DB)
	gradeRepo := repository.NewGradeRepository(db.DB)
	announcementRepo := repository.NewAnnouncementRepository(db.DB)
	contentRepo := repository.NewContentRepository(db.DB)

	adminSessions, err := session.NewAdminSessions(cfg.AdminSessionSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize admin sessions")
	}
	teamSessions := session.NewTeamSessions(teamSessionRepo)

	adminService := service.NewAdminService(
		adminSessions, teamRepo, gradeRepo, announcementRepo, cfg.AdminPasswordHash,
	)
	teamService := service.NewTeamService(teamRepo, teamSessions)
	contentService := service.NewContentService(announcementRepo, contentRepo)

	adminSessionMiddleware := middleware.NewAdminSessionMiddleware(adminSessions)
	teamSessionMiddleware := middleware.NewTeamSessionMiddleware(teamSessions, teamRepo)
	teamLoginLimiter := middleware.NewRedisLoginLimiter(
		redisClient.Client, config.TeamLoginRateLimit, config.TeamLoginRateWindow,
	)

	isProduction := cfg.IsProduction()
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	contentHandler := handler.NewContentHandler(contentService)
	adminHandler := handler.NewAdminHandler(adminService, adminSessionMiddleware.Handler, isProduction)
	teamHandler := handler.NewTeamHandler(
		teamService, teamSessionMiddleware.Handler, teamLoginLimiter.Handler, isProduction,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(securityHeadersMiddleware.Handler)
		r.Mount("/", contentHandler.Routes())
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(securityHeadersMiddleware.Handler)
		r.Use(csrfMiddleware.Handler)
		r.Mount("/", adminHandler.Routes())
	})

	r.Route("/team/api", func(r chi.Router) {
		r.Use(securityHeadersMiddleware.Handler)
		r.Use(csrfMiddleware.Handler)
		r.Mount("/", teamHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(teamSessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
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
