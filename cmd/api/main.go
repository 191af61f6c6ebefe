package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/studiobook/studiobook-api/internal/config"
	"github.com/studiobook/studiobook-api/internal/domain/booking"
	"github.com/studiobook/studiobook-api/internal/domain/freeslot"
	"github.com/studiobook/studiobook-api/internal/domain/studio"
	"github.com/studiobook/studiobook-api/internal/middleware"
	"github.com/studiobook/studiobook-api/internal/pkg/database"
	"github.com/studiobook/studiobook-api/internal/pkg/logger"
	pkgresponse "github.com/studiobook/studiobook-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting StudioBook API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// ---------- Repositories ----------
	studioRepo := studio.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	catalog := studio.NewCachedCatalog(studioRepo, redis, cfg.StudioCacheTTL)

	// ---------- Services ----------
	bookingService := booking.NewService(bookingRepo, catalog)
	freeSlotService := freeslot.NewService(bookingRepo, catalog)

	// ---------- Handlers ----------
	studioHandler := studio.NewHandler(catalog)
	bookingHandler := booking.NewHandler(bookingService)
	freeSlotHandler := freeslot.NewHandler(freeSlotService)

	identityMiddleware := middleware.Identity()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/studios", studioHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes(identityMiddleware))
		r.Mount("/free-slots", freeSlotHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
