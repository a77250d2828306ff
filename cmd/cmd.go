package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kzone-booking-backend/internal/catalog"
	"kzone-booking-backend/internal/config"
	"kzone-booking-backend/internal/handlers"
	"kzone-booking-backend/internal/identity"
	"kzone-booking-backend/internal/middleware"
	"kzone-booking-backend/internal/profileapi"
	"kzone-booking-backend/internal/repository"
	"kzone-booking-backend/internal/services"
	"kzone-booking-backend/internal/session"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Connect to redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping redis")
	}
	log.Info().Msg("Redis connection established")

	// Initialize repositories
	credRepo := repository.NewCredentialRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewTokenRepository(rdb)

	// External collaborators
	provider := identity.NewLocalProvider(credRepo, tokenRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	backend := profileapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	backend.Probe(context.Background())

	// Initialize services
	cat := catalog.New()
	manager := session.NewManager(provider, profileRepo, backend)
	avatarService, err := services.NewAvatarService(cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create avatar service")
	}
	notifier, err := services.NewNotifier(cfg.APNS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create notifier")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(manager)
	profileHandler := handlers.NewProfileHandler(manager, avatarService)
	catalogHandler := handlers.NewCatalogHandler(cat)
	bookingHandler := handlers.NewBookingHandler(cat, notifier)
	healthHandler := handlers.NewHealthHandler(cfg.Server, backend)
	wsHandler := handlers.NewWebSocketHandler(manager)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", healthHandler.Health)
		r.Get("/", healthHandler.Info)
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)
		r.Get("/experiences", catalogHandler.ListExperiences)
		r.Get("/experiences/{id}", catalogHandler.GetExperience)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(manager))
			r.Post("/auth/signout", authHandler.SignOut)
			r.Get("/auth/session", authHandler.GetSession)
			r.Delete("/auth/account", authHandler.DeleteAccount)
			r.Get("/auth/profile", profileHandler.GetProfile)
			r.Put("/auth/profile", profileHandler.UpdateProfile)
			r.Post("/auth/profile/photo", profileHandler.UploadAvatar)
			r.Put("/auth/push-token", profileHandler.SetPushToken)
			r.Post("/experiences/{id}/reviews", catalogHandler.AddReview)
			r.Post("/bookings", bookingHandler.CreateBooking)
			r.Get("/bookings", bookingHandler.ListBookings)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

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

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
