package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"couple-backend/internal/config"
	"couple-backend/internal/database"
	"couple-backend/internal/handlers"
	"couple-backend/internal/middleware"
	"couple-backend/internal/repository"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Apply schema migrations
	if err := database.Migrate(cfg.Database.URL()); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

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

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	coupleRepo := repository.NewCoupleRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	eventRepo := repository.NewEventRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	// Initialize services
	wsHub := services.NewWSHub()
	accountService := services.NewAccountService(accountRepo, coupleRepo, cfg.JWT.Secret)
	coupleService := services.NewCoupleService(coupleRepo, accountRepo)
	todoService := services.NewTodoService(todoRepo, accountRepo)
	eventService := services.NewEventService(eventRepo, accountRepo)
	messageService := services.NewMessageService(messageRepo, accountRepo, coupleRepo, wsHub)
	questionService := services.NewQuestionService(questionRepo, accountRepo)
	photoService, err := services.NewPhotoService(
		photoRepo,
		accountRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create photo service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService)
	coupleHandler := handlers.NewCoupleHandler(coupleService, wsHub)
	todoHandler := handlers.NewTodoHandler(todoService)
	eventHandler := handlers.NewEventHandler(eventService)
	messageHandler := handlers.NewMessageHandler(messageService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, accountService, coupleService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Public routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(accountService))

		r.Get("/auth/me", authHandler.Me)

		r.Post("/couple/connect", coupleHandler.Connect)
		r.Put("/couple", coupleHandler.Update)

		r.Get("/todos", todoHandler.List)
		r.Post("/todos", todoHandler.Create)
		r.Put("/todos/{todo_id}", todoHandler.Update)
		r.Delete("/todos/{todo_id}", todoHandler.Delete)

		r.Get("/events", eventHandler.List)
		r.Post("/events", eventHandler.Create)
		r.Put("/events/{event_id}", eventHandler.Update)
		r.Delete("/events/{event_id}", eventHandler.Delete)

		r.Get("/messages", messageHandler.List)
		r.Post("/messages", messageHandler.Send)

		r.Get("/moods", messageHandler.ListMoods)
		r.Post("/moods", messageHandler.SendMood)

		r.Get("/photos", photoHandler.List)
		r.Post("/photos/upload", photoHandler.Upload)
		r.Delete("/photos/{photo_id}", photoHandler.Delete)

		r.Get("/questions/today", questionHandler.Today)
		r.Post("/questions/{question_id}/answer", questionHandler.Answer)
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
