package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcards-api/auth"
	"github.com/andrewpaige1/flashcards-api/config"
	"github.com/andrewpaige1/flashcards-api/handlers"
	"github.com/andrewpaige1/flashcards-api/middleware"
	"github.com/andrewpaige1/flashcards-api/store"
)

func init() {
	// Load .env file if not in production environment
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main.go: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("main.go: failed to build logger: %v", err)
	}
	defer logger.Sync()

	routeOpts := handlers.RouteOptions{}
	var stores store.Factory

	switch cfg.StoreBackend {
	case config.BackendSupabase:
		stores = store.SupabaseFactory{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey}
	default:
		db, err := config.Connect(cfg)
		if err != nil {
			logger.Fatal("Failed to open database", zap.Error(err))
		}
		stores = store.GormFactory{DB: db}
		routeOpts.SyncUser = middleware.SyncUserMiddleware(db, logger)
	}

	if cfg.Env.IsDevelopment {
		issuer := auth.Issuer{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		}
		routeOpts.DevToken = handlers.DevToken(issuer, cfg.Env, cfg.DevUserID)
	}

	authMiddleware, err := middleware.EnsureValidToken(middleware.TokenOptions{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build token validator", zap.Error(err))
	}

	mux := handlers.NewHandler(stores, logger).Routes(routeOpts)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(corsHandler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
