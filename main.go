package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/aiclient"
	"github.com/user/arcanum-go/auth"
	"github.com/user/arcanum-go/background"
	"github.com/user/arcanum-go/config"
	"github.com/user/arcanum-go/db"
	"github.com/user/arcanum-go/deck"
	"github.com/user/arcanum-go/ledger"
	"github.com/user/arcanum-go/tarot"
	"github.com/user/arcanum-go/users"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env file not found or unreadable, using environment as-is")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Background monitor lifecycle: closed channel signals stop, WaitGroup
	// confirms exit before the process leaves main.
	stopChan := make(chan struct{})
	var backgroundWg sync.WaitGroup
	background.StartBackendHealthMonitor(cfg.AI, stopChan, &backgroundWg)

	// Manual dependency injection, wired bottom-up.
	tokenLedger := ledger.NewLedger(pool)

	authService := auth.NewAuthService(pool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool, tokenLedger)
	userHandlers := users.NewUserHandlers(userService)

	generator := aiclient.New(cfg.AI)
	selector := deck.NewSelector(deck.Default(), rand.New(rand.NewSource(time.Now().UnixNano())))
	readingStore := tarot.NewPostgresReadingStore(pool, tokenLedger)
	tarotService := tarot.NewTarotService(tokenLedger, readingStore, generator, selector, cfg.Auth.ReadingCost)
	tarotHandlers := tarot.NewTarotHandlers(tarotService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/logout", authHandlers.HandleLogout())
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth))

		r.Get("/tokens", userHandlers.HandleGetTokens())
		r.Get("/profile", userHandlers.HandleGetProfile())
		r.Put("/profile", userHandlers.HandleUpdateProfile())
	})

	r.Route("/api/tarot", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth))
		tarotHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		// Write timeout must cover generation requests, which can run up to
		// the configured backend timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("provider", cfg.AI.Provider).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(stopChan)
	backgroundWg.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}
