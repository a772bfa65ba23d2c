package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"tnkr-backend/api"
	"tnkr-backend/auth"
	"tnkr-backend/blob"
	"tnkr-backend/cache"
	"tnkr-backend/internal"
	"tnkr-backend/mail"
	"tnkr-backend/ratelimit"
	"tnkr-backend/repositories"
	"tnkr-backend/services"
	"tnkr-backend/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load() // local development convenience, absent in production
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)
	auth.SetSigningKey([]byte(config.SecretKey))

	// 2. Databases (records + cache, separate Badger instances)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing record store...")
		_ = db.Close()
	}()

	cacheDB, err := badger.Open(badger.DefaultOptions(config.CacheFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("cache opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing cache store...")
		_ = cacheDB.Close()
	}()

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Repositories & Supporting Infrastructure
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	requestRepository := repositories.NewRequestRepository(db)
	technicianRepository := repositories.NewTechnicianRepository(db)
	tokenRepository := repositories.NewTokenRepository(db)

	cacheStore := cache.NewBadgerStore(cacheDB, log)
	limiter := ratelimit.New(cacheStore, log, config.MessageRateLimit, config.MessageRateWindow)
	mailer := mail.NewDispatcher(
		mail.NewSMTPSender(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword), log)
	storage, err := blob.NewS3Storage(ctx, config.BucketName, config.BucketRegion, log)
	if err != nil {
		return fmt.Errorf("storage setup failed: %w", err)
	}

	// 5. Services & Gateway
	registry := ws.NewRegistry()
	pusher := ws.NewPusher(registry)
	chatService := services.NewChatService(userRepository, messageRepository, limiter, pusher, log)
	authService := services.NewAuthService(userRepository, tokenRepository, storage, mailer, log,
		config.AuthTokenDuration, config.FrontendURL)
	userService := services.NewUserService(userRepository, storage, cacheStore, log, config.ProfileTTL)
	requestService := services.NewRequestService(requestRepository, storage, cacheStore, log, config.RequestListTTL)
	technicianService := services.NewTechnicianService(technicianRepository, userRepository, cacheStore,
		mailer, log, config.ProfileTTL)

	gateway := ws.NewGateway(registry, chatService, log)
	server := api.NewServer(authService, userService, requestService, chatService, technicianService,
		gateway.Handle, log)

	// 6. HTTP Server
	address := fmt.Sprintf(":%d", config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown incomplete", "error", err)
	}
	mailer.Wait()
	log.Info("Program stopped cleanly")

	return nil
}
