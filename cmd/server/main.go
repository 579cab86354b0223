package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/easyjatra/marketplace-api/internal/api"
	"github.com/easyjatra/marketplace-api/internal/core/service"
	mongodb "github.com/easyjatra/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/easyjatra/marketplace-api/internal/infrastructure/db/redis"
	"github.com/easyjatra/marketplace-api/internal/infrastructure/identity"
	"github.com/easyjatra/marketplace-api/internal/infrastructure/payment"
	"github.com/easyjatra/marketplace-api/internal/pkg/config"
	"github.com/easyjatra/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure clients, explicit lifecycle ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	ticketRepo := mongodb.NewTicketRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	vendorRequestRepo := mongodb.NewVendorRequestRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		ticketRepo.EnsureIndexes,
		orderRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
		vendorRequestRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure indexes")
		}
	}

	// --- Services ---
	gateway := payment.NewStripeGateway(cfg.StripeSecret)
	cache := redisdb.NewConfirmationCache(rdb)
	verifier := identity.NewJWTVerifier(cfg.JWTSecret)

	checkoutService := service.NewCheckoutService(gateway, ticketRepo, orderRepo, cache, cfg.ClientOrigin, log)
	ticketService := service.NewTicketService(ticketRepo, log)
	userService := service.NewUserService(userRepo, vendorRequestRepo, log)
	vendorService := service.NewVendorService(vendorRequestRepo, log)

	e := api.NewRouter(api.Dependencies{
		Tickets:      ticketService,
		Checkout:     checkoutService,
		Orders:       checkoutService,
		Users:        userService,
		Vendors:      vendorService,
		Verifier:     verifier,
		Mongo:        db,
		Redis:        rdb,
		ClientOrigin: cfg.ClientOrigin,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
