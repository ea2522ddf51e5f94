package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/giovanniklein/inn-b2b-varejista/internal/address"
	"github.com/giovanniklein/inn-b2b-varejista/internal/cache"
	"github.com/giovanniklein/inn-b2b-varejista/internal/cart"
	"github.com/giovanniklein/inn-b2b-varejista/internal/catalog"
	"github.com/giovanniklein/inn-b2b-varejista/internal/checkout"
	"github.com/giovanniklein/inn-b2b-varejista/internal/config"
	"github.com/giovanniklein/inn-b2b-varejista/internal/httpapi"
	"github.com/giovanniklein/inn-b2b-varejista/internal/identity"
	"github.com/giovanniklein/inn-b2b-varejista/internal/logging"
	"github.com/giovanniklein/inn-b2b-varejista/internal/order"
	"github.com/giovanniklein/inn-b2b-varejista/internal/outbox"
	"github.com/giovanniklein/inn-b2b-varejista/internal/registry"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	log.Info("connected to MongoDB", "uri", cfg.MongoURI, "database", cfg.MongoDatabase)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("Redis ping succeeded", "addr", cfg.RedisAddr)

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	productReader := repository.NewMongoProductReader(mongoDB)
	sellerReader := repository.NewMongoSellerReader(mongoDB)
	retailerRepo := repository.NewMongoRetailerRepository(mongoDB)
	outboxRepo := repository.NewMongoOutboxRepository(mongoDB)

	viewCache := cache.NewRedisViewCache(redisClient)

	cartService := cart.NewService(cartRepo, orderRepo, productReader, sellerReader, viewCache, log)
	checkoutService := checkout.NewService(cartRepo, orderRepo, productReader, sellerReader, retailerRepo, outboxRepo, viewCache, log)
	orderService := order.NewService(orderRepo, sellerReader)
	addressService := address.NewService(retailerRepo)
	catalogService := catalog.NewService(productReader, sellerReader)
	registryClient := registry.NewClient(cfg.CNPJBaseURL)

	auth := identity.NewAuthenticator(cfg.JWTSecret, cfg.JWTTTL)

	// Outbox poller relays order events to Kafka in the background.
	poller := outbox.NewPoller(outboxRepo, log, cfg.KafkaBrokers...)
	pollerCtx, stopPoller := context.WithCancel(ctx)
	go poller.Run(pollerCtx)
	defer poller.Close()
	defer stopPoller()

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           auth,
		Cart:           httpapi.NewCartHandler(cartService),
		Checkout:       httpapi.NewCheckoutHandler(checkoutService),
		Orders:         httpapi.NewOrderHandler(orderService, cartService),
		Address:        httpapi.NewAddressHandler(addressService),
		Catalog:        httpapi.NewCatalogHandler(catalogService),
		Registry:       httpapi.NewRegistryHandler(registryClient),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("API listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	stopPoller()
	log.Info("server exited")
}
