package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/newmandigital/catalog/docs"
	"github.com/newmandigital/catalog/internal/adapters/config"
	"github.com/newmandigital/catalog/internal/adapters/http"
	"github.com/newmandigital/catalog/internal/adapters/http/controllers"
	"github.com/newmandigital/catalog/internal/adapters/mongo"
	"github.com/newmandigital/catalog/internal/adapters/mongo/repository"
	"github.com/newmandigital/catalog/internal/adapters/outbox"
	"github.com/newmandigital/catalog/internal/adapters/rabbitmq"
	"github.com/newmandigital/catalog/internal/adapters/redis"
	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/service"
)

// @title       Catalog API
// @version     1.0
// @description Product catalog API

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		Level:             cfg.Logger.Level,
		IsProduction:      cfg.Logger.IsProduction,
	}); err != nil {
		// logger not available yet
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	database := mongoClient.Database(cfg.Mongo.Database)
	outboxRepository := repository.NewOutboxRepository(database)
	productRepository := repository.NewProductRepository(database, outboxRepository)
	txManager := mongo.NewTransactionManager(mongoClient)

	productCache := redis.NewCache[domain.Product](redisClient, "catalog")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Product]](redisClient, "catalog")
	idempotencyService := service.NewIdempotencyService(
		idempotencyCache,
		cfg.Idempotency.TTL,
		cfg.Idempotency.PollInterval,
		cfg.Idempotency.PollTimeout,
	)
	productService := service.NewProductService(productRepository, productCache, idempotencyService, txManager, cfg.Cache.ProductTTL)

	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval, "batch_size": cfg.Outbox.BatchSize})

	productController := controllers.NewProductController(productService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	router := http.NewRouter(healthController, productController, redis.NewRateLimiter(redisClient), cfg.RateLimit)
	if err := router.ListenAndServe(ctx, cfg.HTTP); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
	logger.Info(context.Background(), "Server stopped", nil)
}
