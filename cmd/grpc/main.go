package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-assistant-service/config"
	"github.com/fekuna/omnipos-assistant-service/pkg/broker"
	"github.com/fekuna/omnipos-assistant-service/pkg/cache"
	"github.com/fekuna/omnipos-assistant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/fekuna/omnipos-assistant-service/pkg/middleware"
	"github.com/fekuna/omnipos-assistant-service/pkg/search"

	assistantv1 "github.com/fekuna/omnipos-assistant-service/api/assistantv1"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant"
	asstExec "github.com/fekuna/omnipos-assistant-service/internal/assistant/executor"
	asstH "github.com/fekuna/omnipos-assistant-service/internal/assistant/handler"
	asstIntent "github.com/fekuna/omnipos-assistant-service/internal/assistant/intent"
	asstPreflight "github.com/fekuna/omnipos-assistant-service/internal/assistant/preflight"
	asstRepoPkg "github.com/fekuna/omnipos-assistant-service/internal/assistant/repository"
	asstUCPkg "github.com/fekuna/omnipos-assistant-service/internal/assistant/usecase"
	"github.com/fekuna/omnipos-assistant-service/internal/auth"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/llm"
	"github.com/fekuna/omnipos-assistant-service/internal/metrics"

	invListenerPkg "github.com/fekuna/omnipos-assistant-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-assistant-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-assistant-service/internal/inventory/usecase"

	locRepoPkg "github.com/fekuna/omnipos-assistant-service/internal/location/repository"
	locUCPkg "github.com/fekuna/omnipos-assistant-service/internal/location/usecase"

	"github.com/fekuna/omnipos-assistant-service/internal/order"
	orderEvent "github.com/fekuna/omnipos-assistant-service/internal/order/event"
	orderRepoPkg "github.com/fekuna/omnipos-assistant-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-assistant-service/internal/order/usecase"

	prodRepoPkg "github.com/fekuna/omnipos-assistant-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-assistant-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	locRepo := locRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	asstRepo := asstRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis (run cache is optional)
	var runCache assistant.RunCache
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, run cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		runCache = asstRepoPkg.NewRedisRunCache(redisClient, cfg.Redis.RunTTL)
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5.5 Initialize Kafka
	var publisher order.EventPublisher
	var posConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
		})
		defer producer.Close()
		publisher = orderEvent.NewKafkaPublisher(producer)

		posConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.POSTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer posConsumer.Close()
		appLogger.Info("Kafka enabled", zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("publish_topic", cfg.Kafka.OrdersTopic), zap.String("consume_topic", cfg.Kafka.POSTopic))
	}

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (product search sync disabled)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 5.9 Initialize LLM provider
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var extractor *asstIntent.Extractor
	completer, err := llm.New(ctx, &llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		appLogger.Warn("LLM_API_KEY is not set, assistant plans will fail until it is configured")
	case err != nil:
		appLogger.Fatal("Could not initialize LLM provider", zap.Error(err))
	default:
		extractor = asstIntent.NewExtractor(metrics.InstrumentCompleter(completer), cfg.Assistant.CatalogHintLimit)
		appLogger.Info("LLM provider ready", zap.String("provider", cfg.LLM.Provider), zap.String("model", completer.Model()))
	}

	// 6. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, esClient, appLogger)
	locUC := locUCPkg.NewLocationUseCase(locRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, publisher, appLogger)

	asstUC := asstUCPkg.NewAssistantUseCase(asstUCPkg.Dependencies{
		Repo:      asstRepo,
		Cache:     runCache,
		Catalog:   catalog.NewFetcher(prodUC, locUC),
		Extractor: extractor,
		Checker:   asstPreflight.NewChecker(invUC),
		Mutator:   asstExec.NewMutator(prodUC, locUC, invUC, orderUC, appLogger),
		Reader:    asstExec.NewReader(invUC),
	}, asstUCPkg.Config{
		MaxPromptLength: cfg.Assistant.MaxPromptLength,
		RateLimitWindow: cfg.Assistant.RateLimitWindow,
		RateLimitMax:    cfg.Assistant.RateLimitMax,
		WritesEnabled:   cfg.Assistant.WritesEnabled,
		ClaimTimeout:    cfg.Assistant.ClaimTimeout,
	}, appLogger)

	// 6.5 Initialize Listeners
	if posConsumer != nil {
		invListener := invListenerPkg.NewInventoryListener(posConsumer, orderUC, appLogger)
		go invListener.Start(ctx)
	}

	// 6.8 Initialize Handlers
	asstHandler := asstH.NewAssistantHandler(asstUC, appLogger)
	authenticator := auth.NewAuthenticator(cfg.JWT.SecretKey, cfg.JWT.TrustGatewayHeaders)

	// 7. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(authenticator.Enrich),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	// Register Services
	assistantv1.RegisterAssistantServiceServer(grpcServer, asstHandler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(assistantv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// 8. Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: cfg.Metrics.Port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	appLogger.Info("Starting gRPC server", zap.String("port", port), zap.String("metrics_port", cfg.Metrics.Port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	appLogger.Info("Server stopped")
}
