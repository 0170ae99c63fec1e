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

	"github.com/fekuna/omnipos-ledger-service/config"
	"github.com/fekuna/omnipos-ledger-service/internal/broker"
	"github.com/fekuna/omnipos-ledger-service/internal/cache"
	"github.com/fekuna/omnipos-ledger-service/internal/database"
	"github.com/fekuna/omnipos-ledger-service/internal/i18n"
	"github.com/fekuna/omnipos-ledger-service/internal/idgen"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/fekuna/omnipos-ledger-service/internal/middleware"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"

	ledgerH "github.com/fekuna/omnipos-ledger-service/internal/ledger/handler"
	ledgerListenerPkg "github.com/fekuna/omnipos-ledger-service/internal/ledger/listener"
	ledgerRepoPkg "github.com/fekuna/omnipos-ledger-service/internal/ledger/repository"
	ledgerSchedPkg "github.com/fekuna/omnipos-ledger-service/internal/ledger/scheduler"
	ledgerUCPkg "github.com/fekuna/omnipos-ledger-service/internal/ledger/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	loc, err := time.LoadLocation(cfg.Ledger.TimeZone)
	if err != nil {
		appLogger.Warn("Unknown time zone, using local time", zap.String("tz", cfg.Ledger.TimeZone), zap.Error(err))
		loc = time.Local
	}

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.Ledger.Language)
	if err != nil {
		appLogger.Fatal("Could not load messages", zap.Error(err))
	}
	if cfg.Ledger.LocalesDir != "" && i18n.DirExists(cfg.Ledger.LocalesDir) {
		if err := translator.LoadDir(cfg.Ledger.LocalesDir); err != nil {
			appLogger.Warn("Failed to load locale overrides", zap.String("dir", cfg.Ledger.LocalesDir), zap.Error(err))
		}
	}

	ids, err := idgen.New(cfg.Ledger.NodeID)
	if err != nil {
		appLogger.Fatal("Could not create id generator", zap.Error(err))
	}

	// 4. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled || cfg.Storage.Driver == "redis" {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Repository
	var repo ledger.Repository
	switch cfg.Storage.Driver {
	case "redis":
		repo = ledgerRepoPkg.NewRedisRepository(redisClient.Client())
	case "memory":
		appLogger.Warn("Using in-memory storage, data is lost on restart")
		repo = ledgerRepoPkg.NewMemoryRepository()
	default:
		db, err := database.NewSQLite(&database.Config{
			Path:            cfg.SQLite.Path,
			MaxOpenConns:    cfg.SQLite.MaxOpenConns,
			MaxIdleConns:    cfg.SQLite.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.SQLite.ConnMaxLifetime) * time.Second,
			BusyTimeout:     time.Duration(cfg.SQLite.BusyTimeoutMS) * time.Millisecond,
		})
		if err != nil {
			appLogger.Fatal("Could not open SQLite database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Opened SQLite database", zap.String("path", cfg.SQLite.Path))
		repo = ledgerRepoPkg.NewSQLiteRepository(db)
	}

	var locker ledgerUCPkg.Locker = cache.NewLocalLocker()
	if redisClient != nil {
		locker = redisClient
	}

	// 6. Initialize Publishers
	publishers := notify.Multi{notify.NewLogPublisher(appLogger)}
	var kafkaConsumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.NotificationTopic,
		})
		defer producer.Close()
		publishers = append(publishers, notify.NewKafkaPublisher(producer))

		kafkaConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.IntakeTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("intake_topic", cfg.Kafka.IntakeTopic))
	}

	// 7. Initialize UseCase
	ledgerUC := ledgerUCPkg.NewLedgerUseCase(repo, locker, ids, publishers, translator, appLogger, ledgerUCPkg.Config{
		BusinessName: cfg.Ledger.BusinessName,
		Currency:     cfg.Ledger.Currency,
		LockAttempts: cfg.Ledger.LockAttempts,
		Location:     loc,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Start Listener and Scheduler
	if kafkaConsumer != nil {
		deliveryListener := ledgerListenerPkg.NewDeliveryListener(kafkaConsumer, ledgerUC, appLogger)
		go deliveryListener.Start(ctx)
	}

	deliveryScheduler := ledgerSchedPkg.NewDeliveryScheduler(ledgerUC, appLogger, cfg.Ledger.DeliveryCheckAt, loc)
	if err := deliveryScheduler.Start(ctx); err != nil {
		appLogger.Fatal("Could not start delivery scheduler", zap.Error(err))
	}
	defer deliveryScheduler.Stop()

	// 9. Metrics
	ledgerUCPkg.InitMetrics()
	middleware.InitMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: withColon(cfg.Server.MetricsPort), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server failed", zap.Error(err))
		}
	}()

	// 10. Start gRPC Server
	port := withColon(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.PrometheusInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	ledgerH.RegisterLedgerServiceServer(grpcServer, ledgerH.NewLedgerHandler(ledgerUC, appLogger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ledgerH.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

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
	cancel()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
