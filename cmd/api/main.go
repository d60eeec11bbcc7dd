package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/config"
	"github.com/miigangls/restaurant-tickets/internal/handler"
	"github.com/miigangls/restaurant-tickets/internal/infra/cache"
	"github.com/miigangls/restaurant-tickets/internal/infra/db"
	"github.com/miigangls/restaurant-tickets/internal/infra/messaging"
	infraRepo "github.com/miigangls/restaurant-tickets/internal/infra/repository"
	"github.com/miigangls/restaurant-tickets/internal/infra/security"
	"github.com/miigangls/restaurant-tickets/internal/server"
	"github.com/miigangls/restaurant-tickets/internal/telemetry"
	"github.com/miigangls/restaurant-tickets/internal/usecase"
	"github.com/miigangls/restaurant-tickets/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	//.envは無くてもよい（本番は環境変数）
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.IsProd() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//telemetry
	shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider()
	if err != nil {
		return err
	}
	defer func() { _ = shutdownMeter(context.Background()) }()

	//DB接続
	gormDB, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gormDB) }()

	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return err
		}
		logger.Info("auto migrate done")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	//Redis（任意）
	var orderCache usecase.OrderListCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		orderCache = cache.NewOrderListCache(rdb, cfg.OrderCacheTTL)
	}

	//Kafka（任意）
	var events usecase.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := messaging.NewEventPublisher(cfg.KafkaBrokers)
		defer func() { _ = publisher.Close() }()
		events = publisher
	}

	//repository
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	ticketRepo := infraRepo.NewTicketGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB, cfg.TxTimeout)

	idGen := &uuidGenerator{}
	clock := &realClock{}

	//usecase
	authUC := usecase.NewAuthUsecase(
		userRepo,
		validator.NewAuthValidator(userRepo),
		security.NewBcryptPasswordHasher(10),
		security.NewBcryptPasswordVerifier(),
		security.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL),
		idGen,
		clock,
	)
	ticketUC := usecase.NewTicketUsecase(ticketRepo, auditRepo, txm, orderCache, idGen, clock, logger)
	orderUC := usecase.NewOrderUsecase(txm, userRepo, ticketRepo, orderRepo, orderCache, events, idGen, clock, logger)
	paymentUC := usecase.NewPaymentUsecase(txm, paymentRepo, orderCache, events, idGen, clock, logger)

	srv := server.New(cfg.Port, server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Tickets:  handler.NewTicketHandler(ticketUC),
		Orders:   handler.NewOrderHandler(orderUC),
		Payments: handler.NewPaymentHandler(paymentUC),
	}, cfg.JWTSecret, sqlDB.PingContext, metricsHandler, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
