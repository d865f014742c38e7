package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/events"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/messaging/kafka/consumer"
	"github.com/cmlabs-hris/attendance-backend-go/internal/messaging/kafka/producer"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/cached"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	deviceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/device"
	notificationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/notification"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
	"github.com/redis/go-redis/v9"
)

// devicePublisher reaches readers over the bus, or drops traffic when the bus is off.
type devicePublisher interface {
	consumer.ReplyPublisher
	deviceService.CommandPublisher
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	loc := cfg.Location()
	scheduler := cron.NewScheduler()

	// User cache: shared in redis when configured, otherwise per process
	var userCache cache.Cache[user.User]
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		userCache = cache.NewRedis[user.User](rdb, "attendance:user:", cfg.Redis.UserCacheTTL)
		slog.Info("user cache backed by redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.UserCacheTTL)
	} else {
		memory := cache.NewMemory[user.User](cfg.Redis.UserCacheTTL)
		cron.NewCacheJobs(memory, cfg.Redis.UserCacheTTL).RegisterJobs(scheduler)
		userCache = memory
		slog.Info("user cache kept in memory", "ttl", cfg.Redis.UserCacheTTL)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	userRepo := cached.NewUserRepository(postgresql.NewUserRepository(db), userCache)
	deviceRepo := postgresql.NewDeviceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)

	var publisher devicePublisher = producer.NoopPublisher{}
	if cfg.KafkaEnabled() {
		writer := producer.NewWriter(cfg.Kafka.Brokers)
		defer writer.Close()
		publisher = producer.NewDevicePublisher(writer)
	} else {
		slog.Warn("KAFKA_BROKERS not set, device bus disabled; enrollment verification unavailable")
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	notifier := notificationService.NewHubNotifier(hub)
	resolver := scheduleService.NewResolver(workScheduleRepo, shiftRepo, loc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, deviceRepo, shiftRepo, resolver, notifier, loc)
	gate := deviceService.NewGate(userRepo, deviceRepo, cfg.Device.StrictMembership)
	ingestor := deviceService.NewIngestor(gate, attendanceSvc)
	verifier := deviceService.NewVerifier(publisher, cfg.Device.VerifyTimeout)
	deviceSvc := deviceService.NewDeviceService(deviceRepo, verifier)
	userSvc := userService.NewUserService(userRepo)

	var consumers sync.WaitGroup
	if cfg.KafkaEnabled() {
		eventsReader := consumer.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID, events.DeviceEventsTopic)
		defer eventsReader.Close()
		verificationsReader := consumer.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID, events.DeviceVerificationsTopic)
		defer verificationsReader.Close()

		consumers.Add(2)
		go func() {
			defer consumers.Done()
			consumer.Run(ctx, "device-events", eventsReader, consumer.NewDeviceEventConsumer(ingestor, publisher))
		}()
		go func() {
			defer consumers.Done()
			consumer.Run(ctx, "device-verifications", verificationsReader, consumer.NewVerificationReplyConsumer(verifier))
		}()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		middleware.DeviceSecretRequired(deviceSvc),
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Device:     appHTTP.NewDeviceHandler(deviceSvc, ingestor),
			Activity:   appHTTP.NewActivityHandler(notifier, JWTService),
			User:       appHTTP.NewUserHandler(userSvc),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end on shutdown so open activity streams return.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	scheduler.Start()
	defer scheduler.Stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	stop()
	consumers.Wait()

	return nil
}
