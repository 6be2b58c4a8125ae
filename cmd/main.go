package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/nexla-ia/sistemaclinicaandre/internal/catalog"
	"github.com/nexla-ia/sistemaclinicaandre/internal/config"
	"github.com/nexla-ia/sistemaclinicaandre/internal/db"
	"github.com/nexla-ia/sistemaclinicaandre/internal/events"
	"github.com/nexla-ia/sistemaclinicaandre/internal/jobs"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
	"github.com/nexla-ia/sistemaclinicaandre/internal/reservation"
	"github.com/nexla-ia/sistemaclinicaandre/internal/service"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

func main() {
	// 1. Конфиг процесса и БД из env.
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	loc, err := appCfg.Location()
	if err != nil {
		log.Fatalf("clinic location: %v", err)
	}

	logger, err := appCfg.NewLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	// 3. Миграции и дни недели по умолчанию.
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal("auto migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	repos := reservation.Repositories{
		Slots:        repository.NewGormSlotRepository(gormDB),
		Bookings:     repository.NewGormBookingRepository(gormDB),
		Customers:    repository.NewGormCustomerRepository(gormDB),
		Services:     repository.NewGormServiceRepository(gormDB),
		WorkingHours: repository.NewGormWorkingHoursRepository(gormDB),
		Events:       repository.NewGormEventRepository(gormDB),
	}
	reviewRepo := repository.NewGormReviewRepository(gormDB)

	if err := repos.WorkingHours.SeedDefaults(context.Background()); err != nil {
		logger.Fatal("seed working hours", zap.Error(err))
	}

	// 5. Шина событий: без RABBIT_URL события не публикуются.
	var bus events.Publisher = events.NopPublisher{}
	if appCfg.RabbitURL != "" {
		pub, err := events.NewAMQPPublisher(appCfg.RabbitURL, appCfg.BookingExchange)
		if err != nil {
			logger.Fatal("connect rabbitmq", zap.Error(err))
		}
		bus = pub
		logger.Info("publishing booking events", zap.String("exchange", appCfg.BookingExchange))
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Warn("close event bus", zap.Error(err))
		}
	}()

	// 6. Сервисы клиники.
	reservations := reservation.NewService(repos, bus, logger)
	services := catalog.NewServices(repos.Services, logger)
	hours := catalog.NewHours(repos.WorkingHours, reservations, loc, logger)
	reviews := catalog.NewReviews(reviewRepo, appCfg.ReviewsAutoApprove, logger)

	// 7. Фоновая генерация слотов по расписанию.
	var generation *jobs.SlotGeneration
	if appCfg.SlotGenerationCron != "" {
		generation = jobs.NewSlotGeneration(reservations, appCfg.SlotGenerationHorizonDays, loc, logger)
		if err := generation.Start(appCfg.SlotGenerationCron); err != nil {
			logger.Fatal("start slot generation", zap.Error(err))
		}
	}

	// 8. gRPC-сервер.
	clinicSvc := service.NewClinicService(reservations, services, hours, reviews)
	grpcServer, healthSrv := service.NewGRPCServer(clinicSvc, session.NewStaticTokenStore(appCfg.AdminToken), logger)

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", appCfg.GRPCAddr), zap.Error(err))
	}

	logger.Info("clinic gRPC server listening", zap.String("addr", appCfg.GRPCAddr))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("grpc serve", zap.Error(err))
		}
	}()

	// 9. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gRPC server...")
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()

	if generation != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		generation.Stop(ctx)
		cancel()
	}
}
