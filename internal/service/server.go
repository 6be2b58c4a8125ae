package service

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	clinicpb "github.com/nexla-ia/sistemaclinicaandre/internal/api/clinic/v1"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

// NewGRPCServer собирает сервер: recovery -> logging -> auth, сервис клиники,
// health и reflection. Health возвращается, чтобы main мог перевести его в NOT_SERVING при остановке.
func NewGRPCServer(
	clinic clinicpb.ClinicServiceServer,
	store session.TokenStore,
	log *zap.Logger,
	opts ...grpc.ServerOption,
) (*grpc.Server, *health.Server) {
	log = log.Named("grpc")

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(log),
			LoggingInterceptor(log),
			AuthInterceptor(store),
		),
	}, opts...)

	srv := grpc.NewServer(opts...)
	clinicpb.RegisterClinicServiceServer(srv, clinic)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(clinicpb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	reflection.Register(srv)
	return srv, hs
}
