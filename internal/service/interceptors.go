package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	clinicpb "github.com/nexla-ia/sistemaclinicaandre/internal/api/clinic/v1"
	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

// Методы, доступные без токена администратора.
var publicMethods = map[string]bool{
	clinicpb.ListAvailableSlotsMethod: true,
	clinicpb.CreateBookingMethod:      true,
	clinicpb.ListServicesMethod:       true,
	clinicpb.ListWorkingHoursMethod:   true,
	clinicpb.CreateReviewMethod:       true,
	clinicpb.ListReviewsMethod:        true,
}

// RecoveryInterceptor превращает панику обработчика в INTERNAL_ERROR.
func RecoveryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panicked", zap.String("method", info.FullMethod), zap.Any("panic", r), zap.Stack("stack"))
				resp = nil
				err = codeStatus(apperr.CodeInternalError, apperr.CodeInternalError.Message())
			}
		}()
		return handler(ctx, req)
	}
}

// LoggingInterceptor пишет метод, длительность и код ответа.
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("grpc_code", status.Code(err).String()),
		}
		if code := ErrorCode(err); code != "" {
			fields = append(fields, zap.String("code", string(code)))
		}
		switch {
		case err == nil:
			log.Info("rpc", fields...)
		case status.Code(err) == codes.Internal || status.Code(err) == codes.Unknown:
			log.Error("rpc", fields...)
		default:
			log.Warn("rpc", fields...)
		}
		return resp, err
	}
}

// AuthInterceptor определяет сессию по "authorization: Bearer <token>" и кладёт её в context.
// Служебные сервисы (health, reflection) пропускаются без проверки.
func AuthInterceptor(store session.TokenStore) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !isClinicMethod(info.FullMethod) {
			return handler(ctx, req)
		}

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("authorization"); len(v) > 0 {
				header = v[0]
			}
		}

		s, err := session.Resolve(ctx, store, header)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) {
				return nil, codeStatus(apperr.CodeUnauthenticated, apperr.CodeUnauthenticated.Message())
			}
			return nil, codeStatus(apperr.CodeInternalError, apperr.CodeInternalError.Message())
		}
		ctx = session.WithSession(ctx, s)
		if !publicMethods[info.FullMethod] {
			if _, err := session.RequireAdmin(ctx); errors.Is(err, session.ErrForbidden) {
				return nil, codeStatus(apperr.CodePermissionDenied, apperr.CodePermissionDenied.Message())
			}
		}
		return handler(ctx, req)
	}
}

func isClinicMethod(fullMethod string) bool {
	prefix := "/" + clinicpb.ServiceName + "/"
	return strings.HasPrefix(fullMethod, prefix)
}
