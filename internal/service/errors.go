package service

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
)

// ErrorDomain — домен в errdetails.ErrorInfo.
const ErrorDomain = "clinic"

var grpcCodes = map[apperr.Code]codes.Code{
	apperr.CodeSlotUnavailable:     codes.FailedPrecondition,
	apperr.CodeDuplicateBooking:    codes.AlreadyExists,
	apperr.CodeCustomerError:       codes.Internal,
	apperr.CodeCustomerSearchError: codes.Internal,
	apperr.CodeBookingError:        codes.Internal,
	apperr.CodeSlotError:           codes.Unavailable,
	apperr.CodeInternalError:       codes.Internal,
	apperr.CodeInvalidRequest:      codes.InvalidArgument,
	apperr.CodeNotFound:            codes.NotFound,
	apperr.CodeConflict:            codes.FailedPrecondition,
	apperr.CodeDuplicateReview:     codes.AlreadyExists,
	apperr.CodeUnauthenticated:     codes.Unauthenticated,
	apperr.CodePermissionDenied:    codes.PermissionDenied,
}

// toStatus переводит ошибку в gRPC-статус: текст для пользователя и код в ErrorInfo.
// Причина (Err) в ответ не попадает, только в логи.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok && !isAppErr(err) {
		// уже статус (например, от интерсептора)
		return err
	}

	code := apperr.CodeOf(err)
	msg := code.Message()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.UserMessage()
	}
	return codeStatus(code, msg)
}

func codeStatus(code apperr.Code, msg string) error {
	gc, ok := grpcCodes[code]
	if !ok {
		gc = codes.Internal
	}
	st := status.New(gc, msg)
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(code),
		Domain:   ErrorDomain,
		Metadata: map[string]string{"title": code.Title()},
	})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}

func isAppErr(err error) bool {
	var ae *apperr.Error
	return errors.As(err, &ae)
}

// ErrorCode достаёт код клиники из ответа сервера; для чужих ошибок — "".
func ErrorCode(err error) apperr.Code {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return apperr.Code(info.GetReason())
		}
	}
	return ""
}

// ErrorTitle — заголовок для пользователя из ответа сервера.
func ErrorTitle(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetMetadata()["title"]
		}
	}
	return ""
}
