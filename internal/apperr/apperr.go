// Package apperr описывает тегированные ошибки клиники.
// Код ошибки — часть контракта с клиентом: по нему UI выбирает заголовок и текст.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeSlotUnavailable     Code = "SLOT_UNAVAILABLE"
	CodeDuplicateBooking    Code = "DUPLICATE_BOOKING"
	CodeCustomerError       Code = "CUSTOMER_ERROR"
	CodeCustomerSearchError Code = "CUSTOMER_SEARCH_ERROR"
	CodeBookingError        Code = "BOOKING_ERROR"
	CodeSlotError           Code = "SLOT_ERROR"
	CodeInternalError       Code = "INTERNAL_ERROR"

	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeDuplicateReview  Code = "DUPLICATE_REVIEW"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodePermissionDenied Code = "PERMISSION_DENIED"
)

type text struct {
	title   string
	message string
}

// Тексты для конечного пользователя, без внутренних деталей.
var texts = map[Code]text{
	CodeSlotUnavailable:     {"Horário Indisponível", "Horário não disponível. Escolha outro horário."},
	CodeDuplicateBooking:    {"Horário Ocupado", "Horário já reservado. Escolha outro."},
	CodeCustomerError:       {"Erro nos Dados", "Erro ao criar cliente."},
	CodeCustomerSearchError: {"Erro nos Dados", "Erro ao buscar cliente."},
	CodeBookingError:        {"Erro no Agendamento", "Erro ao criar agendamento. Verifique os dados e tente novamente."},
	CodeSlotError:           {"Erro de Conexão", "Erro ao verificar horário. Verifique sua conexão e tente novamente."},
	CodeInternalError:       {"Erro", "Erro interno. Tente novamente mais tarde."},
	CodeInvalidRequest:      {"Dados Inválidos", "Verifique os dados informados."},
	CodeNotFound:            {"Não Encontrado", "Registro não encontrado."},
	CodeConflict:            {"Operação Não Permitida", "O registro está em uso e não pode ser alterado."},
	CodeDuplicateReview:     {"Avaliação Duplicada", "Você já deixou uma avaliação para este estabelecimento. Cada pessoa pode avaliar apenas uma vez."},
	CodeUnauthenticated:     {"Sessão Inválida", "Faça login novamente."},
	CodePermissionDenied:    {"Acesso Negado", "Você não tem permissão para esta operação."},
}

// Title — заголовок сообщения для пользователя.
func (c Code) Title() string {
	if t, ok := texts[c]; ok {
		return t.title
	}
	return texts[CodeInternalError].title
}

// Message — текст сообщения для пользователя.
func (c Code) Message() string {
	if t, ok := texts[c]; ok {
		return t.message
	}
	return texts[CodeInternalError].message
}

// Error — ошибка с кодом. Op — операция, Err — исходная причина (для логов).
type Error struct {
	Code Code
	Op   string
	// Detail уточняет причину для пользователя (например, какое поле невалидно).
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет сравнивать с образцом по коду: errors.Is(err, &apperr.Error{Code: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Op == "" && t.Err == nil
}

// UserMessage — текст для пользователя: общий текст кода плюс уточнение, если оно есть.
func (e *Error) UserMessage() string {
	if e.Detail != "" {
		return e.Code.Message() + " " + e.Detail
	}
	return e.Code.Message()
}

func New(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// Invalid — ошибка валидации входных данных.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidRequest, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// CodeOf возвращает код ошибки; нетегированные ошибки считаются INTERNAL_ERROR.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

// Is — короткая проверка кода.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
