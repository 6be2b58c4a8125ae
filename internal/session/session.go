// Package session описывает вызывающую сторону запроса.
// Сессия определяется один раз на границе (gRPC-интерсептор) и дальше
// передаётся через context; глобального "текущего пользователя" нет.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrForbidden    = errors.New("admin session required")
)

// Роль вызывающего.
type Role string

const (
	RolePublic Role = "public"
	RoleAdmin  Role = "admin"
)

type Session struct {
	Role Role
	// Кто действует; попадает в события аудита.
	Actor string
}

// Public — сессия анонимного клиента клиники.
func Public() Session {
	return Session{Role: RolePublic, Actor: "public"}
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Источник токенов.
type TokenStore interface {
	Lookup(ctx context.Context, token string) (*Session, error)
}

// StaticTokenStore знает один токен администратора из конфигурации.
type StaticTokenStore struct {
	adminToken string
}

func NewStaticTokenStore(adminToken string) *StaticTokenStore {
	return &StaticTokenStore{adminToken: adminToken}
}

func (s *StaticTokenStore) Lookup(_ context.Context, token string) (*Session, error) {
	if s.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
		return nil, ErrInvalidToken
	}
	return &Session{Role: RoleAdmin, Actor: "admin"}, nil
}

// Resolve:
//   - пустой заголовок → публичная сессия;
//   - "Bearer <token>" → сессия из хранилища токенов;
//   - всё остальное → ErrInvalidToken.
func Resolve(ctx context.Context, store TokenStore, authorization string) (Session, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return Public(), nil
	}

	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return Session{}, ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	s, err := store.Lookup(ctx, token)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// RequireAdmin проверяет сессию из контекста.
func RequireAdmin(ctx context.Context) (Session, error) {
	s := FromContext(ctx)
	if !s.IsAdmin() {
		return s, ErrForbidden
	}
	return s, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext возвращает сессию запроса; без неё — публичная.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Public()
}
