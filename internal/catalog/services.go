// Package catalog — справочники клиники: услуги, рабочие часы, отзывы.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
)

type ServiceInput struct {
	Name            string
	Description     string
	PriceCents      int64
	DurationMinutes int
	Category        string
	Active          bool
	Popular         bool
}

// ServicePatch — частичное обновление; nil-поля не меняются.
type ServicePatch struct {
	Name            *string
	Description     *string
	PriceCents      *int64
	DurationMinutes *int
	Category        *string
	Active          *bool
	Popular         *bool
}

type Services struct {
	repo repository.ServiceRepository
	log  *zap.Logger
}

func NewServices(repo repository.ServiceRepository, log *zap.Logger) *Services {
	return &Services{repo: repo, log: log.Named("catalog.services")}
}

func (s *Services) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	out, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternalError, "catalog.ListServices", err)
	}
	return out, nil
}

func (s *Services) Create(ctx context.Context, in ServiceInput) (*model.Service, error) {
	const op = "catalog.CreateService"

	svc := &model.Service{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		PriceCents:      in.PriceCents,
		DurationMinutes: in.DurationMinutes,
		Category:        strings.TrimSpace(in.Category),
		Active:          in.Active,
		Popular:         in.Popular,
	}
	if err := validateService(op, svc); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	s.log.Info("service created", zap.String("service_id", svc.ID.String()), zap.String("name", svc.Name))
	return svc, nil
}

func (s *Services) Update(ctx context.Context, id string, patch ServicePatch) (*model.Service, error) {
	const op = "catalog.UpdateService"

	serviceID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, apperr.Invalid(op, "serviço inválido: %q", id)
	}

	current, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, storeError(op, err)
	}

	updates := map[string]any{}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
		updates["name"] = current.Name
	}
	if patch.Description != nil {
		current.Description = strings.TrimSpace(*patch.Description)
		updates["description"] = current.Description
	}
	if patch.PriceCents != nil {
		current.PriceCents = *patch.PriceCents
		updates["price_cents"] = current.PriceCents
	}
	if patch.DurationMinutes != nil {
		current.DurationMinutes = *patch.DurationMinutes
		updates["duration_minutes"] = current.DurationMinutes
	}
	if patch.Category != nil {
		current.Category = strings.TrimSpace(*patch.Category)
		updates["category"] = current.Category
	}
	if patch.Active != nil {
		updates["active"] = *patch.Active
	}
	if patch.Popular != nil {
		updates["popular"] = *patch.Popular
	}
	if err := validateService(op, current); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, serviceID, updates)
	if err != nil {
		return nil, storeError(op, err)
	}
	return updated, nil
}

// Delete удаляет услугу, если на неё не ссылаются бронирования.
func (s *Services) Delete(ctx context.Context, id string) error {
	const op = "catalog.DeleteService"

	serviceID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperr.Invalid(op, "serviço inválido: %q", id)
	}
	if err := s.repo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return apperr.New(apperr.CodeConflict, op, err)
		}
		return storeError(op, err)
	}
	s.log.Info("service deleted", zap.String("service_id", serviceID.String()))
	return nil
}

func validateService(op string, s *model.Service) error {
	switch {
	case s.Name == "":
		return apperr.Invalid(op, "nome é obrigatório")
	case s.Category == "":
		return apperr.Invalid(op, "categoria é obrigatória")
	case s.PriceCents < 0:
		return apperr.Invalid(op, "preço não pode ser negativo")
	case s.DurationMinutes <= 0:
		return apperr.Invalid(op, "duração deve ser positiva")
	}
	return nil
}

func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, op, err)
	}
	return apperr.New(apperr.CodeInternalError, op, err)
}
