package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
	"github.com/nexla-ia/sistemaclinicaandre/internal/reservation"
)

// Generator — генерация слотов за период.
type Generator interface {
	GenerateRange(ctx context.Context, from, to time.Time) (*reservation.GenerateResult, error)
}

// DayPatch — новые настройки дня. Времена "HH:MM"; пустой перерыв — без перерыва.
type DayPatch struct {
	IsOpen              bool
	OpenTime            string
	CloseTime           string
	BreakStart          string
	BreakEnd            string
	SlotDurationMinutes int
}

type Hours struct {
	repo repository.WorkingHoursRepository
	gen  Generator
	loc  *time.Location
	log  *zap.Logger
	now  func() time.Time
}

func NewHours(repo repository.WorkingHoursRepository, gen Generator, loc *time.Location, log *zap.Logger) *Hours {
	if loc == nil {
		loc = time.UTC
	}
	return &Hours{repo: repo, gen: gen, loc: loc, log: log.Named("catalog.hours"), now: time.Now}
}

// List возвращает все семь дней; недостающие создаются закрытыми.
func (h *Hours) List(ctx context.Context) ([]model.WorkingHours, error) {
	const op = "catalog.ListWorkingHours"

	hours, err := h.repo.List(ctx)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	if len(hours) == 7 {
		return hours, nil
	}

	if err := h.repo.SeedDefaults(ctx); err != nil {
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	hours, err = h.repo.List(ctx)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	return hours, nil
}

// Update сохраняет настройки дня. Уже созданные слоты не меняются; при
// regenerateDays > 0 недостающие слоты создаются на regenerateDays дней вперёд от сегодня.
func (h *Hours) Update(
	ctx context.Context,
	day int,
	patch DayPatch,
	regenerateDays int,
) (*model.WorkingHours, *reservation.GenerateResult, error) {
	const op = "catalog.UpdateWorkingHours"

	if day < 0 || day > 6 {
		return nil, nil, apperr.Invalid(op, "dia da semana inválido: %d", day)
	}
	if regenerateDays < 0 || regenerateDays > calendar.MaxGenerationDays {
		return nil, nil, apperr.Invalid(op, "período de geração inválido: %d", regenerateDays)
	}

	if _, err := h.List(ctx); err != nil {
		return nil, nil, err
	}
	current, err := h.repo.GetByDay(ctx, day)
	if err != nil {
		return nil, nil, storeError(op, err)
	}

	if err := applyDayPatch(op, current, patch); err != nil {
		return nil, nil, err
	}
	if err := h.repo.Save(ctx, current); err != nil {
		return nil, nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	h.log.Info("working hours updated", zap.Int("day_of_week", day), zap.Bool("is_open", current.IsOpen))

	if regenerateDays == 0 || h.gen == nil {
		return current, nil, nil
	}
	today := calendar.DateOnly(h.now().In(h.loc))
	res, err := h.gen.GenerateRange(ctx, today, today.AddDate(0, 0, regenerateDays-1))
	if err != nil {
		return current, nil, err
	}
	return current, res, nil
}

func applyDayPatch(op string, h *model.WorkingHours, p DayPatch) error {
	step := p.SlotDurationMinutes
	if step == 0 {
		step = h.SlotDurationMinutes
	}
	if step == 0 {
		step = model.DefaultSlotDurationMinutes
	}
	if step < 0 || step > 24*60 {
		return apperr.Invalid(op, "duração do horário inválida: %d", step)
	}

	if !p.IsOpen {
		// закрытый день без времён
		h.IsOpen = false
		h.OpenTime, h.CloseTime, h.BreakStart, h.BreakEnd = nil, nil, nil, nil
		h.SlotDurationMinutes = step
		return nil
	}

	open, err := optionalClock(op, p.OpenTime)
	if err != nil {
		return err
	}
	closeAt, err := optionalClock(op, p.CloseTime)
	if err != nil {
		return err
	}
	if open == nil || closeAt == nil {
		return apperr.Invalid(op, "informe abertura e fechamento")
	}
	breakStart, err := optionalClock(op, p.BreakStart)
	if err != nil {
		return err
	}
	breakEnd, err := optionalClock(op, p.BreakEnd)
	if err != nil {
		return err
	}

	next := model.WorkingHours{
		DayOfWeek:           h.DayOfWeek,
		IsOpen:              true,
		OpenTime:            open,
		CloseTime:           closeAt,
		BreakStart:          breakStart,
		BreakEnd:            breakEnd,
		SlotDurationMinutes: step,
	}
	if _, _, err := reservation.WorkingDayOf(next); err != nil {
		return apperr.Invalid(op, "horário inconsistente")
	}

	h.IsOpen = true
	h.OpenTime, h.CloseTime = open, closeAt
	h.BreakStart, h.BreakEnd = breakStart, breakEnd
	h.SlotDurationMinutes = step
	return nil
}

func optionalClock(op, s string) (*datatypes.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := calendar.ParseClock(s)
	if err != nil || d >= 24*time.Hour {
		return nil, apperr.Invalid(op, "horário inválido: %q", s)
	}
	t := reservation.ClockToDB(d)
	return &t, nil
}
