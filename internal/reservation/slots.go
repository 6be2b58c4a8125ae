package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/events"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

// BlockSlot блокирует слот. Уже заблокированный слот не меняется (причина остаётся прежней),
// занятый слот не блокируется.
func (s *Service) BlockSlot(ctx context.Context, date, clock, reason string) (SlotOutcome, error) {
	const op = "reservation.BlockSlot"

	day, err := parseDay(op, date)
	if err != nil {
		return "", err
	}
	at, err := parseClock(op, clock)
	if err != nil {
		return "", err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = model.DefaultBlockReason
	}

	tr, err := s.slots.Block(ctx, day, at, reason)
	if err != nil {
		return "", slotError(op, err)
	}

	outcome := map[repository.SlotTransition]SlotOutcome{
		repository.TransitionApplied: OutcomeBlocked,
		repository.TransitionNoop:    OutcomeAlreadyBlocked,
		repository.TransitionBooked:  OutcomeSlotBooked,
	}[tr]

	if outcome == OutcomeBlocked {
		s.recordSlotEvent(ctx, model.EventTypeSlotBlocked, DateString(day), ClockString(at), map[string]any{"reason": reason})
	}
	return outcome, nil
}

// UnblockSlot возвращает заблокированный слот в available.
func (s *Service) UnblockSlot(ctx context.Context, date, clock string) (SlotOutcome, error) {
	const op = "reservation.UnblockSlot"

	day, err := parseDay(op, date)
	if err != nil {
		return "", err
	}
	at, err := parseClock(op, clock)
	if err != nil {
		return "", err
	}

	tr, err := s.slots.Unblock(ctx, day, at)
	if err != nil {
		return "", slotError(op, err)
	}

	outcome := map[repository.SlotTransition]SlotOutcome{
		repository.TransitionApplied: OutcomeUnblocked,
		repository.TransitionNoop:    OutcomeAlreadyAvailable,
		repository.TransitionBooked:  OutcomeSlotBooked,
	}[tr]

	if outcome == OutcomeUnblocked {
		s.recordSlotEvent(ctx, model.EventTypeSlotUnblocked, DateString(day), ClockString(at), nil)
	}
	return outcome, nil
}

func (s *Service) recordSlotEvent(ctx context.Context, eventType model.EventType, date, clock string, extra map[string]any) {
	details := map[string]any{
		"slot_date": date,
		"time_slot": clock,
		"actor":     session.FromContext(ctx).Actor,
	}
	for k, v := range extra {
		details[k] = v
	}
	if err := s.audit.Record(ctx, eventType, nil, details); err != nil {
		s.log.Warn("audit event not recorded",
			zap.String("event", string(eventType)),
			zap.String("slot_date", date),
			zap.String("time_slot", clock),
			zap.Error(err))
	}
}

func slotError(op string, err error) error {
	if errors.Is(err, repository.ErrSlotUnavailable) {
		return apperr.New(apperr.CodeSlotUnavailable, op, err)
	}
	return apperr.New(apperr.CodeSlotError, op, err)
}

// GenerateSlots — GenerateRange для дат "YYYY-MM-DD".
func (s *Service) GenerateSlots(ctx context.Context, from, to string) (*GenerateResult, error) {
	const op = "reservation.GenerateSlots"

	f, err := calendar.ParseDate(from)
	if err != nil {
		return nil, apperr.Invalid(op, "data inicial inválida: %q", from)
	}
	t, err := calendar.ParseDate(to)
	if err != nil {
		return nil, apperr.Invalid(op, "data final inválida: %q", to)
	}
	return s.GenerateRange(ctx, f, t)
}

// GenerateRange создаёт недостающие слоты для каждого дня [from, to] (не больше
// calendar.MaxGenerationDays дней, дальше диапазон обрезается) по рабочим часам
// дня недели. Существующие строки (в том числе blocked/booked) не трогаются.
func (s *Service) GenerateRange(ctx context.Context, from, to time.Time) (*GenerateResult, error) {
	const op = "reservation.GenerateRange"

	days, err := calendar.DaysInRange(from, to, calendar.MaxGenerationDays)
	if err != nil {
		return nil, apperr.Invalid(op, "período inválido")
	}

	hours, err := s.hours.List(ctx)
	if err != nil {
		return nil, apperr.New(apperr.CodeSlotError, op, err)
	}
	grid := make(map[time.Weekday]calendar.WorkingDay, len(hours))
	for _, h := range hours {
		wd, open, err := WorkingDayOf(h)
		if err != nil {
			// Невалидный день пропускаем, остальные генерируем.
			s.log.Warn("skipping misconfigured working day", zap.Int("day_of_week", h.DayOfWeek), zap.Error(err))
			continue
		}
		if open {
			grid[time.Weekday(h.DayOfWeek)] = wd
		}
	}

	res := &GenerateResult{
		From:        calendar.FormatDate(days[0]),
		To:          calendar.FormatDate(days[len(days)-1]),
		DaysVisited: len(days),
	}

	var rows []model.Slot
	for _, day := range days {
		wd, ok := grid[day.Weekday()]
		if !ok {
			continue
		}
		starts, err := calendar.DaySlots(day, wd)
		if err != nil {
			s.log.Warn("skipping day", zap.String("slot_date", calendar.FormatDate(day)), zap.Error(err))
			continue
		}
		res.OpenDays++
		for _, start := range starts {
			rows = append(rows, model.Slot{
				SlotDate: datatypes.Date(day),
				TimeSlot: ClockToDB(start),
				Status:   model.SlotStatusAvailable,
			})
		}
	}

	created, err := s.slots.EnsureAvailable(ctx, rows)
	if err != nil {
		s.log.Error("slot generation failed", zap.String("from", res.From), zap.String("to", res.To), zap.Error(err))
		return nil, apperr.New(apperr.CodeSlotError, op, err)
	}
	res.SlotsCreated = created

	details := map[string]any{
		"from":          res.From,
		"to":            res.To,
		"days_visited":  res.DaysVisited,
		"slots_created": created,
		"actor":         session.FromContext(ctx).Actor,
	}
	if err := s.audit.Record(ctx, model.EventTypeSlotsGenerated, nil, details); err != nil {
		s.log.Warn("audit event not recorded", zap.String("event", string(model.EventTypeSlotsGenerated)), zap.Error(err))
	}
	msg := events.SlotsGenerated{
		From:         res.From,
		To:           res.To,
		DaysVisited:  res.DaysVisited,
		SlotsCreated: created,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.bus.PublishJSON(ctx, events.KeySlotsGenerated, msg); err != nil {
		s.log.Warn("generation event not published", zap.Error(err))
	}

	s.log.Info("slots generated",
		zap.String("from", res.From),
		zap.String("to", res.To),
		zap.Int("open_days", res.OpenDays),
		zap.Int64("slots_created", created))
	return res, nil
}
