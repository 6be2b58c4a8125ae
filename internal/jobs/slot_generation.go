// Package jobs — фоновые задачи процесса.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/reservation"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

type Generator interface {
	GenerateRange(ctx context.Context, from, to time.Time) (*reservation.GenerateResult, error)
}

// SlotGeneration держит сетку слотов на horizonDays дней вперёд.
type SlotGeneration struct {
	gen         Generator
	horizonDays int
	loc         *time.Location
	log         *zap.Logger
	now         func() time.Time

	cron *cron.Cron
}

func NewSlotGeneration(gen Generator, horizonDays int, loc *time.Location, log *zap.Logger) *SlotGeneration {
	if loc == nil {
		loc = time.UTC
	}
	return &SlotGeneration{
		gen:         gen,
		horizonDays: horizonDays,
		loc:         loc,
		log:         log.Named("jobs.slot_generation"),
		now:         time.Now,
	}
}

// Run — один проход: от сегодняшнего дня клиники на horizonDays дней.
func (j *SlotGeneration) Run(ctx context.Context) (*reservation.GenerateResult, error) {
	if j.horizonDays <= 0 {
		return nil, fmt.Errorf("slot generation: horizon must be positive, got %d", j.horizonDays)
	}
	ctx = session.WithSession(ctx, session.Session{Role: session.RoleAdmin, Actor: "scheduler"})

	today := calendar.DateOnly(j.now().In(j.loc))
	return j.gen.GenerateRange(ctx, today, today.AddDate(0, 0, j.horizonDays-1))
}

// Start запускает Run по cron-расписанию (5 полей или дескрипторы вида "@daily").
func (j *SlotGeneration) Start(spec string) error {
	c := cron.New(cron.WithLocation(j.loc))
	if _, err := c.AddFunc(spec, j.tick); err != nil {
		return fmt.Errorf("slot generation schedule %q: %w", spec, err)
	}
	j.cron = c
	c.Start()
	j.log.Info("slot generation scheduled", zap.String("spec", spec), zap.Int("horizon_days", j.horizonDays))
	return nil
}

func (j *SlotGeneration) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := j.Run(ctx)
	if err != nil {
		j.log.Error("scheduled slot generation failed", zap.Error(err))
		return
	}
	j.log.Info("scheduled slot generation done",
		zap.String("from", res.From),
		zap.String("to", res.To),
		zap.Int64("slots_created", res.SlotsCreated))
}

// Stop ждёт завершения запущенного прохода или отмены ctx.
func (j *SlotGeneration) Stop(ctx context.Context) {
	if j.cron == nil {
		return
	}
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}
