package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/events"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

// 2024-06-10 — понедельник.
const monday = "2024-06-10"

func TestGenerateSlots_MondayWithoutBreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, 1, clock(8, 0), clock(18, 0))

	res, err := f.svc.GenerateSlots(ctx, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DaysVisited)
	assert.Equal(t, 1, res.OpenDays)
	assert.EqualValues(t, 20, res.SlotsCreated)

	slots, err := f.svc.AvailableSlots(ctx, monday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 20)
	for _, s := range slots {
		assert.True(t, s.Available, s.Time)
	}
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "08:30", slots[1].Time)
	assert.Equal(t, "17:30", slots[19].Time)

	assert.Contains(t, f.bus.keys(), events.KeySlotsGenerated)
}

func TestGenerateSlots_BreakAndClosedDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, 1, clock(8, 0), clock(18, 0), clock(12, 0), clock(13, 0))

	// воскресенье–вторник: открыт только понедельник
	res, err := f.svc.GenerateSlots(ctx, "2024-06-11", "2024-06-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-09", res.From)
	assert.Equal(t, "2024-06-11", res.To)
	assert.Equal(t, 3, res.DaysVisited)
	assert.Equal(t, 1, res.OpenDays)
	assert.EqualValues(t, 18, res.SlotsCreated)

	slots, err := f.svc.AvailableSlots(ctx, monday, 0)
	require.NoError(t, err)
	for _, s := range slots {
		assert.NotEqual(t, "12:00", s.Time)
		assert.NotEqual(t, "12:30", s.Time)
	}

	sunday, err := f.svc.AvailableSlots(ctx, "2024-06-09", 0)
	require.NoError(t, err)
	assert.Empty(t, sunday)
}

func TestGenerateSlots_PreservesExistingState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, 1, clock(8, 0), clock(18, 0))
	svc := f.service(t, "Massagem", 5000, 30)

	_, err := f.svc.GenerateSlots(ctx, monday, monday)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, bookingFor("11999990000", monday, "10:00", svc.ID.String()))
	require.NoError(t, err)
	outcome, err := f.svc.BlockSlot(ctx, monday, "14:00", "maintenance")
	require.NoError(t, err)
	require.Equal(t, OutcomeBlocked, outcome)

	res, err := f.svc.GenerateSlots(ctx, monday, monday)
	require.NoError(t, err)
	assert.Zero(t, res.SlotsCreated)

	details, err := f.svc.SlotDetails(ctx, monday)
	require.NoError(t, err)
	require.Len(t, details, 20)
	byTime := make(map[string]SlotDetail, len(details))
	for _, d := range details {
		byTime[d.Time] = d
	}
	assert.Equal(t, model.SlotStatusBooked, byTime["10:00"].Status)
	assert.Equal(t, "Cliente 11999990000", byTime["10:00"].CustomerName)
	assert.Equal(t, "11999990000", byTime["10:00"].CustomerPhone)
	assert.NotEmpty(t, byTime["10:00"].BookingID)
	assert.Equal(t, model.SlotStatusBlocked, byTime["14:00"].Status)
	assert.Equal(t, "maintenance", byTime["14:00"].BlockedReason)
	assert.Equal(t, model.SlotStatusAvailable, byTime["08:00"].Status)
}

func TestGenerateSlots_NoExplicitRowsWithoutGeneration(t *testing.T) {
	f := newFixture(t)

	slots, err := f.svc.AvailableSlots(context.Background(), monday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = f.svc.GenerateSlots(context.Background(), "ontem", monday)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestGenerateSlots_SkipsMisconfiguredDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repos.WorkingHours.SeedDefaults(ctx))

	h, err := f.repos.WorkingHours.GetByDay(ctx, 1)
	require.NoError(t, err)
	h.IsOpen = true
	require.NoError(t, f.repos.WorkingHours.Save(ctx, h))

	res, err := f.svc.GenerateSlots(ctx, monday, monday)
	require.NoError(t, err)
	assert.Zero(t, res.OpenDays)
	assert.Zero(t, res.SlotsCreated)
}

func TestBlockedSlotRejectsBookingAndKeepsReason(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.service(t, "Massagem", 5000, 30)

	outcome, err := f.svc.BlockSlot(ctx, monday, "14:00", "maintenance")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlocked, outcome)

	_, err = f.svc.CreateBooking(ctx, bookingFor("11999990000", monday, "14:00", svc.ID.String()))
	assert.Equal(t, apperr.CodeSlotUnavailable, apperr.CodeOf(err))

	outcome, err = f.svc.BlockSlot(ctx, monday, "14:00", "outra coisa")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyBlocked, outcome)

	details, err := f.svc.SlotDetails(ctx, monday)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "maintenance", details[0].BlockedReason)
}

func TestBlockUnblockOutcomes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.service(t, "Massagem", 5000, 30)

	outcome, err := f.svc.UnblockSlot(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyAvailable, outcome)

	outcome, err = f.svc.BlockSlot(ctx, monday, "09:00", "   ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlocked, outcome)

	details, err := f.svc.SlotDetails(ctx, monday)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, model.DefaultBlockReason, details[0].BlockedReason)

	outcome, err = f.svc.UnblockSlot(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnblocked, outcome)

	outcome, err = f.svc.UnblockSlot(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyAvailable, outcome)

	_, err = f.svc.CreateBooking(ctx, bookingFor("11999990000", monday, "09:00", svc.ID.String()))
	require.NoError(t, err)

	outcome, err = f.svc.BlockSlot(ctx, monday, "09:00", "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSlotBooked, outcome)

	outcome, err = f.svc.UnblockSlot(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSlotBooked, outcome)

	_, err = f.svc.BlockSlot(ctx, monday, "9h", "")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestWorkingDayOf(t *testing.T) {
	open, closeAt, bs := clock(8, 0), clock(18, 0), clock(12, 0)

	_, ok, err := WorkingDayOf(model.WorkingHours{IsOpen: false})
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = WorkingDayOf(model.WorkingHours{IsOpen: true, SlotDurationMinutes: 30})
	assert.Error(t, err)

	_, _, err = WorkingDayOf(model.WorkingHours{IsOpen: true, OpenTime: &open, CloseTime: &closeAt, BreakStart: &bs, SlotDurationMinutes: 30})
	assert.Error(t, err, "break without end")

	_, _, err = WorkingDayOf(model.WorkingHours{IsOpen: true, OpenTime: &closeAt, CloseTime: &open, SlotDurationMinutes: 30})
	assert.Error(t, err, "close before open")

	wd, ok, err := WorkingDayOf(model.WorkingHours{IsOpen: true, OpenTime: &open, CloseTime: &closeAt, SlotDurationMinutes: 45})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "45m0s", wd.Step.String())
}
