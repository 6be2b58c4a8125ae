package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/db/dbtest"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11999990000", NormalizePhone(" (11) 99999-0000 "))
	assert.Equal(t, "", NormalizePhone("   "))
}

func TestCustomerRepository_FindByPhone(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormCustomerRepository(db)

	missing, err := repo.FindByPhone(ctx, "11999990000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := seedCustomer(t, db, "(11) 99999-0000")
	found, err := repo.FindByPhone(ctx, "11 99999 0000")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID, found.ID)

	empty, err := repo.FindByPhone(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestServiceRepository_InactiveFlagPersisted(t *testing.T) {
	ctx := context.Background()
	repo := NewGormServiceRepository(dbtest.New(t))

	s := &model.Service{Name: "Reflexologia", PriceCents: 8000, DurationMinutes: 45, Category: "terapia", Active: false}
	require.NoError(t, repo.Create(ctx, s))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
}

func TestServiceRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormServiceRepository(db)

	s := seedService(t, db, "Massagem", 5000)
	updated, err := repo.Update(ctx, s.ID, map[string]any{"price_cents": int64(7000), "popular": true})
	require.NoError(t, err)
	assert.EqualValues(t, 7000, updated.PriceCents)
	assert.True(t, updated.Popular)

	_, err = repo.Update(ctx, uuid.New(), map[string]any{"name": "x"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, s.ID))
	require.ErrorIs(t, repo.Delete(ctx, s.ID), gorm.ErrRecordNotFound)
}

func TestServiceRepository_DeleteReferenced(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormServiceRepository(db)
	bookings := NewGormBookingRepository(db)

	s := seedService(t, db, "Massagem", 5000)
	c := seedCustomer(t, db, "11999990000")
	b := &model.Booking{CustomerID: c.ID, BookingDate: day(t, "2024-06-10"), BookingTime: clock(10, 0), Status: model.BookingStatusConfirmed}
	require.NoError(t, bookings.CreateWithSlotClaim(ctx, b))
	require.NoError(t, bookings.AddLines(ctx, []model.BookingService{{BookingID: b.ID, ServiceID: s.ID, PriceCents: 5000}}))

	require.ErrorIs(t, repo.Delete(ctx, s.ID), ErrInUse)
}

func TestWorkingHoursRepository_SeedAndSave(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWorkingHoursRepository(dbtest.New(t))

	require.NoError(t, repo.SeedDefaults(ctx))
	require.NoError(t, repo.SeedDefaults(ctx))

	hours, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, hours, 7)
	for i, h := range hours {
		assert.Equal(t, i, h.DayOfWeek)
		assert.False(t, h.IsOpen)
		assert.Equal(t, model.DefaultSlotDurationMinutes, h.SlotDurationMinutes)
	}

	monday, err := repo.GetByDay(ctx, 1)
	require.NoError(t, err)
	open, closeAt := clock(8, 0), clock(18, 0)
	monday.IsOpen = true
	monday.OpenTime = &open
	monday.CloseTime = &closeAt
	require.NoError(t, repo.Save(ctx, monday))

	reloaded, err := repo.GetByDay(ctx, 1)
	require.NoError(t, err)
	assert.True(t, reloaded.IsOpen)
	require.NotNil(t, reloaded.OpenTime)
	assert.Equal(t, "08:00:00", reloaded.OpenTime.String())

	reloaded.IsOpen = false
	reloaded.OpenTime, reloaded.CloseTime = nil, nil
	require.NoError(t, repo.Save(ctx, reloaded))

	closed, err := repo.GetByDay(ctx, 1)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.Nil(t, closed.OpenTime)
}

func TestReviewRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormReviewRepository(dbtest.New(t))

	r1 := &model.Review{CustomerName: "Ana", CustomerIdentifier: "tok-1", Rating: 5, Comment: "Ótimo", Approved: true}
	require.NoError(t, repo.Create(ctx, r1))

	dup := &model.Review{CustomerName: "Ana", CustomerIdentifier: "tok-1", Rating: 4, Comment: "de novo"}
	require.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	r2 := &model.Review{CustomerName: "Bia", CustomerIdentifier: "tok-2", Rating: 3, Comment: "Bom"}
	require.NoError(t, repo.Create(ctx, r2))

	approved, total, err := repo.ListApproved(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, approved, 1)

	_, err = repo.Approve(ctx, r2.ID)
	require.NoError(t, err)
	_, total, err = repo.ListApproved(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	require.NoError(t, repo.Delete(ctx, r1.ID))
	require.ErrorIs(t, repo.Delete(ctx, r1.ID), gorm.ErrRecordNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEventRepository_Record(t *testing.T) {
	ctx := context.Background()
	repo := NewGormEventRepository(dbtest.New(t))
	id := uuid.New()

	require.NoError(t, repo.Record(ctx, model.EventTypeBookingCreated, &id, map[string]any{"slot_date": "2024-06-10"}))

	events, err := repo.ListByBooking(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventTypeBookingCreated, events[0].EventType)
	assert.Equal(t, "2024-06-10", events[0].Details["slot_date"])
}
