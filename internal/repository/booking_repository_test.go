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

func TestBookingRepository_CreateWithSlotClaim_ExistingAvailableSlot(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	slots := NewGormSlotRepository(db)
	repo := NewGormBookingRepository(db)
	d := day(t, "2024-06-10")

	_, err := slots.EnsureAvailable(ctx, []model.Slot{{SlotDate: d, TimeSlot: clock(10, 0), Status: model.SlotStatusAvailable}})
	require.NoError(t, err)

	c := seedCustomer(t, db, "11999990000")
	b := &model.Booking{CustomerID: c.ID, BookingDate: d, BookingTime: clock(10, 0), Status: model.BookingStatusConfirmed}
	require.NoError(t, repo.CreateWithSlotClaim(ctx, b))
	assert.NotEqual(t, uuid.Nil, b.ID)

	slot, err := slots.FindByDateTime(ctx, d, clock(10, 0))
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, slot.Status)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, b.ID, *slot.BookingID)
}

func TestBookingRepository_CreateWithSlotClaim_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormBookingRepository(db)
	d := day(t, "2024-06-10")
	c := seedCustomer(t, db, "11999990000")

	first := &model.Booking{CustomerID: c.ID, BookingDate: d, BookingTime: clock(10, 0), Status: model.BookingStatusConfirmed}
	require.NoError(t, repo.CreateWithSlotClaim(ctx, first))

	second := &model.Booking{CustomerID: c.ID, BookingDate: d, BookingTime: clock(10, 0), Status: model.BookingStatusConfirmed}
	err := repo.CreateWithSlotClaim(ctx, second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&model.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookingRepository_CreateWithSlotClaim_BlockedSlotRollsBack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormBookingRepository(db)
	d := day(t, "2024-06-10")

	_, err := NewGormSlotRepository(db).Block(ctx, d, clock(14, 0), "maintenance")
	require.NoError(t, err)

	c := seedCustomer(t, db, "11999990000")
	b := &model.Booking{CustomerID: c.ID, BookingDate: d, BookingTime: clock(14, 0), Status: model.BookingStatusConfirmed}
	err = repo.CreateWithSlotClaim(ctx, b)
	require.ErrorIs(t, err, ErrSlotUnavailable)

	var count int64
	require.NoError(t, db.Model(&model.Booking{}).Count(&count).Error)
	assert.Zero(t, count, "booking must be rolled back with the failed slot claim")
}

func TestBookingRepository_LinesAndList(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormBookingRepository(db)
	c := seedCustomer(t, db, "11999990000")
	svc := seedService(t, db, "Massagem relaxante", 5000)

	d1, d2 := day(t, "2024-06-10"), day(t, "2024-06-11")
	for _, b := range []*model.Booking{
		{CustomerID: c.ID, BookingDate: d2, BookingTime: clock(9, 0), Status: model.BookingStatusConfirmed},
		{CustomerID: c.ID, BookingDate: d1, BookingTime: clock(11, 0), Status: model.BookingStatusConfirmed},
		{CustomerID: c.ID, BookingDate: d1, BookingTime: clock(9, 30), Status: model.BookingStatusPending},
	} {
		require.NoError(t, repo.CreateWithSlotClaim(ctx, b))
		require.NoError(t, repo.AddLines(ctx, []model.BookingService{{BookingID: b.ID, ServiceID: svc.ID, PriceCents: svc.PriceCents}}))
	}

	all, total, err := repo.List(ctx, nil, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "09:30:00", all[0].BookingTime.String())
	assert.Equal(t, "11:00:00", all[1].BookingTime.String())
	require.Len(t, all[0].Lines, 1)
	require.NotNil(t, all[0].Lines[0].Service)
	assert.Equal(t, "Massagem relaxante", all[0].Lines[0].Service.Name)
	require.NotNil(t, all[0].Customer)

	byDay, total, err := repo.List(ctx, &d2, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byDay, 1)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewGormBookingRepository(db)
	c := seedCustomer(t, db, "11999990000")
	d := day(t, "2024-06-10")

	b := &model.Booking{CustomerID: c.ID, BookingDate: d, BookingTime: clock(10, 0), Status: model.BookingStatusConfirmed}
	require.NoError(t, repo.CreateWithSlotClaim(ctx, b))

	updated, err := repo.UpdateStatus(ctx, b.ID, model.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, updated.Status)

	// отмена не освобождает слот
	slot, err := NewGormSlotRepository(db).FindByDateTime(ctx, d, clock(10, 0))
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, slot.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), model.BookingStatusCompleted)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
