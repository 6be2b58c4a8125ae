package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

type EventRepository interface {
	Record(ctx context.Context, eventType model.EventType, bookingID *uuid.UUID, details map[string]any) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Record(
	ctx context.Context,
	eventType model.EventType,
	bookingID *uuid.UUID,
	details map[string]any,
) error {
	ev := model.Event{
		EventType: eventType,
		BookingID: bookingID,
		Details:   datatypes.JSONMap(details),
	}
	return r.db.WithContext(ctx).Omit("Booking").Create(&ev).Error
}

func (r *GormEventRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
