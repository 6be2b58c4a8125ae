package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

type BookingRepository interface {
	// Создать бронирование и занять слот в одной транзакции.
	// gorm.ErrDuplicatedKey — (дата, время) уже заняты; ErrSlotUnavailable — слот заблокирован или занят.
	CreateWithSlotClaim(ctx context.Context, booking *model.Booking) error
	// Добавить позиции (услуги) к бронированию.
	AddLines(ctx context.Context, lines []model.BookingService) error
	// Получить бронирование по ID вместе с клиентом и позициями.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Обновить статус; слот не трогается.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error)
	// Список бронирований (опционально за дату) с пагинацией.
	List(ctx context.Context, date *datatypes.Date, limit, offset int) ([]model.Booking, int64, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) CreateWithSlotClaim(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Lines").Create(booking).Error; err != nil {
			return err
		}
		return claimSlot(tx, booking.BookingDate, booking.BookingTime, booking.ID)
	})
}

func (r *GormBookingRepository) AddLines(ctx context.Context, lines []model.BookingService) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Booking", "Service").Create(&lines).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines.Service").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status model.BookingStatus,
) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&b).Update("status", status).Error; err != nil {
			return err
		}
		b.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) List(
	ctx context.Context,
	date *datatypes.Date,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).Model(&model.Booking{})
	if date != nil {
		q = q.Where("booking_date = ?", *date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	err := q.
		Preload("Customer").
		Preload("Lines.Service").
		Order("booking_date ASC").
		Order("booking_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
