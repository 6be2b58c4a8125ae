package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Valid сообщает, входит ли статус в фиксированный набор.
// Переходы между статусами не ограничиваются.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// bookings
// Уникальный индекс по (дата, время) — последняя линия защиты от двойного бронирования.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	BookingDate datatypes.Date `gorm:"not null;uniqueIndex:idx_bookings_date_time,priority:1"`
	BookingTime datatypes.Time `gorm:"not null;uniqueIndex:idx_bookings_date_time,priority:2"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index"`

	TotalPriceCents      int64  `gorm:"not null"`
	TotalDurationMinutes int    `gorm:"not null"`
	Notes                string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Customer *Customer        `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Lines    []BookingService `gorm:"foreignKey:BookingID"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// booking_services — позиции бронирования, цена фиксируется на момент брони.
type BookingService struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PriceCents int64     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (BookingService) TableName() string { return "booking_services" }

func (l *BookingService) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
