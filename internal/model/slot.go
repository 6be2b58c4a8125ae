package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статус слота.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBlocked   SlotStatus = "blocked"
	SlotStatusBooked    SlotStatus = "booked"
)

// DefaultBlockReason подставляется, когда администратор не указал причину.
const DefaultBlockReason = "Bloqueado pelo administrador"

// slots — денормализованная таблица состояния слотов.
// Отсутствие строки для (дата, время) трактуется как available.
type Slot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	SlotDate datatypes.Date `gorm:"not null;uniqueIndex:idx_slots_date_time,priority:1"`
	TimeSlot datatypes.Time `gorm:"not null;uniqueIndex:idx_slots_date_time,priority:2"`

	Status SlotStatus `gorm:"type:varchar(16);not null;index"`

	// Заполнен только для booked.
	BookingID *uuid.UUID `gorm:"type:uuid;index"`
	// Заполнен только для blocked.
	BlockedReason *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (s *Slot) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
