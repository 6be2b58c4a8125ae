package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultSlotDurationMinutes — шаг сетки по умолчанию.
const DefaultSlotDurationMinutes = 30

// working_hours — по одной записи на день недели (0 = воскресенье).
// Изменение записи не трогает уже сгенерированные слоты.
type WorkingHours struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	DayOfWeek int  `gorm:"not null;uniqueIndex"`
	IsOpen    bool `gorm:"not null"`

	OpenTime   *datatypes.Time
	CloseTime  *datatypes.Time
	BreakStart *datatypes.Time
	BreakEnd   *datatypes.Time

	SlotDurationMinutes int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (WorkingHours) TableName() string { return "working_hours" }

func (w *WorkingHours) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
