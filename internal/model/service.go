package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// services
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`

	// В сентаво.
	PriceCents      int64  `gorm:"not null"`
	DurationMinutes int    `gorm:"not null"`
	Category        string `gorm:"type:varchar(64);not null;index"`

	// Без default-тегов: иначе GORM пропустит false при вставке.
	Active  bool `gorm:"not null;index"`
	Popular bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
