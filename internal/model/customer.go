package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// customers
// Телефон — естественный ключ для поиска, но уникальность не гарантируется.
type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name  string  `gorm:"type:varchar(255);not null"`
	Phone string  `gorm:"type:varchar(32);not null;index"`
	Email *string `gorm:"type:varchar(255)"`
	Notes string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
