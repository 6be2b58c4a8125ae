package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reviews
// CustomerIdentifier — явный токен, выданный клиенту; одна оценка на токен.
type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CustomerName       string `gorm:"type:varchar(255);not null"`
	CustomerIdentifier string `gorm:"type:varchar(128);not null;uniqueIndex"`
	Rating             int    `gorm:"not null"`
	Comment            string `gorm:"type:text;not null"`
	Approved           bool   `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
