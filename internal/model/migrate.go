package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей клиники.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Service{},
		&Customer{},
		&Booking{},
		&BookingService{},
		&Slot{},
		&WorkingHours{},
		&Review{},
		&Event{},
	)
}
