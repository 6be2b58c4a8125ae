package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

type WorkingHoursRepository interface {
	// Все дни недели по порядку.
	List(ctx context.Context) ([]model.WorkingHours, error)
	// Создать недостающие дни закрытыми с шагом по умолчанию.
	SeedDefaults(ctx context.Context) error
	GetByDay(ctx context.Context, day int) (*model.WorkingHours, error)
	// Полная замена настроек дня.
	Save(ctx context.Context, hours *model.WorkingHours) error
}

type GormWorkingHoursRepository struct {
	db *gorm.DB
}

func NewGormWorkingHoursRepository(db *gorm.DB) *GormWorkingHoursRepository {
	return &GormWorkingHoursRepository{db: db}
}

func (r *GormWorkingHoursRepository) List(ctx context.Context) ([]model.WorkingHours, error) {
	var hours []model.WorkingHours
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *GormWorkingHoursRepository) SeedDefaults(ctx context.Context) error {
	defaults := make([]model.WorkingHours, 0, 7)
	for day := 0; day <= 6; day++ {
		defaults = append(defaults, model.WorkingHours{
			DayOfWeek:           day,
			IsOpen:              false,
			SlotDurationMinutes: model.DefaultSlotDurationMinutes,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "day_of_week"}}, DoNothing: true}).
		Create(&defaults).Error
}

func (r *GormWorkingHoursRepository) GetByDay(ctx context.Context, day int) (*model.WorkingHours, error) {
	var h model.WorkingHours
	if err := r.db.WithContext(ctx).First(&h, "day_of_week = ?", day).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *GormWorkingHoursRepository) Save(ctx context.Context, hours *model.WorkingHours) error {
	// Select("*") — чтобы nil-времена и false реально записались.
	return r.db.WithContext(ctx).
		Model(hours).
		Select("*").
		Omit("id", "created_at").
		Updates(hours).Error
}
