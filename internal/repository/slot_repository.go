package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

// SlotTransition — результат атомарной смены статуса слота.
type SlotTransition string

const (
	// Статус изменён.
	TransitionApplied SlotTransition = "applied"
	// Слот уже в целевом состоянии, ничего не менялось.
	TransitionNoop SlotTransition = "noop"
	// Слот забронирован и остаётся нетронутым.
	TransitionBooked SlotTransition = "booked"
)

type SlotRepository interface {
	// Все слоты за дату, по возрастанию времени.
	ListByDate(ctx context.Context, date datatypes.Date) ([]model.Slot, error)
	// То же, но с бронированием и клиентом для занятых слотов.
	ListByDateWithBookings(ctx context.Context, date datatypes.Date) ([]model.Slot, error)
	// Слот по (дата, время); nil, если строки нет.
	FindByDateTime(ctx context.Context, date datatypes.Date, at datatypes.Time) (*model.Slot, error)
	// available/отсутствует → blocked.
	Block(ctx context.Context, date datatypes.Date, at datatypes.Time, reason string) (SlotTransition, error)
	// blocked → available.
	Unblock(ctx context.Context, date datatypes.Date, at datatypes.Time) (SlotTransition, error)
	// Вставить недостающие слоты, существующие не трогать. Возвращает число вставленных.
	EnsureAvailable(ctx context.Context, slots []model.Slot) (int64, error)
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

const generationBatchSize = 200

func (r *GormSlotRepository) ListByDate(ctx context.Context, date datatypes.Date) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("slot_date = ?", date).
		Order("time_slot ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) ListByDateWithBookings(ctx context.Context, date datatypes.Date) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Preload("Booking.Customer").
		Where("slot_date = ?", date).
		Order("time_slot ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) FindByDateTime(ctx context.Context, date datatypes.Date, at datatypes.Time) (*model.Slot, error) {
	return findSlot(r.db.WithContext(ctx), date, at)
}

func findSlot(tx *gorm.DB, date datatypes.Date, at datatypes.Time) (*model.Slot, error) {
	var slot model.Slot
	err := tx.Where("slot_date = ? AND time_slot = ?", date, at).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) Block(
	ctx context.Context,
	date datatypes.Date,
	at datatypes.Time,
	reason string,
) (SlotTransition, error) {
	var result SlotTransition
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Две попытки: строку мог вставить параллельный генератор между UPDATE и INSERT.
		for attempt := 0; attempt < 2; attempt++ {
			res := tx.Model(&model.Slot{}).
				Where("slot_date = ? AND time_slot = ? AND status = ?", date, at, model.SlotStatusAvailable).
				Updates(map[string]any{
					"status":         model.SlotStatusBlocked,
					"blocked_reason": reason,
					"booking_id":     nil,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				result = TransitionApplied
				return nil
			}

			existing, err := findSlot(tx, date, at)
			if err != nil {
				return err
			}
			if existing != nil {
				result = transitionFromStatus(existing.Status, model.SlotStatusBlocked)
				if result != "" {
					return nil
				}
				continue
			}

			slot := model.Slot{SlotDate: date, TimeSlot: at, Status: model.SlotStatusBlocked, BlockedReason: &reason}
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&slot)
			if ins.Error != nil {
				return ins.Error
			}
			if ins.RowsAffected > 0 {
				result = TransitionApplied
				return nil
			}
		}
		return ErrSlotUnavailable
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (r *GormSlotRepository) Unblock(ctx context.Context, date datatypes.Date, at datatypes.Time) (SlotTransition, error) {
	var result SlotTransition
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Slot{}).
			Where("slot_date = ? AND time_slot = ? AND status = ?", date, at, model.SlotStatusBlocked).
			Updates(map[string]any{
				"status":         model.SlotStatusAvailable,
				"blocked_reason": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result = TransitionApplied
			return nil
		}

		existing, err := findSlot(tx, date, at)
		if err != nil {
			return err
		}
		if existing == nil {
			// отсутствующая строка = available
			result = TransitionNoop
			return nil
		}
		result = transitionFromStatus(existing.Status, model.SlotStatusAvailable)
		if result == "" {
			return ErrSlotUnavailable
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// transitionFromStatus: итог для слота, который не удалось сдвинуть условным UPDATE.
// Пустая строка — статус сменился между запросами, нужно повторить.
func transitionFromStatus(current, target model.SlotStatus) SlotTransition {
	switch {
	case current == target:
		return TransitionNoop
	case current == model.SlotStatusBooked:
		return TransitionBooked
	default:
		return ""
	}
}

func (r *GormSlotRepository) EnsureAvailable(ctx context.Context, slots []model.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_date"}, {Name: "time_slot"}},
			DoNothing: true,
		}).
		CreateInBatches(&slots, generationBatchSize)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// claimSlot переводит слот в booked внутри транзакции бронирования.
// Условный UPDATE закрывает гонку "проверил — записал"; при отсутствии строки
// она вставляется сразу в booked, и параллельная вставка упирается в уникальный индекс.
func claimSlot(tx *gorm.DB, date datatypes.Date, at datatypes.Time, bookingID uuid.UUID) error {
	res := tx.Model(&model.Slot{}).
		Where("slot_date = ? AND time_slot = ? AND status = ?", date, at, model.SlotStatusAvailable).
		Updates(map[string]any{
			"status":         model.SlotStatusBooked,
			"booking_id":     bookingID,
			"blocked_reason": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	existing, err := findSlot(tx, date, at)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlotUnavailable
	}

	slot := model.Slot{SlotDate: date, TimeSlot: at, Status: model.SlotStatusBooked, BookingID: &bookingID}
	return tx.Create(&slot).Error
}
