package reservation

import (
	"github.com/google/uuid"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

// TimeSlot — строка публичной сетки: время и признак "свободно".
type TimeSlot struct {
	Time      string
	Available bool
}

// SlotDetail — строка админской сетки.
type SlotDetail struct {
	Time          string
	Status        model.SlotStatus
	BlockedReason string
	BookingID     string
	CustomerName  string
	CustomerPhone string
}

type CustomerInput struct {
	Name  string
	Phone string
	Email string
}

// BookingRequest — данные формы записи. Дата "YYYY-MM-DD", время "HH:MM".
type BookingRequest struct {
	Date       string
	Time       string
	Customer   CustomerInput
	ServiceIDs []string
	Notes      string
}

// Шаги, сбой которых не отменяет бронирование.
const (
	StepLineItems = "line_items"
	StepAudit     = "audit"
	StepPublish   = "publish"
)

type Warning struct {
	Step    string
	Message string
}

// BookingResult — бронирование создано. Warnings непустой, если часть
// вторичных записей не удалась: бронь и слот при этом уже зафиксированы.
type BookingResult struct {
	BookingID            uuid.UUID
	CustomerID           uuid.UUID
	Date                 string
	Time                 string
	TotalPriceCents      int64
	TotalDurationMinutes int
	Warnings             []Warning
}

func (r *BookingResult) Partial() bool { return len(r.Warnings) > 0 }

func (r *BookingResult) warn(step, message string) {
	r.Warnings = append(r.Warnings, Warning{Step: step, Message: message})
}

// SlotOutcome — итог block/unblock.
type SlotOutcome string

const (
	OutcomeBlocked          SlotOutcome = "blocked"
	OutcomeAlreadyBlocked   SlotOutcome = "already_blocked"
	OutcomeUnblocked        SlotOutcome = "unblocked"
	OutcomeAlreadyAvailable SlotOutcome = "already_available"
	OutcomeSlotBooked       SlotOutcome = "slot_booked"
)

type GenerateResult struct {
	From         string
	To           string
	DaysVisited  int
	OpenDays     int
	SlotsCreated int64
}

type BookingFilter struct {
	// Пустая строка — все даты.
	Date string
}
