// Package events публикует события бронирования во внешнюю шину.
package events

import (
	"context"
	"time"
)

// Ключи маршрутизации topic-exchange.
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeySlotsGenerated       = "slots.generated"
)

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type BookingCreated struct {
	BookingID       string    `json:"booking_id"`
	CustomerID      string    `json:"customer_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	TotalPriceCents int64     `json:"total_price_cents"`
	DurationMinutes int       `json:"total_duration_minutes"`
	ServiceIDs      []string  `json:"service_ids"`

	// Готовая строка для уведомления клиенту: "Segunda-feira, 07/01/2030, 09:30–10:30".
	Display    string    `json:"display"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingStatusChanged struct {
	BookingID  string    `json:"booking_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SlotsGenerated struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	DaysVisited  int       `json:"days_visited"`
	SlotsCreated int64     `json:"slots_created"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NopPublisher используется, когда RABBIT_URL не задан.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
