package clinicv1

import "time"

// Даты — "YYYY-MM-DD", время суток — "HH:MM", деньги — в сентаво.

type PageInfo struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Total    int32 `json:"total"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
}

// Слоты

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type ListAvailableSlotsRequest struct {
	Date            string `json:"date"`
	DurationMinutes int32  `json:"duration_minutes,omitempty"`
}

type ListAvailableSlotsResponse struct {
	Slots []TimeSlot `json:"slots"`
}

type SlotDetail struct {
	Time          string `json:"time"`
	Status        string `json:"status"`
	BlockedReason string `json:"blocked_reason,omitempty"`
	BookingID     string `json:"booking_id,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

type ListSlotDetailsRequest struct {
	Date string `json:"date"`
}

type ListSlotDetailsResponse struct {
	Slots []SlotDetail `json:"slots"`
}

type BlockSlotRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason,omitempty"`
}

// Outcome: blocked | already_blocked | slot_booked.
type BlockSlotResponse struct {
	Outcome string `json:"outcome"`
}

type UnblockSlotRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Outcome: unblocked | already_available | slot_booked.
type UnblockSlotResponse struct {
	Outcome string `json:"outcome"`
}

type GenerateSlotsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type GenerateSlotsResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	DaysVisited  int32  `json:"days_visited"`
	OpenDays     int32  `json:"open_days"`
	SlotsCreated int64  `json:"slots_created"`
}

// Бронирования

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type CreateBookingRequest struct {
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Customer   Customer `json:"customer"`
	ServiceIDs []string `json:"service_ids"`
	Notes      string   `json:"notes,omitempty"`
}

type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Partial=true: бронь создана, но часть вторичных записей не удалась (см. Warnings).
type CreateBookingResponse struct {
	BookingID            string    `json:"booking_id"`
	CustomerID           string    `json:"customer_id"`
	Date                 string    `json:"date"`
	Time                 string    `json:"time"`
	TotalPriceCents      int64     `json:"total_price_cents"`
	TotalDurationMinutes int32     `json:"total_duration_minutes"`
	Partial              bool      `json:"partial"`
	Warnings             []Warning `json:"warnings,omitempty"`
}

type BookingLine struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name,omitempty"`
	PriceCents  int64  `json:"price_cents"`
}

type Booking struct {
	ID                   string        `json:"id"`
	CustomerID           string        `json:"customer_id"`
	CustomerName         string        `json:"customer_name,omitempty"`
	CustomerPhone        string        `json:"customer_phone,omitempty"`
	Date                 string        `json:"date"`
	Time                 string        `json:"time"`
	Status               string        `json:"status"`
	TotalPriceCents      int64         `json:"total_price_cents"`
	TotalDurationMinutes int32         `json:"total_duration_minutes"`
	Notes                string        `json:"notes,omitempty"`
	Lines                []BookingLine `json:"lines,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
}

type UpdateBookingStatusRequest struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type UpdateBookingStatusResponse struct {
	Booking Booking `json:"booking"`
}

type ListBookingsRequest struct {
	Date     string `json:"date,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Page     PageInfo  `json:"page"`
}

// Услуги

type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int32  `json:"duration_minutes"`
	Category        string `json:"category"`
	Active          bool   `json:"active"`
	Popular         bool   `json:"popular"`
}

type ListServicesRequest struct {
	ActiveOnly bool `json:"active_only,omitempty"`
}

type ListServicesResponse struct {
	Services []Service `json:"services"`
}

type CreateServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int32  `json:"duration_minutes"`
	Category        string `json:"category"`
	Active          bool   `json:"active"`
	Popular         bool   `json:"popular"`
}

type CreateServiceResponse struct {
	Service Service `json:"service"`
}

// Отсутствующие поля не меняются.
type UpdateServiceRequest struct {
	ID              string  `json:"id"`
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	DurationMinutes *int32  `json:"duration_minutes,omitempty"`
	Category        *string `json:"category,omitempty"`
	Active          *bool   `json:"active,omitempty"`
	Popular         *bool   `json:"popular,omitempty"`
}

type UpdateServiceResponse struct {
	Service Service `json:"service"`
}

type DeleteServiceRequest struct {
	ID string `json:"id"`
}

type DeleteServiceResponse struct{}

// Рабочие часы

type WorkingDay struct {
	DayOfWeek           int32  `json:"day_of_week"`
	IsOpen              bool   `json:"is_open"`
	OpenTime            string `json:"open_time,omitempty"`
	CloseTime           string `json:"close_time,omitempty"`
	BreakStart          string `json:"break_start,omitempty"`
	BreakEnd            string `json:"break_end,omitempty"`
	SlotDurationMinutes int32  `json:"slot_duration_minutes"`
}

type ListWorkingHoursRequest struct{}

type ListWorkingHoursResponse struct {
	Days []WorkingDay `json:"days"`
}

type UpdateWorkingHoursRequest struct {
	Day WorkingDay `json:"day"`
	// > 0: после сохранения создать недостающие слоты на столько дней вперёд.
	RegenerateDays int32 `json:"regenerate_days,omitempty"`
}

type UpdateWorkingHoursResponse struct {
	Day        WorkingDay             `json:"day"`
	Generation *GenerateSlotsResponse `json:"generation,omitempty"`
}

// Отзывы

type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	CustomerName       string `json:"customer_name"`
	CustomerIdentifier string `json:"customer_identifier"`
	Rating             int32  `json:"rating"`
	Comment            string `json:"comment"`
}

type CreateReviewResponse struct {
	Review Review `json:"review"`
}

type ListReviewsRequest struct {
	Page     int32 `json:"page,omitempty"`
	PageSize int32 `json:"page_size,omitempty"`
}

type ListReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Page    PageInfo `json:"page"`
}

type ListAllReviewsRequest struct{}

type ListAllReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

type ApproveReviewRequest struct {
	ID string `json:"id"`
}

type ApproveReviewResponse struct {
	Review Review `json:"review"`
}

type DeleteReviewRequest struct {
	ID string `json:"id"`
}

type DeleteReviewResponse struct{}
