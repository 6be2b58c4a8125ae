// Package reservation — жизненный цикл слота и создание бронирования.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/events"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

// Repositories — хранилища, с которыми работает сервис.
type Repositories struct {
	Slots        repository.SlotRepository
	Bookings     repository.BookingRepository
	Customers    repository.CustomerRepository
	Services     repository.ServiceRepository
	WorkingHours repository.WorkingHoursRepository
	Events       repository.EventRepository
}

type Service struct {
	slots     repository.SlotRepository
	bookings  repository.BookingRepository
	customers repository.CustomerRepository
	services  repository.ServiceRepository
	hours     repository.WorkingHoursRepository
	audit     repository.EventRepository

	bus events.Publisher
	log *zap.Logger
	now func() time.Time
}

func NewService(repos Repositories, bus events.Publisher, log *zap.Logger) *Service {
	if bus == nil {
		bus = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		slots:     repos.Slots,
		bookings:  repos.Bookings,
		customers: repos.Customers,
		services:  repos.Services,
		hours:     repos.WorkingHours,
		audit:     repos.Events,
		bus:       bus,
		log:       log.Named("reservation"),
		now:       time.Now,
	}
}

// AvailableSlots — публичная сетка дня. durationMinutes информативен:
// слоты не склеиваются, возвращается сохранённый статус каждого слота.
// Для даты без сгенерированных строк результат пустой.
func (s *Service) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]TimeSlot, error) {
	const op = "reservation.AvailableSlots"

	day, err := parseDay(op, date)
	if err != nil {
		return nil, err
	}
	if durationMinutes < 0 {
		return nil, apperr.Invalid(op, "duração inválida: %d", durationMinutes)
	}

	rows, err := s.slots.ListByDate(ctx, day)
	if err != nil {
		return nil, apperr.New(apperr.CodeSlotError, op, err)
	}

	out := make([]TimeSlot, 0, len(rows))
	for _, r := range rows {
		out = append(out, TimeSlot{
			Time:      ClockString(r.TimeSlot),
			Available: r.Status == model.SlotStatusAvailable,
		})
	}
	return out, nil
}

// SlotDetails — админская сетка дня с клиентом для занятых слотов.
func (s *Service) SlotDetails(ctx context.Context, date string) ([]SlotDetail, error) {
	const op = "reservation.SlotDetails"

	day, err := parseDay(op, date)
	if err != nil {
		return nil, err
	}

	rows, err := s.slots.ListByDateWithBookings(ctx, day)
	if err != nil {
		return nil, apperr.New(apperr.CodeSlotError, op, err)
	}

	out := make([]SlotDetail, 0, len(rows))
	for _, r := range rows {
		d := SlotDetail{Time: ClockString(r.TimeSlot), Status: r.Status}
		if r.BlockedReason != nil {
			d.BlockedReason = *r.BlockedReason
		}
		if r.BookingID != nil {
			d.BookingID = r.BookingID.String()
		}
		if r.Booking != nil && r.Booking.Customer != nil {
			d.CustomerName = r.Booking.Customer.Name
			d.CustomerPhone = r.Booking.Customer.Phone
		}
		out = append(out, d)
	}
	return out, nil
}

// CreateBooking занимает слот и создаёт бронирование.
//
// Порядок:
//  1. проверка слота (занят/заблокирован → SLOT_UNAVAILABLE), затем цены услуг из каталога;
//  2. поиск или создание клиента по телефону;
//  3. бронь + захват слота в одной транзакции (условный UPDATE по статусу);
//  4. позиции, аудит и событие в шину — после коммита; их сбой попадает в Warnings.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (res *BookingResult, err error) {
	const op = "reservation.CreateBooking"

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("create booking panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = nil
			err = apperr.New(apperr.CodeInternalError, op, fmt.Errorf("panic: %v", r))
		}
	}()

	day, err := parseDay(op, req.Date)
	if err != nil {
		return nil, err
	}
	at, err := parseClock(op, req.Time)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Customer.Name)
	if name == "" {
		return nil, apperr.Invalid(op, "nome é obrigatório")
	}
	phone := repository.NormalizePhone(req.Customer.Phone)
	if phone == "" {
		return nil, apperr.Invalid(op, "telefone é obrigatório")
	}

	ids, err := parseServiceIDs(op, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	logger := s.log.With(zap.String("slot_date", req.Date), zap.String("time_slot", ClockString(at)))

	existing, err := s.slots.FindByDateTime(ctx, day, at)
	if err != nil {
		logger.Error("slot lookup failed", zap.Error(err))
		return nil, apperr.New(apperr.CodeSlotError, op, err)
	}
	if existing != nil && existing.Status != model.SlotStatusAvailable {
		return nil, apperr.New(apperr.CodeSlotUnavailable, op, nil)
	}

	selected, err := s.selectServices(ctx, op, ids)
	if err != nil {
		return nil, err
	}

	var (
		totalPrice    int64
		totalDuration int
	)
	for _, svc := range selected {
		totalPrice += svc.PriceCents
		totalDuration += svc.DurationMinutes
	}

	customer, err := s.resolveCustomer(ctx, op, name, phone, strings.TrimSpace(req.Customer.Email))
	if err != nil {
		logger.Error("customer resolution failed", zap.Error(err))
		return nil, err
	}

	booking := &model.Booking{
		CustomerID:           customer.ID,
		BookingDate:          day,
		BookingTime:          at,
		Status:               model.BookingStatusConfirmed,
		TotalPriceCents:      totalPrice,
		TotalDurationMinutes: totalDuration,
		Notes:                strings.TrimSpace(req.Notes),
	}
	if err := s.bookings.CreateWithSlotClaim(ctx, booking); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			logger.Info("booking lost the race for the slot")
			return nil, apperr.New(apperr.CodeDuplicateBooking, op, err)
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, apperr.New(apperr.CodeSlotUnavailable, op, err)
		default:
			logger.Error("booking insert failed", zap.Error(err))
			return nil, apperr.New(apperr.CodeBookingError, op, err)
		}
	}

	logger = logger.With(zap.String("booking_id", booking.ID.String()))
	res = &BookingResult{
		BookingID:            booking.ID,
		CustomerID:           customer.ID,
		Date:                 DateString(day),
		Time:                 ClockString(at),
		TotalPriceCents:      totalPrice,
		TotalDurationMinutes: totalDuration,
	}

	lines := make([]model.BookingService, 0, len(selected))
	serviceIDs := make([]string, 0, len(selected))
	for _, svc := range selected {
		lines = append(lines, model.BookingService{BookingID: booking.ID, ServiceID: svc.ID, PriceCents: svc.PriceCents})
		serviceIDs = append(serviceIDs, svc.ID.String())
	}
	if err := s.bookings.AddLines(ctx, lines); err != nil {
		logger.Warn("booking line items not saved", zap.Error(err))
		res.warn(StepLineItems, "os serviços do agendamento não foram registrados")
	}

	details := map[string]any{
		"slot_date":         res.Date,
		"time_slot":         res.Time,
		"customer_id":       customer.ID.String(),
		"total_price_cents": totalPrice,
		"service_ids":       serviceIDs,
		"actor":             session.FromContext(ctx).Actor,
	}
	if err := s.audit.Record(ctx, model.EventTypeBookingCreated, &booking.ID, details); err != nil {
		logger.Warn("audit event not recorded", zap.Error(err))
		res.warn(StepAudit, "o evento de auditoria não foi registrado")
	}

	start := time.Time(day).Add(time.Duration(at))
	window := calendar.TimeRange{Start: start, End: start.Add(time.Duration(totalDuration) * time.Minute)}
	msg := events.BookingCreated{
		BookingID:       booking.ID.String(),
		CustomerID:      customer.ID.String(),
		Date:            res.Date,
		Time:            res.Time,
		TotalPriceCents: totalPrice,
		DurationMinutes: totalDuration,
		ServiceIDs:      serviceIDs,
		Display:         calendar.FormatForCustomer(window),
		OccurredAt:      s.now().UTC(),
	}
	if err := s.bus.PublishJSON(ctx, events.KeyBookingCreated, msg); err != nil {
		logger.Warn("booking event not published", zap.Error(err))
		res.warn(StepPublish, "a notificação do agendamento não foi enviada")
	}

	logger.Info("booking created", zap.Int64("total_price_cents", totalPrice), zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// selectServices возвращает услуги в порядке ids; цены берутся из каталога, не от клиента.
func (s *Service) selectServices(ctx context.Context, op string, ids []uuid.UUID) ([]model.Service, error) {
	found, err := s.services.ListByIDs(ctx, ids)
	if err != nil {
		s.log.Error("service lookup failed", zap.Error(err))
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	byID := make(map[uuid.UUID]model.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	out := make([]model.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			return nil, apperr.Invalid(op, "serviço indisponível: %s", id)
		}
		out = append(out, svc)
	}
	return out, nil
}

func (s *Service) resolveCustomer(ctx context.Context, op, name, phone, email string) (*model.Customer, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperr.New(apperr.CodeCustomerSearchError, op, err)
	}
	if c != nil {
		return c, nil
	}

	c = &model.Customer{Name: name, Phone: phone}
	if email != "" {
		c.Email = &email
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, apperr.New(apperr.CodeCustomerError, op, err)
	}
	return c, nil
}

// UpdateBookingStatus — любой статус в любой; слот не меняется.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	const op = "reservation.UpdateBookingStatus"

	bookingID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, apperr.Invalid(op, "agendamento inválido: %q", id)
	}
	next := model.BookingStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, apperr.Invalid(op, "status inválido: %q", status)
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(op, err)
	}
	prev := current.Status

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, next)
	if err != nil {
		return nil, storeError(op, err)
	}
	current.Status = updated.Status
	current.UpdatedAt = updated.UpdatedAt

	actor := session.FromContext(ctx).Actor
	logger := s.log.With(zap.String("booking_id", bookingID.String()))
	details := map[string]any{"from": string(prev), "to": string(next), "actor": actor}
	if err := s.audit.Record(ctx, model.EventTypeBookingStatusChanged, &bookingID, details); err != nil {
		logger.Warn("audit event not recorded", zap.Error(err))
	}
	msg := events.BookingStatusChanged{
		BookingID:  bookingID.String(),
		From:       string(prev),
		To:         string(next),
		Actor:      actor,
		OccurredAt: s.now().UTC(),
	}
	if err := s.bus.PublishJSON(ctx, events.KeyBookingStatusChanged, msg); err != nil {
		logger.Warn("status event not published", zap.Error(err))
	}

	logger.Info("booking status changed", zap.String("from", string(prev)), zap.String("to", string(next)))
	return current, nil
}

// ListBookings — бронирования по дате и времени, постранично.
func (s *Service) ListBookings(ctx context.Context, filter BookingFilter, page, pageSize int) (calendar.Page[model.Booking], error) {
	const op = "reservation.ListBookings"

	var day *datatypes.Date
	if strings.TrimSpace(filter.Date) != "" {
		d, err := parseDay(op, filter.Date)
		if err != nil {
			return calendar.Page[model.Booking]{}, err
		}
		day = &d
	}

	page, pageSize, offset := calendar.NormalizePage(page, pageSize)
	items, total, err := s.bookings.List(ctx, day, pageSize, offset)
	if err != nil {
		return calendar.Page[model.Booking]{}, apperr.New(apperr.CodeInternalError, op, err)
	}
	return calendar.NewPage(items, page, pageSize, int(total)), nil
}

// storeError: "не найдено" отдельно, остальное — внутренняя ошибка.
func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, op, err)
	}
	return apperr.New(apperr.CodeInternalError, op, err)
}
