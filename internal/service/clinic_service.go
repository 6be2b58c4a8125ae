package service

import (
	"context"

	"gorm.io/datatypes"

	clinicpb "github.com/nexla-ia/sistemaclinicaandre/internal/api/clinic/v1"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/catalog"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/reservation"
)

type Reservations interface {
	AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]reservation.TimeSlot, error)
	SlotDetails(ctx context.Context, date string) ([]reservation.SlotDetail, error)
	CreateBooking(ctx context.Context, req reservation.BookingRequest) (*reservation.BookingResult, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*model.Booking, error)
	ListBookings(ctx context.Context, filter reservation.BookingFilter, page, pageSize int) (calendar.Page[model.Booking], error)
	BlockSlot(ctx context.Context, date, clock, reason string) (reservation.SlotOutcome, error)
	UnblockSlot(ctx context.Context, date, clock string) (reservation.SlotOutcome, error)
	GenerateSlots(ctx context.Context, from, to string) (*reservation.GenerateResult, error)
}

type ServiceCatalog interface {
	List(ctx context.Context, activeOnly bool) ([]model.Service, error)
	Create(ctx context.Context, in catalog.ServiceInput) (*model.Service, error)
	Update(ctx context.Context, id string, patch catalog.ServicePatch) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type WorkingHours interface {
	List(ctx context.Context) ([]model.WorkingHours, error)
	Update(ctx context.Context, day int, patch catalog.DayPatch, regenerateDays int) (*model.WorkingHours, *reservation.GenerateResult, error)
}

type Reviews interface {
	Create(ctx context.Context, in catalog.ReviewInput) (*model.Review, error)
	ListApproved(ctx context.Context, page, pageSize int) (calendar.Page[model.Review], error)
	ListAll(ctx context.Context) ([]model.Review, error)
	Approve(ctx context.Context, id string) (*model.Review, error)
	Delete(ctx context.Context, id string) error
}

// ClinicService — gRPC-обёртка над сервисами клиники.
// Права проверяет AuthInterceptor, здесь только перевод сообщений и ошибок.
type ClinicService struct {
	clinicpb.UnimplementedClinicServiceServer

	reservations Reservations
	services     ServiceCatalog
	hours        WorkingHours
	reviews      Reviews
}

func NewClinicService(
	reservations Reservations,
	services ServiceCatalog,
	hours WorkingHours,
	reviews Reviews,
) *ClinicService {
	return &ClinicService{
		reservations: reservations,
		services:     services,
		hours:        hours,
		reviews:      reviews,
	}
}

func (s *ClinicService) ListAvailableSlots(
	ctx context.Context,
	req *clinicpb.ListAvailableSlotsRequest,
) (*clinicpb.ListAvailableSlotsResponse, error) {
	slots, err := s.reservations.AvailableSlots(ctx, req.Date, int(req.DurationMinutes))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListAvailableSlotsResponse{Slots: make([]clinicpb.TimeSlot, 0, len(slots))}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, clinicpb.TimeSlot{Time: slot.Time, Available: slot.Available})
	}
	return resp, nil
}

func (s *ClinicService) ListSlotDetails(
	ctx context.Context,
	req *clinicpb.ListSlotDetailsRequest,
) (*clinicpb.ListSlotDetailsResponse, error) {
	slots, err := s.reservations.SlotDetails(ctx, req.Date)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListSlotDetailsResponse{Slots: make([]clinicpb.SlotDetail, 0, len(slots))}
	for _, d := range slots {
		resp.Slots = append(resp.Slots, clinicpb.SlotDetail{
			Time:          d.Time,
			Status:        string(d.Status),
			BlockedReason: d.BlockedReason,
			BookingID:     d.BookingID,
			CustomerName:  d.CustomerName,
			CustomerPhone: d.CustomerPhone,
		})
	}
	return resp, nil
}

func (s *ClinicService) CreateBooking(
	ctx context.Context,
	req *clinicpb.CreateBookingRequest,
) (*clinicpb.CreateBookingResponse, error) {
	res, err := s.reservations.CreateBooking(ctx, reservation.BookingRequest{
		Date: req.Date,
		Time: req.Time,
		Customer: reservation.CustomerInput{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
		},
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.CreateBookingResponse{
		BookingID:            res.BookingID.String(),
		CustomerID:           res.CustomerID.String(),
		Date:                 res.Date,
		Time:                 res.Time,
		TotalPriceCents:      res.TotalPriceCents,
		TotalDurationMinutes: int32(res.TotalDurationMinutes),
		Partial:              res.Partial(),
	}
	for _, w := range res.Warnings {
		resp.Warnings = append(resp.Warnings, clinicpb.Warning{Step: w.Step, Message: w.Message})
	}
	return resp, nil
}

func (s *ClinicService) UpdateBookingStatus(
	ctx context.Context,
	req *clinicpb.UpdateBookingStatusRequest,
) (*clinicpb.UpdateBookingStatusResponse, error) {
	b, err := s.reservations.UpdateBookingStatus(ctx, req.BookingID, req.Status)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.UpdateBookingStatusResponse{Booking: toBookingPB(b)}, nil
}

func (s *ClinicService) ListBookings(
	ctx context.Context,
	req *clinicpb.ListBookingsRequest,
) (*clinicpb.ListBookingsResponse, error) {
	page, err := s.reservations.ListBookings(ctx, reservation.BookingFilter{Date: req.Date}, int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListBookingsResponse{
		Bookings: make([]clinicpb.Booking, 0, len(page.Items)),
		Page:     toPageInfo(page.Page, page.PageSize, page.Total, page.HasNext, page.HasPrev),
	}
	for i := range page.Items {
		resp.Bookings = append(resp.Bookings, toBookingPB(&page.Items[i]))
	}
	return resp, nil
}

func (s *ClinicService) BlockSlot(
	ctx context.Context,
	req *clinicpb.BlockSlotRequest,
) (*clinicpb.BlockSlotResponse, error) {
	outcome, err := s.reservations.BlockSlot(ctx, req.Date, req.Time, req.Reason)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.BlockSlotResponse{Outcome: string(outcome)}, nil
}

func (s *ClinicService) UnblockSlot(
	ctx context.Context,
	req *clinicpb.UnblockSlotRequest,
) (*clinicpb.UnblockSlotResponse, error) {
	outcome, err := s.reservations.UnblockSlot(ctx, req.Date, req.Time)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.UnblockSlotResponse{Outcome: string(outcome)}, nil
}

func (s *ClinicService) GenerateSlots(
	ctx context.Context,
	req *clinicpb.GenerateSlotsRequest,
) (*clinicpb.GenerateSlotsResponse, error) {
	res, err := s.reservations.GenerateSlots(ctx, req.From, req.To)
	if err != nil {
		return nil, toStatus(err)
	}
	return toGeneratePB(res), nil
}

func (s *ClinicService) ListServices(
	ctx context.Context,
	req *clinicpb.ListServicesRequest,
) (*clinicpb.ListServicesResponse, error) {
	list, err := s.services.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListServicesResponse{Services: make([]clinicpb.Service, 0, len(list))}
	for i := range list {
		resp.Services = append(resp.Services, toServicePB(&list[i]))
	}
	return resp, nil
}

func (s *ClinicService) CreateService(
	ctx context.Context,
	req *clinicpb.CreateServiceRequest,
) (*clinicpb.CreateServiceResponse, error) {
	svc, err := s.services.Create(ctx, catalog.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationMinutes: int(req.DurationMinutes),
		Category:        req.Category,
		Active:          req.Active,
		Popular:         req.Popular,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.CreateServiceResponse{Service: toServicePB(svc)}, nil
}

func (s *ClinicService) UpdateService(
	ctx context.Context,
	req *clinicpb.UpdateServiceRequest,
) (*clinicpb.UpdateServiceResponse, error) {
	patch := catalog.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		Active:      req.Active,
		Popular:     req.Popular,
	}
	if req.DurationMinutes != nil {
		d := int(*req.DurationMinutes)
		patch.DurationMinutes = &d
	}

	svc, err := s.services.Update(ctx, req.ID, patch)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.UpdateServiceResponse{Service: toServicePB(svc)}, nil
}

func (s *ClinicService) DeleteService(
	ctx context.Context,
	req *clinicpb.DeleteServiceRequest,
) (*clinicpb.DeleteServiceResponse, error) {
	if err := s.services.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.DeleteServiceResponse{}, nil
}

func (s *ClinicService) ListWorkingHours(
	ctx context.Context,
	_ *clinicpb.ListWorkingHoursRequest,
) (*clinicpb.ListWorkingHoursResponse, error) {
	hours, err := s.hours.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListWorkingHoursResponse{Days: make([]clinicpb.WorkingDay, 0, len(hours))}
	for i := range hours {
		resp.Days = append(resp.Days, toWorkingDayPB(&hours[i]))
	}
	return resp, nil
}

func (s *ClinicService) UpdateWorkingHours(
	ctx context.Context,
	req *clinicpb.UpdateWorkingHoursRequest,
) (*clinicpb.UpdateWorkingHoursResponse, error) {
	d := req.Day
	day, gen, err := s.hours.Update(ctx, int(d.DayOfWeek), catalog.DayPatch{
		IsOpen:              d.IsOpen,
		OpenTime:            d.OpenTime,
		CloseTime:           d.CloseTime,
		BreakStart:          d.BreakStart,
		BreakEnd:            d.BreakEnd,
		SlotDurationMinutes: int(d.SlotDurationMinutes),
	}, int(req.RegenerateDays))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.UpdateWorkingHoursResponse{Day: toWorkingDayPB(day)}
	if gen != nil {
		resp.Generation = toGeneratePB(gen)
	}
	return resp, nil
}

func (s *ClinicService) CreateReview(
	ctx context.Context,
	req *clinicpb.CreateReviewRequest,
) (*clinicpb.CreateReviewResponse, error) {
	rv, err := s.reviews.Create(ctx, catalog.ReviewInput{
		CustomerName:       req.CustomerName,
		CustomerIdentifier: req.CustomerIdentifier,
		Rating:             int(req.Rating),
		Comment:            req.Comment,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.CreateReviewResponse{Review: toReviewPB(rv)}, nil
}

func (s *ClinicService) ListReviews(
	ctx context.Context,
	req *clinicpb.ListReviewsRequest,
) (*clinicpb.ListReviewsResponse, error) {
	page, err := s.reviews.ListApproved(ctx, int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListReviewsResponse{
		Reviews: make([]clinicpb.Review, 0, len(page.Items)),
		Page:    toPageInfo(page.Page, page.PageSize, page.Total, page.HasNext, page.HasPrev),
	}
	for i := range page.Items {
		resp.Reviews = append(resp.Reviews, toReviewPB(&page.Items[i]))
	}
	return resp, nil
}

func (s *ClinicService) ListAllReviews(
	ctx context.Context,
	_ *clinicpb.ListAllReviewsRequest,
) (*clinicpb.ListAllReviewsResponse, error) {
	list, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &clinicpb.ListAllReviewsResponse{Reviews: make([]clinicpb.Review, 0, len(list))}
	for i := range list {
		resp.Reviews = append(resp.Reviews, toReviewPB(&list[i]))
	}
	return resp, nil
}

func (s *ClinicService) ApproveReview(
	ctx context.Context,
	req *clinicpb.ApproveReviewRequest,
) (*clinicpb.ApproveReviewResponse, error) {
	rv, err := s.reviews.Approve(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.ApproveReviewResponse{Review: toReviewPB(rv)}, nil
}

func (s *ClinicService) DeleteReview(
	ctx context.Context,
	req *clinicpb.DeleteReviewRequest,
) (*clinicpb.DeleteReviewResponse, error) {
	if err := s.reviews.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &clinicpb.DeleteReviewResponse{}, nil
}

func toBookingPB(b *model.Booking) clinicpb.Booking {
	out := clinicpb.Booking{
		ID:                   b.ID.String(),
		CustomerID:           b.CustomerID.String(),
		Date:                 reservation.DateString(b.BookingDate),
		Time:                 reservation.ClockString(b.BookingTime),
		Status:               string(b.Status),
		TotalPriceCents:      b.TotalPriceCents,
		TotalDurationMinutes: int32(b.TotalDurationMinutes),
		Notes:                b.Notes,
		CreatedAt:            b.CreatedAt.UTC(),
	}
	if b.Customer != nil {
		out.CustomerName = b.Customer.Name
		out.CustomerPhone = b.Customer.Phone
	}
	for _, l := range b.Lines {
		line := clinicpb.BookingLine{ServiceID: l.ServiceID.String(), PriceCents: l.PriceCents}
		if l.Service != nil {
			line.ServiceName = l.Service.Name
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func toServicePB(s *model.Service) clinicpb.Service {
	return clinicpb.Service{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		PriceCents:      s.PriceCents,
		DurationMinutes: int32(s.DurationMinutes),
		Category:        s.Category,
		Active:          s.Active,
		Popular:         s.Popular,
	}
}

func toWorkingDayPB(h *model.WorkingHours) clinicpb.WorkingDay {
	clock := func(t *datatypes.Time) string {
		if t == nil {
			return ""
		}
		return reservation.ClockString(*t)
	}
	return clinicpb.WorkingDay{
		DayOfWeek:           int32(h.DayOfWeek),
		IsOpen:              h.IsOpen,
		OpenTime:            clock(h.OpenTime),
		CloseTime:           clock(h.CloseTime),
		BreakStart:          clock(h.BreakStart),
		BreakEnd:            clock(h.BreakEnd),
		SlotDurationMinutes: int32(h.SlotDurationMinutes),
	}
}

func toReviewPB(r *model.Review) clinicpb.Review {
	return clinicpb.Review{
		ID:           r.ID.String(),
		CustomerName: r.CustomerName,
		Rating:       int32(r.Rating),
		Comment:      r.Comment,
		Approved:     r.Approved,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func toGeneratePB(r *reservation.GenerateResult) *clinicpb.GenerateSlotsResponse {
	return &clinicpb.GenerateSlotsResponse{
		From:         r.From,
		To:           r.To,
		DaysVisited:  int32(r.DaysVisited),
		OpenDays:     int32(r.OpenDays),
		SlotsCreated: r.SlotsCreated,
	}
}

func toPageInfo(page, size, total int, hasNext, hasPrev bool) clinicpb.PageInfo {
	return clinicpb.PageInfo{
		Page:     int32(page),
		PageSize: int32(size),
		Total:    int32(total),
		HasNext:  hasNext,
		HasPrev:  hasPrev,
	}
}
