package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/db/dbtest"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
)

type published struct {
	key string
	msg any
}

type recordingBus struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (b *recordingBus) PublishJSON(_ context.Context, key string, v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.msgs = append(b.msgs, published{key: key, msg: v})
	return nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.msgs))
	for _, m := range b.msgs {
		out = append(out, m.key)
	}
	return out
}

type fixture struct {
	db    *gorm.DB
	repos Repositories
	bus   *recordingBus
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	repos := Repositories{
		Slots:        repository.NewGormSlotRepository(db),
		Bookings:     repository.NewGormBookingRepository(db),
		Customers:    repository.NewGormCustomerRepository(db),
		Services:     repository.NewGormServiceRepository(db),
		WorkingHours: repository.NewGormWorkingHoursRepository(db),
		Events:       repository.NewGormEventRepository(db),
	}
	f := &fixture{db: db, repos: repos, bus: &recordingBus{}}
	f.rebuild(t)
	return f
}

// rebuild пересобирает сервис после подмены репозиториев в f.repos.
func (f *fixture) rebuild(t *testing.T) {
	f.svc = NewService(f.repos, f.bus, zaptest.NewLogger(t))
}

func (f *fixture) service(t *testing.T, name string, priceCents int64, minutes int) *model.Service {
	t.Helper()
	s := &model.Service{Name: name, PriceCents: priceCents, DurationMinutes: minutes, Category: "massagem", Active: true}
	require.NoError(t, f.repos.Services.Create(context.Background(), s))
	return s
}

// openDay настраивает рабочий день недели (0 = воскресенье).
func (f *fixture) openDay(t *testing.T, dow int, open, closeAt datatypes.Time, breaks ...datatypes.Time) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.repos.WorkingHours.SeedDefaults(ctx))
	h, err := f.repos.WorkingHours.GetByDay(ctx, dow)
	require.NoError(t, err)
	h.IsOpen = true
	h.OpenTime = &open
	h.CloseTime = &closeAt
	if len(breaks) == 2 {
		h.BreakStart = &breaks[0]
		h.BreakEnd = &breaks[1]
	}
	require.NoError(t, f.repos.WorkingHours.Save(ctx, h))
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func bookingFor(phone, date, clock string, serviceIDs ...string) BookingRequest {
	return BookingRequest{
		Date:       date,
		Time:       clock,
		Customer:   CustomerInput{Name: "Cliente " + phone, Phone: phone},
		ServiceIDs: serviceIDs,
	}
}

var errBoom = errors.New("boom")

type failingLines struct{ repository.BookingRepository }

func (failingLines) AddLines(context.Context, []model.BookingService) error { return errBoom }

type failingSlotLookup struct{ repository.SlotRepository }

func (failingSlotLookup) FindByDateTime(context.Context, datatypes.Date, datatypes.Time) (*model.Slot, error) {
	return nil, errBoom
}

type failingServiceLookup struct{ repository.ServiceRepository }

func (failingServiceLookup) ListByIDs(context.Context, []uuid.UUID) ([]model.Service, error) {
	return nil, errBoom
}

type failingCustomerSearch struct{ repository.CustomerRepository }

func (failingCustomerSearch) FindByPhone(context.Context, string) (*model.Customer, error) {
	return nil, errBoom
}

type failingCustomerCreate struct{ repository.CustomerRepository }

func (failingCustomerCreate) Create(context.Context, *model.Customer) error { return errBoom }

type panickingCustomers struct{ repository.CustomerRepository }

func (panickingCustomers) FindByPhone(context.Context, string) (*model.Customer, error) {
	panic("customer store exploded")
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func clock(h, m int) datatypes.Time { return datatypes.NewTime(h, m, 0, 0) }
