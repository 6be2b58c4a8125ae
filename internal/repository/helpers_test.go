package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

func day(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return datatypes.Date(d)
}

func clock(h, m int) datatypes.Time {
	return datatypes.NewTime(h, m, 0, 0)
}

func seedCustomer(t *testing.T, db *gorm.DB, phone string) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: "Maria", Phone: phone}
	require.NoError(t, NewGormCustomerRepository(db).Create(context.Background(), c))
	return c
}

func seedService(t *testing.T, db *gorm.DB, name string, priceCents int64) *model.Service {
	t.Helper()
	s := &model.Service{Name: name, PriceCents: priceCents, DurationMinutes: 30, Category: "massagem", Active: true}
	require.NoError(t, NewGormServiceRepository(db).Create(context.Background(), s))
	return s
}
