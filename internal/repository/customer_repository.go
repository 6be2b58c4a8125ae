package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

type CustomerRepository interface {
	// Клиент по телефону; nil, если не найден.
	FindByPhone(ctx context.Context, phone string) (*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) error
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// NormalizePhone оставляет только цифры.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	b := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			b = append(b, c)
		}
	}
	return string(b)
}

func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	n := NormalizePhone(phone)
	if n == "" {
		return nil, nil
	}

	var c model.Customer
	// Try normalized first, then raw (in case old data is not normalized).
	q := r.db.WithContext(ctx).Model(&model.Customer{}).Where("phone = ?", n)
	if raw := strings.TrimSpace(phone); raw != n {
		q = q.Or("phone = ?", raw)
	}
	err := q.Order("created_at ASC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	customer.Phone = NormalizePhone(customer.Phone)
	return r.db.WithContext(ctx).Create(customer).Error
}
