package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig — настройки процесса, не относящиеся к БД.
type AppConfig struct {
	GRPCAddr  string `envconfig:"CORE_GRPC_ADDR" default:":50051"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json | console

	// Токен администратора, передаётся клиентом как "authorization: Bearer <token>".
	AdminToken string `envconfig:"ADMIN_TOKEN" required:"true"`

	// Пустой RABBIT_URL отключает публикацию событий.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	// Пустое расписание отключает фоновую генерацию слотов.
	SlotGenerationCron        string `envconfig:"SLOT_GENERATION_CRON"`
	SlotGenerationHorizonDays int    `envconfig:"SLOT_GENERATION_HORIZON_DAYS" default:"30"`

	ReviewsAutoApprove bool   `envconfig:"REVIEWS_AUTO_APPROVE" default:"true"`
	ClinicTimeZone     string `envconfig:"CLINIC_TIMEZONE" default:"America/Sao_Paulo"`
}

func LoadAppConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process app env: %w", err)
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("invalid app config: ADMIN_TOKEN must not be empty")
	}
	if cfg.SlotGenerationHorizonDays <= 0 {
		return nil, fmt.Errorf("invalid app config: SLOT_GENERATION_HORIZON_DAYS must be positive")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location возвращает часовой пояс клиники; "сегодня" считается в нём.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClinicTimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid app config: clinic timezone %q: %w", c.ClinicTimeZone, err)
	}
	return loc, nil
}
