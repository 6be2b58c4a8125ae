package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDBConfig_Defaults(t *testing.T) {
	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, 30, cfg.ConnMaxLifeTime)
}

func TestLoadDBConfig_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/clinic.db")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/tmp/clinic.db", cfg.SQLitePath)
}

func TestLoadDBConfig_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadDBConfig()
	require.Error(t, err)
}

func TestLoadAppConfig_RequiresAdminToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")

	_, err := LoadAppConfig()
	require.Error(t, err)
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, 30, cfg.SlotGenerationHorizonDays)
	assert.True(t, cfg.ReviewsAutoApprove)
	assert.Empty(t, cfg.RabbitURL)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadAppConfig_BadTimeZone(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("CLINIC_TIMEZONE", "Mars/Olympus")

	_, err := LoadAppConfig()
	require.Error(t, err)
}

func TestAppConfig_NewLogger(t *testing.T) {
	cfg := &AppConfig{LogLevel: "debug", LogFormat: "console"}
	log, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	cfg = &AppConfig{LogLevel: "warn", LogFormat: "json"}
	log, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = (&AppConfig{LogLevel: "loud", LogFormat: "json"}).NewLogger()
	require.Error(t, err)
	_, err = (&AppConfig{LogLevel: "info", LogFormat: "xml"}).NewLogger()
	require.Error(t, err)
}
