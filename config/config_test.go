package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-clinic-scheduling/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LoadConfig works on the global viper instance
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadConfig_FromEnvironmentWithoutDotEnv(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LEGACY_BOOKING_ENABLED", "true")
	t.Setenv("OPEN_SLOT_CACHE_TTL", "2m")
	t.Setenv("APP_CORS_ALLOWED_ORIGIN", "https://clinic.test")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://clinic.test", cfg.App.CORSAllowedOrigin)
	assert.Equal(t, 30, cfg.Booking.DefaultSlotDurationMinutes)
	assert.Equal(t, 92, cfg.Booking.MaxGenerationDays)
	assert.True(t, cfg.Booking.LegacyBookingEnabled)
	assert.Equal(t, 2*time.Minute, cfg.Booking.OpenSlotCacheTTL)
	assert.Equal(t, "appointment.lifecycle", cfg.Notification.Channel)
	assert.Equal(t, 5*time.Second, cfg.Notification.Timeout)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SLOT_DEFAULT_DURATION_MINUTES=20\nNOTIFICATION_WORKERS=2\n"), 0o600))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Booking.DefaultSlotDurationMinutes)
	assert.Equal(t, 2, cfg.Notification.Workers)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}
