package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Booking      BookingConfig
	Notification NotificationConfig
}

type AppConfig struct {
	Port              string
	Env               string
	LogLevel          string
	CORSAllowedOrigin string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
	LogQueries   bool
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig only validates tokens; issuing them belongs to the identity service.
type JWTConfig struct {
	Secret string
}

type BookingConfig struct {
	DefaultSlotDurationMinutes int
	MaxGenerationDays          int
	LegacyBookingEnabled       bool
	OpenSlotCacheTTL           time.Duration
}

type NotificationConfig struct {
	Channel string
	Workers int
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// Environment variables alone are enough, e.g. in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("APP_LOG_LEVEL"),

			CORSAllowedOrigin: viper.GetString("APP_CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Name:         viper.GetString("DB_NAME"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			LogQueries:   viper.GetBool("DB_LOG_QUERIES"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Booking: BookingConfig{
			DefaultSlotDurationMinutes: viper.GetInt("SLOT_DEFAULT_DURATION_MINUTES"),
			MaxGenerationDays:          viper.GetInt("SLOT_MAX_GENERATION_DAYS"),
			LegacyBookingEnabled:       viper.GetBool("LEGACY_BOOKING_ENABLED"),
			OpenSlotCacheTTL:           viper.GetDuration("OPEN_SLOT_CACHE_TTL"),
		},
		Notification: NotificationConfig{
			Channel: viper.GetString("NOTIFICATION_CHANNEL"),
			Workers: viper.GetInt("NOTIFICATION_WORKERS"),
			Timeout: viper.GetDuration("NOTIFICATION_TIMEOUT"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("SLOT_DEFAULT_DURATION_MINUTES", 30)
	viper.SetDefault("SLOT_MAX_GENERATION_DAYS", 92)
	viper.SetDefault("LEGACY_BOOKING_ENABLED", false)
	viper.SetDefault("OPEN_SLOT_CACHE_TTL", "60s")
	viper.SetDefault("NOTIFICATION_CHANNEL", "appointment.lifecycle")
	viper.SetDefault("NOTIFICATION_WORKERS", 8)
	viper.SetDefault("NOTIFICATION_TIMEOUT", "5s")
}
