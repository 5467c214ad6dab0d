package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Shop        ShopConfig        `toml:"shop"`
	Booking     BookingConfig     `toml:"booking"`
	History     HistoryConfig     `toml:"history"`
	Closures    ClosuresConfig    `toml:"closures"`
	Cache       CacheConfig       `toml:"cache"`
	UserService UserServiceConfig `toml:"user_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ShopConfig часы работы барбершопа и правила записи
type ShopConfig struct {
	OpenTime              string `toml:"open_time"`
	CloseTime             string `toml:"close_time"`
	Timezone              string `toml:"timezone"`
	SlotStepMinutes       int    `toml:"slot_step_minutes"`
	CancellationLeadHours int    `toml:"cancellation_lead_hours"`
}

// Location часовой пояс барбершопа
func (s ShopConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type BookingConfig struct {
	// DefaultStatus статус новой записи: confirmed или pending
	DefaultStatus string `toml:"default_status"`
}

type HistoryConfig struct {
	PageSize int `toml:"page_size"`
}

type ClosuresConfig struct {
	LookbackDays int `toml:"lookback_days"`
}

type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает TOML файл, затем применяет переменные окружения (и .env, если он есть)
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}

	open, err := types.NewTimeStringFromString(c.Shop.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: shop.open_time: %v", ErrInvalidConfig, err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Shop.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: shop.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("%w: shop.open_time must be before shop.close_time", ErrInvalidConfig)
	}
	if c.Shop.SlotStepMinutes <= 0 || 60%c.Shop.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: shop.slot_step_minutes must divide 60", ErrInvalidConfig)
	}
	if !open.IsOnGrid(c.Shop.SlotStepMinutes) || !closeTime.IsOnGrid(c.Shop.SlotStepMinutes) {
		return fmt.Errorf("%w: shop hours must be aligned to the slot step", ErrInvalidConfig)
	}
	if c.Shop.CancellationLeadHours < 0 {
		return fmt.Errorf("%w: shop.cancellation_lead_hours must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Shop.Location(); err != nil {
		return fmt.Errorf("%w: shop.timezone: %v", ErrInvalidConfig, err)
	}

	switch c.Booking.DefaultStatus {
	case "confirmed", "pending":
	default:
		return fmt.Errorf("%w: booking.default_status must be confirmed or pending", ErrInvalidConfig)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-barberservice",
		},
		Shop: ShopConfig{
			OpenTime:              "09:00",
			CloseTime:             "18:00",
			Timezone:              "UTC",
			SlotStepMinutes:       15,
			CancellationLeadHours: 2,
		},
		Booking:  BookingConfig{DefaultStatus: "confirmed"},
		History:  HistoryConfig{PageSize: 10},
		Closures: ClosuresConfig{LookbackDays: 30},
		Cache:    CacheConfig{TTLSeconds: 60},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.HTTPPort = getEnvAsInt("HTTP_PORT", cfg.Server.HTTPPort)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Logs.Level = getEnv("LOG_LEVEL", cfg.Logs.Level)
	cfg.Cache.Addr = getEnv("REDIS_ADDR", cfg.Cache.Addr)
	cfg.Cache.Password = getEnv("REDIS_PASSWORD", cfg.Cache.Password)
	cfg.UserService.URL = getEnv("USER_SERVICE_URL", cfg.UserService.URL)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
