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

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	CORS     CORSConfig     `toml:"cors"`
	Jobs     JobsConfig     `toml:"jobs"`
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
}

// DSN возвращает строку подключения для lib/pq
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

// ScheduleConfig рабочие часы и шаг сетки в минутах от полуночи
type ScheduleConfig struct {
	WorkStartMinute int    `toml:"work_start_minute"`
	WorkEndMinute   int    `toml:"work_end_minute"`
	SlotMinutes     int    `toml:"slot_minutes"`
	Timezone        string `toml:"timezone"`
	MaxRangeDays    int    `toml:"max_range_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type JobsConfig struct {
	DraftCleanupEnabled bool   `toml:"draft_cleanup_enabled"`
	DraftCleanupCron    string `toml:"draft_cleanup_cron"`
	DraftTTLMinutes     int    `toml:"draft_ttl_minutes"`
}

// Load читает TOML-файл, затем применяет переменные окружения (включая .env)
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be a valid TCP port (got %d)", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.Schedule.Domain(); err != nil {
		return err
	}

	if c.Schedule.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: schedule.max_range_days must be positive", ErrInvalidConfig)
	}

	if c.Jobs.DraftCleanupEnabled && c.Jobs.DraftCleanupCron == "" {
		return fmt.Errorf("%w: jobs.draft_cleanup_cron is required when cleanup is enabled", ErrInvalidConfig)
	}

	return nil
}

// Domain конвертирует секцию schedule в доменную конфигурацию сетки
func (s ScheduleConfig) Domain() (domain.ScheduleConfig, error) {
	loc := time.UTC
	if s.Timezone != "" {
		l, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
		}
		loc = l
	}

	cfg := domain.ScheduleConfig{
		WorkStartMinute: s.WorkStartMinute,
		WorkEndMinute:   s.WorkEndMinute,
		SlotMinutes:     s.SlotMinutes,
		Location:        loc,
	}
	if err := cfg.Validate(); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
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
			ServiceName: "rental-schedule",
		},
		Schedule: ScheduleConfig{
			WorkStartMinute: domain.DefaultWorkStartMinute,
			WorkEndMinute:   domain.DefaultWorkEndMinute,
			SlotMinutes:     domain.DefaultSlotMinutes,
			Timezone:        "UTC",
			MaxRangeDays:    domain.DefaultMaxRangeDays,
		},
		Jobs: JobsConfig{
			DraftCleanupCron: "@every 10m",
			DraftTTLMinutes:  24 * 60,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Logs.Level, "LOG_LEVEL")

	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer (got %q)", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}
