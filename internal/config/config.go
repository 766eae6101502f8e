package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Admin    AdminConfig    `toml:"admin"`
	Mail     MailConfig     `toml:"mail"`
	Twilio   TwilioConfig   `toml:"twilio"`
	Booking  BookingConfig  `toml:"booking"`
	Reminder ReminderConfig `toml:"reminder"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AdminConfig доступ к админским ручкам и адрес для уведомлений
type AdminConfig struct {
	Password string `toml:"password"` // shared secret, X-Admin-Password header
	Email    string `toml:"email"`    // admin notification recipient
}

// MailConfig настройки SMTP (пустой host отключает email-канал)
type MailConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	FromName      string `toml:"from_name"`
	FromEmail     string `toml:"from_email"`
	LeadAutoreply bool   `toml:"lead_autoreply"` // optional thank-you email on lead creation
}

// Enabled сообщает, настроен ли SMTP транспорт
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port > 0
}

// TwilioConfig настройки SMS-канала (пустой account_sid отключает SMS)
type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
}

// Enabled сообщает, настроен ли SMS транспорт
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// BookingConfig рабочий календарь консультаций
type BookingConfig struct {
	CalendarTimezone    string `toml:"calendar_timezone"`
	WorkDayStartHour    int    `toml:"work_day_start_hour"`
	WorkDayEndHour      int    `toml:"work_day_end_hour"`
	SlotIntervalMinutes int    `toml:"slot_interval_minutes"`
	ConsultationMinutes int    `toml:"consultation_minutes"`
	DefaultCountry      string `toml:"default_country"` // phone normalization hint
}

// ReminderConfig настройки цикла напоминаний
type ReminderConfig struct {
	PollIntervalMinutes    int `toml:"poll_interval_minutes"`
	WindowToleranceMinutes int `toml:"window_tolerance_minutes"`
	DispatchTimeoutSeconds int `toml:"dispatch_timeout_seconds"` // per-notification bound
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        4000,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "jals-lead-service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			CalendarTimezone:    domain.DefaultCalendarTimezone,
			WorkDayStartHour:    domain.DefaultWorkDayStartHour,
			WorkDayEndHour:      domain.DefaultWorkDayEndHour,
			SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
			ConsultationMinutes: domain.DefaultConsultationMinutes,
			DefaultCountry:      "GB",
		},
		Reminder: ReminderConfig{
			PollIntervalMinutes:    domain.DefaultReminderPollMinutes,
			WindowToleranceMinutes: domain.DefaultReminderWindowMinutes,
			DispatchTimeoutSeconds: 15,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("config: database.user and database.dbname are required")
	}
	if c.Admin.Password == "" {
		return errors.New("config: admin.password is required")
	}
	if c.Booking.WorkDayStartHour >= c.Booking.WorkDayEndHour {
		return fmt.Errorf("config: work day start hour %d must be before end hour %d",
			c.Booking.WorkDayStartHour, c.Booking.WorkDayEndHour)
	}
	if c.Booking.SlotIntervalMinutes <= 0 || c.Booking.ConsultationMinutes <= 0 {
		return errors.New("config: slot interval and consultation duration must be positive")
	}
	if c.Booking.ConsultationMinutes > c.Booking.SlotIntervalMinutes {
		return fmt.Errorf("config: consultation duration %d exceeds slot interval %d",
			c.Booking.ConsultationMinutes, c.Booking.SlotIntervalMinutes)
	}
	if c.Reminder.PollIntervalMinutes <= 0 || c.Reminder.WindowToleranceMinutes <= 0 {
		return errors.New("config: reminder poll interval and tolerance must be positive")
	}
	return nil
}
