package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML-файла при старте
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Redis           RedisConfig           `toml:"redis"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Booking         BookingConfig         `toml:"booking"`
	IdentityService IdentityServiceConfig `toml:"identity_service"`
	WhatsApp        WhatsAppConfig        `toml:"whatsapp"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки подключения к Redis (канал уведомлений об изменениях)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotConfig описание одного слота из каталога
type SlotConfig struct {
	Key   string `toml:"key"`
	Label string `toml:"label"`
	Time  string `toml:"time"`
}

// BookingConfig бизнес-параметры бронирования
// Каталог слотов и окно истечения задаются деплойментом, не кодом
type BookingConfig struct {
	Slots               []SlotConfig `toml:"slots"`
	ExpiryWindowMinutes int          `toml:"expiry_window_minutes"`
	SweepIntervalSec    int          `toml:"sweep_interval_sec"`
	BusinessPhone       string       `toml:"business_phone"`
	ConfirmBaseURL      string       `toml:"confirm_base_url"`
	PaymentPageURL      string       `toml:"payment_page_url"`
}

// IdentityServiceConfig настройки клиента IdentityService
type IdentityServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// WhatsAppConfig настройки WhatsApp Cloud API для best-effort уведомлений администратора
// Если token пустой, серверная отправка отключена (остаётся только deep link)
type WhatsAppConfig struct {
	Token   string `toml:"token"`
	PhoneID string `toml:"phone_id"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML-файла и валидирует обязательные поля
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse toml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if len(c.Booking.Slots) == 0 {
		return fmt.Errorf("config: booking.slots catalog must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Booking.Slots))
	for _, s := range c.Booking.Slots {
		if s.Key == "" {
			return fmt.Errorf("config: booking.slots entry without key")
		}
		if _, ok := seen[s.Key]; ok {
			return fmt.Errorf("config: duplicate slot key %q in booking.slots", s.Key)
		}
		seen[s.Key] = struct{}{}
	}
	if c.Booking.ExpiryWindowMinutes <= 0 {
		return fmt.Errorf("config: booking.expiry_window_minutes must be positive")
	}
	if c.Booking.ConfirmBaseURL == "" {
		return fmt.Errorf("config: booking.confirm_base_url is required")
	}
	return nil
}
