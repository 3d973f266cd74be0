package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig        `toml:"server"`
	Logs         LogsConfig          `toml:"logs"`
	Metrics      MetricsConfig       `toml:"metrics"`
	Database     DatabaseConfig      `toml:"database"`
	Telegram     TelegramConfig      `toml:"telegram"`
	Calendar     CalendarConfig      `toml:"calendar"`
	Relay        RelayConfig         `toml:"relay"`
	Booking      BookingConfig       `toml:"booking"`
	Reminders    RemindersConfig     `toml:"reminders"`
	API          APIConfig           `toml:"api"`
	ServiceTypes []ServiceTypeConfig `toml:"service_types"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type TelegramConfig struct {
	BotToken           string  `toml:"bot_token"`
	ManagerBotToken    string  `toml:"manager_bot_token"` // пусто = уведомления шлёт основной бот
	PollTimeout        int     `toml:"poll_timeout"`      // секунды
	Workers            int     `toml:"workers"`
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`
	Timeout            int     `toml:"timeout"` // секунды
}

type CalendarConfig struct {
	CredentialsFile        string `toml:"credentials_file"`
	Timezone               string `toml:"timezone"`
	Timeout                int    `toml:"timeout"` // секунды
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
}

type RelayConfig struct {
	SharedSecret string `toml:"shared_secret"`
	PushURL      string `toml:"push_url"` // пусто = не пересылать входящие во внешний компаньон
	Timeout      int    `toml:"timeout"`  // секунды
}

type BookingConfig struct {
	HorizonDays       int    `toml:"horizon_days"`
	CutoffHour        int    `toml:"cutoff_hour"`
	SlotMinutes       int    `toml:"slot_minutes"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"` // 0 = сессии не истекают
	WeekdayOpen       string `toml:"weekday_open"`
	WeekdayClose      string `toml:"weekday_close"`
	SaturdayOpen      string `toml:"saturday_open"`
	SaturdayClose     string `toml:"saturday_close"`
}

type RemindersConfig struct {
	Enabled       bool   `toml:"enabled"`
	SameDaySpec   string `toml:"same_day_spec"`
	DayBeforeSpec string `toml:"day_before_spec"`
}

type APIConfig struct {
	OperatorToken string `toml:"operator_token"` // пусто = API без авторизации
}

type ServiceTypeConfig struct {
	Name             string   `toml:"name"`
	Subtypes         []string `toml:"subtypes"`
	RequiresDatetime bool     `toml:"requires_datetime"`
	CalendarID       string   `toml:"calendar_id"`
	ManagerChatID    int64    `toml:"manager_chat_id"`
	ColorID          string   `toml:"color_id"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "sto-booking-bot",
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Telegram: TelegramConfig{
			PollTimeout:        30,
			Workers:            8,
			RateLimitPerSecond: 25,
			Timeout:            5,
		},
		Calendar: CalendarConfig{
			Timezone:               "Europe/Kiev",
			Timeout:                5,
			DefaultDurationMinutes: domain.DefaultEventDurationMinutes,
		},
		Relay: RelayConfig{Timeout: 3},
		Booking: BookingConfig{
			HorizonDays:   domain.DefaultHorizonDays,
			CutoffHour:    domain.DefaultCutoffHour,
			SlotMinutes:   domain.DefaultSlotDurationMinutes,
			WeekdayOpen:   "09:00",
			WeekdayClose:  "17:30",
			SaturdayOpen:  "09:00",
			SaturdayClose: "13:00",
		},
		Reminders: RemindersConfig{
			Enabled:       true,
			SameDaySpec:   "0 9 * * *",
			DayBeforeSpec: "0 19 * * *",
		},
	}
}

// Load читает toml файл поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse декодирует toml в cfg и проверяет форматы значений
func Parse(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("invalid calendar.timezone %q: %w", cfg.Calendar.Timezone, err)
	}

	if _, err := cfg.WorkingHours(); err != nil {
		return err
	}

	if cfg.Booking.HorizonDays <= 0 {
		return fmt.Errorf("invalid booking.horizon_days: %d", cfg.Booking.HorizonDays)
	}
	if cfg.Booking.SlotMinutes <= 0 {
		return fmt.Errorf("invalid booking.slot_minutes: %d", cfg.Booking.SlotMinutes)
	}
	if cfg.Booking.CutoffHour < 0 || cfg.Booking.CutoffHour > 24 {
		return fmt.Errorf("invalid booking.cutoff_hour: %d", cfg.Booking.CutoffHour)
	}

	return nil
}

// Validate возвращает список незаполненных полей
func (c *Config) Validate() []string {
	var missing []string

	if c.Telegram.BotToken == "" {
		missing = append(missing, "telegram.bot_token")
	}
	if c.Relay.SharedSecret == "" {
		missing = append(missing, "relay.shared_secret")
	}
	if c.Calendar.CredentialsFile == "" {
		missing = append(missing, "calendar.credentials_file")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			missing = append(missing, "database.host")
		}
		if c.Database.DBName == "" {
			missing = append(missing, "database.dbname")
		}
	}

	if len(c.ServiceTypes) == 0 {
		missing = append(missing, "service_types")
	}
	for i, st := range c.ServiceTypes {
		if st.Name == "" {
			missing = append(missing, fmt.Sprintf("service_types[%d].name", i))
		}
		if len(st.Subtypes) == 0 {
			missing = append(missing, fmt.Sprintf("service_types[%d].subtypes", i))
		}
		if st.RequiresDatetime && st.CalendarID == "" {
			missing = append(missing, fmt.Sprintf("service_types[%d].calendar_id", i))
		}
		if st.ManagerChatID == 0 {
			missing = append(missing, fmt.Sprintf("service_types[%d].manager_chat_id", i))
		}
	}

	return missing
}

// TelegramReady бот можно запускать
func (c *Config) TelegramReady() bool {
	return c.Telegram.BotToken != "" && len(c.ServiceTypes) > 0
}

// RelayReady локальный релей можно запускать
func (c *Config) RelayReady() bool {
	return c.Relay.SharedSecret != ""
}

// CalendarReady клиент календаря можно создавать
func (c *Config) CalendarReady() bool {
	return c.Calendar.CredentialsFile != ""
}

// DatabaseReady хранилище чатов в PostgreSQL
func (c *Config) DatabaseReady() bool {
	return c.Database.Enabled && c.Database.Host != "" && c.Database.DBName != ""
}

// Location часовой пояс сервиса
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Calendar.Timezone)
}

// WorkingHours рабочие часы из секции booking
func (c *Config) WorkingHours() (domain.WorkingHours, error) {
	hours := domain.DefaultWorkingHours()

	fields := []struct {
		name  string
		value string
		dst   *types.TimeString
	}{
		{"booking.weekday_open", c.Booking.WeekdayOpen, &hours.Weekdays.Open},
		{"booking.weekday_close", c.Booking.WeekdayClose, &hours.Weekdays.Close},
		{"booking.saturday_open", c.Booking.SaturdayOpen, &hours.Saturday.Open},
		{"booking.saturday_close", c.Booking.SaturdayClose, &hours.Saturday.Close},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		ts, err := types.NewTimeStringFromString(f.value)
		if err != nil {
			return domain.WorkingHours{}, fmt.Errorf("invalid %s %q: %w", f.name, f.value, err)
		}
		*f.dst = ts
	}

	if hours.Weekdays.Close.IsBefore(hours.Weekdays.Open) {
		return domain.WorkingHours{}, fmt.Errorf("booking.weekday_close is before booking.weekday_open")
	}
	if hours.Saturday.Close.IsBefore(hours.Saturday.Open) {
		return domain.WorkingHours{}, fmt.Errorf("booking.saturday_close is before booking.saturday_open")
	}

	return hours, nil
}

// DomainServiceTypes типы услуг в доменном виде, порядок сохраняется
func (c *Config) DomainServiceTypes() []domain.ServiceType {
	result := make([]domain.ServiceType, 0, len(c.ServiceTypes))
	for _, st := range c.ServiceTypes {
		result = append(result, domain.ServiceType{
			Name:             st.Name,
			Subtypes:         append([]string(nil), st.Subtypes...),
			RequiresDatetime: st.RequiresDatetime,
			CalendarID:       st.CalendarID,
			ManagerChatID:    st.ManagerChatID,
			ColorID:          st.ColorID,
		})
	}
	return result
}

// CalendarIDs уникальные id календарей в порядке объявления
func (c *Config) CalendarIDs() []string {
	seen := make(map[string]struct{}, len(c.ServiceTypes))
	ids := make([]string, 0, len(c.ServiceTypes))
	for _, st := range c.ServiceTypes {
		if st.CalendarID == "" {
			continue
		}
		if _, ok := seen[st.CalendarID]; ok {
			continue
		}
		seen[st.CalendarID] = struct{}{}
		ids = append(ids, st.CalendarID)
	}
	return ids
}

// SessionTTL время жизни незавершённого диалога, 0 = бессрочно
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Booking.SessionTTLMinutes) * time.Minute
}
