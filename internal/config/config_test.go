package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/pkg/types"
)

const fullConfig = `
[telegram]
bot_token = "123:abc"

[calendar]
credentials_file = "creds.json"
timezone = "Europe/Kiev"

[relay]
shared_secret = "secret"

[booking]
saturday_close = "14:00"
session_ttl_minutes = 30

[[service_types]]
name = "СТО"
subtypes = ["Заміна масла", "Діагностика"]
requires_datetime = true
calendar_id = "sto@calendar"
manager_chat_id = 100

[[service_types]]
name = "ГБО"
subtypes = ["Обслуговування"]
requires_datetime = true
calendar_id = "sto@calendar"
manager_chat_id = 200

[[service_types]]
name = "Мийка"
subtypes = ["Комплекс"]
requires_datetime = false
manager_chat_id = 300
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	// значения по умолчанию сохраняются
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Booking.HorizonDays)
	assert.Equal(t, 17, cfg.Booking.CutoffHour)
	assert.Equal(t, 30, cfg.Calendar.DefaultDurationMinutes)
	assert.Equal(t, "0 9 * * *", cfg.Reminders.SameDaySpec)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())

	assert.Empty(t, cfg.Validate())
	assert.True(t, cfg.TelegramReady())
	assert.True(t, cfg.RelayReady())
	assert.True(t, cfg.CalendarReady())
	assert.False(t, cfg.DatabaseReady())

	hours, err := cfg.WorkingHours()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), hours.Saturday.Close)
	assert.Equal(t, types.TimeString("17:30"), hours.Weekdays.Close)

	sts := cfg.DomainServiceTypes()
	require.Len(t, sts, 3)
	assert.Equal(t, "СТО", sts[0].Name)
	assert.False(t, sts[2].RequiresDatetime)

	assert.Equal(t, []string{"sto@calendar"}, cfg.CalendarIDs())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "broken toml", data: "[server\nhttp_port = 1"},
		{name: "unknown timezone", data: "[calendar]\ntimezone = \"Mars/Olympus\""},
		{name: "bad time", data: "[booking]\nweekday_open = \"9am\""},
		{name: "close before open", data: "[booking]\nsaturday_open = \"12:00\"\nsaturday_close = \"10:00\""},
		{name: "zero horizon", data: "[booking]\nhorizon_days = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Parse([]byte(tt.data), Default()))
		})
	}
}

func TestValidate_ListsMissingFields(t *testing.T) {
	cfg := Default()
	cfg.Database.Enabled = true
	cfg.ServiceTypes = []ServiceTypeConfig{
		{Name: "СТО", RequiresDatetime: true},
	}

	missing := cfg.Validate()

	assert.Equal(t, []string{
		"telegram.bot_token",
		"relay.shared_secret",
		"calendar.credentials_file",
		"database.host",
		"database.dbname",
		"service_types[0].subtypes",
		"service_types[0].calendar_id",
		"service_types[0].manager_chat_id",
	}, missing)

	assert.False(t, cfg.TelegramReady())
	assert.False(t, cfg.RelayReady())
	assert.False(t, cfg.CalendarReady())
	assert.False(t, cfg.DatabaseReady())
}

func TestValidate_NoServiceTypes(t *testing.T) {
	cfg := Default()
	assert.Contains(t, cfg.Validate(), "service_types")
}
