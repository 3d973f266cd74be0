package list_calendar_events

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
