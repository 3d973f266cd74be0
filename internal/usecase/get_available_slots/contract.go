package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// CalendarClient интерфейс чтения занятости из календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)
}

// SlotCalculator интерфейс расчёта свободных слотов
type SlotCalculator interface {
	Location() *time.Location
	SlotMinutes() int
	ParseDate(value string) (time.Time, error)
	ValidateDate(date, now time.Time) error
	Slots(date, now time.Time, busy []domain.Interval) []types.TimeString
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ExternalFailure(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
