package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// CalendarClient интерфейс чтения событий календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)
}

// Messenger интерфейс отправки сообщений
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ChatRecorder интерфейс журнала чатов
type ChatRecorder interface {
	RecordOutbound(ctx context.Context, chatID int64, text string, ts time.Time, status domain.MessageStatus) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ReminderSent(kind string)
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
