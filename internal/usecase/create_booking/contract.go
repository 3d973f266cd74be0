package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	CreateEvent(ctx context.Context, req domain.CalendarEventRequest) (string, error)
}

// Messenger интерфейс отправки сообщений в Telegram
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendHTML(ctx context.Context, chatID int64, text string) error
}

// ChatRecorder интерфейс журнала чатов
type ChatRecorder interface {
	RecordOutbound(ctx context.Context, chatID int64, text string, ts time.Time, status domain.MessageStatus) error
	RecordCalendarEvent(ctx context.Context, event *domain.CalendarEventRecord) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	BookingCompleted(serviceType string)
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
