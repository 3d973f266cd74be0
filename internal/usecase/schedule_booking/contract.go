package schedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error)
	CreateEvent(ctx context.Context, req domain.CalendarEventRequest) (string, error)
}

// Messenger интерфейс отправки сообщений
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ChatService интерфейс журнала чатов
type ChatService interface {
	GetChat(ctx context.Context, chatID int64) (*models.ChatResponse, error)
	RecordCalendarEvent(ctx context.Context, event *domain.CalendarEventRecord) error
	RecordOutbound(ctx context.Context, chatID int64, text string, ts time.Time, status domain.MessageStatus) error
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
