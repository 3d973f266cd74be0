package chats

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// ChatRepository хранилище чатов (PostgreSQL или память)
type ChatRepository interface {
	UpsertChat(ctx context.Context, chatID int64, displayName string, lastMessageAt time.Time) error
	AppendMessage(ctx context.Context, msg *domain.Message) error
	ResetUnread(ctx context.Context, chatID int64) error
	GetChat(ctx context.Context, chatID int64) (*domain.Chat, error)
	ListChats(ctx context.Context) ([]*domain.Chat, error)
	ListMessages(ctx context.Context, chatID int64) ([]*domain.Message, error)
	AddCalendarEvent(ctx context.Context, event *domain.CalendarEventRecord) error
	ListCalendarEvents(ctx context.Context, chatID int64) ([]*domain.CalendarEventRecord, error)
}

// MessageSender отправка текста в чат мессенджера
type MessageSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
