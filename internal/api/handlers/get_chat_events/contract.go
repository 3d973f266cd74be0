package get_chat_events

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

type ChatService interface {
	ListCalendarEvents(ctx context.Context, chatID int64) ([]models.CalendarEventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
