package get_chat_messages

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

type ChatService interface {
	ListMessages(ctx context.Context, chatID int64) ([]models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
