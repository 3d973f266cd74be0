package list_chats

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

type ChatService interface {
	ListChats(ctx context.Context) ([]models.ChatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
