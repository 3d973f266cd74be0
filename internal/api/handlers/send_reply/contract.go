package send_reply

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

type ChatService interface {
	SendReply(ctx context.Context, req *models.SendReplyRequest) (*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
