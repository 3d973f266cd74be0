package relay_incoming

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

type ChatService interface {
	Ingest(ctx context.Context, req *models.IncomingMessage, raw []byte) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
