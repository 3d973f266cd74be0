package mark_chat_read

import "context"

type ChatService interface {
	MarkRead(ctx context.Context, chatID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
