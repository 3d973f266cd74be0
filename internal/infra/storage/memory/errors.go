package memory

import "errors"

var (
	// ErrChatNotFound возвращается, когда чат не найден
	ErrChatNotFound = errors.New("memory.repository: chat not found")

	// ErrInvalidDirection возвращается при недопустимом направлении сообщения
	ErrInvalidDirection = errors.New("memory.repository: invalid message direction")
)
