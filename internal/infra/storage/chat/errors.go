package chat

import "errors"

var (
	// ErrChatNotFound возвращается, когда чат не найден
	ErrChatNotFound = errors.New("chat.repository: chat not found")

	// ErrInvalidDirection возвращается при недопустимом направлении сообщения
	ErrInvalidDirection = errors.New("chat.repository: invalid message direction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("chat.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("chat.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("chat.repository: failed to scan row")
)
