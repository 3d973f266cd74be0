package chats

import "errors"

var (
	// ErrChatNotFound возвращается, когда чат не найден
	ErrChatNotFound = errors.New("chat not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSenderUnavailable возвращается, когда мессенджер не настроен
	ErrSenderUnavailable = errors.New("messenger is not configured")

	// ErrDeliveryFailed возвращается, когда сообщение не удалось отправить
	// Сообщение при этом сохраняется со статусом failed
	ErrDeliveryFailed = errors.New("message delivery failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
