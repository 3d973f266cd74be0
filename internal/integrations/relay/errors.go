package relay

import "errors"

var (
	// ErrNotConfigured возвращается, если не задан адрес или секрет релея
	ErrNotConfigured = errors.New("relay client: not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("relay client: internal error")

	// ErrRejected возвращается, когда релей ответил не 200
	ErrRejected = errors.New("relay client: request rejected")
)
