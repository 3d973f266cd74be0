package calendar

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректных параметрах события
	ErrInvalidRequest = errors.New("calendar client: invalid request")

	// ErrCalendarNotFound возвращается, когда календарь не найден или нет доступа
	ErrCalendarNotFound = errors.New("calendar client: calendar not found")

	// ErrTimeout возвращается при превышении времени ожидания ответа
	ErrTimeout = errors.New("calendar client: timeout")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Google Calendar
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
