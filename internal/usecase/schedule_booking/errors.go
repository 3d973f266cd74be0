package schedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_booking: invalid input data")

	// ErrUnknownServiceType возвращается, когда тип услуги не настроен
	ErrUnknownServiceType = errors.New("schedule_booking: unknown service type")

	// ErrNoCalendar возвращается, когда для типа услуги не задан календарь
	ErrNoCalendar = errors.New("schedule_booking: calendar is not configured for service type")

	// ErrChatNotFound возвращается, когда чат не найден
	ErrChatNotFound = errors.New("schedule_booking: chat not found")

	// ErrSlotBusy возвращается, когда выбранное время пересекается с событием календаря
	ErrSlotBusy = errors.New("schedule_booking: time slot is busy")

	// ErrCalendarUnavailable возвращается при сбое запроса к календарю
	ErrCalendarUnavailable = errors.New("schedule_booking: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_booking: internal error")
)
