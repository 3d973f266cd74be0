package get_available_slots

import "errors"

var (
	// ErrUnknownServiceType возвращается, когда тип услуги не настроен
	ErrUnknownServiceType = errors.New("unknown service type")

	// ErrNoDatetime возвращается для типа услуги без записи на время
	ErrNoDatetime = errors.New("service type does not use time slots")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateOutOfRange возвращается, когда дата вне горизонта записи
	ErrDateOutOfRange = errors.New("date is out of booking range")

	// ErrSundayClosed возвращается для воскресенья
	ErrSundayClosed = errors.New("service is closed on sunday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")
)
