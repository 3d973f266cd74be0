package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной заявке
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownServiceType возвращается, когда тип услуги не настроен
	ErrUnknownServiceType = errors.New("create_booking: unknown service type")
)
