package session

import "errors"

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrUnknownBrand       = errors.New("unknown brand")
	ErrUnknownModel       = errors.New("unknown model")
	ErrEmptyInput         = errors.New("empty input")
	ErrTextExpected       = errors.New("text input expected")
	ErrInvalidYear        = errors.New("invalid year")
	ErrUnknownSubtype     = errors.New("unknown subtype")
	ErrInvalidDate        = errors.New("invalid date")
	ErrDateOutOfRange     = errors.New("date is out of booking range")
	ErrSundayNotAvailable = errors.New("sunday is not available")
	ErrNoSlotsForDate     = errors.New("no free slots for date")
	ErrSlotNotAvailable   = errors.New("slot is not available")
	ErrContactRequired    = errors.New("contact share required")
	ErrSessionComplete    = errors.New("session is already complete")
)

// Сообщения пользователю при ошибках ввода
const (
	msgUnknownServiceType = "Оберіть тип звернення зі списку."
	msgUnknownBrand       = "Такої марки немає у списку. Оберіть марку або натисніть «✏️ Інша марка»."
	msgUnknownModel       = "Такої моделі немає у списку. Оберіть модель або натисніть «✏️ Інша модель»."
	msgEmptyInput         = "Значення не може бути порожнім."
	msgTextExpected       = "Введіть значення текстом."
	msgInvalidYear        = "Оберіть рік випуску зі списку."
	msgUnknownSubtype     = "Оберіть підтип зі списку."
	msgInvalidDate        = "Оберіть дату зі списку."
	msgSundayNotAvailable = "⛔ У неділю запис недоступний. Оберіть інший день."
	msgNoSlotsForDate     = "На цю дату вільного часу вже немає. Оберіть інший день."
	msgSlotNotAvailable   = "Цей час недоступний. Оберіть час зі списку."
	msgContactRequired    = "Номер приймається тільки через кнопку «📱 Поділитись номером»."
	msgSessionComplete    = "Заявку вже оформлено."
)

// ErrorMessage текст для пользователя по ошибке валидации
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnknownServiceType):
		return msgUnknownServiceType
	case errors.Is(err, ErrUnknownBrand):
		return msgUnknownBrand
	case errors.Is(err, ErrUnknownModel):
		return msgUnknownModel
	case errors.Is(err, ErrEmptyInput):
		return msgEmptyInput
	case errors.Is(err, ErrTextExpected):
		return msgTextExpected
	case errors.Is(err, ErrInvalidYear):
		return msgInvalidYear
	case errors.Is(err, ErrUnknownSubtype):
		return msgUnknownSubtype
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrDateOutOfRange):
		return msgInvalidDate
	case errors.Is(err, ErrSundayNotAvailable):
		return msgSundayNotAvailable
	case errors.Is(err, ErrNoSlotsForDate):
		return msgNoSlotsForDate
	case errors.Is(err, ErrSlotNotAvailable):
		return msgSlotNotAvailable
	case errors.Is(err, ErrContactRequired):
		return msgContactRequired
	case errors.Is(err, ErrSessionComplete):
		return msgSessionComplete
	default:
		return ""
	}
}
