package send_reminders

import "errors"

var (
	// ErrInvalidOffset возвращается для смещения, отличного от 0 (сегодня) и 1 (завтра)
	ErrInvalidOffset = errors.New("send_reminders: offset must be 0 or 1")
)
