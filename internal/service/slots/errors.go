package slots

import "errors"

var (
	ErrSundayClosed   = errors.New("sunday is not available for booking")
	ErrDateOutOfRange = errors.New("date is out of booking range")
	ErrInvalidDate    = errors.New("invalid date format")
)
