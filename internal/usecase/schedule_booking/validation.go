package schedule_booking

import (
	"fmt"
	"time"
)

func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ChatID == 0 {
		return fmt.Errorf("%w: chat_id is required", ErrInvalidInput)
	}
	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if !req.Start.After(now) {
		return fmt.Errorf("%w: start %s is in the past", ErrInvalidInput, req.Start.Format(time.RFC3339))
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be in 0..%d", ErrInvalidInput, maxDurationMinutes)
	}
	return nil
}
