package create_booking

import (
	"fmt"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// validateBooking проверяет заявку перед отправкой
func validateBooking(b *domain.FinalizedBooking) error {
	if b == nil {
		return fmt.Errorf("%w: booking is nil", ErrInvalidInput)
	}
	if b.ChatID == 0 {
		return fmt.Errorf("%w: chat_id is required", ErrInvalidInput)
	}
	if b.ServiceType == "" {
		return fmt.Errorf("%w: service type is required", ErrInvalidInput)
	}
	if b.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if b.RequiresDatetime && !b.HasStart() {
		return fmt.Errorf("%w: datetime is required for %s", ErrInvalidInput, b.ServiceType)
	}
	return nil
}
