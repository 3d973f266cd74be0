package get_available_slots

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
