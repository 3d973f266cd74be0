package get_available_slots

import (
	"github.com/m04kA/sto-booking-bot/internal/domain"
	getAvailableSlots "github.com/m04kA/sto-booking-bot/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	ServiceType     string   `json:"serviceType"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
	Degraded        bool     `json:"degraded,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceType:     resp.ServiceType,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Degraded:        resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceType, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		ServiceType: serviceType,
		Date:        date,
	}
}
