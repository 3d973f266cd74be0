package get_available_slots

import (
	"time"

	"github.com/m04kA/sto-booking-bot/pkg/types"
)

const OpBusyLookup = "slots_busy_lookup"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceType string // название типа услуги
	Date        string // YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceType     string
	DurationMinutes int
	Slots           []types.TimeString
	// Degraded занятость из календаря не получена, слоты рассчитаны без неё
	Degraded bool
}
