package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/sto-booking-bot/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceType = "тип услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateOutOfRange     = "дата вне доступного диапазона записи"
	msgSundayClosed       = "в воскресенье сервис не работает"
	msgServiceNotFound    = "тип услуги не найден"
	msgNoDatetime         = "для этого типа услуги запись на время не требуется"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: serviceType (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceType := strings.TrimSpace(query.Get("serviceType"))
	if serviceType == "" {
		h.logger.Warn("GET /available-slots - Missing service type")
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	date := strings.TrimSpace(query.Get("date"))
	if date == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(serviceType, date))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownServiceType):
			h.logger.Warn("GET /available-slots - Service type not found: %q", serviceType)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrNoDatetime):
			h.logger.Warn("GET /available-slots - Service type without time slots: %q", serviceType)
			handlers.RespondBadRequest(w, msgNoDatetime)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateOutOfRange):
			h.logger.Warn("GET /available-slots - Date out of range: %s", date)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, getAvailableSlots.ErrSundayClosed):
			h.logger.Warn("GET /available-slots - Sunday requested: %s", date)
			handlers.RespondBadRequest(w, msgSundayClosed)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service_type=%q, date=%s, error=%v",
				serviceType, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Found %d slots: service_type=%q, date=%s, degraded=%t",
		len(result.Slots), serviceType, date, result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
