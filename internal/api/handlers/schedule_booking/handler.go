package schedule_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	scheduleBooking "github.com/m04kA/sto-booking-bot/internal/usecase/schedule_booking"
)

const (
	msgInvalidChatID       = "некорректный ID чата"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidStart        = "некорректное время начала, ожидается RFC3339 или YYYY-MM-DD HH:MM"
	msgInvalidInput        = "некорректные параметры записи"
	msgServiceNotFound     = "тип услуги не найден"
	msgNoCalendar          = "для типа услуги не настроен календарь"
	msgChatNotFound        = "чат не найден"
	msgSlotBusy            = "выбранное время уже занято"
	msgCalendarUnavailable = "календарь недоступен"
)

type Handler struct {
	useCase  ScheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ScheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/chats/{chatId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(mux.Vars(r)["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /chats/{id}/schedule - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	var body ScheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /chats/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req, err := ToUseCaseRequest(chatID, &body, h.location)
	if err != nil {
		h.logger.Warn("POST /chats/{id}/schedule - Invalid start=%q", body.Start)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /chats/{id}/schedule - Invalid input: chat_id=%d, error=%v", chatID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduleBooking.ErrUnknownServiceType):
			h.logger.Warn("POST /chats/{id}/schedule - Service type not found: %q", req.ServiceType)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, scheduleBooking.ErrNoCalendar):
			h.logger.Warn("POST /chats/{id}/schedule - No calendar for service type %q", req.ServiceType)
			handlers.RespondBadRequest(w, msgNoCalendar)

		case errors.Is(err, scheduleBooking.ErrChatNotFound):
			h.logger.Warn("POST /chats/{id}/schedule - Chat not found: chat_id=%d", chatID)
			handlers.RespondNotFound(w, msgChatNotFound)

		case errors.Is(err, scheduleBooking.ErrSlotBusy):
			h.logger.Warn("POST /chats/{id}/schedule - Slot busy: chat_id=%d, start=%s", chatID, req.Start)
			handlers.RespondConflict(w, msgSlotBusy)

		case errors.Is(err, scheduleBooking.ErrCalendarUnavailable):
			h.logger.Error("POST /chats/{id}/schedule - Calendar unavailable: chat_id=%d, error=%v", chatID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /chats/{id}/schedule - Failed to schedule: chat_id=%d, error=%v", chatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chats/{id}/schedule - Booking scheduled: chat_id=%d, event_id=%s, confirmation=%s",
		chatID, result.ExternalEventID, result.ConfirmationStatus)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
