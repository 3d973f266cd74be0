package get_chat_events

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
)

const msgInvalidChatID = "некорректный ID чата"

type Handler struct {
	service ChatService
	logger  Logger
}

func NewHandler(service ChatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chats/{chatId}/calendar-events
// События, созданные для чата ботом или оператором
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(mux.Vars(r)["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /chats/{id}/calendar-events - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	events, err := h.service.ListCalendarEvents(r.Context(), chatID)
	if err != nil {
		h.logger.Error("GET /chats/{id}/calendar-events - Failed to list events: chat_id=%d, error=%v", chatID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, events)
}
