package get_chat_messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
)

const (
	msgInvalidChatID = "некорректный ID чата"
	msgChatNotFound  = "чат не найден"
)

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

// Handle GET /api/v1/chats/{chatId}/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(mux.Vars(r)["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /chats/{id}/messages - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	messages, err := h.service.ListMessages(r.Context(), chatID)
	if err != nil {
		switch {
		case errors.Is(err, chats.ErrChatNotFound):
			h.logger.Warn("GET /chats/{id}/messages - Chat not found: chat_id=%d", chatID)
			handlers.RespondNotFound(w, msgChatNotFound)

		default:
			h.logger.Error("GET /chats/{id}/messages - Failed to list messages: chat_id=%d, error=%v", chatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /chats/{id}/messages - Messages retrieved: chat_id=%d, count=%d", chatID, len(messages))
	handlers.RespondJSON(w, http.StatusOK, messages)
}
