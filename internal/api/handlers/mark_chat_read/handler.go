package mark_chat_read

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

// Handle POST /api/v1/chats/{chatId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(mux.Vars(r)["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /chats/{id}/read - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	if err := h.service.MarkRead(r.Context(), chatID); err != nil {
		switch {
		case errors.Is(err, chats.ErrChatNotFound):
			h.logger.Warn("POST /chats/{id}/read - Chat not found: chat_id=%d", chatID)
			handlers.RespondNotFound(w, msgChatNotFound)

		default:
			h.logger.Error("POST /chats/{id}/read - Failed to mark read: chat_id=%d, error=%v", chatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chats/{id}/read - Chat marked read: chat_id=%d", chatID)
	handlers.RespondOK(w)
}
