package send_reply

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
)

const (
	msgInvalidChatID     = "некорректный ID чата"
	msgInvalidBody       = "некорректное тело запроса"
	msgEmptyText         = "текст сообщения обязателен"
	msgChatNotFound      = "чат не найден"
	msgSenderUnavailable = "мессенджер не настроен"
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

// Handle POST /api/v1/chats/{chatId}/messages
// Ошибка доставки не считается ошибкой запроса: сообщение сохраняется со статусом failed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(mux.Vars(r)["chatId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /chats/{id}/messages - Invalid chat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	var req models.SendReplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chats/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.ChatID = chatID

	msg, err := h.service.SendReply(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, chats.ErrDeliveryFailed) && msg != nil:
			h.logger.Warn("POST /chats/{id}/messages - Delivery failed: chat_id=%d, message_id=%d", chatID, msg.ID)
			handlers.RespondJSON(w, http.StatusOK, msg)

		case errors.Is(err, chats.ErrInvalidInput):
			h.logger.Warn("POST /chats/{id}/messages - Empty text: chat_id=%d", chatID)
			handlers.RespondBadRequest(w, msgEmptyText)

		case errors.Is(err, chats.ErrChatNotFound):
			h.logger.Warn("POST /chats/{id}/messages - Chat not found: chat_id=%d", chatID)
			handlers.RespondNotFound(w, msgChatNotFound)

		case errors.Is(err, chats.ErrSenderUnavailable):
			h.logger.Warn("POST /chats/{id}/messages - Messenger unavailable: chat_id=%d", chatID)
			handlers.RespondServiceUnavailable(w, msgSenderUnavailable)

		default:
			h.logger.Error("POST /chats/{id}/messages - Failed to send reply: chat_id=%d, error=%v", chatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chats/{id}/messages - Reply sent: chat_id=%d, message_id=%d", chatID, msg.ID)
	handlers.RespondJSON(w, http.StatusCreated, msg)
}
