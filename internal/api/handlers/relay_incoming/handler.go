package relay_incoming

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
	"github.com/m04kA/sto-booking-bot/pkg/signature"
)

// Коды ошибок релея, их разбирает бот на другой стороне
const (
	errInvalidSignature = "invalid_signature"
	errInvalidJSON      = "invalid_json"
	errMissingChatID    = "missing_chat_id"
	errInternal         = "internal_error"
)

type Handler struct {
	service ChatService
	secret  []byte
	logger  Logger
}

func NewHandler(service ChatService, secret string, logger Logger) *Handler {
	return &Handler{
		service: service,
		secret:  []byte(secret),
		logger:  logger,
	}
}

// Handle POST /api/telegram/incoming
// Подпись проверяется по сырому телу до разбора JSON
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw, err := handlers.ReadBody(r)
	if err != nil {
		h.logger.Warn("POST /telegram/incoming - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, errInvalidJSON)
		return
	}

	if err := signature.Verify(h.secret, raw, r.Header.Get(signature.HeaderName)); err != nil {
		h.logger.Warn("POST /telegram/incoming - Signature rejected: remote=%s, error=%v", r.RemoteAddr, err)
		handlers.RespondError(w, http.StatusUnauthorized, errInvalidSignature)
		return
	}

	var req models.IncomingMessage
	if err := json.Unmarshal(raw, &req); err != nil {
		h.logger.Warn("POST /telegram/incoming - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, errInvalidJSON)
		return
	}

	if err := h.service.Ingest(r.Context(), &req, raw); err != nil {
		switch {
		case errors.Is(err, chats.ErrInvalidInput):
			h.logger.Warn("POST /telegram/incoming - Missing chat_id")
			handlers.RespondBadRequest(w, errMissingChatID)

		default:
			h.logger.Error("POST /telegram/incoming - Failed to ingest message: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, errInternal)
		}
		return
	}

	handlers.RespondOK(w)
}
