package list_chats

import (
	"net/http"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
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

// Handle GET /api/v1/chats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chats, err := h.service.ListChats(r.Context())
	if err != nil {
		h.logger.Error("GET /chats - Failed to list chats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /chats - Chats retrieved: count=%d", len(chats))
	handlers.RespondJSON(w, http.StatusOK, chats)
}
