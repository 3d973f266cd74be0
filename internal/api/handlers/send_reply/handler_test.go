package send_reply

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/infra/storage/memory"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendText(_ context.Context, _ int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func setup(t *testing.T, sender chats.MessageSender) (*chats.Service, *mux.Router) {
	t.Helper()

	service := chats.NewService(memory.NewRepository(), sender, logger.NewNop())
	require.NoError(t, service.RecordInbound(context.Background(), 42, "Іван", "Привіт", time.Now(), nil))

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/chats/{chatId}/messages", NewHandler(service, logger.NewNop()).Handle).Methods(http.MethodPost)
	return service, r
}

func post(r *mux.Router, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Sent(t *testing.T) {
	sender := &fakeSender{}
	service, r := setup(t, sender)

	rec := post(r, "/api/v1/chats/42/messages", `{"text":"  Чекаємо вас о 10:00  "}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var msg models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "sent", msg.Status)
	assert.Equal(t, "out", msg.Direction)
	assert.Equal(t, []string{"Чекаємо вас о 10:00"}, sender.sent)

	history, err := service.ListMessages(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "sent", history[1].Status)
}

func TestHandle_DeliveryFailedIsRecorded(t *testing.T) {
	service, r := setup(t, &fakeSender{err: errors.New("telegram down")})

	rec := post(r, "/api/v1/chats/42/messages", `{"text":"Добрий день"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "failed", msg.Status)

	history, err := service.ListMessages(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "failed", history[1].Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sender chats.MessageSender
		target string
		body   string
		want   int
	}{
		{name: "invalid chat id", sender: &fakeSender{}, target: "/api/v1/chats/x/messages", body: `{"text":"hi"}`, want: http.StatusBadRequest},
		{name: "invalid json", sender: &fakeSender{}, target: "/api/v1/chats/42/messages", body: `[`, want: http.StatusBadRequest},
		{name: "empty text", sender: &fakeSender{}, target: "/api/v1/chats/42/messages", body: `{"text":"  "}`, want: http.StatusBadRequest},
		{name: "unknown chat", sender: &fakeSender{}, target: "/api/v1/chats/7/messages", body: `{"text":"hi"}`, want: http.StatusNotFound},
		{name: "no messenger", sender: nil, target: "/api/v1/chats/42/messages", body: `{"text":"hi"}`, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := setup(t, tt.sender)
			rec := post(r, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
