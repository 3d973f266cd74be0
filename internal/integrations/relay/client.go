package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/signature"
)

const DefaultTimeout = 3 * time.Second

// Client отправляет входящие сообщения в десктоп-компаньон с HMAC-подписью
type Client struct {
	url        string
	secret     []byte
	httpClient *http.Client
}

// NewClient создает клиент релея
func NewClient(url, secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:    url,
		secret: []byte(secret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Push подписывает и отправляет сообщение
func (c *Client) Push(ctx context.Context, msg domain.InboundMessage) error {
	if c.url == "" || len(c.secret) == 0 {
		return ErrNotConfigured
	}

	messageID := strconv.Itoa(msg.MessageID)
	if msg.MessageID == 0 {
		messageID = uuid.NewString()
	}
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	userName := msg.FullName
	if userName == "" {
		userName = msg.Username
	}

	body, err := json.Marshal(PushMessage{
		ChatID:    msg.ChatID,
		UserName:  userName,
		Text:      msg.Description(),
		Ts:        ts.UTC().Format(time.RFC3339Nano),
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.HeaderName, signature.Sign(c.secret, body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	}
	return nil
}
