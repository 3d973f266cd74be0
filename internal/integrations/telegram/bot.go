package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// DefaultSendTimeout таймаут отправки, если в конфиге не задан
const DefaultSendTimeout = 10 * time.Second

// Config параметры подключения к Bot API
type Config struct {
	Token              string
	ManagerToken       string // пусто = уведомления менеджерам шлёт основной бот
	Endpoint           string // пусто = tgbotapi.APIEndpoint
	PollTimeout        int    // секунды
	Workers            int
	RateLimitPerSecond float64
	Timeout            time.Duration
}

// Bot транспорт Telegram: long polling, отправка сообщений и уведомлений
// Поллинг и отправка ходят через разные http.Client: long poll держит запрос
// до PollTimeout, отправке нужен короткий таймаут
type Bot struct {
	poller      *tgbotapi.BotAPI
	api         *tgbotapi.BotAPI
	manager     *tgbotapi.BotAPI
	limiter     *rate.Limiter
	pollTimeout int
	workers     int
	log         Logger
}

// New создает бота и проверяет токен запросом getMe
func New(cfg Config, log Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: empty bot token", ErrInvalidConfig)
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	sendTimeout := cfg.Timeout
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	sendClient := &http.Client{Timeout: sendTimeout}
	pollClient := &http.Client{Timeout: sendTimeout + time.Duration(cfg.PollTimeout)*time.Second}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, sendClient)
	if err != nil {
		return nil, fmt.Errorf("%w: NewBotAPI: %v", ErrInvalidConfig, err)
	}

	poller, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, pollClient)
	if err != nil {
		return nil, fmt.Errorf("%w: NewBotAPI (poller): %v", ErrInvalidConfig, err)
	}

	manager := api
	if cfg.ManagerToken != "" && cfg.ManagerToken != cfg.Token {
		manager, err = tgbotapi.NewBotAPIWithClient(cfg.ManagerToken, endpoint, sendClient)
		if err != nil {
			return nil, fmt.Errorf("%w: NewBotAPI (manager): %v", ErrInvalidConfig, err)
		}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
		burst = int(cfg.RateLimitPerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	log.Info("Telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		poller:      poller,
		api:         api,
		manager:     manager,
		limiter:     rate.NewLimiter(limit, burst),
		pollTimeout: cfg.PollTimeout,
		workers:     cfg.Workers,
		log:         log,
	}, nil
}

// Run читает апдейты до отмены контекста и раздает их воркерам
func (b *Bot) Run(ctx context.Context, handler Handler) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.pollTimeout
	updates := b.poller.GetUpdatesChan(updateConfig)

	// Сообщения из очереди дорабатываются и после остановки поллинга
	workCtx := context.WithoutCancel(ctx)
	workers := newPool(b.workers, func(msg domain.InboundMessage) {
		if err := handler.Execute(workCtx, msg); err != nil {
			b.log.Error("Run: handle update failed for chat_id=%d: %v", msg.ChatID, err)
		}
	})
	defer workers.close()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Run: stopping telegram polling")
			b.poller.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				b.log.Warn("Run: updates channel closed")
				return
			}
			if update.CallbackQuery != nil {
				b.answerCallback(update.CallbackQuery.ID)
			}
			msg, ok := ToInbound(update)
			if !ok {
				continue
			}
			if !workers.submit(ctx, msg) {
				return
			}
		}
	}
}

// SendText отправляет простой текст
func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	return b.send(ctx, b.api, tgbotapi.NewMessage(chatID, text))
}

// SendPrompt отправляет подсказку с клавиатурой
func (b *Bot) SendPrompt(ctx context.Context, chatID int64, prompt domain.Prompt) error {
	msg := tgbotapi.NewMessage(chatID, prompt.Text)
	if markup := BuildMarkup(prompt); markup != nil {
		msg.ReplyMarkup = markup
	}
	return b.send(ctx, b.api, msg)
}

// SendHTML отправляет уведомление менеджеру в HTML-разметке
func (b *Bot) SendHTML(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return b.send(ctx, b.manager, msg)
}

func (b *Bot) send(ctx context.Context, api *tgbotapi.BotAPI, msg tgbotapi.MessageConfig) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: chat_id=%d: %v", ErrRateLimited, msg.ChatID, err)
	}
	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("%w: chat_id=%d: %v", ErrSendFailed, msg.ChatID, err)
	}
	return nil
}

func (b *Bot) answerCallback(id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.log.Warn("answerCallback: %v", err)
	}
}
