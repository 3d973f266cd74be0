package handle_message

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/infra/storage/memory"
	"github.com/m04kA/sto-booking-bot/internal/service/catalog"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/internal/service/session"
	"github.com/m04kA/sto-booking-bot/internal/service/slots"
	"github.com/m04kA/sto-booking-bot/internal/usecase/create_booking"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
	"github.com/m04kA/sto-booking-bot/pkg/metrics"
)

var kyiv = time.FixedZone("EEST", 3*60*60)

// Понедельник, 08:00
var monday = time.Date(2025, 6, 2, 8, 0, 0, 0, kyiv)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeMessenger struct {
	mu        sync.Mutex
	promptErr error
	prompts   []domain.Prompt
	texts     []string
	html      []string
}

func (f *fakeMessenger) SendPrompt(_ context.Context, _ int64, prompt domain.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promptErr != nil {
		return f.promptErr
	}
	f.prompts = append(f.prompts, prompt)
	return nil
}

func (f *fakeMessenger) SendText(_ context.Context, _ int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) SendHTML(_ context.Context, _ int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.html = append(f.html, text)
	return nil
}

func (f *fakeMessenger) lastPrompt() domain.Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[len(f.prompts)-1]
}

type fakeCalendar struct {
	requests []domain.CalendarEventRequest
}

func (f *fakeCalendar) CreateEvent(_ context.Context, req domain.CalendarEventRequest) (string, error) {
	f.requests = append(f.requests, req)
	return "evt-1", nil
}

type fakeRelay struct {
	err    error
	pushed []domain.InboundMessage
}

func (f *fakeRelay) Push(_ context.Context, msg domain.InboundMessage) error {
	f.pushed = append(f.pushed, msg)
	return f.err
}

type failingDispatcher struct {
	err error
}

func (f *failingDispatcher) Execute(_ context.Context, _ *domain.FinalizedBooking) (*create_booking.Response, error) {
	return nil, f.err
}

// restartingDispatcher имитирует новую сессию пользователя, начатую во время отправки заявки
type restartingDispatcher struct {
	store *session.Store
	next  Dispatcher
	fresh *session.Session
}

func (d *restartingDispatcher) Execute(ctx context.Context, booking *domain.FinalizedBooking) (*create_booking.Response, error) {
	d.fresh = d.store.Create(booking.UserID, booking.ChatID, booking.FullName)
	return d.next.Execute(ctx, booking)
}

type fixture struct {
	uc        *UseCase
	store     *session.Store
	repo      *memory.Repository
	chats     *chats.Service
	messenger *fakeMessenger
	calendar  *fakeCalendar
	relay     *fakeRelay
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	serviceTypes := []domain.ServiceType{
		{
			Name:             "СТО",
			Subtypes:         []string{"Заміна масла", "Діагностика"},
			RequiresDatetime: true,
			CalendarID:       "sto@calendar",
			ManagerChatID:    -100,
		},
	}
	log := logger.NewNop()
	rec := metrics.NewRecorder(nil)

	store := session.NewStore(session.Dependencies{
		ServiceTypes: serviceTypes,
		Catalog:      catalog.NewDefault(),
		Slots:        slots.NewDefaultCalculator(kyiv),
	}, 0)
	repo := memory.NewRepository()
	chatService := chats.NewService(repo, nil, log)
	messenger := &fakeMessenger{}
	calendar := &fakeCalendar{}
	relay := &fakeRelay{}

	dispatcher := create_booking.NewUseCase(calendar, messenger, chatService, rec, serviceTypes,
		create_booking.Options{TimeZone: "Europe/Kiev", Timeout: time.Second}, log)

	uc := NewUseCase(store, messenger, chatService, relay, dispatcher, rec, time.Second, log).
		WithTimeProvider(fixedClock{now: monday})

	return &fixture{
		uc:        uc,
		store:     store,
		repo:      repo,
		chats:     chatService,
		messenger: messenger,
		calendar:  calendar,
		relay:     relay,
	}
}

func inbound(in domain.Input) domain.InboundMessage {
	return domain.InboundMessage{
		UserID:    7,
		ChatID:    42,
		MessageID: 1,
		FullName:  "Іван Петренко",
		Input:     in,
		Timestamp: monday,
	}
}

func TestExecute_FullBookingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inputs := []domain.Input{
		domain.TextInput(StartCommand),
		domain.TextInput(BeginButtonText),
		domain.OptionInput("stype_СТО"),
		domain.OptionInput("brand_Audi"),
		domain.OptionInput("model_A4"),
		domain.OptionInput("year_2015"),
		domain.OptionInput("subtype_Діагностика"),
		domain.OptionInput("date_2025-06-03"),
		domain.OptionInput("time_10:00"),
		domain.ContactInput("+380501112233"),
	}
	for _, in := range inputs {
		require.NoError(t, f.uc.Execute(ctx, inbound(in)))
	}

	// Меню + 8 шагов диалога
	require.Len(t, f.messenger.prompts, 9)
	assert.Equal(t, menuText, f.messenger.prompts[0].Text)
	assert.True(t, f.messenger.prompts[0].ReplyKeyboard)
	assert.True(t, f.messenger.lastPrompt().RequestContact)

	require.Len(t, f.calendar.requests, 1)
	req := f.calendar.requests[0]
	assert.Equal(t, "СТО — Audi A4 (2015)", req.Summary)
	assert.Equal(t, time.Date(2025, 6, 3, 10, 0, 0, 0, kyiv), req.Start)

	require.Len(t, f.messenger.html, 1)
	assert.Contains(t, f.messenger.html[0], "2025-06-03 10:00")
	require.Len(t, f.messenger.texts, 1)
	assert.True(t, strings.HasPrefix(f.messenger.texts[0], "✅ Ваша заявка успішно прийнята!"))

	assert.Equal(t, 0, f.store.Len())
	assert.Len(t, f.relay.pushed, len(inputs))

	chat, err := f.repo.GetChat(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, len(inputs), chat.UnreadCount)
	assert.Equal(t, "Іван Петренко", chat.DisplayName)

	messages, err := f.repo.ListMessages(ctx, 42)
	require.NoError(t, err)
	// входящие + подсказки + подтверждение
	assert.Len(t, messages, len(inputs)+9+1)

	events, err := f.repo.ListCalendarEvents(ctx, 42)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ExternalEventID)
}

func TestExecute_NoSessionShowsMenu(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.Execute(context.Background(), inbound(domain.TextInput("привіт"))))

	require.Len(t, f.messenger.prompts, 1)
	assert.Equal(t, menuText, f.messenger.prompts[0].Text)
	assert.Equal(t, 0, f.store.Len())
}

func TestExecute_InvalidInputRepromptsSameStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Execute(ctx, inbound(domain.OptionInput(domain.BeginPayload))))
	require.NoError(t, f.uc.Execute(ctx, inbound(domain.OptionInput("stype_Мийка"))))

	sess, ok := f.store.Get(7)
	require.True(t, ok)
	assert.Equal(t, domain.StepServiceType, sess.Step())

	last := f.messenger.lastPrompt()
	assert.Equal(t, f.messenger.prompts[0].Options, last.Options)
	assert.True(t, strings.HasSuffix(last.Text, f.messenger.prompts[0].Text))
}

func TestExecute_BeginRestartsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Execute(ctx, inbound(domain.TextInput(BeginButtonText))))
	require.NoError(t, f.uc.Execute(ctx, inbound(domain.OptionInput("stype_СТО"))))
	require.NoError(t, f.uc.Execute(ctx, inbound(domain.TextInput(BeginButtonText))))

	sess, ok := f.store.Get(7)
	require.True(t, ok)
	assert.Equal(t, domain.StepServiceType, sess.Step())
	assert.Empty(t, sess.Draft().ServiceType)
}

func TestExecute_StartDropsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Execute(ctx, inbound(domain.TextInput(BeginButtonText))))
	require.Equal(t, 1, f.store.Len())

	require.NoError(t, f.uc.Execute(ctx, inbound(domain.TextInput(StartCommand))))
	assert.Equal(t, 0, f.store.Len())
}

func TestExecute_ExternalFailuresDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.relay.err = errors.New("relay down")
	f.messenger.promptErr = errors.New("telegram down")
	ctx := context.Background()

	require.NoError(t, f.uc.Execute(ctx, inbound(domain.TextInput(BeginButtonText))))
	assert.Equal(t, 1, f.store.Len())

	messages, err := f.repo.ListMessages(ctx, 42)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.DirectionIn, messages[0].Direction)
	assert.Equal(t, domain.MessageFailed, messages[1].Status)
}

func TestExecute_WithoutRelay(t *testing.T) {
	f := newFixture(t)
	f.uc.relay = nil

	require.NoError(t, f.uc.Execute(context.Background(), inbound(domain.TextInput(StartCommand))))
	assert.Empty(t, f.relay.pushed)
}

var bookingPath = []domain.Input{
	domain.TextInput(BeginButtonText),
	domain.OptionInput("stype_СТО"),
	domain.OptionInput("brand_Audi"),
	domain.OptionInput("model_A4"),
	domain.OptionInput("year_2015"),
	domain.OptionInput("subtype_Діагностика"),
	domain.OptionInput("date_2025-06-03"),
	domain.OptionInput("time_10:00"),
}

func TestExecute_DispatchFailureRepliesToUser(t *testing.T) {
	f := newFixture(t)
	f.uc.dispatcher = &failingDispatcher{err: create_booking.ErrUnknownServiceType}
	ctx := context.Background()

	for _, in := range bookingPath {
		require.NoError(t, f.uc.Execute(ctx, inbound(in)))
	}
	err := f.uc.Execute(ctx, inbound(domain.ContactInput("+380501112233")))
	assert.ErrorIs(t, err, create_booking.ErrUnknownServiceType)

	last := f.messenger.lastPrompt()
	assert.Equal(t, dispatchFailedText, last.Text)
	assert.Equal(t, MainMenu().Options, last.Options)
	assert.Equal(t, 0, f.store.Len())

	messages, err := f.repo.ListMessages(ctx, 42)
	require.NoError(t, err)
	lastMsg := messages[len(messages)-1]
	assert.Equal(t, domain.DirectionOut, lastMsg.Direction)
	assert.Equal(t, dispatchFailedText, lastMsg.Text)
}

func TestExecute_CompletionKeepsRestartedSession(t *testing.T) {
	f := newFixture(t)
	restarting := &restartingDispatcher{store: f.store, next: f.uc.dispatcher}
	f.uc.dispatcher = restarting
	ctx := context.Background()

	for _, in := range bookingPath {
		require.NoError(t, f.uc.Execute(ctx, inbound(in)))
	}
	require.NoError(t, f.uc.Execute(ctx, inbound(domain.ContactInput("+380501112233"))))

	require.Len(t, f.messenger.texts, 1)
	require.NotNil(t, restarting.fresh)
	sess, ok := f.store.Get(7)
	require.True(t, ok)
	assert.Same(t, restarting.fresh, sess)
}
