package session

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/slots"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Session диалог записи одного пользователя
// Все изменения идут через Submit под мьютексом сессии
type Session struct {
	mu sync.Mutex

	userID   int64
	chatID   int64
	fullName string

	step         domain.Step
	draft        Draft
	deps         Dependencies
	lastActivity time.Time
}

func newSession(userID, chatID int64, fullName string, deps Dependencies, now time.Time) *Session {
	return &Session{
		userID:       userID,
		chatID:       chatID,
		fullName:     fullName,
		step:         domain.StepStart,
		deps:         deps,
		lastActivity: now,
	}
}

func (s *Session) UserID() int64 {
	return s.userID
}

func (s *Session) ChatID() int64 {
	return s.chatID
}

func (s *Session) FullName() string {
	return s.fullName
}

// Step текущий шаг
func (s *Session) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Draft копия черновика заявки
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	if d.SelectedDate != nil {
		date := *d.SelectedDate
		d.SelectedDate = &date
	}
	return d
}

// LastActivity время последнего ввода
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Begin переводит новую сессию к выбору типа услуги
func (s *Session) Begin(now time.Time) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.begin(now)
}

func (s *Session) begin(now time.Time) Outcome {
	s.lastActivity = now
	s.step = domain.StepServiceType
	return Outcome{Step: s.step, Prompt: s.promptFor(now)}
}

// Submit проверяет ввод для текущего шага и переходит к следующему
// При ошибке черновик и шаг не меняются, в Outcome возвращается ошибка и повтор запроса
// Исключение: на шаге времени без свободных слотов сессия возвращается к выбору даты
func (s *Session) Submit(input domain.Input, now time.Time) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == domain.StepStart {
		return s.begin(now)
	}

	if s.step == domain.StepComplete {
		return Outcome{Step: s.step, Err: ErrSessionComplete, Prompt: domain.Prompt{Text: msgSessionComplete}}
	}

	s.lastActivity = now

	var err error
	switch s.step {
	case domain.StepServiceType:
		err = s.submitServiceType(input)
	case domain.StepBrand:
		err = s.submitBrand(input)
	case domain.StepAwaitingBrandText:
		err = s.submitBrandText(input)
	case domain.StepModel:
		err = s.submitModel(input)
	case domain.StepAwaitingModelText:
		err = s.submitModelText(input)
	case domain.StepYear:
		err = s.submitYear(input, now)
	case domain.StepSubtype:
		err = s.submitSubtype(input)
	case domain.StepDate:
		err = s.submitDate(input, now)
	case domain.StepTime:
		err = s.submitTime(input, now)
	case domain.StepPhone:
		err = s.submitPhone(input)
	}

	if err != nil {
		return Outcome{Step: s.step, Err: err, Prompt: s.errorPrompt(err, now)}
	}

	if s.step == domain.StepComplete {
		return Outcome{Step: s.step, Booking: s.finalize()}
	}

	return Outcome{Step: s.step, Prompt: s.promptFor(now)}
}

func (s *Session) submitServiceType(input domain.Input) error {
	value, ok := valueOf(input, domain.PayloadServiceType)
	if !ok {
		return ErrUnknownServiceType
	}

	st, ok := s.deps.serviceType(value)
	if !ok {
		return ErrUnknownServiceType
	}

	s.draft.ServiceType = st.Name
	s.draft.RequiresDatetime = st.RequiresDatetime
	s.step = domain.StepBrand
	return nil
}

func (s *Session) submitBrand(input domain.Input) error {
	value, ok := valueOf(input, domain.PayloadBrand)
	if !ok || value == "" {
		return ErrUnknownBrand
	}

	if input.Kind == domain.InputOption && value == domain.OtherValue {
		s.step = domain.StepAwaitingBrandText
		return nil
	}

	if !s.deps.Catalog.HasBrand(value) {
		return ErrUnknownBrand
	}

	s.draft.Brand = value
	s.step = domain.StepModel
	return nil
}

func (s *Session) submitBrandText(input domain.Input) error {
	text, err := manualText(input)
	if err != nil {
		return err
	}

	s.draft.Brand = text
	s.step = domain.StepAwaitingModelText
	return nil
}

func (s *Session) submitModel(input domain.Input) error {
	value, ok := valueOf(input, domain.PayloadModel)
	if !ok || value == "" {
		return ErrUnknownModel
	}

	if input.Kind == domain.InputOption && value == domain.OtherValue {
		s.step = domain.StepAwaitingModelText
		return nil
	}

	if !s.deps.Catalog.HasModel(s.draft.Brand, value) {
		return ErrUnknownModel
	}

	s.setModel(value)
	return nil
}

func (s *Session) submitModelText(input domain.Input) error {
	text, err := manualText(input)
	if err != nil {
		return err
	}

	s.setModel(text)
	return nil
}

func (s *Session) setModel(model string) {
	s.draft.Model = model
	s.draft.CarLabel = s.draft.Brand + " " + model
	s.step = domain.StepYear
}

func (s *Session) submitYear(input domain.Input, now time.Time) error {
	value, ok := valueOf(input, domain.PayloadYear)
	if !ok {
		return ErrInvalidYear
	}

	year, err := strconv.Atoi(value)
	if err != nil || !s.deps.Catalog.ValidYear(year, now) {
		return ErrInvalidYear
	}

	s.draft.Year = year
	s.draft.CarLabel = s.draft.CarLabel + " (" + strconv.Itoa(year) + ")"
	s.step = domain.StepSubtype
	return nil
}

func (s *Session) submitSubtype(input domain.Input) error {
	value, ok := valueOf(input, domain.PayloadSubtype)
	if !ok {
		return ErrUnknownSubtype
	}

	st, ok := s.deps.serviceType(s.draft.ServiceType)
	if !ok || !st.HasSubtype(value) {
		return ErrUnknownSubtype
	}

	s.draft.Subtype = value
	if s.draft.RequiresDatetime {
		s.step = domain.StepDate
		return nil
	}

	s.draft.Datetime = domain.NoDateMarker
	s.step = domain.StepPhone
	return nil
}

func (s *Session) submitDate(input domain.Input, now time.Time) error {
	value, ok := valueOf(input, domain.PayloadDate)
	if !ok {
		return ErrInvalidDate
	}

	date, err := s.deps.Slots.ParseDate(value)
	if err != nil {
		return ErrInvalidDate
	}

	if err := s.deps.Slots.ValidateDate(date, now); err != nil {
		if errors.Is(err, slots.ErrSundayClosed) {
			return ErrSundayNotAvailable
		}
		return ErrDateOutOfRange
	}

	if len(s.deps.Slots.Slots(date, now, nil)) == 0 {
		return ErrNoSlotsForDate
	}

	s.draft.SelectedDate = &date
	s.step = domain.StepTime
	return nil
}

func (s *Session) submitTime(input domain.Input, now time.Time) error {
	// слоты пересчитываются на момент выбора
	var candidates []types.TimeString
	if s.draft.SelectedDate != nil {
		candidates = s.deps.Slots.Slots(*s.draft.SelectedDate, now, nil)
	}
	if len(candidates) == 0 {
		// на дату времени не осталось, возвращаем к выбору дня
		s.draft.SelectedDate = nil
		s.step = domain.StepDate
		return ErrNoSlotsForDate
	}

	value, ok := valueOf(input, domain.PayloadTime)
	if !ok {
		return ErrSlotNotAvailable
	}

	slot, err := types.NewTimeStringFromString(value)
	if err != nil {
		return ErrSlotNotAvailable
	}

	available := false
	for _, free := range candidates {
		if free == slot {
			available = true
			break
		}
	}
	if !available {
		return ErrSlotNotAvailable
	}

	s.draft.SelectedTime = slot
	s.draft.Datetime = s.draft.SelectedDate.Format(domain.DateFormat) + " " + slot.String()
	s.step = domain.StepPhone
	return nil
}

func (s *Session) submitPhone(input domain.Input) error {
	if input.Kind != domain.InputContact {
		return ErrContactRequired
	}

	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return ErrContactRequired
	}

	s.draft.Phone = phone
	s.step = domain.StepComplete
	return nil
}

func (s *Session) finalize() *domain.FinalizedBooking {
	booking := &domain.FinalizedBooking{
		UserID:           s.userID,
		ChatID:           s.chatID,
		FullName:         s.fullName,
		ServiceType:      s.draft.ServiceType,
		Subtype:          s.draft.Subtype,
		CarLabel:         s.draft.CarLabel,
		Phone:            s.draft.Phone,
		RequiresDatetime: s.draft.RequiresDatetime,
		Datetime:         s.draft.Datetime,
	}

	if s.draft.RequiresDatetime && s.draft.SelectedDate != nil {
		date := *s.draft.SelectedDate
		booking.Date = &date
		booking.StartTime = s.draft.SelectedTime
	} else {
		booking.Datetime = domain.NoDateMarker
	}

	return booking
}

// valueOf значение ввода: payload кнопки с нужным префиксом или текст
func valueOf(input domain.Input, prefix string) (string, bool) {
	switch input.Kind {
	case domain.InputOption:
		if !strings.HasPrefix(input.Payload, prefix) {
			return "", false
		}
		return strings.TrimPrefix(input.Payload, prefix), true
	case domain.InputText:
		return strings.TrimSpace(input.Text), true
	default:
		return "", false
	}
}

// manualText непустой текст для шагов ручного ввода
func manualText(input domain.Input) (string, error) {
	if input.Kind != domain.InputText {
		return "", ErrTextExpected
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}
