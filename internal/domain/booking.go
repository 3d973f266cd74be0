package domain

import (
	"time"

	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Step шаг диалога записи
type Step string

const (
	StepStart             Step = "start"
	StepServiceType       Step = "service_type"
	StepBrand             Step = "brand"
	StepAwaitingBrandText Step = "awaiting_brand_text"
	StepModel             Step = "model"
	StepAwaitingModelText Step = "awaiting_model_text"
	StepYear              Step = "year"
	StepSubtype           Step = "subtype"
	StepDate              Step = "date"
	StepTime              Step = "time"
	StepPhone             Step = "phone"
	StepComplete          Step = "complete"
)

// InputKind вид пользовательского ввода
type InputKind string

const (
	InputText    InputKind = "text"
	InputOption  InputKind = "option"
	InputContact InputKind = "contact"
)

// Input ввод пользователя на текущем шаге
type Input struct {
	Kind    InputKind
	Text    string // InputText
	Payload string // InputOption: непрозрачный payload кнопки
	Phone   string // InputContact: номер из поделённого контакта
}

func TextInput(text string) Input {
	return Input{Kind: InputText, Text: text}
}

func OptionInput(payload string) Input {
	return Input{Kind: InputOption, Payload: payload}
}

func ContactInput(phone string) Input {
	return Input{Kind: InputContact, Phone: phone}
}

// Option кнопка с подписью и payload
type Option struct {
	Label   string
	Payload string
}

// Prompt сообщение пользователю с вариантами выбора
type Prompt struct {
	Text           string
	Options        []Option
	Columns        int  // кнопок в ряду при отрисовке, 0 = по одной
	RequestContact bool // запросить контакт вместо кнопок
	ReplyKeyboard  bool // варианты как кнопки клавиатуры, а не inline
	RemoveKeyboard bool
}

// InboundMessage входящее сообщение от мессенджера
type InboundMessage struct {
	UserID    int64
	ChatID    int64
	MessageID int
	FullName  string
	Username  string
	Input     Input
	Timestamp time.Time
}

// Description текст сообщения для истории чата
func (m InboundMessage) Description() string {
	switch m.Input.Kind {
	case InputContact:
		return m.Input.Phone
	case InputOption:
		return m.Input.Payload
	default:
		return m.Input.Text
	}
}

// FinalizedBooking завершённая заявка, передаётся на отправку
type FinalizedBooking struct {
	UserID           int64
	ChatID           int64
	FullName         string
	ServiceType      string
	Subtype          string
	CarLabel         string
	Phone            string
	RequiresDatetime bool

	// Заполнены только при RequiresDatetime
	Date      *time.Time
	StartTime types.TimeString
	Datetime  string // YYYY-MM-DD HH:MM или NoDateMarker
}

// HasStart возвращает true, если у заявки есть дата и время начала
func (b *FinalizedBooking) HasStart() bool {
	return b.Date != nil && !b.StartTime.IsZero()
}

// Start момент начала в часовом поясе выбранной даты
func (b *FinalizedBooking) Start() (time.Time, bool) {
	if !b.HasStart() {
		return time.Time{}, false
	}
	return b.StartTime.OnDate(*b.Date), true
}
