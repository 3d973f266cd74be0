package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const (
	labelOtherBrand = "✏️ Інша марка"
	labelOtherModel = "✏️ Інша модель"
	dateLabelFormat = "02.01"
)

const (
	textServiceType   = "Оберіть тип звернення:"
	textBrand         = "Оберіть марку авто:"
	textModel         = "Оберіть модель %s:"
	textBrandManual   = "Введіть марку вручну:"
	textModelAfter    = "Тепер введіть модель авто:"
	textModelManual   = "Введіть модель вручну:"
	textYear          = "Оберіть рік випуску авто:"
	textSubtype       = "🚗 Ви обрали авто: %s\nОберіть підтип:"
	textDate          = "Оберіть дату запису:"
	textTime          = "Оберіть зручний час:"
	textPhone         = "Натисніть кнопку нижче, щоб поділитися номером телефону:"
	textPhoneDatetime = "Обрано %s. Натисніть кнопку нижче, щоб поділитися номером телефону:"
)

// promptFor строит запрос для текущего шага сессии
func (s *Session) promptFor(now time.Time) domain.Prompt {
	switch s.step {
	case domain.StepServiceType:
		return s.serviceTypePrompt()
	case domain.StepBrand:
		return s.brandPrompt()
	case domain.StepAwaitingBrandText:
		return domain.Prompt{Text: textBrandManual, RemoveKeyboard: true}
	case domain.StepModel:
		return s.modelPrompt()
	case domain.StepAwaitingModelText:
		if s.deps.Catalog.HasBrand(s.draft.Brand) {
			return domain.Prompt{Text: textModelManual, RemoveKeyboard: true}
		}
		return domain.Prompt{Text: textModelAfter, RemoveKeyboard: true}
	case domain.StepYear:
		return s.yearPrompt(now)
	case domain.StepSubtype:
		return s.subtypePrompt()
	case domain.StepDate:
		return s.datePrompt(now)
	case domain.StepTime:
		return s.timePrompt(now)
	case domain.StepPhone:
		return s.phonePrompt()
	default:
		return domain.Prompt{}
	}
}

func (s *Session) serviceTypePrompt() domain.Prompt {
	options := make([]domain.Option, 0, len(s.deps.ServiceTypes))
	for _, st := range s.deps.ServiceTypes {
		options = append(options, domain.Option{Label: st.Name, Payload: domain.PayloadServiceType + st.Name})
	}
	return domain.Prompt{Text: textServiceType, Options: options, Columns: 1}
}

func (s *Session) brandPrompt() domain.Prompt {
	brands := s.deps.Catalog.Brands()
	options := make([]domain.Option, 0, len(brands)+1)
	for _, b := range brands {
		options = append(options, domain.Option{Label: b, Payload: domain.PayloadBrand + b})
	}
	options = append(options, domain.Option{Label: labelOtherBrand, Payload: domain.PayloadBrand + domain.OtherValue})
	return domain.Prompt{Text: textBrand, Options: options, Columns: 2}
}

func (s *Session) modelPrompt() domain.Prompt {
	models, _ := s.deps.Catalog.Models(s.draft.Brand)
	options := make([]domain.Option, 0, len(models)+1)
	for _, m := range models {
		options = append(options, domain.Option{Label: m, Payload: domain.PayloadModel + m})
	}
	options = append(options, domain.Option{Label: labelOtherModel, Payload: domain.PayloadModel + domain.OtherValue})
	return domain.Prompt{Text: fmt.Sprintf(textModel, s.draft.Brand), Options: options, Columns: 2}
}

func (s *Session) yearPrompt(now time.Time) domain.Prompt {
	years := s.deps.Catalog.Years(now)
	options := make([]domain.Option, 0, len(years))
	for _, y := range years {
		label := strconv.Itoa(y)
		options = append(options, domain.Option{Label: label, Payload: domain.PayloadYear + label})
	}
	return domain.Prompt{Text: textYear, Options: options, Columns: 4}
}

func (s *Session) subtypePrompt() domain.Prompt {
	var options []domain.Option
	if st, ok := s.deps.serviceType(s.draft.ServiceType); ok {
		options = make([]domain.Option, 0, len(st.Subtypes))
		for _, sub := range st.Subtypes {
			options = append(options, domain.Option{Label: sub, Payload: domain.PayloadSubtype + sub})
		}
	}
	return domain.Prompt{Text: fmt.Sprintf(textSubtype, s.draft.CarLabel), Options: options, Columns: 1}
}

func (s *Session) datePrompt(now time.Time) domain.Prompt {
	dates := s.deps.Slots.Dates(now)
	options := make([]domain.Option, 0, len(dates))
	for _, d := range dates {
		options = append(options, domain.Option{
			Label:   d.Format(dateLabelFormat),
			Payload: domain.PayloadDate + d.Format(domain.DateFormat),
		})
	}
	return domain.Prompt{Text: textDate, Options: options, Columns: 3}
}

func (s *Session) timePrompt(now time.Time) domain.Prompt {
	var options []domain.Option
	if s.draft.SelectedDate != nil {
		slots := s.deps.Slots.Slots(*s.draft.SelectedDate, now, nil)
		options = make([]domain.Option, 0, len(slots))
		for _, slot := range slots {
			options = append(options, domain.Option{Label: slot.String(), Payload: domain.PayloadTime + slot.String()})
		}
	}
	return domain.Prompt{Text: textTime, Options: options, Columns: 4}
}

func (s *Session) phonePrompt() domain.Prompt {
	text := textPhone
	if s.draft.RequiresDatetime && s.draft.Datetime != "" {
		text = fmt.Sprintf(textPhoneDatetime, s.draft.Datetime)
	}
	return domain.Prompt{Text: text, RequestContact: true}
}

// errorPrompt текст ошибки и повтор запроса текущего шага
func (s *Session) errorPrompt(err error, now time.Time) domain.Prompt {
	prompt := s.promptFor(now)
	if msg := ErrorMessage(err); msg != "" {
		if prompt.Text == "" {
			prompt.Text = msg
		} else {
			prompt.Text = msg + "\n\n" + prompt.Text
		}
	}
	return prompt
}
