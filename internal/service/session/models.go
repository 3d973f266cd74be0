package session

import (
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Draft незавершённая заявка
type Draft struct {
	ServiceType      string
	RequiresDatetime bool
	Subtype          string
	Brand            string
	Model            string
	Year             int
	CarLabel         string
	SelectedDate     *time.Time
	SelectedTime     types.TimeString
	Datetime         string
	Phone            string
}

// Outcome результат обработки ввода
type Outcome struct {
	Step    domain.Step
	Prompt  domain.Prompt
	Err     error                    // ошибка валидации, шаг не изменился
	Booking *domain.FinalizedBooking // заполнено при переходе в StepComplete
}

// Completed диалог завершён, заявку можно отправлять
func (o Outcome) Completed() bool {
	return o.Booking != nil
}

// Dependencies зависимости сессий
type Dependencies struct {
	ServiceTypes []domain.ServiceType
	Catalog      Catalog
	Slots        SlotCalculator
}

func (d Dependencies) serviceType(name string) (*domain.ServiceType, bool) {
	for i := range d.ServiceTypes {
		if d.ServiceTypes[i].Name == name {
			return &d.ServiceTypes[i], true
		}
	}
	return nil, false
}
