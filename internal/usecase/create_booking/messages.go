package create_booking

import (
	"fmt"
	"html"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const acknowledgementText = "✅ Ваша заявка успішно прийнята!\nОчікуйте дзвінка менеджера найближчим часом."

const managerTemplate = "🔔 <b>Нова заявка</b>\n" +
	"👤 <b>Ім'я:</b> %s\n" +
	"🚗 <b>Авто:</b> %s\n" +
	"🔧 <b>Послуга:</b> %s\n" +
	"📅 <b>Час:</b> %s\n" +
	"📱 <b>Телефон:</b> %s"

// serviceLabel "тип - подтип"
func serviceLabel(b *domain.FinalizedBooking) string {
	return b.ServiceType + " - " + b.Subtype
}

func managerMessage(b *domain.FinalizedBooking) string {
	datetime := b.Datetime
	if datetime == "" {
		datetime = domain.NoDateMarker
	}
	return fmt.Sprintf(managerTemplate,
		html.EscapeString(b.FullName),
		html.EscapeString(b.CarLabel),
		html.EscapeString(serviceLabel(b)),
		html.EscapeString(datetime),
		html.EscapeString(b.Phone),
	)
}

func eventSummary(b *domain.FinalizedBooking) string {
	return b.ServiceType + " — " + b.CarLabel
}

func eventDescription(b *domain.FinalizedBooking) string {
	return "Телефон: " + b.Phone + ", Ім’я: " + b.FullName
}
