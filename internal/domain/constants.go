package domain

// Значения по умолчанию для записи
const (
	DefaultSlotDurationMinutes  = 30
	DefaultEventDurationMinutes = 30
	DefaultHorizonDays          = 14
	DefaultCutoffHour           = 17
	DefaultColorID              = "1"
	MinCarYear                  = 1996
)

// Форматы даты и времени
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// NoDateMarker подставляется вместо даты, если услуга не требует записи на время
const NoDateMarker = "без дати"

// Префиксы payload кнопок
const (
	PayloadServiceType = "stype_"
	PayloadBrand       = "brand_"
	PayloadModel       = "model_"
	PayloadYear        = "year_"
	PayloadSubtype     = "subtype_"
	PayloadDate        = "date_"
	PayloadTime        = "time_"
)

// OtherValue значение payload для ручного ввода марки или модели
const OtherValue = "other"

// BeginPayload payload кнопки начала записи
const BeginPayload = "begin"

// Ключи extended properties события календаря
const (
	EventPropUserID      = "user_id"
	EventPropChatID      = "chat_id"
	EventPropFullName    = "full_name"
	EventPropPhone       = "phone"
	EventPropCar         = "car"
	EventPropServiceType = "service_type"
	EventPropBookingID   = "booking_id"
)
