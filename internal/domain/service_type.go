package domain

// ServiceType настраиваемый тип услуги
type ServiceType struct {
	Name             string
	Subtypes         []string
	RequiresDatetime bool
	CalendarID       string
	ManagerChatID    int64
	ColorID          string // пусто = цвет по умолчанию для типа
}

// HasSubtype проверяет, что подтип относится к типу услуги
func (s *ServiceType) HasSubtype(subtype string) bool {
	for _, st := range s.Subtypes {
		if st == subtype {
			return true
		}
	}
	return false
}

// EventColorID цвет события в календаре
func (s *ServiceType) EventColorID() string {
	if s.ColorID != "" {
		return s.ColorID
	}
	return ServiceTypeColor(s.Name)
}

var serviceTypeColors = map[string]string{
	"Рихтовка/покраска": "5",
	"ГБО":               "10",
	"СТО":               "11",
}

// ServiceTypeColor цвет по названию типа услуги, DefaultColorID для неизвестных
func ServiceTypeColor(name string) string {
	if c, ok := serviceTypeColors[name]; ok {
		return c
	}
	return DefaultColorID
}
