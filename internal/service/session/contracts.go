package session

import (
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Catalog справочник марок и моделей
type Catalog interface {
	Brands() []string
	HasBrand(brand string) bool
	Models(brand string) ([]string, bool)
	HasModel(brand, model string) bool
	Years(now time.Time) []int
	ValidYear(year int, now time.Time) bool
}

// SlotCalculator расчёт дат и слотов записи
type SlotCalculator interface {
	Dates(now time.Time) []time.Time
	ValidateDate(date, now time.Time) error
	ParseDate(value string) (time.Time, error)
	Slots(date, now time.Time, busy []domain.Interval) []types.TimeString
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
