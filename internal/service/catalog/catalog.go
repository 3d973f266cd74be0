package catalog

import (
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// Brand марка с упорядоченным списком моделей
type Brand struct {
	Name   string
	Models []string
}

// Catalog справочник марок и моделей
type Catalog struct {
	brands  []Brand
	byName  map[string]int
	minYear int
}

// New справочник из переданных марок
func New(brands []Brand) *Catalog {
	c := &Catalog{
		brands:  brands,
		byName:  make(map[string]int, len(brands)),
		minYear: domain.MinCarYear,
	}
	for i, b := range brands {
		c.byName[b.Name] = i
	}
	return c
}

// NewDefault справочник популярных марок
func NewDefault() *Catalog {
	return New(popularCars)
}

// Brands названия марок в исходном порядке
func (c *Catalog) Brands() []string {
	names := make([]string, len(c.brands))
	for i, b := range c.brands {
		names[i] = b.Name
	}
	return names
}

// HasBrand проверяет наличие марки в справочнике
func (c *Catalog) HasBrand(brand string) bool {
	_, ok := c.byName[brand]
	return ok
}

// Models модели марки, false если марки нет в справочнике
func (c *Catalog) Models(brand string) ([]string, bool) {
	i, ok := c.byName[brand]
	if !ok {
		return nil, false
	}
	return append([]string(nil), c.brands[i].Models...), true
}

// HasModel проверяет, что модель относится к марке
func (c *Catalog) HasModel(brand, model string) bool {
	i, ok := c.byName[brand]
	if !ok {
		return false
	}
	for _, m := range c.brands[i].Models {
		if m == model {
			return true
		}
	}
	return false
}

// Years годы выпуска от текущего до минимального по убыванию
func (c *Catalog) Years(now time.Time) []int {
	current := now.Year()
	if current < c.minYear {
		return []int{}
	}
	years := make([]int, 0, current-c.minYear+1)
	for y := current; y >= c.minYear; y-- {
		years = append(years, y)
	}
	return years
}

// ValidYear проверяет, что год в диапазоне [минимальный, текущий]
func (c *Catalog) ValidYear(year int, now time.Time) bool {
	return year >= c.minYear && year <= now.Year()
}
