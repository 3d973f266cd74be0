package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

var kyiv = time.FixedZone("EEST", 3*60*60)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, kyiv)
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestAvailableSlots_Saturday(t *testing.T) {
	// 2025-06-07 суббота, now в другой день
	slots := AvailableSlots(at(2025, 6, 7, 0, 0), at(2025, 6, 1, 0, 0), domain.DefaultWorkingHours(), nil, 30)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00"}, toStrings(slots))
}

func TestAvailableSlots_Weekday(t *testing.T) {
	slots := AvailableSlots(at(2025, 6, 3, 0, 0), at(2025, 6, 2, 10, 0), domain.DefaultWorkingHours(), nil, 30)

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])
}

func TestAvailableSlots_Today(t *testing.T) {
	now := at(2025, 6, 3, 14, 5)
	slots := AvailableSlots(at(2025, 6, 3, 0, 0), now, domain.DefaultWorkingHours(), nil, 30)

	assert.Equal(t, []string{"14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30"}, toStrings(slots))
}

func TestAvailableSlots_TodayExactBoundary(t *testing.T) {
	now := at(2025, 6, 3, 14, 0)
	slots := AvailableSlots(at(2025, 6, 3, 0, 0), now, domain.DefaultWorkingHours(), nil, 30)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("14:30"), slots[0])
}

func TestAvailableSlots_Empty(t *testing.T) {
	hours := domain.DefaultWorkingHours()

	tests := []struct {
		name string
		date time.Time
		now  time.Time
	}{
		{name: "sunday", date: at(2025, 6, 8, 0, 0), now: at(2025, 6, 2, 10, 0)},
		{name: "past date", date: at(2025, 6, 1, 0, 0), now: at(2025, 6, 2, 10, 0)},
		{name: "today after closing", date: at(2025, 6, 3, 0, 0), now: at(2025, 6, 3, 17, 30)},
		{name: "saturday afternoon", date: at(2025, 6, 7, 0, 0), now: at(2025, 6, 7, 13, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, AvailableSlots(tt.date, tt.now, hours, nil, 30))
		})
	}
}

func TestAvailableSlots_Busy(t *testing.T) {
	date := at(2025, 6, 7, 0, 0)
	busy := []domain.Interval{
		// пересекается с 10:00 и 10:30
		{Start: at(2025, 6, 7, 10, 20), End: at(2025, 6, 7, 10, 40)},
		// занимает 11:30, с 11:00 и 12:00 только граничит
		{Start: at(2025, 6, 7, 11, 30), End: at(2025, 6, 7, 12, 0)},
	}

	slots := AvailableSlots(date, at(2025, 6, 1, 0, 0), domain.DefaultWorkingHours(), busy, 30)

	assert.Equal(t, []string{"09:00", "09:30", "11:00", "12:00", "12:30", "13:00"}, toStrings(slots))
}

func TestAvailableSlots_Restartable(t *testing.T) {
	date := at(2025, 6, 4, 0, 0)
	now := at(2025, 6, 2, 10, 0)
	hours := domain.DefaultWorkingHours()

	assert.Equal(t, AvailableSlots(date, now, hours, nil, 30), AvailableSlots(date, now, hours, nil, 30))
}

func TestCandidateDates(t *testing.T) {
	t.Run("before cutoff includes today", func(t *testing.T) {
		dates := CandidateDates(at(2025, 6, 2, 10, 0), 14, 17)

		require.Len(t, dates, 12)
		assert.Equal(t, "2025-06-02", dates[0].Format(domain.DateFormat))
		assert.Equal(t, "2025-06-14", dates[len(dates)-1].Format(domain.DateFormat))
		for _, d := range dates {
			assert.NotEqual(t, time.Sunday, d.Weekday())
		}
	})

	t.Run("after cutoff excludes today", func(t *testing.T) {
		dates := CandidateDates(at(2025, 6, 2, 18, 0), 14, 17)

		require.Len(t, dates, 11)
		assert.Equal(t, "2025-06-03", dates[0].Format(domain.DateFormat))
	})

	t.Run("exactly at cutoff excludes today", func(t *testing.T) {
		dates := CandidateDates(at(2025, 6, 2, 17, 0), 14, 17)
		assert.Equal(t, "2025-06-03", dates[0].Format(domain.DateFormat))
	})

	t.Run("dates are midnight in location", func(t *testing.T) {
		dates := CandidateDates(at(2025, 6, 2, 10, 0), 3, 17)
		for _, d := range dates {
			assert.Equal(t, 0, d.Hour())
			assert.Equal(t, kyiv, d.Location())
		}
	})
}

func TestValidateDate(t *testing.T) {
	now := at(2025, 6, 2, 10, 0)

	tests := []struct {
		name string
		date time.Time
		now  time.Time
		want error
	}{
		{name: "today before cutoff", date: at(2025, 6, 2, 0, 0), now: now},
		{name: "tuesday", date: at(2025, 6, 3, 0, 0), now: now},
		{name: "last day", date: at(2025, 6, 14, 0, 0), now: now},
		{name: "sunday", date: at(2025, 6, 8, 0, 0), now: now, want: ErrSundayClosed},
		{name: "sunday beyond horizon", date: at(2025, 6, 22, 0, 0), now: now, want: ErrSundayClosed},
		{name: "past sunday", date: at(2025, 6, 1, 0, 0), now: now, want: ErrSundayClosed},
		{name: "yesterday", date: at(2025, 5, 31, 0, 0), now: now, want: ErrDateOutOfRange},
		{name: "beyond horizon", date: at(2025, 6, 16, 0, 0), now: now, want: ErrDateOutOfRange},
		{name: "today after cutoff", date: at(2025, 6, 2, 0, 0), now: at(2025, 6, 2, 18, 0), want: ErrDateOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date, tt.now, 14, 17)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCalculator(t *testing.T) {
	calc := NewDefaultCalculator(kyiv)

	date, err := calc.ParseDate("2025-06-07")
	require.NoError(t, err)
	assert.Equal(t, kyiv, date.Location())

	now := at(2025, 6, 2, 10, 0)
	assert.True(t, calc.IsAvailable(date, now, "13:00", nil))
	assert.False(t, calc.IsAvailable(date, now, "13:30", nil))
	assert.NoError(t, calc.ValidateDate(date, now))

	_, err = calc.ParseDate("07.06.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
