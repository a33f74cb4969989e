package holiday

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategories_Label(t *testing.T) {
	assert.Equal(t, "", Categories{}.Label())
	assert.Equal(t, "Public, Bank, Mercantile", Categories{Public: true, Mercantile: true, Bank: true}.Label())
	assert.Equal(t, "Bank", Categories{Bank: true}.Label())
}

func TestHoliday_SuspendsWork(t *testing.T) {
	assert.True(t, Holiday{Categories: Categories{Public: true}}.SuspendsWork())
	assert.True(t, Holiday{Categories: Categories{Mercantile: true}}.SuspendsWork())
	assert.False(t, Holiday{Categories: Categories{Bank: true}}.SuspendsWork())
	assert.False(t, Holiday{}.SuspendsWork())
}

func TestCalendar_OnAndMerge(t *testing.T) {
	cal := NewCalendar([]Holiday{
		{Date: day(2024, time.May, 23), Categories: Categories{Public: true, Bank: true}, Summary: "Vesak Full Moon Poya Day"},
		{Date: day(2024, time.May, 23), Categories: Categories{Mercantile: true}, Summary: "Vesak Full Moon Poya Day"},
		{Date: day(2024, time.May, 1), Categories: Categories{Public: true, Mercantile: true, Bank: true}, Summary: "May Day"},
	})

	assert.Equal(t, 2, cal.Len())

	vesak := cal.On(time.Date(2024, time.May, 23, 14, 30, 0, 0, time.UTC))
	assert.True(t, vesak.Categories.Public)
	assert.True(t, vesak.Categories.Mercantile)
	assert.True(t, vesak.Categories.Bank)
	assert.Equal(t, "Vesak Full Moon Poya Day", vesak.Summary)

	assert.True(t, cal.On(day(2024, time.May, 2)).IsZero(), "missing date is not a holiday")

	all := cal.All()
	assert.Equal(t, "2024-05-01", all[0].Key())
	assert.Equal(t, "2024-05-23", all[1].Key())
}

func TestMissingYearError(t *testing.T) {
	var err error = &MissingYearError{Year: 2031}
	assert.True(t, errors.Is(err, ErrNoHolidayData))
	assert.Contains(t, err.Error(), "2031")
}
