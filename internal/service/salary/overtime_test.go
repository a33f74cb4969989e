package salary

import (
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOTCalculator_CalculateOT(t *testing.T) {
	calc := NewOTCalculator(DefaultEngineConfig())
	mercantile := holiday.Holiday{Date: at(2024, 5, 23, 0, 0), Categories: holiday.Categories{Mercantile: true}}
	public := holiday.Holiday{Date: at(2024, 5, 23, 0, 0), Categories: holiday.Categories{Public: true}}
	bank := holiday.Holiday{Date: at(2024, 5, 23, 0, 0), Categories: holiday.Categories{Bank: true}}

	tests := []struct {
		name      string
		hours     float64
		dayType   employee.DayType
		hol       holiday.Holiday
		wantOT    string
		wantHours float64
	}{
		{"full day eleven hours", 11, employee.DayTypeFull, holiday.Holiday{}, "600", 2},
		{"full day under threshold", 8.5, employee.DayTypeFull, holiday.Holiday{}, "0", 0},
		{"half day threshold six", 7, employee.DayTypeHalf, holiday.Holiday{}, "300", 1},
		{"off day counts every hour", 4, employee.DayTypeOff, holiday.Holiday{}, "1200", 4},
		{"mercantile doubles", 5, employee.DayTypeFull, mercantile, "2000", 5},
		{"public holiday at one and a half", 5, employee.DayTypeFull, public, "1500", 5},
		{"bank holiday keeps threshold", 10, employee.DayTypeFull, bank, "300", 1},
		{"no hours", 0, employee.DayTypeOff, mercantile, "0", 0},
		{"fractional hours", 9.25, employee.DayTypeFull, holiday.Holiday{}, "75", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ot, hours := calc.CalculateOT(tt.hours, tt.dayType, tt.hol, dec(48000), employee.DivideBy240)
			assert.True(t, decimal.RequireFromString(tt.wantOT).Equal(ot), "ot = %s", ot)
			assert.Equal(t, tt.wantHours, hours)
		})
	}
}

func TestOTCalculator_DivideBy200(t *testing.T) {
	calc := NewOTCalculator(DefaultEngineConfig())
	ot, _ := calc.CalculateOT(10, employee.DayTypeFull, holiday.Holiday{}, dec(40000), employee.DivideBy200)
	assert.True(t, dec(300).Equal(ot))
}

func TestIsAbsent(t *testing.T) {
	public := holiday.Holiday{Date: at(2024, 5, 1, 0, 0), Categories: holiday.Categories{Public: true}}
	bank := holiday.Holiday{Date: at(2024, 5, 1, 0, 0), Categories: holiday.Categories{Bank: true}}

	assert.True(t, IsAbsent(0, employee.DayTypeFull, holiday.Holiday{}))
	assert.True(t, IsAbsent(0, employee.DayTypeHalf, holiday.Holiday{}))
	assert.True(t, IsAbsent(0, employee.DayTypeFull, bank), "bank holidays do not excuse absence")
	assert.False(t, IsAbsent(0, employee.DayTypeFull, public))
	assert.False(t, IsAbsent(0, employee.DayTypeOff, holiday.Holiday{}))
	assert.False(t, IsAbsent(3, employee.DayTypeFull, holiday.Holiday{}))
}

func TestDescribe(t *testing.T) {
	poya := holiday.Holiday{
		Date:       at(2024, 5, 23, 0, 0),
		Categories: holiday.Categories{Public: true, Bank: true},
		Summary:    "Vesak Full Moon Poya Day",
	}
	unnamed := holiday.Holiday{Date: at(2024, 5, 23, 0, 0), Categories: holiday.Categories{Mercantile: true}}
	bank := holiday.Holiday{Date: at(2024, 5, 23, 0, 0), Categories: holiday.Categories{Bank: true}, Summary: "Bank Holiday"}

	tests := []struct {
		name    string
		hours   float64
		dayType employee.DayType
		hol     holiday.Holiday
		want    string
	}{
		{"absent", 0, employee.DayTypeFull, holiday.Holiday{}, DescAbsent},
		{"off", 0, employee.DayTypeOff, holiday.Holiday{}, DescOff},
		{"worked", 9, employee.DayTypeFull, holiday.Holiday{}, ""},
		{"worked off day", 5, employee.DayTypeOff, holiday.Holiday{}, DescWorkedOffDay},
		{"worked holiday", 5, employee.DayTypeFull, poya, "Vesak Full Moon Poya Day - Worked on Holiday"},
		{"worked off day holiday", 5, employee.DayTypeOff, poya, "Vesak Full Moon Poya Day - Worked on Off Day and Holiday"},
		{"holiday rest", 0, employee.DayTypeFull, poya, "Vesak Full Moon Poya Day"},
		{"holiday without summary", 0, employee.DayTypeFull, unnamed, "Holiday"},
		{"absent on bank holiday", 0, employee.DayTypeFull, bank, "Bank Holiday - Absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.hours, tt.dayType, tt.hol))
		})
	}
}
