package salary

import (
	"math"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
)

// Day status phrases written into InOutRecord.Description.
const (
	DescAbsent              = "Absent"
	DescOff                 = "Off"
	DescWorkedOffDay        = "Worked on Off Day"
	DescWorkedHoliday       = "Worked on Holiday"
	DescWorkedOffDayHoliday = "Worked on Off Day and Holiday"
	descHolidayFallback     = "Holiday"
)

// OTCalculator applies the overtime thresholds and multipliers.
type OTCalculator struct {
	cfg EngineConfig
}

func NewOTCalculator(cfg EngineConfig) OTCalculator {
	return OTCalculator{cfg: cfg}
}

// Threshold returns the hours that must be worked before overtime starts.
// Off days and public or mercantile holidays count every hour.
func (c OTCalculator) Threshold(dayType employee.DayType, hol holiday.Holiday) float64 {
	if dayType == employee.DayTypeOff || hol.SuspendsWork() {
		return 0
	}
	if dayType == employee.DayTypeHalf {
		return c.cfg.HalfDayThreshold
	}
	return c.cfg.FullDayThreshold
}

func (c OTCalculator) Multiplier(hol holiday.Holiday) decimal.Decimal {
	if hol.Categories.Mercantile {
		return c.cfg.MercantileMultiplier
	}
	return c.cfg.RegularMultiplier
}

// CalculateOT returns the overtime pay and hours for one record.
func (c OTCalculator) CalculateOT(workingHours float64, dayType employee.DayType, hol holiday.Holiday, basic decimal.Decimal, divideBy int) (decimal.Decimal, float64) {
	if workingHours <= 0 || divideBy <= 0 {
		return decimal.Zero, 0
	}
	otHours := roundHours(math.Max(0, workingHours-c.Threshold(dayType, hol)))
	if otHours == 0 {
		return decimal.Zero, 0
	}
	ot := decimal.NewFromFloat(otHours).
		Mul(basic).
		Mul(c.Multiplier(hol)).
		Div(decimal.NewFromInt(int64(divideBy))).
		Round(2)
	return ot, otHours
}

// IsAbsent reports a working day with no hours that no holiday excuses.
// Bank-only holidays do not excuse absence.
func IsAbsent(workingHours float64, dayType employee.DayType, hol holiday.Holiday) bool {
	return workingHours == 0 && dayType.IsWorking() && !hol.SuspendsWork()
}

// Describe builds the description for a record: the holiday summary followed
// by the day status phrase, joined with " - ".
func Describe(workingHours float64, dayType employee.DayType, hol holiday.Holiday) string {
	summary := hol.Summary
	off := dayType == employee.DayTypeOff
	suspends := hol.SuspendsWork()

	var phrase string
	switch {
	case workingHours > 0 && off && suspends:
		phrase = DescWorkedOffDayHoliday
	case workingHours > 0 && off:
		phrase = DescWorkedOffDay
	case workingHours > 0 && suspends:
		phrase = DescWorkedHoliday
	case workingHours > 0:
	case suspends:
		if summary == "" {
			return descHolidayFallback
		}
		return summary
	case off:
		phrase = DescOff
	default:
		phrase = DescAbsent
	}
	return joinNonEmpty(" - ", summary, phrase)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
