package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
)

// DayTypeFor classifies date by the employee's weekly schedule.
func DayTypeFor(date time.Time, emp employee.Employee) employee.DayType {
	return emp.WorkingDays.For(date.Weekday())
}

// HolidayFor looks date up in the shared calendar. The zero Holiday means
// no holiday.
func HolidayFor(date time.Time, cal holiday.Calendar) holiday.Holiday {
	return cal.On(date)
}

// dayInfo is the resolved classification of one calendar day.
type dayInfo struct {
	DayType employee.DayType
	Holiday holiday.Holiday
}

func resolveDay(date time.Time, emp employee.Employee, cal holiday.Calendar) dayInfo {
	return dayInfo{
		DayType: DayTypeFor(date, emp),
		Holiday: HolidayFor(date, cal),
	}
}

// expectsWork reports whether an employee is due at work on the day.
func (d dayInfo) expectsWork() bool {
	return d.DayType.IsWorking() && !d.Holiday.SuspendsWork()
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
