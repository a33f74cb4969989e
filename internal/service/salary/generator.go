package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
)

// Generator odds and jitter bounds.
const (
	presenceWorkingDay    = 0.95
	presenceOffDay        = 0.01
	earlyArrival          = 0.95
	lateCheckout          = 0.95
	maxArrivalJitter      = 30
	maxEarlyLeaveJitter   = 30
	maxLateCheckoutJitter = 240
	fullDayTarget         = 9 * time.Hour
	halfDayTarget         = 6 * time.Hour
)

// Generator fills uncovered days with plausible synthetic sessions.
type Generator struct {
	loc *time.Location
}

func NewGenerator(loc *time.Location) Generator {
	if loc == nil {
		loc = time.UTC
	}
	return Generator{loc: loc}
}

// Fill returns one session for every day in days that is not in covered.
// Absent days get a zero-length session at the shift start.
func (g Generator) Fill(days []time.Time, covered map[string]bool, emp employee.Employee, cal holiday.Calendar, rnd RandSource) []session {
	var sessions []session
	for _, day := range days {
		if covered[dateKey(day)] {
			continue
		}
		sessions = append(sessions, g.day(day, emp, cal, rnd))
	}
	return sessions
}

func (g Generator) day(day time.Time, emp employee.Employee, cal holiday.Calendar, rnd RandSource) session {
	shift := emp.Shifts[rnd.IntN(len(emp.Shifts))]
	start := shift.Start.On(day, g.loc)
	info := resolveDay(day, emp, cal)

	presence := presenceOffDay
	if info.expectsWork() {
		presence = presenceWorkingDay
	}
	if rnd.Float64() >= presence {
		return session{Day: day, In: start, Out: start}
	}

	// present days draw their working shift again
	shift = emp.Shifts[rnd.IntN(len(emp.Shifts))]
	start = shift.Start.On(day, g.loc)

	var in time.Time
	if rnd.Float64() < earlyArrival {
		in = start.Add(-jitter(rnd, maxArrivalJitter))
	} else {
		in = start.Add(jitter(rnd, maxArrivalJitter))
	}

	target := start.Add(fullDayTarget)
	if info.DayType == employee.DayTypeHalf {
		target = start.Add(halfDayTarget)
	}
	var out time.Time
	if rnd.Float64() < lateCheckout {
		out = target.Add(jitter(rnd, maxLateCheckoutJitter))
	} else {
		out = target.Add(-jitter(rnd, maxEarlyLeaveJitter))
	}

	return session{Day: day, In: in, Out: out}
}

// jitter draws a whole number of minutes in [0, max].
func jitter(rnd RandSource, max int) time.Duration {
	return time.Duration(rnd.IntN(max+1)) * time.Minute
}
